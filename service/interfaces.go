package service

import (
	"github.com/nerggg/wavsteg/internal/cipher"
	"github.com/nerggg/wavsteg/models"
)

// SteganographyService drives the WAV steganography pipeline: capacity
// reporting, embedding and extraction.
type SteganographyService interface {
	// CalculateCapacity reports embedding capacity in bytes, for lsb
	// widths 1-4, of the WAV carrier at the given sample stride.
	CalculateCapacity(wavData []byte, stride int) (*models.CapacityResult, error)

	// Embed runs the transform stack named by req and overlays the
	// result on req.CoverWav, returning the serialized stego WAV.
	Embed(req *models.EmbedRequest) (*models.EmbedResponse, error)

	// Extract reads the frame header and payload back out of
	// req.StegoWav using req.LSB/req.Stride.
	Extract(req *models.ExtractRequest) (*models.ExtractResponse, error)
}

// CryptographyService resolves the stego-key material supplied over
// HTTP to the credentials collaborator the cipher dispatch needs,
// without the pipeline ever touching a process-wide prompt.
type CryptographyService interface {
	CredentialsFromKey(key string) cipher.CredentialsSource
}

// AudioService computes audio-quality metrics between cover and stego
// sample buffers.
type AudioService interface {
	// CalculatePSNR returns the peak signal-to-noise ratio, in dB,
	// between two equal-length sample buffers of the given sample
	// width. +Inf indicates an unmodified carrier.
	CalculatePSNR(original, modified []byte, sampleWidth int) float64
}

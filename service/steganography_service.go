package service

import (
	"log"
	"time"

	"github.com/nerggg/wavsteg/internal/cipher"
	"github.com/nerggg/wavsteg/internal/eccode"
	"github.com/nerggg/wavsteg/internal/lsb"
	"github.com/nerggg/wavsteg/internal/pipeline"
	"github.com/nerggg/wavsteg/internal/wavfile"
	"github.com/nerggg/wavsteg/models"
)

// stegoService implements SteganographyService on top of the WAV
// container, pipeline driver and their collaborators.
type stegoService struct {
	crypto CryptographyService
	audio  AudioService
}

// NewStegoService creates a new steganography service instance.
func NewStegoService(crypto CryptographyService, audio AudioService) SteganographyService {
	return &stegoService{crypto: crypto, audio: audio}
}

func ecTagFromString(tag string) (eccode.Tag, error) {
	switch tag {
	case "", "none":
		return eccode.TagNone, nil
	case "hamming":
		return eccode.TagHamming, nil
	default:
		return 0, models.NewError(models.KindUnsupportedFormat, "unknown error-correction tag: "+tag)
	}
}

func encTagFromString(tag string) (cipher.Tag, error) {
	switch tag {
	case "", "none":
		return cipher.TagNone, nil
	case "symmetric":
		return cipher.TagSymmetric, nil
	default:
		return 0, models.NewError(models.KindUnsupportedFormat, "unknown cipher tag: "+tag)
	}
}

func hashTagFromString(tag string) (cipher.HashTag, error) {
	switch tag {
	case "", "none":
		return cipher.HashNone, nil
	case "pbkdf2":
		return cipher.HashPBKDF2, nil
	default:
		return 0, models.NewError(models.KindUnsupportedFormat, "unknown hash tag: "+tag)
	}
}

// CalculateCapacity reports, in bytes, how much payload a WAV carrier
// can hold for lsb widths 1 through 4 at the given sample stride.
func (s *stegoService) CalculateCapacity(wavData []byte, stride int) (*models.CapacityResult, error) {
	f, err := wavfile.Parse(wavData)
	if err != nil {
		return nil, err
	}
	if stride < 1 {
		stride = 1
	}

	numSamples := f.NumSamples()
	bytesFor := func(n int) int {
		return lsb.Capacity(numSamples, n, stride) / 8
	}

	return &models.CapacityResult{
		SampleCount:   numSamples,
		SampleWidth:   f.Format.SampleWidth(),
		Stride:        stride,
		OneLSBBytes:   bytesFor(1),
		TwoLSBBytes:   bytesFor(2),
		ThreeLSBBytes: bytesFor(3),
		FourLSBBytes:  bytesFor(4),
	}, nil
}

// Embed parses req.CoverWav, runs the transform stack over req.Secret
// and overlays the result on the carrier's sample buffer, returning the
// serialized stego WAV plus the metrics the HTTP layer reports as
// response headers.
func (s *stegoService) Embed(req *models.EmbedRequest) (*models.EmbedResponse, error) {
	start := time.Now()

	f, err := wavfile.Parse(req.CoverWav)
	if err != nil {
		log.Printf("[ERROR] Embed: failed to parse cover WAV: %v", err)
		return nil, err
	}

	ecTag, err := ecTagFromString(req.ECTag)
	if err != nil {
		return nil, err
	}
	encTag, err := encTagFromString(req.EncTag)
	if err != nil {
		return nil, err
	}
	hashTag, err := hashTagFromString(req.HashTag)
	if err != nil {
		return nil, err
	}
	if req.LSB < 1 || req.LSB > 8 {
		return nil, models.ErrInvalidLSB
	}
	if req.Stride < 1 {
		return nil, models.ErrInvalidStride
	}
	if encTag == cipher.TagSymmetric && req.StegoKey == "" {
		return nil, models.ErrInvalidStegoKey
	}

	original := make([]byte, len(f.Data))
	copy(original, f.Data)

	opts := pipeline.Options{
		LSB:        req.LSB,
		Stride:     req.Stride,
		RepeatData: req.RepeatData,
		ECTag:      ecTag,
		ECParam:    byte(req.ECParam),
		EncTag:     encTag,
		HashTag:    hashTag,
		Creds:      s.crypto.CredentialsFromKey(req.StegoKey),
	}

	if err := pipeline.Embed(f.Data, f.Format.SampleWidth(), req.Secret, opts); err != nil {
		log.Printf("[ERROR] Embed: pipeline embed failed: %v", err)
		return nil, err
	}

	psnr := s.audio.CalculatePSNR(original, f.Data, f.Format.SampleWidth())

	return &models.EmbedResponse{
		StegoWav:        f.Marshal(),
		PSNR:            psnr,
		ProcessingTime:  time.Since(start).Seconds(),
		SecretSizeBytes: len(req.Secret),
	}, nil
}

// Extract parses req.StegoWav and recovers the payload previously
// embedded with matching lsb/stride (§9: not recoverable from the
// frame header, so the caller must supply them).
func (s *stegoService) Extract(req *models.ExtractRequest) (*models.ExtractResponse, error) {
	f, err := wavfile.Parse(req.StegoWav)
	if err != nil {
		log.Printf("[ERROR] Extract: failed to parse stego WAV: %v", err)
		return nil, err
	}
	if req.LSB < 1 || req.LSB > 8 {
		return nil, models.ErrInvalidLSB
	}
	if req.Stride < 1 {
		return nil, models.ErrInvalidStride
	}

	opts := pipeline.Options{
		LSB:    req.LSB,
		Stride: req.Stride,
		Creds:  s.crypto.CredentialsFromKey(req.StegoKey),
	}

	secret, err := pipeline.Extract(f.Data, f.Format.SampleWidth(), opts)
	if err != nil {
		log.Printf("[ERROR] Extract: pipeline extract failed: %v", err)
		return nil, err
	}

	return &models.ExtractResponse{
		Secret:   secret,
		FileSize: len(secret),
	}, nil
}

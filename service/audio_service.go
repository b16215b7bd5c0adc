package service

import (
	"encoding/binary"
	"log"
	"math"
)

// audioService implements AudioService.
type audioService struct{}

// NewAudioService creates a new audio service instance.
func NewAudioService() AudioService {
	return &audioService{}
}

// sampleMax returns the largest magnitude a signed sample of the given
// byte width can take, used as the peak reference value for PSNR.
func sampleMax(sampleWidth int) float64 {
	return float64(int64(1)<<(uint(sampleWidth)*8-1) - 1)
}

func readSignedSample(b []byte) int64 {
	switch len(b) {
	case 1:
		return int64(int8(b[0] - 128)) // 8-bit PCM is conventionally unsigned
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(b)))
	case 3:
		v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
		if v&0x800000 != 0 {
			v |= 0xFF000000
		}
		return int64(int32(v))
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(b)))
	default:
		return 0
	}
}

// CalculatePSNR computes the peak signal-to-noise ratio between a cover
// and stego sample buffer of equal length and uniform sample width.
func (a *audioService) CalculatePSNR(original, modified []byte, sampleWidth int) float64 {
	if len(original) != len(modified) {
		log.Printf("[WARN] CalculatePSNR: length mismatch - original: %d, modified: %d", len(original), len(modified))
		return 0.0
	}
	if sampleWidth <= 0 || len(original) < sampleWidth {
		return 0.0
	}

	var mse float64
	sampleCount := len(original) / sampleWidth

	for i := 0; i < sampleCount; i++ {
		off := i * sampleWidth
		origSample := readSignedSample(original[off : off+sampleWidth])
		modSample := readSignedSample(modified[off : off+sampleWidth])
		diff := float64(origSample - modSample)
		mse += diff * diff
	}

	if sampleCount == 0 {
		return 0.0
	}
	mse /= float64(sampleCount)

	if mse == 0 {
		return math.Inf(1)
	}

	psnr := 20 * math.Log10(sampleMax(sampleWidth)/math.Sqrt(mse))
	log.Printf("[DEBUG] CalculatePSNR: MSE=%.6f, PSNR=%.2f dB (samples: %d, width: %d)", mse, psnr, sampleCount, sampleWidth)
	return psnr
}

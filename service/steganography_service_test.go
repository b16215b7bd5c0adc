package service

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/nerggg/wavsteg/models"
)

// buildTestWAV constructs a minimal mono 16-bit PCM WAV carrier with
// numSamples all-zero samples, large enough to exercise the pipeline at
// every lsb width this suite tries.
func buildTestWAV(numSamples int) []byte {
	dataSize := numSamples * 2

	body := new(bytes.Buffer)
	body.WriteString("fmt ")
	binary.Write(body, binary.LittleEndian, uint32(16))
	binary.Write(body, binary.LittleEndian, uint16(1))     // PCM
	binary.Write(body, binary.LittleEndian, uint16(1))     // mono
	binary.Write(body, binary.LittleEndian, uint32(44100)) // sample rate
	binary.Write(body, binary.LittleEndian, uint32(44100*2))
	binary.Write(body, binary.LittleEndian, uint16(2))  // block align
	binary.Write(body, binary.LittleEndian, uint16(16)) // bits per sample

	body.WriteString("data")
	binary.Write(body, binary.LittleEndian, uint32(dataSize))
	body.Write(make([]byte, dataSize))

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(4+body.Len()))
	out.WriteString("WAVE")
	out.Write(body.Bytes())
	return out.Bytes()
}

var testSecretData = []byte("This is a secret message for testing steganography.")

func newTestStegoService() SteganographyService {
	return NewStegoService(NewCryptographyService(), NewAudioService())
}

func TestCalculateCapacity(t *testing.T) {
	svc := newTestStegoService()

	capacity, err := svc.CalculateCapacity(buildTestWAV(20000), 1)
	if err != nil {
		t.Fatalf("CalculateCapacity failed: %v", err)
	}

	if capacity.OneLSBBytes <= 0 {
		t.Error("1-lsb capacity should be positive")
	}
	if capacity.TwoLSBBytes <= capacity.OneLSBBytes {
		t.Error("2-lsb capacity should exceed 1-lsb capacity")
	}
	if capacity.FourLSBBytes <= capacity.ThreeLSBBytes {
		t.Error("4-lsb capacity should exceed 3-lsb capacity")
	}
}

func TestCalculateCapacityRejectsNonWav(t *testing.T) {
	svc := newTestStegoService()
	if _, err := svc.CalculateCapacity([]byte("not a wav file"), 1); err == nil {
		t.Error("expected an error for non-WAV input")
	}
}

func TestEmbedExtractAcrossLSBWidths(t *testing.T) {
	svc := newTestStegoService()

	for _, lsbWidth := range []int{1, 2, 3, 4} {
		t.Run(fmt.Sprintf("lsb_%d", lsbWidth), func(t *testing.T) {
			embedReq := &models.EmbedRequest{
				CoverWav:   buildTestWAV(20000),
				Secret:     testSecretData,
				SecretName: "test.txt",
				LSB:        lsbWidth,
				Stride:     1,
			}

			resp, err := svc.Embed(embedReq)
			if err != nil {
				t.Fatalf("Embed failed for %d-lsb: %v", lsbWidth, err)
			}
			if resp.PSNR <= 0 {
				t.Errorf("PSNR should be positive, got %f", resp.PSNR)
			}

			extractReq := &models.ExtractRequest{
				StegoWav: resp.StegoWav,
				LSB:      lsbWidth,
				Stride:   1,
			}
			extractResp, err := svc.Extract(extractReq)
			if err != nil {
				t.Fatalf("Extract failed for %d-lsb: %v", lsbWidth, err)
			}
			if !bytes.Equal(testSecretData, extractResp.Secret) {
				t.Errorf("%d-lsb: extracted data doesn't match original", lsbWidth)
			}
		})
	}
}

func TestEmbedExtractWithHamming(t *testing.T) {
	svc := newTestStegoService()

	embedReq := &models.EmbedRequest{
		CoverWav:   buildTestWAV(20000),
		Secret:     testSecretData,
		SecretName: "test.txt",
		LSB:        1,
		Stride:     1,
		ECTag:      "hamming",
		ECParam:    4,
	}

	resp, err := svc.Embed(embedReq)
	if err != nil {
		t.Fatalf("Embed with hamming failed: %v", err)
	}

	extractReq := &models.ExtractRequest{StegoWav: resp.StegoWav, LSB: 1, Stride: 1}
	extractResp, err := svc.Extract(extractReq)
	if err != nil {
		t.Fatalf("Extract with hamming failed: %v", err)
	}
	if !bytes.Equal(testSecretData, extractResp.Secret) {
		t.Error("hamming round trip: extracted data doesn't match original")
	}
}

func TestEmbedExtractWithEncryption(t *testing.T) {
	svc := newTestStegoService()
	key := "secretkey123"

	embedReq := &models.EmbedRequest{
		CoverWav:   buildTestWAV(20000),
		Secret:     testSecretData,
		SecretName: "encrypted.txt",
		LSB:        2,
		Stride:     1,
		EncTag:     "symmetric",
		HashTag:    "pbkdf2",
		StegoKey:   key,
	}

	resp, err := svc.Embed(embedReq)
	if err != nil {
		t.Fatalf("embed with encryption failed: %v", err)
	}

	extractResp, err := svc.Extract(&models.ExtractRequest{
		StegoWav: resp.StegoWav, LSB: 2, Stride: 1, StegoKey: key,
	})
	if err != nil {
		t.Fatalf("extract with encryption failed: %v", err)
	}
	if !bytes.Equal(testSecretData, extractResp.Secret) {
		t.Error("encrypted data extraction failed")
	}

	if _, err := svc.Extract(&models.ExtractRequest{
		StegoWav: resp.StegoWav, LSB: 2, Stride: 1, StegoKey: "wrongkey",
	}); err == nil {
		t.Error("extraction with wrong key should fail")
	}
}

func TestEmbedErrorCases(t *testing.T) {
	svc := newTestStegoService()

	t.Run("InvalidLSB", func(t *testing.T) {
		_, err := svc.Embed(&models.EmbedRequest{
			CoverWav: buildTestWAV(20000), Secret: testSecretData, LSB: 9, Stride: 1,
		})
		if err == nil {
			t.Error("expected an error for lsb out of range")
		}
	})

	t.Run("InsufficientCapacity", func(t *testing.T) {
		largeSecret := make([]byte, 50000)
		_, err := svc.Embed(&models.EmbedRequest{
			CoverWav: buildTestWAV(100), Secret: largeSecret, LSB: 1, Stride: 1,
		})
		if err == nil {
			t.Error("expected CapacityExceeded for an oversized secret")
		}
	})

	t.Run("InvalidCarrier", func(t *testing.T) {
		_, err := svc.Embed(&models.EmbedRequest{
			CoverWav: []byte("not a wav file"), Secret: testSecretData, LSB: 1, Stride: 1,
		})
		if err == nil {
			t.Error("expected an error for a non-WAV carrier")
		}
	})

	t.Run("UnknownECTag", func(t *testing.T) {
		_, err := svc.Embed(&models.EmbedRequest{
			CoverWav: buildTestWAV(20000), Secret: testSecretData, LSB: 1, Stride: 1, ECTag: "reed-solomon",
		})
		if err == nil {
			t.Error("expected an error for an unknown error-correction tag")
		}
	})

	t.Run("MissingStegoKeyForSymmetricCipher", func(t *testing.T) {
		_, err := svc.Embed(&models.EmbedRequest{
			CoverWav: buildTestWAV(20000), Secret: testSecretData, LSB: 1, Stride: 1, EncTag: "symmetric",
		})
		if !errors.Is(err, models.ErrInvalidStegoKey) {
			t.Errorf("expected ErrInvalidStegoKey, got %v", err)
		}
	})
}

func BenchmarkEmbed2LSB(b *testing.B) {
	svc := newTestStegoService()
	wav := buildTestWAV(20000)
	req := &models.EmbedRequest{CoverWav: wav, Secret: testSecretData, LSB: 2, Stride: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Embed(req); err != nil {
			b.Fatalf("benchmark embed failed: %v", err)
		}
	}
}

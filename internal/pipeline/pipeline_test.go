package pipeline

import (
	"bytes"
	"testing"

	"github.com/nerggg/wavsteg/internal/cipher"
	"github.com/nerggg/wavsteg/internal/eccode"
)

func baseOptions() Options {
	return Options{LSB: 1, Stride: 1, ECTag: eccode.TagNone, EncTag: cipher.TagNone}
}

func TestEmbedExtractRoundTripNoTransforms(t *testing.T) {
	samples := make([]byte, 20000) // 10000 16-bit samples, all zero
	plaintext := []byte("hi")

	opts := baseOptions()
	if err := Embed(samples, 2, plaintext, opts); err != nil {
		t.Fatal(err)
	}

	got, err := Extract(samples, 2, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("extracted %q, want %q", got, plaintext)
	}
}

func TestEmbedExtractRoundTripWithHamming(t *testing.T) {
	samples := make([]byte, 20000)
	plaintext := []byte("hi")

	opts := baseOptions()
	opts.ECTag = eccode.TagHamming
	opts.ECParam = 4

	if err := Embed(samples, 2, plaintext, opts); err != nil {
		t.Fatal(err)
	}
	got, err := Extract(samples, 2, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("extracted %q, want %q", got, plaintext)
	}
}

func TestHammingSurvivesSingleBitFlip(t *testing.T) {
	samples := make([]byte, 20000)
	plaintext := []byte("hi")

	opts := baseOptions()
	opts.ECTag = eccode.TagHamming
	opts.ECParam = 4

	if err := Embed(samples, 2, plaintext, opts); err != nil {
		t.Fatal(err)
	}

	// Flip the first coded bit (sample index 128, lsb=1/stride=1 means
	// one bit per 16-bit sample's low byte).
	flipByteOffset := 128 * 2
	samples[flipByteOffset] ^= 0x01

	got, err := Extract(samples, 2, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("extracted %q after single-bit flip, want %q", got, plaintext)
	}
}

func TestEmbedCapacityExceeded(t *testing.T) {
	samples := make([]byte, 256) // 128 16-bit samples, capacity = 128 bits, header alone = 128 bits
	opts := baseOptions()

	if err := Embed(samples, 2, []byte("x"), opts); err == nil {
		t.Fatal("expected CapacityExceeded error")
	}
}

func TestEmbedExtractRoundTripWithEncryption(t *testing.T) {
	samples := make([]byte, 20000)
	plaintext := []byte("secret payload")

	opts := baseOptions()
	opts.EncTag = cipher.TagSymmetric
	opts.HashTag = cipher.HashPBKDF2
	opts.Creds = cipher.StaticCredentialsSource{Pass: []byte("hunter2")}

	if err := Embed(samples, 2, plaintext, opts); err != nil {
		t.Fatal(err)
	}
	got, err := Extract(samples, 2, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("extracted %q, want %q", got, plaintext)
	}
}

func TestRepeatDataRoundTrip(t *testing.T) {
	samples := make([]byte, 20000)
	plaintext := []byte("hi")

	opts := baseOptions()
	opts.RepeatData = true

	if err := Embed(samples, 2, plaintext, opts); err != nil {
		t.Fatal(err)
	}
	got, err := Extract(samples, 2, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("extracted %q, want %q", got, plaintext)
	}
}

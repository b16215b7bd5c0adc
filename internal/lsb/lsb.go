// Package lsb overlays and extracts a bit stream onto/from the PCM
// sample bytes of a WAV carrier, using a configurable bit depth and
// sample stride. Only the lowest byte of each (possibly multi-byte)
// sample is touched.
package lsb

import (
	"github.com/nerggg/wavsteg/models"
)

// Capacity returns the number of bits that can be embedded given
// numSamples carrier samples, lsb bits used per targeted sample, and a
// stride between targeted samples.
func Capacity(numSamples, lsb, stride int) int {
	return lsb * (numSamples / stride)
}

// Embed overlays bits onto samples in traversal order: step by stride
// across samples, writing up to lsb bits (LSB first) into each targeted
// sample's low byte before moving to the next. If repeat is true, bits
// wraps and keeps writing until the full carrier capacity is used;
// otherwise len(bits) must not exceed the capacity.
func Embed(samples []byte, sampleWidth, lsbBits, stride int, bits []int, repeat bool) error {
	numSamples := len(samples) / sampleWidth
	capacity := Capacity(numSamples, lsbBits, stride)

	if !repeat && len(bits) > capacity {
		return models.NewError(models.KindCapacityExceeded, "bit stream longer than carrier capacity")
	}
	if len(bits) == 0 {
		return nil
	}

	total := len(bits)
	if repeat {
		total = capacity
	}

	for p := 0; p < total; p++ {
		bit := bits[p%len(bits)]
		sampleNum := p / lsbBits
		slot := p % lsbBits
		byteOffset := sampleNum * stride * sampleWidth
		mask := byte(1) << slot
		if bit == 1 {
			samples[byteOffset] |= mask
		} else {
			samples[byteOffset] &^= mask
		}
	}
	return nil
}

// Extract reads numBits bits from samples in the same traversal order
// Embed uses. It is non-destructive. Truncated is returned if the
// carrier cannot supply the requested number of bits.
func Extract(samples []byte, sampleWidth, lsbBits, stride, numBits int) ([]int, error) {
	numSamples := len(samples) / sampleWidth
	capacity := Capacity(numSamples, lsbBits, stride)

	if numBits > capacity {
		return nil, models.NewError(models.KindTruncated, "carrier cannot supply the requested number of bits")
	}

	bits := make([]int, numBits)
	for p := 0; p < numBits; p++ {
		sampleNum := p / lsbBits
		slot := p % lsbBits
		byteOffset := sampleNum * stride * sampleWidth
		bits[p] = int((samples[byteOffset] >> slot) & 1)
	}
	return bits, nil
}

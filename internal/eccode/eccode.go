// Package eccode dispatches the error-correction transform named by the
// frame header's ec_tag/ec_param pair to a concrete codec. Both
// directions are total functions: decode never raises, it pads short
// input and reports uncorrectable Hamming words only through the
// hamming package's advisory log line.
package eccode

import (
	"github.com/nerggg/wavsteg/internal/hamming"
	"github.com/nerggg/wavsteg/models"
)

// Tag selects the error-correction algorithm carried by a frame header.
type Tag byte

const (
	TagNone    Tag = 0
	TagHamming Tag = 1
)

// Coder is the uniform capability set the pipeline driver (C8) consumes:
// bytes in, bytes out, no error on decode.
type Coder interface {
	Encode(data []byte) []byte
	Decode(data []byte) []byte
}

type noneCoder struct{}

func (noneCoder) Encode(data []byte) []byte { return data }
func (noneCoder) Decode(data []byte) []byte { return data }

type hammingCoder struct{}

func (hammingCoder) Encode(data []byte) []byte { return hamming.EncodeStream(data) }
func (hammingCoder) Decode(data []byte) []byte { return hamming.DecodeStream(data) }

// Dispatch resolves tag/param to a Coder. Hamming only supports
// param==hamming.RedundantBits (4): the codec's bit-placement logic is
// hard-coded to the 12-bit layout, so any other redundant-bit count is
// undefined behavior per spec and rejected here as UnsupportedFormat.
func Dispatch(tag Tag, param byte) (Coder, error) {
	switch tag {
	case TagNone:
		return noneCoder{}, nil
	case TagHamming:
		if param != hamming.RedundantBits {
			return nil, models.NewError(models.KindUnsupportedFormat,
				"hamming redundant_bits must be 4")
		}
		return hammingCoder{}, nil
	default:
		return nil, models.NewError(models.KindUnsupportedFormat, "unknown error-correction tag")
	}
}

// Package pipeline composes the error-correction, cipher, frame and LSB
// layers into the two operations the rest of the system drives: embed
// and extract. It owns no state of its own beyond the options passed to
// each call.
package pipeline

import (
	"github.com/nerggg/wavsteg/internal/bitstream"
	"github.com/nerggg/wavsteg/internal/cipher"
	"github.com/nerggg/wavsteg/internal/eccode"
	"github.com/nerggg/wavsteg/internal/frame"
	"github.com/nerggg/wavsteg/internal/lsb"
)

// Options configures one embed or extract call. LSB and Stride must
// match between the embed call that produced a carrier and any extract
// call against it — the header does not carry them (spec §9).
type Options struct {
	LSB        int
	Stride     int
	RepeatData bool

	ECTag   eccode.Tag
	ECParam byte

	EncTag  cipher.Tag
	HashTag cipher.HashTag
	Creds   cipher.CredentialsSource
}

// Embed runs plaintext through the cipher and error-correction layers,
// prepends the frame header describing the result, and overlays the
// whole bit stream onto samples in place.
func Embed(samples []byte, sampleWidth int, plaintext []byte, opts Options) error {
	c, err := cipher.Dispatch(opts.EncTag, opts.HashTag, opts.Creds)
	if err != nil {
		return err
	}
	if err := c.Configure(false); err != nil {
		return err
	}

	ec, err := eccode.Dispatch(opts.ECTag, opts.ECParam)
	if err != nil {
		return err
	}

	ciphertext, err := c.Encrypt(plaintext)
	if err != nil {
		return err
	}
	coded := ec.Encode(ciphertext)

	header := frame.Header{
		PayloadLen: uint32(len(coded)),
		ECTag:      byte(opts.ECTag),
		ECParam:    opts.ECParam,
		EncTag:     byte(opts.EncTag),
		HashTag:    byte(opts.HashTag),
	}

	stream := append(header.Bytes(), coded...)
	bits := bitstream.BytesToBits(stream)

	return lsb.Embed(samples, sampleWidth, opts.LSB, opts.Stride, bits, opts.RepeatData)
}

// Extract reads the frame header and decoded payload back out of
// samples. It does not mutate samples.
func Extract(samples []byte, sampleWidth int, opts Options) ([]byte, error) {
	headerBits, err := lsb.Extract(samples, sampleWidth, opts.LSB, opts.Stride, frame.Size*8)
	if err != nil {
		return nil, err
	}
	header, err := frame.Parse(bitstream.BitsToBytes(headerBits))
	if err != nil {
		return nil, err
	}

	totalBits := (frame.Size + int(header.PayloadLen)) * 8
	allBits, err := lsb.Extract(samples, sampleWidth, opts.LSB, opts.Stride, totalBits)
	if err != nil {
		return nil, err
	}
	coded := bitstream.BitsToBytes(bitstream.Slice(allBits, frame.Size*8, int(header.PayloadLen)*8))

	ec, err := eccode.Dispatch(eccode.Tag(header.ECTag), header.ECParam)
	if err != nil {
		return nil, err
	}
	ciphertext := ec.Decode(coded)

	c, err := cipher.Dispatch(cipher.Tag(header.EncTag), cipher.HashTag(header.HashTag), opts.Creds)
	if err != nil {
		return nil, err
	}
	if err := c.Configure(true); err != nil {
		return nil, err
	}

	return c.Decrypt(ciphertext)
}

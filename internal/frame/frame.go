// Package frame implements the fixed 16-byte header that binds the
// embedded payload to the transform stack that produced it (error
// correction and cipher selection, plus the encoded payload length).
package frame

import (
	"bytes"
	"encoding/binary"

	"github.com/nerggg/wavsteg/models"
)

// Size is the header's wire length in bytes: 16 bytes = 128 bits.
const Size = 16

// Magic is the sentinel identifying a steg-encoded payload.
var Magic = [4]byte{'S', 'T', 'G', '1'}

// Header is the fixed-layout binary record embedded at the start of the
// LSB stream, ahead of the encoded payload it describes.
type Header struct {
	PayloadLen uint32
	ECTag      byte
	ECParam    byte
	EncTag     byte
	HashTag    byte
}

// Bytes serializes the header to its 16-byte wire form. reserved is
// always written zero.
func (h Header) Bytes() []byte {
	buf := make([]byte, Size)
	copy(buf[0:4], Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.PayloadLen)
	buf[8] = h.ECTag
	buf[9] = h.ECParam
	buf[10] = h.EncTag
	buf[11] = h.HashTag
	// buf[12:16] reserved, zero on write.
	return buf
}

// Parse reads the first Size bytes of data as a Header, validating the
// magic. reserved bytes are ignored on read, per spec.
func Parse(data []byte) (*Header, error) {
	if len(data) < Size {
		return nil, models.NewError(models.KindTruncated, "carrier too small to hold a frame header")
	}
	if !bytes.Equal(data[0:4], Magic[:]) {
		return nil, models.NewError(models.KindCorruptFrame, "frame magic mismatch")
	}
	return &Header{
		PayloadLen: binary.LittleEndian.Uint32(data[4:8]),
		ECTag:      data[8],
		ECParam:    data[9],
		EncTag:     data[10],
		HashTag:    data[11],
	}, nil
}

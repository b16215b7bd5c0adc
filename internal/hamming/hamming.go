// Package hamming implements the fixed Hamming(12,8) codec: one 12-bit
// codeword per input byte, single-bit error correction. This is the one
// piece of real bit-level algorithmic content in the codec pipeline.
package hamming

import (
	"log"

	"github.com/nerggg/wavsteg/internal/bitstream"
)

// RedundantBits is the only supported parity width. The bit-placement
// logic below is hard-coded to the resulting 12-bit layout; other values
// would not self-invert on decode (see spec design notes) and are
// rejected by the error-correction dispatcher before reaching here.
const RedundantBits = 4

const codewordBits = 8 + RedundantBits

var parityPositions = map[int]bool{1: true, 2: true, 4: true, 8: true}

// EncodeByte expands b into its 12-bit Hamming codeword, positions
// 1-indexed, parity bits at {1,2,4,8} set for even parity.
func EncodeByte(b byte) [codewordBits]int {
	var code [codewordBits]int

	data := bitstream.BytesToBits([]byte{b})
	di := 0
	for pos := 1; pos <= codewordBits; pos++ {
		if parityPositions[pos] {
			continue
		}
		code[pos-1] = data[di]
		di++
	}

	for k := 0; k < RedundantBits; k++ {
		p := 1 << k
		sum := 0
		for pos := 1; pos <= codewordBits; pos++ {
			if pos&p != 0 {
				sum += code[pos-1]
			}
		}
		if sum%2 != 0 {
			code[p-1] = 1
		}
	}

	return code
}

// DecodeByte recovers the data byte from a 12-bit codeword, correcting a
// single flipped bit if the syndrome names a valid position. syndrome==0
// means no detected error; syndrome>12 means an uncorrectable multi-bit
// error was detected (advisory only, per spec error policy).
func DecodeByte(code [codewordBits]int) (b byte, syndrome int, uncorrectable bool) {
	working := code

	for k := 0; k < RedundantBits; k++ {
		p := 1 << k
		sum := 0
		for pos := 1; pos <= codewordBits; pos++ {
			if pos&p != 0 {
				sum += working[pos-1]
			}
		}
		if sum%2 != 0 {
			syndrome |= p
		}
	}

	if syndrome != 0 {
		if syndrome <= codewordBits {
			working[syndrome-1] ^= 1
		} else {
			uncorrectable = true
			log.Printf("[WARN] hamming: uncorrectable word, syndrome=%d", syndrome)
		}
	}

	dataBits := make([]int, 0, 8)
	for pos := 1; pos <= codewordBits; pos++ {
		if parityPositions[pos] {
			continue
		}
		dataBits = append(dataBits, working[pos-1])
	}

	b = bitstream.BitsToBytes(dataBits)[0]
	return b, syndrome, uncorrectable
}

// EncodeStream maps a byte sequence of length N to the packed bytes of
// its N Hamming codewords (12*N bits, ceil(12*N/8) bytes).
func EncodeStream(data []byte) []byte {
	bits := make([]int, 0, len(data)*codewordBits)
	for _, b := range data {
		code := EncodeByte(b)
		bits = append(bits, code[:]...)
	}
	return bitstream.BitsToBytes(bits)
}

// DecodeStream is the inverse of EncodeStream. The codeword count is not
// guessed from content — an all-zero codeword is the valid encoding of
// input byte 0x00, so scanning for trailing zeros would silently drop
// real payload bytes. Instead N is recovered directly from len(data):
// EncodeStream(N bytes) always produces ceil(12*N/8) bytes, a strictly
// increasing function of N, so N = len(data)*8/12 inverts it exactly.
// Callers (e.g. the pipeline driver) pass a slice already bounded to
// exactly the encoded length, so no other disambiguation is needed.
func DecodeStream(data []byte) []byte {
	bits := bitstream.BytesToBits(data)
	for len(bits)%codewordBits != 0 {
		bits = append(bits, 0)
	}

	numChunks := len(data) * 8 / codewordBits

	out := make([]byte, 0, numChunks)
	for i := 0; i < numChunks; i++ {
		var code [codewordBits]int
		copy(code[:], bits[i*codewordBits:i*codewordBits+codewordBits])
		b, _, _ := DecodeByte(code)
		out = append(out, b)
	}
	return out
}

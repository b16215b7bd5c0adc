// Package wavfile parses and serializes canonical PCM WAVE files: a RIFF
// envelope carrying a "fmt " chunk, a "data" chunk holding the raw PCM
// sample bytes, and zero or more auxiliary chunks (LIST/INFO and similar)
// that are preserved verbatim and in their original order.
package wavfile

import (
	"bytes"
	"encoding/binary"

	"github.com/nerggg/wavsteg/models"
)

const (
	formatPCM = 1

	riffHeaderSize = 12 // "RIFF" + size(4) + "WAVE"
	chunkHeaderLen = 8  // id(4) + size(4)
)

var (
	riffID = [4]byte{'R', 'I', 'F', 'F'}
	waveID = [4]byte{'W', 'A', 'V', 'E'}
	fmtID  = [4]byte{'f', 'm', 't', ' '}
	dataID = [4]byte{'d', 'a', 't', 'a'}
)

// Format holds the subset of the "fmt " chunk this package understands.
// Only linear PCM is supported, per spec non-goal on non-PCM variants.
type Format struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// SampleWidth returns the byte width of a single linear PCM sample.
func (f Format) SampleWidth() int {
	return int(f.BitsPerSample) / 8
}

// chunk is a raw RIFF chunk as read from or destined for the container,
// kept around verbatim so auxiliary chunks round-trip byte-for-byte.
type chunk struct {
	id   [4]byte
	data []byte
}

// File is a parsed WAVE container: its audio format, its mutable sample
// buffer, and every chunk in the order it appeared on disk.
type File struct {
	Format Format
	Data   []byte

	chunks    []chunk
	fmtIndex  int
	dataIndex int
}

// Parse reads a RIFF/WAVE byte stream. It rejects anything that isn't a
// well-formed RIFF/WAVE container (NotAWav) and anything using a sample
// encoding or bit depth this package cannot carry (UnsupportedFormat).
func Parse(data []byte) (*File, error) {
	if len(data) < riffHeaderSize {
		return nil, models.NewError(models.KindNotAWav, "file too small to be a RIFF container")
	}
	if !bytes.Equal(data[0:4], riffID[:]) || !bytes.Equal(data[8:12], waveID[:]) {
		return nil, models.NewError(models.KindNotAWav, "missing RIFF/WAVE envelope")
	}

	f := &File{fmtIndex: -1, dataIndex: -1}

	pos := riffHeaderSize
	for pos+chunkHeaderLen <= len(data) {
		var id [4]byte
		copy(id[:], data[pos:pos+4])
		size := binary.LittleEndian.Uint32(data[pos+4 : pos+8])
		pos += chunkHeaderLen

		if pos+int(size) > len(data) {
			return nil, models.NewError(models.KindNotAWav, "chunk size runs past end of file")
		}
		body := make([]byte, size)
		copy(body, data[pos:pos+int(size)])
		pos += int(size)
		if size%2 != 0 && pos < len(data) {
			pos++ // chunks are word-aligned; skip the pad byte
		}

		if id == fmtID {
			f.fmtIndex = len(f.chunks)
		}
		if id == dataID {
			f.dataIndex = len(f.chunks)
		}
		f.chunks = append(f.chunks, chunk{id: id, data: body})
	}

	if f.fmtIndex == -1 {
		return nil, models.NewError(models.KindNotAWav, "missing fmt chunk")
	}
	if f.dataIndex == -1 {
		return nil, models.NewError(models.KindNotAWav, "missing data chunk")
	}

	if err := f.parseFormat(f.chunks[f.fmtIndex].data); err != nil {
		return nil, err
	}

	f.Data = make([]byte, len(f.chunks[f.dataIndex].data))
	copy(f.Data, f.chunks[f.dataIndex].data)

	return f, nil
}

func (f *File) parseFormat(body []byte) error {
	if len(body) < 16 {
		return models.NewError(models.KindNotAWav, "fmt chunk shorter than 16 bytes")
	}

	format := Format{
		AudioFormat:   binary.LittleEndian.Uint16(body[0:2]),
		NumChannels:   binary.LittleEndian.Uint16(body[2:4]),
		SampleRate:    binary.LittleEndian.Uint32(body[4:8]),
		ByteRate:      binary.LittleEndian.Uint32(body[8:12]),
		BlockAlign:    binary.LittleEndian.Uint16(body[12:14]),
		BitsPerSample: binary.LittleEndian.Uint16(body[14:16]),
	}

	if format.AudioFormat != formatPCM {
		return models.NewError(models.KindUnsupportedFormat, "only linear PCM WAVE files are supported")
	}
	switch format.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		return models.NewError(models.KindUnsupportedFormat, "unsupported sample width")
	}

	f.Format = format
	return nil
}

// NumSamples returns the number of per-channel sample frames multiplied
// by channel count — i.e. the count the LSB engine should traverse, each
// one SampleWidth() bytes wide.
func (f *File) NumSamples() int {
	width := f.Format.SampleWidth()
	if width == 0 {
		return 0
	}
	return len(f.Data) / width
}

// Marshal rebuilds the RIFF byte stream: every chunk is re-emitted in its
// original order, with the "data" chunk replaced by the current contents
// of f.Data and the RIFF/data size fields recomputed to match.
func (f *File) Marshal() []byte {
	buf := new(bytes.Buffer)
	buf.Write(riffID[:])
	binary.Write(buf, binary.LittleEndian, uint32(0)) // patched below
	buf.Write(waveID[:])

	for i, c := range f.chunks {
		body := c.data
		if i == f.dataIndex {
			body = f.Data
		}
		buf.Write(c.id[:])
		binary.Write(buf, binary.LittleEndian, uint32(len(body)))
		buf.Write(body)
		if len(body)%2 != 0 {
			buf.WriteByte(0)
		}
	}

	out := buf.Bytes()
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))
	return out
}

package models

// EmbedRequest carries the cover WAV and secret payload plus the full
// transform-selection surface the pipeline driver (C8) needs: lsb width,
// sample stride, error-correction and cipher tags, and the repeat-data
// flag.
type EmbedRequest struct {
	CoverWav   []byte
	Secret     []byte
	SecretName string

	LSB        int
	Stride     int
	RepeatData bool

	ECTag   string // "none" | "hamming"
	ECParam int    // Hamming redundant_bits, ignored for "none"

	EncTag   string // "none" | "symmetric"
	HashTag  string // "none" | "pbkdf2"
	StegoKey string
}

// EmbedResponse carries the stego WAV bytes plus the metrics the
// teacher's handlers surfaced as response headers (PSNR, timing, size).
type EmbedResponse struct {
	StegoWav        []byte
	PSNR            float64
	ProcessingTime  float64 // seconds
	SecretSizeBytes int
}

package models

// CapacityResult reports embedding capacity in bytes for a parsed WAV
// carrier at a given stride, across the lsb widths callers commonly pick
// from, alongside basic carrier info.
type CapacityResult struct {
	SampleCount   int `json:"sample_count"`
	SampleWidth   int `json:"sample_width"`
	Stride        int `json:"stride"`
	OneLSBBytes   int `json:"1_lsb_bytes"`
	TwoLSBBytes   int `json:"2_lsb_bytes"`
	ThreeLSBBytes int `json:"3_lsb_bytes"`
	FourLSBBytes  int `json:"4_lsb_bytes"`
}

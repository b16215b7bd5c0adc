package models

import (
	"errors"
)

// Kind names the §7 error taxonomy. The HTTP layer reports it verbatim
// in ErrorDetail.Details["code"], mirroring an exit-code-by-name CLI.
type Kind string

const (
	KindNotAWav           Kind = "NotAWav"
	KindUnsupportedFormat Kind = "UnsupportedFormat"
	KindCapacityExceeded  Kind = "CapacityExceeded"
	KindTruncated         Kind = "Truncated"
	KindCorruptFrame      Kind = "CorruptFrame"
	KindDecryptFailure    Kind = "DecryptFailure"
)

// Error is a classified failure from the codec pipeline: one of the
// Kind values above, propagated verbatim to the caller. Uncorrectable
// Hamming words are deliberately not represented here — per spec they
// are advisory only and never raised.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Predefined sentinel errors retained from the HTTP request-validation
// layer (distinct from the classified pipeline Error above).
var (
	ErrInvalidLSB      = errors.New("lsb value must be between 1 and 8")
	ErrInvalidStride   = errors.New("stride must be at least 1")
	ErrInvalidStegoKey = errors.New("stego key is required for the selected encryption type")
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

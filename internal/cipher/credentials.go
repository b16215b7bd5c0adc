package cipher

import (
	"os"

	"github.com/nerggg/wavsteg/models"
)

// EnvCredentialsSource reads the password from a named environment
// variable — the "test mode" collaborator spec §4.4 calls out as an
// alternative to an interactive credentials prompt.
type EnvCredentialsSource struct {
	EnvVar string
}

func (e EnvCredentialsSource) Password() ([]byte, error) {
	v := os.Getenv(e.EnvVar)
	if v == "" {
		return nil, models.ErrInvalidStegoKey
	}
	return []byte(v), nil
}

// StaticCredentialsSource returns a fixed password, used by tests and by
// callers (e.g. the HTTP layer) that already have the password in hand.
type StaticCredentialsSource struct {
	Pass []byte
}

func (s StaticCredentialsSource) Password() ([]byte, error) {
	if len(s.Pass) == 0 {
		return nil, models.ErrInvalidStegoKey
	}
	return s.Pass, nil
}

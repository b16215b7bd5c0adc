package service

import "github.com/nerggg/wavsteg/internal/cipher"

// cryptographyService implements CryptographyService.
type cryptographyService struct{}

// NewCryptographyService creates a new cryptography service instance.
func NewCryptographyService() CryptographyService {
	return &cryptographyService{}
}

// CredentialsFromKey wraps an HTTP-supplied stego key as a
// CredentialsSource. It never reads from the environment or a prompt —
// that path is EnvCredentialsSource, reserved for test mode.
func (c *cryptographyService) CredentialsFromKey(key string) cipher.CredentialsSource {
	return cipher.StaticCredentialsSource{Pass: []byte(key)}
}

package encryption

import (
	"errors"

	"golang.org/x/crypto/chacha20poly1305"
)

var ErrChaCha20KeySize = errors.New("xchacha20poly1305: key must be 32 bytes")

// ChaCha20Encryptor implements XChaCha20-Poly1305 with a random 24 byte nonce
type ChaCha20Encryptor struct{}

func NewChaCha20Encryptor() *ChaCha20Encryptor {
	return &ChaCha20Encryptor{}
}

func (c *ChaCha20Encryptor) Name() string {
	return "xchacha20-poly1305"
}

func (c *ChaCha20Encryptor) Encrypt(key, data, additionalData []byte) ([]byte, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrChaCha20KeySize
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return seal(aead, data, additionalData)
}

func (c *ChaCha20Encryptor) Decrypt(key, data, additionalData []byte) ([]byte, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrChaCha20KeySize
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return open(aead, data, additionalData)
}

// Ensure ChaCha20Encryptor implements the Cipher interface
var _ Cipher = (*ChaCha20Encryptor)(nil)

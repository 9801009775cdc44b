package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// Interface for decoupling envelope encryption and decryption, the additional data
// is authenticated but not encrypted, envelopes pass their header through it
type Cipher interface {
	Name() string
	Encrypt(key, data, additionalData []byte) ([]byte, error)
	Decrypt(key, encryptedData, additionalData []byte) ([]byte, error)
}

// ByName returns the named cipher
func ByName(name string) (Cipher, error) {
	switch name {
	case "aes-gcm":
		return NewAESEncryptor(), nil
	case "xchacha20-poly1305":
		return NewChaCha20Encryptor(), nil
	default:
		return nil, fmt.Errorf("unknown cipher: %s", name)
	}
}

// seal encrypts with a random nonce which is prepended to the ciphertext
func seal(aead cipher.AEAD, data, additionalData []byte) ([]byte, error) {
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(data)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, data, additionalData), nil
}

func open(aead cipher.AEAD, data, additionalData []byte) ([]byte, error) {
	nonceSize := aead.NonceSize()
	if len(data) < nonceSize+aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	return aead.Open(nil, nonce, ciphertext, additionalData)
}

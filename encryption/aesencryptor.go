package encryption

import (
	"crypto/aes"
	"crypto/cipher"
)

// AESEncryptor implements AES-GCM, the key length selects AES-128, AES-192 or AES-256
type AESEncryptor struct{}

func NewAESEncryptor() *AESEncryptor {
	return &AESEncryptor{}
}

func (e *AESEncryptor) Name() string {
	return "aes-gcm"
}

func (e *AESEncryptor) Encrypt(key, data, additionalData []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return seal(aead, data, additionalData)
}

func (e *AESEncryptor) Decrypt(key, data, additionalData []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return open(aead, data, additionalData)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Ensure AESEncryptor implements the Cipher interface
var _ Cipher = (*AESEncryptor)(nil)

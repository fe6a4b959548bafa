// Package secretbox seals small values with AES-256-GCM under the service
// data key. Collaborators that keep secrets at rest share one Box.
package secretbox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// KeySize is the required key length in bytes.
const KeySize = 32

var (
	// ErrInvalidKey is returned when the key is not KeySize bytes.
	ErrInvalidKey = errors.New("secretbox: key must be 32 bytes")
	// ErrMalformed is returned when a sealed value cannot be decoded or authenticated.
	ErrMalformed = errors.New("secretbox: malformed ciphertext")
)

// Box encrypts and decrypts values. It is safe for concurrent use.
type Box struct {
	aead cipher.AEAD
}

func New(key []byte) (*Box, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return &Box{aead: aead}, nil
}

// Encrypt returns base64(nonce || ciphertext). Every call draws a fresh nonce.
func (b *Box) Encrypt(plaintext []byte) (string, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	sealed := b.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawStdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt with the same key.
func (b *Box) Decrypt(sealed string) ([]byte, error) {
	payload, err := base64.RawStdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	nonceSize := b.aead.NonceSize()
	if len(payload) < nonceSize+b.aead.Overhead() {
		return nil, ErrMalformed
	}
	plaintext, err := b.aead.Open(nil, payload[:nonceSize], payload[nonceSize:], nil)
	if err != nil {
		return nil, ErrMalformed
	}
	return plaintext, nil
}

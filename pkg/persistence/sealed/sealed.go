// Package sealed provides AES-GCM encryption for session payloads at rest,
// with fallback keys for zero-downtime key rotation.
package sealed

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// Sealer encrypts and decrypts opaque payloads.
type Sealer struct {
	activeKey    []byte
	fallbackKeys [][]byte
}

// New creates a Sealer. The active key encrypts new payloads and must be
// 32 bytes (AES-256). Fallback keys are tried in order on decryption, so old
// sessions stay readable while a rotation is in flight.
func New(activeKey []byte, fallbackKeys ...[]byte) (*Sealer, error) {
	if len(activeKey) != 32 {
		return nil, fmt.Errorf("active key must be 32 bytes, got %d", len(activeKey))
	}
	for i, key := range fallbackKeys {
		if len(key) != 32 {
			return nil, fmt.Errorf("fallback key %d must be 32 bytes, got %d", i, len(key))
		}
	}
	return &Sealer{activeKey: activeKey, fallbackKeys: fallbackKeys}, nil
}

// Seal encrypts the payload with the active key. The nonce is prepended to
// the ciphertext.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(s.activeKey)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a sealed payload, trying the active key first and then each
// fallback key in order.
func (s *Sealer) Open(ciphertext []byte) ([]byte, error) {
	if plain, err := open(ciphertext, s.activeKey); err == nil {
		return plain, nil
	}
	for _, key := range s.fallbackKeys {
		if plain, err := open(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func open(ciphertext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}

package storage

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/zembrodt/showtunes-sub000/internal/shared"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	nonceSize = 24
	keySize   = 32
	hkdfInfo  = "showtunes secure storage v1"
)

// SealedStorage encrypts every value with nacl/secretbox before handing it to the wrapped backend.
//
// Stored values are base64(nonce || box).
type SealedStorage struct {
	inner SecureStorage
	key   [keySize]byte
}

// Sealed wraps inner with encryption keyed by secret.
func Sealed(inner SecureStorage, secret string) (*SealedStorage, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty storage secret", shared.ErrInvalidConfig)
	}

	s := &SealedStorage{inner: inner}
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, s.key[:]); err != nil {
		return nil, fmt.Errorf("deriving storage key: %w", err)
	}

	return s, nil
}

// Get decrypts the value for key.
func (s *SealedStorage) Get(key string) (string, error) {
	raw, err := s.inner.Get(key)
	if err != nil || raw == "" {
		return raw, err
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(data) < nonceSize {
		return "", fmt.Errorf("%w: %s", shared.ErrSealed, key)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], data[:nonceSize])

	plain, ok := secretbox.Open(nil, data[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", fmt.Errorf("%w: %s", shared.ErrSealed, key)
	}

	return string(plain), nil
}

// Set encrypts value with a fresh nonce and stores it.
func (s *SealedStorage) Set(key, value string) error {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return fmt.Errorf("generating nonce: %w", err)
	}

	box := secretbox.Seal(nonce[:], []byte(value), &nonce, &s.key)
	return s.inner.Set(key, base64.StdEncoding.EncodeToString(box))
}

// Remove deletes key from the wrapped backend.
func (s *SealedStorage) Remove(key string) error {
	return s.inner.Remove(key)
}

// Close closes the wrapped backend.
func (s *SealedStorage) Close() error {
	return s.inner.Close()
}

// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// crypto.go — AES-256-GCM sealing of decoded-level payloads before they are
// written to the shared Redis cache or the PostgreSQL archive.

package gdsave

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// KeySize is the required encryption key length in bytes.
const KeySize = 32

// Encryptor seals and opens payloads. The associated data binds a payload
// to the cache fingerprint or archive row it was written for.
type Encryptor interface {
	Encrypt(plaintext, associated []byte) ([]byte, error)
	Decrypt(ciphertext, associated []byte) ([]byte, error)
}

// AES256GCM implements AES-256-GCM authenticated encryption.
type AES256GCM struct {
	aead cipher.AEAD
}

// NewAES256GCM creates an encryptor from a 32-byte key.
func NewAES256GCM(key []byte) (*AES256GCM, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: encryption key must be exactly %d bytes (got %d)", ErrInvalidConfig, KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &AES256GCM{aead: aead}, nil
}

// Encrypt seals plaintext with a random nonce.
// Output: nonce (12 bytes) || ciphertext || tag.
func (e *AES256GCM) Encrypt(plaintext, associated []byte) ([]byte, error) {
	nonce := make([]byte, e.aead.NonceSize(), e.aead.NonceSize()+len(plaintext)+e.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return e.aead.Seal(nonce, nonce, plaintext, associated), nil
}

// Decrypt opens ciphertext produced by Encrypt with the same associated data.
func (e *AES256GCM) Decrypt(ciphertext, associated []byte) ([]byte, error) {
	n := e.aead.NonceSize()
	if len(ciphertext) < n+e.aead.Overhead() {
		return nil, fmt.Errorf("%w: sealed payload too short", ErrDecode)
	}
	plain, err := e.aead.Open(nil, ciphertext[:n], ciphertext[n:], associated)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return plain, nil
}

// ParseEncryptionKey decodes a 64-character hex key as written in config
// files. Surrounding whitespace is ignored.
func ParseEncryptionKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: encryption key: %w", ErrInvalidConfig, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: encryption key must be %d hex-encoded bytes (got %d)", ErrInvalidConfig, KeySize, len(key))
	}
	return key, nil
}

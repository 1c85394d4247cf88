// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package token

import (
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrUnsealFailed is returned when a sealed token cannot be decrypted,
// either because it was tampered with or the seal key changed. Callers
// should treat it as "token unavailable", not as a failed read.
var ErrUnsealFailed = errors.New("sealed token invalid")

// Codec generates public poll tokens, derives their storage lookup hash,
// and seals the plaintext for later organizer retrieval.
//
// The pepper and the seal key are independent secrets: the pepper keys the
// lookup hash, the seal key the reversible encryption. Leaking the stored
// hash reveals nothing about the token without the pepper.
type Codec struct {
	pepper []byte
	aead   cipher.AEAD
}

func NewCodec(pepper, sealKey string) (*Codec, error) {
	if pepper == "" {
		return nil, errors.New("token pepper required")
	}
	if sealKey == "" {
		return nil, errors.New("token seal key required")
	}

	key := sha256.Sum256([]byte(sealKey))
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to init seal cipher: %w", err)
	}

	return &Codec{pepper: []byte(pepper), aead: aead}, nil
}

// Generate creates a fresh 32-byte (256-bit) random public token,
// URL-safe base64 encoded without padding.
func (c *Codec) Generate() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate public token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Hash derives the deterministic lookup key for a token: HMAC-SHA256 under
// the pepper, hex encoded. Only this hash is stored, so a database read
// alone cannot reveal tokens.
func (c *Codec) Hash(token string) string {
	h := hmac.New(sha256.New, c.pepper)
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}

// Seal encrypts the plaintext token so the organizer can retrieve it later.
// The random nonce is prepended to the ciphertext.
func (c *Codec) Seal(token string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate seal nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(token), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Unseal recovers the plaintext token from Seal's output. Fails closed:
// any tampering or key mismatch yields ErrUnsealFailed.
func (c *Codec) Unseal(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrUnsealFailed
	}
	if len(raw) < c.aead.NonceSize() {
		return "", ErrUnsealFailed
	}
	nonce, ciphertext := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrUnsealFailed
	}
	return string(plain), nil
}

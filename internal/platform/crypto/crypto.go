// Package crypto implements the at-rest protection hook for card numbers.
// The card core never depends on the concrete scheme; stores consume the
// Cipher interface so the scheme can be swapped without touching card logic.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Cipher protects card numbers at rest. Encrypt/Decrypt guard
// confidentiality; Index produces a deterministic lookup key so uniqueness
// checks work without decrypting every row.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
	Index(plaintext string) string
}

// AESCipher is an AES-256-GCM Cipher with an HMAC-SHA256 equality index.
// Both keys are derived from one master key via HKDF so operators manage a
// single secret.
type AESCipher struct {
	aead    cipher.AEAD
	hmacKey []byte
}

// NewAES derives the encryption and index keys from masterKey. The master key
// must be at least 16 bytes.
func NewAES(masterKey []byte) (*AESCipher, error) {
	if len(masterKey) < 16 {
		return nil, fmt.Errorf("master key must be at least 16 bytes, got %d", len(masterKey))
	}

	encKey := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, masterKey, nil, []byte("card-number-enc")), encKey); err != nil {
		return nil, fmt.Errorf("derive encryption key: %w", err)
	}
	hmacKey := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, masterKey, nil, []byte("card-number-idx")), hmacKey); err != nil {
		return nil, fmt.Errorf("derive index key: %w", err)
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &AESCipher{aead: aead, hmacKey: hmacKey}, nil
}

func (c *AESCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("plaintext is empty")
	}
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(sealed), nil
}

func (c *AESCipher) Decrypt(ciphertext string) (string, error) {
	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(raw) < c.aead.NonceSize() {
		return "", fmt.Errorf("ciphertext too short: %d bytes", len(raw))
	}
	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("open ciphertext: %w", err)
	}
	return string(plain), nil
}

func (c *AESCipher) Index(plaintext string) string {
	mac := hmac.New(sha256.New, c.hmacKey)
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil))
}

// Plaintext is a Cipher that stores numbers as-is, for tests that need a
// cipher without key management. Production wiring always uses AESCipher.
type Plaintext struct{}

func (Plaintext) Encrypt(plaintext string) (string, error) { return plaintext, nil }

func (Plaintext) Decrypt(ciphertext string) (string, error) { return ciphertext, nil }

func (Plaintext) Index(plaintext string) string { return plaintext }

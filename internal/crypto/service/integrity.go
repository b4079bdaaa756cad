package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// SHA256Integrity fingerprints content as base64-encoded SHA-256.
type SHA256Integrity struct{}

// NewSHA256Integrity creates an integrity verifier.
func NewSHA256Integrity() *SHA256Integrity {
	return &SHA256Integrity{}
}

// Hash returns the standard base64 encoding of the SHA-256 digest of data.
func (SHA256Integrity) Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Verify reports whether data hashes to expected.
func (s SHA256Integrity) Verify(data []byte, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(s.Hash(data)), []byte(expected)) == 1
}

package service

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/examvault/internal/crypto/domain"
)

// PBKDF2 implements KDF with PBKDF2-HMAC-SHA256.
//
// The iteration count is fixed for the lifetime of the instance. Production code uses
// cryptoDomain.KDFIterations; changing it makes existing envelopes unreadable.
type PBKDF2 struct {
	iterations int
}

// NewPBKDF2 creates a key derivation function running the given number of rounds.
// A non-positive count falls back to cryptoDomain.KDFIterations.
func NewPBKDF2(iterations int) *PBKDF2 {
	if iterations <= 0 {
		iterations = cryptoDomain.KDFIterations
	}
	return &PBKDF2{iterations: iterations}
}

// Iterations returns the configured round count.
func (p *PBKDF2) Iterations() int {
	return p.iterations
}

// DeriveKey returns a 32-byte key for password and salt. The empty password is accepted.
func (p *PBKDF2) DeriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, p.iterations, cryptoDomain.KeySize, sha256.New)
}

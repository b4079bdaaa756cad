package app

import (
	cryptoDomain "github.com/allisson/examvault/internal/crypto/domain"
	cryptoService "github.com/allisson/examvault/internal/crypto/service"
)

// KDF returns the password key derivation function.
func (c *Container) KDF() *cryptoService.PBKDF2 {
	c.kdfInit.Do(func() {
		c.kdf = cryptoService.NewPBKDF2(cryptoDomain.KDFIterations)
	})
	return c.kdf
}

// EnvelopeCodec returns the password envelope codec.
func (c *Container) EnvelopeCodec() cryptoService.EnvelopeCodec {
	c.codecInit.Do(func() {
		c.codec = cryptoService.NewEnvelopeCodec(c.KDF())
	})
	return c.codec
}

// IntegrityVerifier returns the plaintext integrity verifier.
func (c *Container) IntegrityVerifier() cryptoService.IntegrityVerifier {
	c.integrityInit.Do(func() {
		c.integrity = cryptoService.NewSHA256Integrity()
	})
	return c.integrity
}

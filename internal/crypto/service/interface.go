// Package service implements password-based envelope encryption.
//
// Keys are derived with PBKDF2-HMAC-SHA256 and content is encrypted with AES-256-CBC
// over PKCS#7 padding. The resulting bytes follow the cryptoDomain.Envelope layout.
package service

// KDF derives a symmetric key from a password and salt.
type KDF interface {
	// DeriveKey returns a KeySize-byte key. The same inputs always yield the same key.
	DeriveKey(password string, salt []byte) []byte
}

// BlockCipher encrypts and decrypts block-aligned data under a fixed key and caller-supplied IV.
type BlockCipher interface {
	Encrypt(plaintext, iv []byte) ([]byte, error)
	Decrypt(ciphertext, iv []byte) ([]byte, error)
}

// EnvelopeCodec turns plaintext into a self-contained encrypted envelope and back.
type EnvelopeCodec interface {
	// Encrypt returns salt ‖ iv ‖ ciphertext using a fresh salt and IV.
	Encrypt(plaintext []byte, password string) ([]byte, error)

	// Decrypt recovers the plaintext. A wrong password and a corrupted envelope both
	// return cryptoDomain.ErrAuthenticationFailed.
	Decrypt(envelope []byte, password string) ([]byte, error)
}

// IntegrityVerifier produces and checks content fingerprints.
type IntegrityVerifier interface {
	Hash(data []byte) string
	Verify(data []byte, expected string) bool
}

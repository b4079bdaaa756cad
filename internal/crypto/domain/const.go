package domain

// Envelope layout and key derivation parameters.
//
// An envelope is salt(16) ‖ iv(16) ‖ ciphertext, where the ciphertext is AES-256-CBC over
// PKCS#7-padded plaintext. The layout is part of the on-disk format and must never change
// for files that already exist.
const (
	// SaltSize is the length of the random PBKDF2 salt stored at the start of every envelope.
	SaltSize = 16

	// IVSize is the length of the CBC initialization vector that follows the salt.
	IVSize = 16

	// HeaderSize is the combined salt and IV prefix length.
	HeaderSize = SaltSize + IVSize

	// BlockSize is the AES block size. Ciphertext length is always a multiple of it.
	BlockSize = 16

	// KeySize is the derived key length (AES-256).
	KeySize = 32

	// KDFIterations is the PBKDF2-HMAC-SHA256 round count.
	KDFIterations = 100_000
)

// EnvelopeSize returns the exact envelope length produced for a plaintext of n bytes.
// PKCS#7 always adds between 1 and BlockSize bytes, so an empty plaintext still
// yields one full block.
func EnvelopeSize(n int) int {
	return HeaderSize + BlockSize*(n/BlockSize+1)
}

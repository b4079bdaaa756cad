// Package domain defines the password-based encryption envelope and its errors.
package domain

import (
	"github.com/allisson/examvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors so the
// HTTP layer can map them to status codes without knowing about cryptography.
var (
	// ErrMalformedEnvelope indicates the envelope is shorter than the salt and IV
	// header or its ciphertext is not block aligned.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrMalformedEnvelope = errors.Wrap(errors.ErrInvalidInput, "malformed envelope")

	// ErrAuthenticationFailed indicates decryption produced invalid padding.
	//
	// A wrong password and a tampered or corrupted ciphertext both end here. The
	// two causes are never reported separately so a caller cannot use the error
	// as a padding oracle.
	//
	// HTTP Status: 401 Unauthorized
	ErrAuthenticationFailed = errors.Wrap(errors.ErrUnauthorized, "invalid password or corrupted file")

	// ErrIntegrityCheckFailed indicates the decrypted content does not match the
	// recorded content hash. It is the same reportable kind as ErrAuthenticationFailed.
	//
	// HTTP Status: 401 Unauthorized
	ErrIntegrityCheckFailed = errors.Wrap(ErrAuthenticationFailed, "integrity check failed")

	// ErrInvalidKeySize indicates a cipher was constructed with a key that is not KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")
)

package service

import (
	"crypto/rand"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/examvault/internal/crypto/domain"
)

// PasswordEnvelopeCodec implements EnvelopeCodec.
//
// Every Encrypt call draws a fresh salt and IV, so encrypting the same plaintext twice
// never produces the same envelope. The derived key is zeroed before each call returns.
type PasswordEnvelopeCodec struct {
	kdf  KDF
	rand io.Reader
}

// NewEnvelopeCodec creates a codec that derives keys with kdf and reads randomness from
// crypto/rand.
func NewEnvelopeCodec(kdf KDF) *PasswordEnvelopeCodec {
	return &PasswordEnvelopeCodec{kdf: kdf, rand: rand.Reader}
}

// Encrypt pads plaintext, encrypts it under a key derived from password and returns the
// serialized envelope. It only fails when the random source fails.
func (c *PasswordEnvelopeCodec) Encrypt(plaintext []byte, password string) ([]byte, error) {
	header := make([]byte, cryptoDomain.HeaderSize)
	if _, err := io.ReadFull(c.rand, header); err != nil {
		return nil, fmt.Errorf("failed to generate salt and iv: %w", err)
	}
	salt, iv := header[:cryptoDomain.SaltSize], header[cryptoDomain.SaltSize:]

	key := c.kdf.DeriveKey(password, salt)
	defer cryptoDomain.Zero(key)

	block, err := NewAESCBC(key)
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad(plaintext, cryptoDomain.BlockSize)
	defer cryptoDomain.Zero(padded)

	ciphertext, err := block.Encrypt(padded, iv)
	if err != nil {
		return nil, err
	}

	return cryptoDomain.Envelope{Salt: salt, IV: iv, Ciphertext: ciphertext}.Bytes(), nil
}

// Decrypt parses envelope, derives the key from password and strips the padding.
//
// Returns cryptoDomain.ErrMalformedEnvelope when the envelope has an impossible shape and
// cryptoDomain.ErrAuthenticationFailed when the padding is invalid.
func (c *PasswordEnvelopeCodec) Decrypt(envelope []byte, password string) ([]byte, error) {
	env, err := cryptoDomain.ParseEnvelope(envelope)
	if err != nil {
		return nil, err
	}

	key := c.kdf.DeriveKey(password, env.Salt)
	defer cryptoDomain.Zero(key)

	block, err := NewAESCBC(key)
	if err != nil {
		return nil, err
	}

	padded, err := block.Decrypt(env.Ciphertext, env.IV)
	if err != nil {
		return nil, err
	}

	plaintext, ok := pkcs7Unpad(padded, cryptoDomain.BlockSize)
	if !ok {
		cryptoDomain.Zero(padded)
		return nil, cryptoDomain.ErrAuthenticationFailed
	}
	return plaintext, nil
}

package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	cryptoDomain "github.com/allisson/examvault/internal/crypto/domain"
)

// AESCBCCipher implements BlockCipher with AES-256 in CBC mode.
//
// CBC provides confidentiality only. Callers are responsible for padding and for treating
// any padding failure after decryption as an authentication failure.
//
// Thread safety:
//
//	The cipher holds only the expanded key schedule and is safe for concurrent use.
//	A new CBC mode is created for every call.
//
// Example usage:
//
//	c, err := NewAESCBC(key)
//	if err != nil {
//	    return err
//	}
//	ciphertext, err := c.Encrypt(pkcs7Pad(plaintext, aes.BlockSize), iv)
type AESCBCCipher struct {
	block cipher.Block
}

// NewAESCBC creates an AES-256-CBC cipher.
//
// The key must be exactly 32 bytes. Any other size returns cryptoDomain.ErrInvalidKeySize.
func NewAESCBC(key []byte) (*AESCBCCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", cryptoDomain.ErrInvalidKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	return &AESCBCCipher{block: block}, nil
}

// Encrypt encrypts block-aligned plaintext under iv.
func (a *AESCBCCipher) Encrypt(plaintext, iv []byte) ([]byte, error) {
	if err := a.check(plaintext, iv); err != nil {
		return nil, err
	}
	out := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(a.block, iv).CryptBlocks(out, plaintext)
	return out, nil
}

// Decrypt decrypts block-aligned ciphertext under iv. The result still carries its padding.
func (a *AESCBCCipher) Decrypt(ciphertext, iv []byte) ([]byte, error) {
	if err := a.check(ciphertext, iv); err != nil {
		return nil, err
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(a.block, iv).CryptBlocks(out, ciphertext)
	return out, nil
}

func (a *AESCBCCipher) check(data, iv []byte) error {
	if len(iv) != aes.BlockSize {
		return fmt.Errorf("%w: iv must be %d bytes", cryptoDomain.ErrMalformedEnvelope, aes.BlockSize)
	}
	if len(data)%aes.BlockSize != 0 {
		return fmt.Errorf("%w: data is not block aligned", cryptoDomain.ErrMalformedEnvelope)
	}
	return nil
}

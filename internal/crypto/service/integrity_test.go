package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256Integrity(t *testing.T) {
	integrity := NewSHA256Integrity()

	t.Run("known digests", func(t *testing.T) {
		assert.Equal(t, "47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU=", integrity.Hash(nil))
		assert.Equal(t, "ungWv48Bz+pBQUDeXa4iI7ADYaOWF3qctBD/YfIAFa0=", integrity.Hash([]byte("abc")))
	})

	t.Run("verify", func(t *testing.T) {
		data := []byte("exam content")
		hash := integrity.Hash(data)

		assert.True(t, integrity.Verify(data, hash))
		assert.False(t, integrity.Verify([]byte("exam content!"), hash))
		assert.False(t, integrity.Verify(data, ""))
		assert.False(t, integrity.Verify(data, hash[:len(hash)-1]))
	})
}

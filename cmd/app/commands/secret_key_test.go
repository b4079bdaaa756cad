package commands

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy unavailable")
}

func TestRunCreateSecretKey(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunCreateSecretKey(rand.Reader, &out))

		match := regexp.MustCompile(`SECRET_KEY="([^"]+)"`).FindStringSubmatch(out.String())
		require.Len(t, match, 2)

		key, err := base64.StdEncoding.DecodeString(match[1])
		require.NoError(t, err)
		require.Len(t, key, secretKeySize)
	})

	t.Run("random-failure", func(t *testing.T) {
		err := RunCreateSecretKey(failingReader{}, &bytes.Buffer{})

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to generate secret key")
	})
}

package commands

import (
	"encoding/base64"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/examvault/internal/crypto/domain"
)

// secretKeySize is the number of random bytes in a generated SECRET_KEY.
const secretKeySize = 32

// RunCreateSecretKey prints a base64 encoded random value suitable for SECRET_KEY.
// Key material is zeroed from memory after encoding.
func RunCreateSecretKey(random io.Reader, writer io.Writer) error {
	key := make([]byte, secretKeySize)
	defer cryptoDomain.Zero(key)

	if _, err := io.ReadFull(random, key); err != nil {
		return fmt.Errorf("failed to generate secret key: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "# Copy this environment variable to your .env file or secrets manager")
	_, _ = fmt.Fprintf(writer, "SECRET_KEY=%q\n", base64.StdEncoding.EncodeToString(key))
	return nil
}

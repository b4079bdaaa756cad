package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	artifactDomain "github.com/allisson/examvault/internal/artifact/domain"
	cryptoDomain "github.com/allisson/examvault/internal/crypto/domain"
	cryptoService "github.com/allisson/examvault/internal/crypto/service"
)

// RunEncryptFile seals the file at inPath into an envelope written to outPath and prints
// the plaintext SHA-256 so a later decrypt can check it. The output is created with mode 0600.
func RunEncryptFile(
	codec cryptoService.EnvelopeCodec,
	integrity cryptoService.IntegrityVerifier,
	logger *slog.Logger,
	writer io.Writer,
	inPath, outPath, password string,
) error {
	if password == "" {
		return artifactDomain.ErrEmptyPassword
	}

	plaintext, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	defer cryptoDomain.Zero(plaintext)

	hash := integrity.Hash(plaintext)

	envelope, err := codec.Encrypt(plaintext, password)
	if err != nil {
		return fmt.Errorf("failed to encrypt file: %w", err)
	}

	if err := os.WriteFile(outPath, envelope, 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	logger.Info("file encrypted",
		slog.String("output", outPath),
		slog.Int("plaintext_bytes", len(plaintext)),
		slog.Int("envelope_bytes", len(envelope)),
	)

	_, _ = fmt.Fprintf(writer, "Encrypted %s -> %s\n", inPath, outPath)
	_, _ = fmt.Fprintf(writer, "SHA256=%q\n", hash)
	return nil
}

// RunDecryptFile opens the envelope at inPath and writes the plaintext to outPath.
// When expectedHash is set the plaintext must match it, otherwise nothing is written.
func RunDecryptFile(
	codec cryptoService.EnvelopeCodec,
	integrity cryptoService.IntegrityVerifier,
	logger *slog.Logger,
	writer io.Writer,
	inPath, outPath, password, expectedHash string,
) error {
	if password == "" {
		return artifactDomain.ErrEmptyPassword
	}

	envelope, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	plaintext, err := codec.Decrypt(envelope, password)
	if err != nil {
		return fmt.Errorf("failed to decrypt file: %w", err)
	}
	defer cryptoDomain.Zero(plaintext)

	if expectedHash != "" && !integrity.Verify(plaintext, expectedHash) {
		return cryptoDomain.ErrIntegrityCheckFailed
	}

	if err := os.WriteFile(outPath, plaintext, 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	logger.Info("file decrypted", slog.String("output", outPath), slog.Int("plaintext_bytes", len(plaintext)))

	_, _ = fmt.Fprintf(writer, "Decrypted %s -> %s\n", inPath, outPath)
	return nil
}

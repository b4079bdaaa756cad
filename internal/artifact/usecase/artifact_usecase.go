package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	artifactDomain "github.com/allisson/examvault/internal/artifact/domain"
	cryptoDomain "github.com/allisson/examvault/internal/crypto/domain"
	cryptoService "github.com/allisson/examvault/internal/crypto/service"
	"github.com/allisson/examvault/internal/storage"
	"github.com/allisson/examvault/internal/validation"
)

// Config holds artifact use case configuration.
type Config struct {
	// MaxUploadBytes bounds the plaintext size. Zero disables the check.
	MaxUploadBytes int64
	// PasswordPolicy is enforced on upload when non-nil.
	PasswordPolicy *validation.PasswordStrength
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// artifactUseCase implements the ArtifactUseCase interface.
type artifactUseCase struct {
	config    Config
	registry  Registry
	storage   storage.Storage
	codec     cryptoService.EnvelopeCodec
	integrity cryptoService.IntegrityVerifier
	logger    *slog.Logger
}

// Upload validates the input, encrypts the content and stores the envelope before the
// record is inserted. If the insert fails the envelope is removed again.
func (a *artifactUseCase) Upload(
	ctx context.Context,
	input artifactDomain.UploadInput,
) (*artifactDomain.Artifact, error) {
	if err := a.validateUpload(input); err != nil {
		return nil, err
	}

	now := a.config.Now()

	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		subject = artifactDomain.DefaultSubject
	}
	examDate := strings.TrimSpace(input.ExamDate)
	if examDate == "" {
		examDate = now.Format(validation.ExamDateLayout)
	}

	contentHash := a.integrity.Hash(input.Content)

	envelope, err := a.codec.Encrypt(input.Content, input.Password)
	if err != nil {
		return nil, err
	}

	name := storage.GenerateStorageName(now)
	location, err := a.storage.Write(ctx, name, envelope)
	if err != nil {
		return nil, err
	}

	artifact := &artifactDomain.Artifact{
		ID:               name,
		OriginalFilename: storage.SanitizeFilename(input.Filename, now),
		SecureFilename:   name,
		Subject:          subject,
		ExamDate:         examDate,
		UploadTime:       now.UTC(),
		SizeBytes:        int64(len(input.Content)),
		StoragePath:      location,
		ContentHash:      contentHash,
	}

	if err := a.registry.Insert(ctx, artifact); err != nil {
		if rmErr := a.storage.Remove(ctx, name); rmErr != nil {
			a.logger.Warn("failed to remove unregistered envelope",
				slog.String("file_id", name),
				slog.Any("error", rmErr),
			)
		}
		return nil, err
	}

	a.logger.Info("artifact uploaded",
		slog.String("file_id", artifact.ID),
		slog.String("subject", artifact.Subject),
		slog.Int64("size_bytes", artifact.SizeBytes),
	)

	return artifact, nil
}

func (a *artifactUseCase) validateUpload(input artifactDomain.UploadInput) error {
	if input.Filename == "" {
		return artifactDomain.ErrMissingFilename
	}
	if len(input.Content) == 0 {
		return artifactDomain.ErrEmptyContent
	}
	if input.Password == "" {
		return artifactDomain.ErrEmptyPassword
	}
	if !storage.ValidateExtension(input.Filename) {
		return fmt.Errorf("%w: only %s are allowed",
			artifactDomain.ErrDisallowedExtension, strings.Join(storage.AllowedExtensions(), ", "))
	}
	if a.config.MaxUploadBytes > 0 && int64(len(input.Content)) > a.config.MaxUploadBytes {
		return fmt.Errorf("%w: %s exceeds %s", artifactDomain.ErrFileTooLarge,
			storage.FormatSize(int64(len(input.Content))), storage.FormatSize(a.config.MaxUploadBytes))
	}
	if err := validation.ExamDate.Validate(strings.TrimSpace(input.ExamDate)); err != nil {
		return artifactDomain.ErrInvalidExamDate
	}
	if a.config.PasswordPolicy != nil {
		if err := a.config.PasswordPolicy.Validate(input.Password); err != nil {
			return fmt.Errorf("%w: %v", artifactDomain.ErrWeakPassword, err)
		}
	}
	return nil
}

// List returns every registered artifact in upload order.
func (a *artifactUseCase) List(ctx context.Context) ([]*artifactDomain.Artifact, error) {
	return a.registry.List(ctx)
}

// Verify reports Valid=false, without an error, when the password does not open the artifact.
func (a *artifactUseCase) Verify(
	ctx context.Context,
	id, password string,
) (*artifactDomain.VerifyResult, error) {
	artifact, plaintext, err := a.open(ctx, id, password)
	if errors.Is(err, cryptoDomain.ErrAuthenticationFailed) {
		return &artifactDomain.VerifyResult{Valid: false}, nil
	}
	if err != nil {
		return nil, err
	}
	cryptoDomain.Zero(plaintext)

	return &artifactDomain.VerifyResult{Valid: true, Artifact: artifact}, nil
}

// Download decrypts the artifact and returns its content with the original filename.
func (a *artifactUseCase) Download(
	ctx context.Context,
	id, password string,
) (*artifactDomain.DownloadResult, error) {
	artifact, plaintext, err := a.open(ctx, id, password)
	if err != nil {
		return nil, err
	}

	a.logger.Info("artifact downloaded", slog.String("file_id", artifact.ID))

	return &artifactDomain.DownloadResult{
		Content:          plaintext,
		OriginalFilename: artifact.OriginalFilename,
		MimeType:         storage.MimeType(artifact.OriginalFilename),
	}, nil
}

// open reads the envelope under the registry read lock and decrypts it outside the lock.
func (a *artifactUseCase) open(
	ctx context.Context,
	id, password string,
) (*artifactDomain.Artifact, []byte, error) {
	if password == "" {
		return nil, nil, artifactDomain.ErrEmptyPassword
	}

	var (
		artifact *artifactDomain.Artifact
		envelope []byte
	)
	err := a.registry.View(ctx, id, func(ctx context.Context, found *artifactDomain.Artifact) error {
		data, err := a.storage.Read(ctx, found.SecureFilename)
		if errors.Is(err, storage.ErrObjectNotFound) {
			return artifactDomain.ErrArtifactFileMissing
		}
		if err != nil {
			return err
		}
		artifact, envelope = found, data
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := a.codec.Decrypt(envelope, password)
	if errors.Is(err, cryptoDomain.ErrMalformedEnvelope) {
		// a stored envelope with an impossible shape is corrupted data
		return nil, nil, cryptoDomain.ErrAuthenticationFailed
	}
	if err != nil {
		return nil, nil, err
	}

	if artifact.ContentHash != "" && !a.integrity.Verify(plaintext, artifact.ContentHash) {
		cryptoDomain.Zero(plaintext)
		return nil, nil, cryptoDomain.ErrIntegrityCheckFailed
	}

	return artifact, plaintext, nil
}

// Delete unlinks the envelope and drops the record under the registry write lock. If the
// unlink fails the record is kept so the delete can be retried.
func (a *artifactUseCase) Delete(ctx context.Context, id string) error {
	err := a.registry.Remove(ctx, id, func(ctx context.Context, artifact *artifactDomain.Artifact) error {
		return a.storage.Remove(ctx, artifact.SecureFilename)
	})
	if err != nil {
		return err
	}

	a.logger.Info("artifact deleted", slog.String("file_id", id))
	return nil
}

// NewArtifactUseCase creates a new ArtifactUseCase.
func NewArtifactUseCase(
	config Config,
	registry Registry,
	store storage.Storage,
	codec cryptoService.EnvelopeCodec,
	integrity cryptoService.IntegrityVerifier,
	logger *slog.Logger,
) ArtifactUseCase {
	if config.Now == nil {
		config.Now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &artifactUseCase{
		config:    config,
		registry:  registry,
		storage:   store,
		codec:     codec,
		integrity: integrity,
		logger:    logger,
	}
}

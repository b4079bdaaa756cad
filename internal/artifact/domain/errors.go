// Package domain defines core domain models and errors for encrypted exam artifacts.
package domain

import (
	"github.com/allisson/examvault/internal/errors"
)

// Artifact-specific error definitions.
var (
	// ErrEmptyContent indicates an upload carried no bytes.
	ErrEmptyContent = errors.Wrap(errors.ErrInvalidInput, "file content is empty")

	// ErrEmptyPassword indicates an upload or retrieval carried no password.
	ErrEmptyPassword = errors.Wrap(errors.ErrInvalidInput, "password is required")

	// ErrMissingFilename indicates an upload carried no original filename.
	ErrMissingFilename = errors.Wrap(errors.ErrInvalidInput, "no file selected")

	// ErrDisallowedExtension indicates the original filename has an extension outside the allow-list.
	ErrDisallowedExtension = errors.Wrap(errors.ErrInvalidInput, "invalid file type")

	// ErrWeakPassword indicates the password failed the configured strength policy.
	ErrWeakPassword = errors.Wrap(errors.ErrInvalidInput, "password does not meet the strength policy")

	// ErrFileTooLarge indicates the content exceeds the configured upload limit.
	ErrFileTooLarge = errors.Wrap(errors.ErrPayloadTooLarge, "file exceeds the maximum upload size")

	// ErrArtifactNotFound indicates no artifact is registered under the requested id.
	ErrArtifactNotFound = errors.Wrap(errors.ErrNotFound, "file not found")

	// ErrArtifactFileMissing indicates the artifact is registered but its envelope is gone.
	ErrArtifactFileMissing = errors.Wrap(errors.ErrNotFound, "encrypted file not found on disk")
)

// ErrInvalidExamDate indicates the exam date is not a YYYY-MM-DD calendar date.
var ErrInvalidExamDate = errors.Wrap(errors.ErrInvalidInput, "exam date must use YYYY-MM-DD")

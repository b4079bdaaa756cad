// Package usecase defines the interfaces and implementations for the artifact lifecycle.
// Use cases orchestrate the registry, the envelope codec and the storage backend to move
// artifacts between the Nonexistent, Stored and Deleted states.
package usecase

import (
	"context"
	"time"

	artifactDomain "github.com/allisson/examvault/internal/artifact/domain"
)

// Registry defines the in-process index of stored artifacts.
type Registry interface {
	Insert(ctx context.Context, artifact *artifactDomain.Artifact) error
	Get(ctx context.Context, id string) (*artifactDomain.Artifact, error)
	List(ctx context.Context) ([]*artifactDomain.Artifact, error)
	Contains(ctx context.Context, id string) bool
	// View runs fn under the registry read lock. fn must not call back into the registry.
	View(ctx context.Context, id string, fn func(ctx context.Context, artifact *artifactDomain.Artifact) error) error
	// Remove runs fn under the registry write lock and drops the entry only if fn succeeds.
	Remove(ctx context.Context, id string, fn func(ctx context.Context, artifact *artifactDomain.Artifact) error) error
	// RemoveUnreferenced runs fn under the registry write lock only when id is not
	// registered, and reports whether fn ran and succeeded.
	RemoveUnreferenced(ctx context.Context, id string, fn func(ctx context.Context) error) (bool, error)
}

// ArtifactUseCase defines the business logic of the artifact lifecycle.
type ArtifactUseCase interface {
	// Upload validates, encrypts and stores content, then registers the artifact.
	Upload(ctx context.Context, input artifactDomain.UploadInput) (*artifactDomain.Artifact, error)
	List(ctx context.Context) ([]*artifactDomain.Artifact, error)
	// Verify reports whether password opens the artifact without returning its content.
	Verify(ctx context.Context, id, password string) (*artifactDomain.VerifyResult, error)
	// Download decrypts and returns the artifact content.
	//
	// Security Note: the returned Content is plaintext. Callers should zero it after use.
	Download(ctx context.Context, id, password string) (*artifactDomain.DownloadResult, error)
	// Delete removes the envelope and the record. A second Delete of the same id fails
	// with ErrArtifactNotFound.
	Delete(ctx context.Context, id string) error
}

// CleanupUseCase defines the orphaned envelope sweeper.
type CleanupUseCase interface {
	// Start runs Sweep on every tick until ctx is done.
	Start(ctx context.Context) error
	// Sweep removes envelopes older than maxAge that no registered artifact references.
	// With dryRun set it only reports them.
	Sweep(ctx context.Context, maxAge time.Duration, dryRun bool) (*artifactDomain.SweepResult, error)
}

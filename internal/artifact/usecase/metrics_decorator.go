package usecase

import (
	"context"
	"time"

	artifactDomain "github.com/allisson/examvault/internal/artifact/domain"
	"github.com/allisson/examvault/internal/metrics"
)

const metricsDomain = "artifacts"

// artifactUseCaseWithMetrics decorates ArtifactUseCase with metrics instrumentation.
type artifactUseCaseWithMetrics struct {
	next    ArtifactUseCase
	metrics metrics.BusinessMetrics
}

// NewArtifactUseCaseWithMetrics wraps an ArtifactUseCase with metrics recording.
func NewArtifactUseCaseWithMetrics(useCase ArtifactUseCase, m metrics.BusinessMetrics) ArtifactUseCase {
	return &artifactUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *artifactUseCaseWithMetrics) record(ctx context.Context, operation, status string, start time.Time) {
	a.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	a.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func statusOf(err error) string {
	if err != nil {
		return metrics.StatusError
	}
	return metrics.StatusSuccess
}

// Upload records metrics for artifact upload operations.
func (a *artifactUseCaseWithMetrics) Upload(
	ctx context.Context,
	input artifactDomain.UploadInput,
) (*artifactDomain.Artifact, error) {
	start := time.Now()
	artifact, err := a.next.Upload(ctx, input)
	a.record(ctx, "artifact_upload", statusOf(err), start)
	return artifact, err
}

// List records metrics for artifact list operations.
func (a *artifactUseCaseWithMetrics) List(ctx context.Context) ([]*artifactDomain.Artifact, error) {
	start := time.Now()
	artifacts, err := a.next.List(ctx)
	a.record(ctx, "artifact_list", statusOf(err), start)
	return artifacts, err
}

// Verify records metrics for artifact verification. A rejected password counts as denied.
func (a *artifactUseCaseWithMetrics) Verify(
	ctx context.Context,
	id, password string,
) (*artifactDomain.VerifyResult, error) {
	start := time.Now()
	result, err := a.next.Verify(ctx, id, password)

	status := statusOf(err)
	if err == nil && !result.Valid {
		status = metrics.StatusDenied
	}
	a.record(ctx, "artifact_verify", status, start)

	return result, err
}

// Download records metrics for artifact download operations.
func (a *artifactUseCaseWithMetrics) Download(
	ctx context.Context,
	id, password string,
) (*artifactDomain.DownloadResult, error) {
	start := time.Now()
	result, err := a.next.Download(ctx, id, password)
	a.record(ctx, "artifact_download", statusOf(err), start)
	return result, err
}

// Delete records metrics for artifact delete operations.
func (a *artifactUseCaseWithMetrics) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := a.next.Delete(ctx, id)
	a.record(ctx, "artifact_delete", statusOf(err), start)
	return err
}

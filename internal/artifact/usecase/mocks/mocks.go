// Package mocks provides mock implementations for testing artifact use cases and handlers.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	artifactDomain "github.com/allisson/examvault/internal/artifact/domain"
	"github.com/allisson/examvault/internal/storage"
)

// MockArtifactUseCase is a mock implementation of ArtifactUseCase for testing.
type MockArtifactUseCase struct {
	mock.Mock
}

// Upload mocks the Upload method of ArtifactUseCase.
func (m *MockArtifactUseCase) Upload(
	ctx context.Context,
	input artifactDomain.UploadInput,
) (*artifactDomain.Artifact, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*artifactDomain.Artifact), args.Error(1)
}

// List mocks the List method of ArtifactUseCase.
func (m *MockArtifactUseCase) List(ctx context.Context) ([]*artifactDomain.Artifact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*artifactDomain.Artifact), args.Error(1)
}

// Verify mocks the Verify method of ArtifactUseCase.
func (m *MockArtifactUseCase) Verify(
	ctx context.Context,
	id, password string,
) (*artifactDomain.VerifyResult, error) {
	args := m.Called(ctx, id, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*artifactDomain.VerifyResult), args.Error(1)
}

// Download mocks the Download method of ArtifactUseCase.
func (m *MockArtifactUseCase) Download(
	ctx context.Context,
	id, password string,
) (*artifactDomain.DownloadResult, error) {
	args := m.Called(ctx, id, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*artifactDomain.DownloadResult), args.Error(1)
}

// Delete mocks the Delete method of ArtifactUseCase.
func (m *MockArtifactUseCase) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCleanupUseCase is a mock implementation of CleanupUseCase for testing.
type MockCleanupUseCase struct {
	mock.Mock
}

// Start mocks the Start method of CleanupUseCase.
func (m *MockCleanupUseCase) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Sweep mocks the Sweep method of CleanupUseCase.
func (m *MockCleanupUseCase) Sweep(
	ctx context.Context,
	maxAge time.Duration,
	dryRun bool,
) (*artifactDomain.SweepResult, error) {
	args := m.Called(ctx, maxAge, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*artifactDomain.SweepResult), args.Error(1)
}

// MockStorage is a mock implementation of storage.Storage for testing.
type MockStorage struct {
	mock.Mock
}

// Write mocks the Write method of Storage.
func (m *MockStorage) Write(ctx context.Context, name string, data []byte) (string, error) {
	args := m.Called(ctx, name, data)
	return args.String(0), args.Error(1)
}

// Read mocks the Read method of Storage.
func (m *MockStorage) Read(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Remove mocks the Remove method of Storage.
func (m *MockStorage) Remove(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// List mocks the List method of Storage.
func (m *MockStorage) List(ctx context.Context) ([]storage.Object, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Object), args.Error(1)
}

// Close mocks the Close method of Storage.
func (m *MockStorage) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type MockBusinessMetrics struct {
	mock.Mock
}

// RecordOperation mocks the RecordOperation method of BusinessMetrics.
func (m *MockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

// RecordDuration mocks the RecordDuration method of BusinessMetrics.
func (m *MockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

package app

import (
	"fmt"

	artifactHTTP "github.com/allisson/examvault/internal/artifact/http"
	artifactRepository "github.com/allisson/examvault/internal/artifact/repository"
	artifactUseCase "github.com/allisson/examvault/internal/artifact/usecase"
	"github.com/allisson/examvault/internal/validation"
)

// ArtifactRegistry returns the in-memory artifact registry.
func (c *Container) ArtifactRegistry() *artifactRepository.MemoryRegistry {
	c.registryInit.Do(func() {
		c.registry = artifactRepository.NewMemoryRegistry()
	})
	return c.registry
}

// ArtifactUseCase returns the artifact use case.
func (c *Container) ArtifactUseCase() (artifactUseCase.ArtifactUseCase, error) {
	var err error
	c.artifactUseCaseInit.Do(func() {
		c.artifactUseCase, err = c.initArtifactUseCase()
		if err != nil {
			c.initErrors["artifactUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["artifactUseCase"]; exists {
		return nil, storedErr
	}
	return c.artifactUseCase, nil
}

// CleanupUseCase returns the orphan sweeper use case.
func (c *Container) CleanupUseCase() (artifactUseCase.CleanupUseCase, error) {
	var err error
	c.cleanupUseCaseInit.Do(func() {
		c.cleanupUseCase, err = c.initCleanupUseCase()
		if err != nil {
			c.initErrors["cleanupUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cleanupUseCase"]; exists {
		return nil, storedErr
	}
	return c.cleanupUseCase, nil
}

// ArtifactHandler returns the artifact HTTP handler.
func (c *Container) ArtifactHandler() (*artifactHTTP.ArtifactHandler, error) {
	var err error
	c.artifactHandlerInit.Do(func() {
		c.artifactHandler, err = c.initArtifactHandler()
		if err != nil {
			c.initErrors["artifactHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["artifactHandler"]; exists {
		return nil, storedErr
	}
	return c.artifactHandler, nil
}

// initArtifactUseCase creates the artifact use case wrapped with business metrics.
func (c *Container) initArtifactUseCase() (artifactUseCase.ArtifactUseCase, error) {
	store, err := c.Storage()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage for artifact use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for artifact use case: %w", err)
	}

	useCaseConfig := artifactUseCase.Config{
		MaxUploadBytes: c.config.MaxUploadBytes,
	}
	if c.config.PasswordPolicyEnabled {
		useCaseConfig.PasswordPolicy = &validation.DefaultPasswordPolicy
	}

	useCase := artifactUseCase.NewArtifactUseCase(
		useCaseConfig,
		c.ArtifactRegistry(),
		store,
		c.EnvelopeCodec(),
		c.IntegrityVerifier(),
		c.Logger(),
	)

	return artifactUseCase.NewArtifactUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initCleanupUseCase creates the orphan sweeper.
func (c *Container) initCleanupUseCase() (artifactUseCase.CleanupUseCase, error) {
	store, err := c.Storage()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage for cleanup use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for cleanup use case: %w", err)
	}

	cleanupConfig := artifactUseCase.CleanupConfig{
		Interval: c.config.CleanupInterval,
		MaxAge:   c.config.CleanupMaxAge,
		Metrics:  businessMetrics,
	}

	return artifactUseCase.NewCleanupUseCase(cleanupConfig, c.ArtifactRegistry(), store, c.Logger()), nil
}

// initArtifactHandler creates the artifact HTTP handler.
func (c *Container) initArtifactHandler() (*artifactHTTP.ArtifactHandler, error) {
	useCase, err := c.ArtifactUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact use case for artifact handler: %w", err)
	}

	return artifactHTTP.NewArtifactHandler(useCase, c.config.MaxUploadBytes, c.Logger()), nil
}

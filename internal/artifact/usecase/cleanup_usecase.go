package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	artifactDomain "github.com/allisson/examvault/internal/artifact/domain"
	"github.com/allisson/examvault/internal/metrics"
	"github.com/allisson/examvault/internal/storage"
)

// CleanupConfig holds orphan sweeper configuration.
type CleanupConfig struct {
	Interval time.Duration
	MaxAge   time.Duration
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
	// Metrics receives one "orphan_sweep" operation per Sweep. Defaults to a no-op.
	Metrics metrics.BusinessMetrics
}

const cleanupMetricsDomain = "cleanup"

var (
	// ErrNegativeMaxAge indicates a sweep was requested with a negative age threshold.
	ErrNegativeMaxAge = errors.New("max age must not be negative")

	// ErrMaxAgeTooShort indicates a removing sweep was requested with a threshold below
	// artifactDomain.MinOrphanAge.
	ErrMaxAgeTooShort = fmt.Errorf("max age must be at least %s", artifactDomain.MinOrphanAge)
)

// cleanupUseCase removes envelopes left behind by failed uploads and process restarts.
type cleanupUseCase struct {
	config   CleanupConfig
	registry Registry
	storage  storage.Storage
	logger   *slog.Logger
}

// Start runs a sweep every Interval until ctx is done. It returns ErrMaxAgeTooShort
// without sweeping when MaxAge is below artifactDomain.MinOrphanAge.
func (c *cleanupUseCase) Start(ctx context.Context) error {
	if c.config.MaxAge < artifactDomain.MinOrphanAge {
		return ErrMaxAgeTooShort
	}

	c.logger.Info("starting orphan sweeper",
		slog.Duration("interval", c.config.Interval),
		slog.Duration("max_age", c.config.MaxAge),
	)

	ticker := time.NewTicker(c.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("stopping orphan sweeper")
			return ctx.Err()
		case <-ticker.C:
			if _, err := c.Sweep(ctx, c.config.MaxAge, false); err != nil {
				c.logger.Error("failed to sweep orphaned envelopes", slog.Any("error", err))
			}
		}
	}
}

// Sweep lists storage and removes, or with dryRun only reports, every unreferenced envelope
// whose modification time is at least maxAge in the past. A removing sweep rejects a
// maxAge below artifactDomain.MinOrphanAge. Each removal happens under the registry write
// lock, so an envelope registered after the listing is kept.
func (c *cleanupUseCase) Sweep(
	ctx context.Context,
	maxAge time.Duration,
	dryRun bool,
) (result *artifactDomain.SweepResult, err error) {
	start := time.Now()
	defer func() {
		status := statusOf(err)
		c.config.Metrics.RecordOperation(ctx, cleanupMetricsDomain, "orphan_sweep", status)
		c.config.Metrics.RecordDuration(ctx, cleanupMetricsDomain, "orphan_sweep", time.Since(start), status)
	}()

	if maxAge < 0 {
		return nil, ErrNegativeMaxAge
	}
	if !dryRun && maxAge < artifactDomain.MinOrphanAge {
		return nil, ErrMaxAgeTooShort
	}

	objects, err := c.storage.List(ctx)
	if err != nil {
		return nil, err
	}

	now := c.config.Now()
	result = &artifactDomain.SweepResult{
		Scanned: len(objects),
		Orphans: []artifactDomain.Orphan{},
		DryRun:  dryRun,
	}

	for _, obj := range objects {
		if now.Sub(obj.ModTime) < maxAge {
			continue
		}
		orphan := artifactDomain.Orphan{Name: obj.Name, Size: obj.Size, ModTime: obj.ModTime}

		if dryRun {
			if !c.registry.Contains(ctx, obj.Name) {
				result.Orphans = append(result.Orphans, orphan)
			}
			continue
		}

		referenced := true
		removed, err := c.registry.RemoveUnreferenced(ctx, obj.Name, func(ctx context.Context) error {
			referenced = false
			return c.storage.Remove(ctx, obj.Name)
		})
		if referenced {
			continue
		}
		result.Orphans = append(result.Orphans, orphan)
		if err != nil {
			c.logger.Error("failed to remove orphaned envelope",
				slog.String("name", obj.Name),
				slog.Any("error", err),
			)
			continue
		}
		if removed {
			result.Removed++
			c.logger.Info("orphan removed", slog.String("name", obj.Name))
		}
	}

	return result, nil
}

// NewCleanupUseCase creates a new CleanupUseCase.
func NewCleanupUseCase(
	config CleanupConfig,
	registry Registry,
	store storage.Storage,
	logger *slog.Logger,
) CleanupUseCase {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.Metrics == nil {
		config.Metrics = metrics.NewNoOpBusinessMetrics()
	}
	if config.Interval <= 0 {
		config.Interval = 6 * time.Hour
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &cleanupUseCase{
		config:   config,
		registry: registry,
		storage:  store,
		logger:   logger,
	}
}

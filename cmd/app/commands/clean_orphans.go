package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	artifactDomain "github.com/allisson/examvault/internal/artifact/domain"
	artifactUseCase "github.com/allisson/examvault/internal/artifact/usecase"
	"github.com/allisson/examvault/internal/storage"
)

// ErrForceRequired is returned when a removing clean-orphans run lacks --force.
var ErrForceRequired = errors.New(
	"refusing to delete without --force: a fresh process has an empty registry, " +
		"so envelopes of a running server's artifacts would be deleted",
)

// RunCleanOrphans removes envelopes that no registry entry references and that are older
// than maxAgeHours. A fresh process has an empty registry, so every old envelope qualifies.
// Removing requires force; dry-run mode previews the removals. Supports text/JSON output.
func RunCleanOrphans(
	ctx context.Context,
	cleanupUseCase artifactUseCase.CleanupUseCase,
	logger *slog.Logger,
	writer io.Writer,
	maxAgeHours int,
	dryRun bool,
	force bool,
	format string,
) error {
	if maxAgeHours < 0 {
		return fmt.Errorf("max-age-hours must be a positive number, got: %d", maxAgeHours)
	}
	if !dryRun && time.Duration(maxAgeHours)*time.Hour < artifactDomain.MinOrphanAge {
		return fmt.Errorf("max-age-hours must be at least %d when deleting, got: %d",
			int(artifactDomain.MinOrphanAge/time.Hour), maxAgeHours)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
	if !dryRun && !force {
		return ErrForceRequired
	}

	logger.Info("cleaning orphaned envelopes",
		slog.Int("max_age_hours", maxAgeHours),
		slog.Bool("dry_run", dryRun),
		slog.Bool("force", force),
	)

	result, err := cleanupUseCase.Sweep(ctx, time.Duration(maxAgeHours)*time.Hour, dryRun)
	if err != nil {
		return fmt.Errorf("failed to clean orphaned envelopes: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, result); err != nil {
			return err
		}
	} else {
		outputCleanOrphansText(writer, result, maxAgeHours)
	}

	logger.Info("cleanup completed",
		slog.Int("scanned", result.Scanned),
		slog.Int("orphans", len(result.Orphans)),
		slog.Int("removed", result.Removed),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanOrphansText outputs the result in human-readable text format.
func outputCleanOrphansText(w io.Writer, result *artifactDomain.SweepResult, maxAgeHours int) {
	for _, orphan := range result.Orphans {
		_, _ = fmt.Fprintf(w, "  %s  %s  %s\n",
			orphan.Name, storage.FormatSize(orphan.Size), orphan.ModTime.UTC().Format(time.RFC3339))
	}

	if result.DryRun {
		_, _ = fmt.Fprintf(w, "Dry-run mode: Would delete %d orphaned envelope(s) older than %d hour(s)\n",
			len(result.Orphans), maxAgeHours)
		return
	}
	_, _ = fmt.Fprintf(w, "Successfully deleted %d orphaned envelope(s) older than %d hour(s)\n",
		result.Removed, maxAgeHours)
}

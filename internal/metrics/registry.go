package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// RegisterArtifactGauge registers an observable gauge reporting the number of artifacts
// currently held by the registry. count is called on every collection and must be safe
// for concurrent use.
func RegisterArtifactGauge(meterProvider metric.MeterProvider, namespace string, count func() int) error {
	meter := meterProvider.Meter(namespace)

	_, err := meter.Int64ObservableGauge(
		fmt.Sprintf("%s_artifacts", namespace),
		metric.WithDescription("Number of artifacts in the registry"),
		metric.WithUnit("{artifact}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(count()))
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create artifact gauge: %w", err)
	}

	return nil
}

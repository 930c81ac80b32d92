package check

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// metrics records run counters and durations. A nil *metrics is a no-op,
// which is the fallback when instrument creation fails.
type metrics struct {
	runs     metric.Int64Counter
	duration metric.Float64Histogram
}

func newMetrics(meter metric.Meter) *metrics {
	runs, err := meter.Int64Counter(
		"check.runs.total",
		metric.WithDescription("Total number of check outcomes, including cache hits"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil
	}

	duration, err := meter.Float64Histogram(
		"check.run.duration_ms",
		metric.WithDescription("Check run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil
	}

	return &metrics{runs: runs, duration: duration}
}

func (m *metrics) record(ctx context.Context, environment, name string, result Result) {
	if m == nil {
		return
	}

	opt := metric.WithAttributes(
		attribute.String("check.name", name),
		attribute.String("check.environment", environment),
		attribute.String("check.status", result.Status.String()),
		attribute.String("check.cached", strconv.FormatBool(result.Cached)),
	)

	m.runs.Add(ctx, 1, opt)
	if !result.Cached {
		m.duration.Record(ctx, float64(result.Duration.Milliseconds()), opt)
	}
}

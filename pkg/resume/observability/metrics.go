package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records checkpoint metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordSave records a save operation with its payload size, duration,
	// and error status.
	RecordSave(ctx context.Context, identity string, sizeBytes int64, duration time.Duration, err error)

	// RecordRestore records a restore attempt and its outcome
	// ("restored", "absent", "expired", "corrupt", "error").
	RecordRestore(ctx context.Context, identity string, outcome string)

	// RecordSyncSkip records a sync call suppressed by the rate limit.
	RecordSyncSkip(ctx context.Context, identity string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	saves      metric.Int64Counter
	saveErrors metric.Int64Counter
	saveBytes  metric.Int64Histogram
	saveMs     metric.Float64Histogram
	restores   metric.Int64Counter
	syncSkips  metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("resume")

	saves, err := meter.Int64Counter("resume.checkpoint.saves",
		metric.WithDescription("Number of checkpoint save operations"),
	)
	if err != nil {
		return nil, err
	}

	saveErrors, err := meter.Int64Counter("resume.checkpoint.save_errors",
		metric.WithDescription("Number of failed checkpoint saves"),
	)
	if err != nil {
		return nil, err
	}

	saveBytes, err := meter.Int64Histogram("resume.checkpoint.size_bytes",
		metric.WithDescription("Encoded checkpoint size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	saveMs, err := meter.Float64Histogram("resume.checkpoint.save_latency_ms",
		metric.WithDescription("Checkpoint save latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	restores, err := meter.Int64Counter("resume.checkpoint.restores",
		metric.WithDescription("Number of checkpoint restore attempts by outcome"),
	)
	if err != nil {
		return nil, err
	}

	syncSkips, err := meter.Int64Counter("resume.checkpoint.sync_skips",
		metric.WithDescription("Number of sync calls suppressed by the rate limit"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		saves:      saves,
		saveErrors: saveErrors,
		saveBytes:  saveBytes,
		saveMs:     saveMs,
		restores:   restores,
		syncSkips:  syncSkips,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordSave records a save operation.
func (m *otelMetrics) RecordSave(ctx context.Context, identity string, sizeBytes int64, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("identity", identity),
	}

	m.saves.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.saveMs.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.saveErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
		return
	}
	m.saveBytes.Record(ctx, sizeBytes, metric.WithAttributes(attrs...))
}

// RecordRestore records a restore attempt.
func (m *otelMetrics) RecordRestore(ctx context.Context, identity string, outcome string) {
	m.restores.Add(ctx, 1, metric.WithAttributes(
		attribute.String("identity", identity),
		attribute.String("outcome", outcome),
	))
}

// RecordSyncSkip records a throttled sync call.
func (m *otelMetrics) RecordSyncSkip(ctx context.Context, identity string) {
	m.syncSkips.Add(ctx, 1, metric.WithAttributes(
		attribute.String("identity", identity),
	))
}

// Package observability provides production-grade observability for
// checkpoint controllers: structured logging, metrics, and tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds checkpoint context to a logger.
// Returns a new logger with the identity field.
//
// Example:
//
//	enriched := EnrichLogger(logger, "mypkg.computePrimes")
//	enriched.Info("restoring") // includes identity
func EnrichLogger(logger *slog.Logger, identity string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("identity", identity))
}

// LogRestore logs a successful restore.
func LogRestore(logger *slog.Logger, identity string, varCount int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("checkpoint restored",
		slog.String("identity", identity),
		slog.Int("vars", varCount),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogRestoreSkipped logs a restore that found nothing to load.
// Reason is "absent" or "expired".
func LogRestoreSkipped(logger *slog.Logger, identity, reason string) {
	if logger == nil {
		return
	}
	logger.Debug("checkpoint restore skipped",
		slog.String("identity", identity),
		slog.String("reason", reason),
	)
}

// LogCorruptDiscarded logs a corrupt record that was purged so the
// computation can start fresh.
func LogCorruptDiscarded(logger *slog.Logger, identity string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("corrupt checkpoint discarded",
		slog.String("identity", identity),
		slog.String("error", err.Error()),
	)
}

// LogSave logs a successful save.
func LogSave(logger *slog.Logger, identity string, sizeBytes int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("checkpoint saved",
		slog.String("identity", identity),
		slog.Int("size_bytes", sizeBytes),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogSaveError logs a failed save. Persistence failures are surfaced
// to the caller as well; the log line is for operators.
func LogSaveError(logger *slog.Logger, identity string, err error) {
	if logger == nil {
		return
	}
	logger.Error("checkpoint save failed",
		slog.String("identity", identity),
		slog.String("error", err.Error()),
	)
}

// LogSyncSkipped logs a sync call inside the throttle window.
func LogSyncSkipped(logger *slog.Logger, identity string, sinceLastSave time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("checkpoint sync throttled",
		slog.String("identity", identity),
		slog.Float64("since_last_save_ms", float64(sinceLastSave.Milliseconds())),
	)
}

// LogExpired logs a stale record being purged.
func LogExpired(logger *slog.Logger, identity string, age time.Duration) {
	if logger == nil {
		return
	}
	logger.Info("expired checkpoint purged",
		slog.String("identity", identity),
		slog.Float64("age_hours", age.Hours()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}

package resume

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/resume/pkg/resume/config"
	"github.com/randalmurphal/resume/pkg/resume/observability"
	"github.com/randalmurphal/resume/pkg/resume/rng"
	"github.com/randalmurphal/resume/pkg/resume/store"
)

// ctrlConfig holds configuration for a controller under construction.
type ctrlConfig struct {
	cfg     config.Config
	store   store.Store
	rng     *rng.Source
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// defaultCtrlConfig returns the default construction configuration.
func defaultCtrlConfig() ctrlConfig {
	return ctrlConfig{
		cfg:     config.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures controller construction.
type Option func(*ctrlConfig)

// WithConfig replaces the whole settings struct, typically one loaded
// from a file. Individual options applied after it still override.
//
// Example:
//
//	cfg, _ := config.FromFile("resume.yaml")
//	chp, err := resume.New(vars, resume.WithConfig(cfg))
func WithConfig(cfg config.Config) Option {
	return func(c *ctrlConfig) {
		c.cfg = cfg
	}
}

// WithName sets an explicit checkpoint identity instead of deriving
// one from the call site. Required when the same function runs several
// logically distinct computations (recursion, concurrent invocations):
// the caller asserts uniqueness.
func WithName(name string) Option {
	return func(c *ctrlConfig) {
		c.cfg.Name = name
	}
}

// WithRatePeriod sets the minimum interval between Sync writes.
// Default: 30s
func WithRatePeriod(d time.Duration) Option {
	return func(c *ctrlConfig) {
		if d >= 0 {
			c.cfg.RatePeriod = d
		}
	}
}

// WithTTL sets the age beyond which a stored record is treated as
// absent and purged.
// Default: 24h
func WithTTL(d time.Duration) Option {
	return func(c *ctrlConfig) {
		if d > 0 {
			c.cfg.TTL = d
		}
	}
}

// WithRootDir overrides the checkpoint directory of the default file
// backend.
// Default: .checkpoints
func WithRootDir(dir string) Option {
	return func(c *ctrlConfig) {
		if dir != "" {
			c.cfg.Root = dir
			c.cfg.Backend = config.BackendFile
		}
	}
}

// WithStore injects a store directly, bypassing backend selection.
// The caller keeps ownership: Close does not close an injected store.
func WithStore(s store.Store) Option {
	return func(c *ctrlConfig) {
		c.store = s
	}
}

// WithRNG injects the deterministic random source the controller
// snapshots and restores. Without it a fresh entropy-seeded source is
// created.
func WithRNG(src *rng.Source) Option {
	return func(c *ctrlConfig) {
		c.rng = src
	}
}

// WithLogger enables structured logging of checkpoint operations.
// Without it the controller is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *ctrlConfig) {
		c.logger = logger
	}
}

// WithMetrics enables metrics recording.
//
// Example:
//
//	chp, err := resume.New(vars,
//	    resume.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *ctrlConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager enables tracing of save/restore operations.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(c *ctrlConfig) {
		if sm != nil {
			c.spans = sm
		}
	}
}

package config

import (
	"fmt"
	"time"
)

// Documented defaults for checkpoint controllers. Passed explicitly
// through Config at construction, never read from process globals.
const (
	// DefaultRatePeriod is the minimum interval between Sync writes.
	DefaultRatePeriod = 30 * time.Second

	// DefaultTTL is the age beyond which a stored record is stale.
	DefaultTTL = 24 * time.Hour

	// DefaultRoot is the default checkpoint directory.
	DefaultRoot = ".checkpoints"
)

// Backend names accepted in Config.Backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds the construction-time settings of a checkpoint
// controller.
type Config struct {
	// RatePeriod is the minimum interval between Sync writes.
	RatePeriod time.Duration

	// TTL is the age beyond which a stored record is ignored and purged.
	TTL time.Duration

	// Root is the checkpoint directory for the file backend.
	Root string

	// Name overrides the call-site-derived checkpoint identity.
	Name string

	// Backend selects the store: "file" (default), "sqlite", or "memory".
	Backend string

	// Path is the database file for the sqlite backend.
	Path string
}

// Default returns a Config with the documented defaults.
func Default() Config {
	return Config{
		RatePeriod: DefaultRatePeriod,
		TTL:        DefaultTTL,
		Root:       DefaultRoot,
		Backend:    BackendFile,
	}
}

// Validate checks the config for values no controller can run with.
func (c Config) Validate() error {
	if c.RatePeriod < 0 {
		return fmt.Errorf("rate period must not be negative: %s", c.RatePeriod)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("ttl must be positive: %s", c.TTL)
	}
	switch c.Backend {
	case BackendFile, BackendMemory:
	case BackendSQLite:
		if c.Path == "" {
			return fmt.Errorf("sqlite backend requires a path")
		}
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	return nil
}

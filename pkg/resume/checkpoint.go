package resume

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	mathrand "math/rand/v2"
	"time"

	"github.com/randalmurphal/resume/pkg/resume/codec"
	"github.com/randalmurphal/resume/pkg/resume/config"
	"github.com/randalmurphal/resume/pkg/resume/observability"
	"github.com/randalmurphal/resume/pkg/resume/rng"
	"github.com/randalmurphal/resume/pkg/resume/state"
	"github.com/randalmurphal/resume/pkg/resume/store"
)

// Checkpoint is the user-facing controller of a resumable computation.
// It owns the checkpoint identity and the rate-limit state, borrows
// the caller's variable scope during restore/save calls, and
// orchestrates the store and codec.
//
// A Checkpoint is bound to one scope and one identity for its whole
// life. It is not safe for concurrent use; the model is one
// single-threaded computation per checkpoint.
type Checkpoint struct {
	identity  string
	vars      *state.Vars
	rng       *rng.Source
	store     store.Store
	ownsStore bool

	ratePeriod time.Duration
	ttl        time.Duration
	lastSave   time.Time

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	// now is the wall clock, swappable in tests.
	now func() time.Time
}

// New creates a checkpoint controller bound to the given variable
// scope. The identity is taken from WithName if supplied, otherwise
// derived from the calling function's qualified name; construction
// fails with ErrIdentityUnresolved if neither yields a stable name.
//
// Example:
//
//	func fitModel() error {
//	    vars := state.NewVars()
//	    vars.SetInt("epoch", 0)
//	    chp, err := resume.New(vars) // identity "mypkg.fitModel"
//	    ...
//	}
func New(vars *state.Vars, opts ...Option) (*Checkpoint, error) {
	if vars == nil {
		return nil, ErrScopeUnavailable
	}

	cc := defaultCtrlConfig()
	for _, opt := range opts {
		opt(&cc)
	}
	if err := cc.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("checkpoint config: %w", err)
	}

	identity := cc.cfg.Name
	if identity == "" {
		derived, err := callerIdentity(2)
		if err != nil {
			return nil, err
		}
		identity = derived
	}

	st := cc.store
	ownsStore := false
	if st == nil {
		var err error
		st, err = openStore(cc.cfg)
		if err != nil {
			return nil, err
		}
		ownsStore = true
	}

	src := cc.rng
	if src == nil {
		src = rng.NewRandomized()
	}

	return &Checkpoint{
		identity:   identity,
		vars:       vars,
		rng:        src,
		store:      st,
		ownsStore:  ownsStore,
		ratePeriod: cc.cfg.RatePeriod,
		ttl:        cc.cfg.TTL,
		logger:     observability.EnrichLogger(cc.logger, identity),
		metrics:    cc.metrics,
		spans:      cc.spans,
		now:        time.Now,
	}, nil
}

// openStore creates the store selected by the config backend.
func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return store.NewSQLiteStore(cfg.Path)
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	default:
		return store.NewFileStore(cfg.Root), nil
	}
}

// Identity returns the checkpoint's resolved identity.
func (c *Checkpoint) Identity() string {
	return c.identity
}

// Rand returns the controller's deterministic random generator. Draw
// from it instead of the global rand so resumed runs produce the same
// sequence an uninterrupted run would.
func (c *Checkpoint) Rand() *mathrand.Rand {
	return c.rng.Rand()
}

// Restore loads the stored record, if any, into the bound scope and
// re-applies the persisted random generator state.
//
// A missing record is a valid initial state, not an error: Restore
// returns (false, nil) and leaves the scope untouched. A record older
// than the TTL is purged and treated the same way, as is a record the
// codec cannot read (logged, traded for forward progress). Storage
// failures are returned.
//
// With no arguments every persisted variable is injected; with names
// only the matching subset is, other bindings left as they are.
func (c *Checkpoint) Restore(ctx context.Context, names ...string) (restored bool, err error) {
	if ctx == nil {
		return false, ErrNilContext
	}
	if c.vars == nil {
		return false, ErrScopeUnavailable
	}

	ctx, span := c.spans.StartRestoreSpan(ctx, c.identity)
	defer func() { c.spans.EndSpanWithError(span, err) }()
	done := observability.TimedOperation()

	info, err := c.store.Stat(c.identity)
	if errors.Is(err, store.ErrNotFound) {
		observability.LogRestoreSkipped(c.logger, c.identity, "absent")
		c.metrics.RecordRestore(ctx, c.identity, "absent")
		return false, nil
	}
	if err != nil {
		c.metrics.RecordRestore(ctx, c.identity, "error")
		return false, err
	}

	if age := c.now().Sub(info.ModTime); age > c.ttl {
		if err := c.store.Delete(c.identity); err != nil {
			c.metrics.RecordRestore(ctx, c.identity, "error")
			return false, err
		}
		observability.LogExpired(c.logger, c.identity, age)
		c.metrics.RecordRestore(ctx, c.identity, "expired")
		return false, nil
	}

	data, err := c.store.Load(c.identity)
	if errors.Is(err, store.ErrNotFound) {
		observability.LogRestoreSkipped(c.logger, c.identity, "absent")
		c.metrics.RecordRestore(ctx, c.identity, "absent")
		return false, nil
	}
	if err != nil {
		c.metrics.RecordRestore(ctx, c.identity, "error")
		return false, err
	}

	rec, err := codec.Decode(data)
	if err != nil {
		return false, c.discardCorrupt(ctx, err)
	}

	// RNG first: a bad state blob means the whole record is suspect,
	// and the scope must stay untouched in that case.
	if len(rec.RNGState) > 0 {
		if err := c.rng.SetState(rec.RNGState); err != nil {
			return false, c.discardCorrupt(ctx, err)
		}
	}

	c.vars.Inject(rec.Vars, names...)

	observability.LogRestore(c.logger, c.identity, len(rec.Vars), done())
	c.metrics.RecordRestore(ctx, c.identity, "restored")
	return true, nil
}

// discardCorrupt purges an unreadable record so the next run starts
// fresh. The purge is best-effort; restore still reports a clean
// initial state.
func (c *Checkpoint) discardCorrupt(ctx context.Context, cause error) error {
	_ = c.store.Delete(c.identity)
	observability.LogCorruptDiscarded(c.logger, c.identity, cause)
	c.metrics.RecordRestore(ctx, c.identity, "corrupt")
	return nil
}

// Save unconditionally persists the current scope and random generator
// state, overwriting any previous record wholesale. Storage failures
// are returned: a silent persistence failure would silently break the
// resumption guarantee.
//
// With no arguments every binding is captured; with names only the
// matching subset is.
func (c *Checkpoint) Save(ctx context.Context, names ...string) (err error) {
	if ctx == nil {
		return ErrNilContext
	}
	if c.vars == nil {
		return ErrScopeUnavailable
	}

	ctx, span := c.spans.StartSaveSpan(ctx, c.identity)
	defer func() { c.spans.EndSpanWithError(span, err) }()
	done := observability.TimedOperation()
	start := c.now()

	rngState, err := c.rng.State()
	if err != nil {
		return err
	}

	rec := codec.NewRecord(c.identity, c.vars.Capture(names...), rngState)
	data, err := codec.Encode(rec)
	if err != nil {
		return err
	}

	if err := c.store.Save(c.identity, data); err != nil {
		observability.LogSaveError(c.logger, c.identity, err)
		c.metrics.RecordSave(ctx, c.identity, 0, c.now().Sub(start), err)
		return err
	}

	c.lastSave = c.now()
	observability.LogSave(c.logger, c.identity, len(data), done())
	c.metrics.RecordSave(ctx, c.identity, int64(len(data)), c.now().Sub(start), nil)
	return nil
}

// Sync persists like Save, but only if at least the rate period has
// elapsed since the last successful save; otherwise it is a no-op.
// This bounds I/O when called on every iteration of a hot loop. The
// returned bool reports whether a write happened.
func (c *Checkpoint) Sync(ctx context.Context, names ...string) (bool, error) {
	if ctx == nil {
		return false, ErrNilContext
	}

	if !c.lastSave.IsZero() {
		if since := c.now().Sub(c.lastSave); since < c.ratePeriod {
			observability.LogSyncSkipped(c.logger, c.identity, since)
			c.metrics.RecordSyncSkip(ctx, c.identity)
			return false, nil
		}
	}

	if err := c.Save(ctx, names...); err != nil {
		return false, err
	}
	return true, nil
}

// Purge deletes the stored record, if any. The in-memory scope is
// untouched.
func (c *Checkpoint) Purge() error {
	return c.store.Delete(c.identity)
}

// Close releases the controller's store if the controller opened it.
// Stores injected with WithStore stay open; their owner closes them.
func (c *Checkpoint) Close() error {
	if !c.ownsStore {
		return nil
	}
	return c.store.Close()
}

package resume

import "errors"

// Sentinel errors for controller construction and use.
var (
	// ErrIdentityUnresolved indicates no checkpoint identity could be
	// derived from the call site. Pass WithName to supply one.
	ErrIdentityUnresolved = errors.New("checkpoint identity could not be resolved")

	// ErrScopeUnavailable indicates the controller has no bound
	// variable scope to capture from or inject into.
	ErrScopeUnavailable = errors.New("variable scope not bound")

	// ErrNilContext indicates an operation was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")
)

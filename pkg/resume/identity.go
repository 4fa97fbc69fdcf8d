package resume

import (
	"fmt"
	"runtime"
	"strings"
)

// callerIdentity derives a checkpoint identity from the call stack:
// the fully qualified name (import path + function) of the frame skip
// levels above this function. Derivation happens once, at controller
// construction; the same function constructing the same controller in
// a later process yields the same identity.
//
// Package init functions are rejected: an identity minted during
// package initialization is shared by everything the init touches,
// so resumption would mix unrelated computations. Callers in that
// position must pass an explicit name.
func callerIdentity(skip int) (string, error) {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "", ErrIdentityUnresolved
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "", ErrIdentityUnresolved
	}

	name := fn.Name()
	if name == "" {
		return "", ErrIdentityUnresolved
	}
	if isInitFunc(name) {
		return "", fmt.Errorf("%w: called from package init %s", ErrIdentityUnresolved, name)
	}
	return name, nil
}

// isInitFunc reports whether a runtime function name belongs to a
// package init ("pkg.init", "pkg.init.0", or closures inside them).
func isInitFunc(name string) bool {
	base := name
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	dot := strings.Index(base, ".")
	if dot < 0 {
		return false
	}
	rest := base[dot+1:]
	return rest == "init" || strings.HasPrefix(rest, "init.")
}

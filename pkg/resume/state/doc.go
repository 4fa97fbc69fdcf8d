/*
Package state provides the variable scope a checkpoint operates on.

# Overview

A resumable computation keeps its working variables in a Vars scope: a
string-keyed mapping of tagged-union Value entries supporting scalars,
strings, numeric arrays, and nested mappings. The caller constructs
the scope explicitly, binds it to a checkpoint controller, and keeps
working with the bindings between restore/save calls. The controller
borrows the scope only for the duration of a capture or inject.

# Basic Usage

	vars := state.NewVars()
	vars.SetInt("i", 2)
	vars.SetInts("primes", []int64{2})

	// ... after restore the bindings may have been overwritten from disk
	i := vars.Int("i", 0)
	primes := vars.Ints("primes", nil)

# Value Kinds

Value carries an explicit kind tag, preserved through JSON encoding,
so a round-tripped int64 comes back as an int64 and not a float64.
Supported kinds: nil, bool, int, float, string, ints, floats, strings,
and map (nested mappings of Value).

# Thread Safety

Vars is not safe for concurrent use. The checkpoint model is
single-threaded: exactly one computation owns a scope at a time.
*/
package state

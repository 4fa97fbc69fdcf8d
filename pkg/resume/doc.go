/*
Package resume lets a long-running computation persist its working
variables and random generator state to disk and continue from exactly
that point after an interruption.

# Overview

The integration is designed to be light:

 1. put the computation's working variables in a state.Vars scope
 2. create a Checkpoint at the top of the function
 3. call Restore before the main loop
 4. run computation cycles against the scope
 5. call Sync (throttled) or Save (unconditional) as convenient

If the process is interrupted, the next execution constructs the same
checkpoint (the identity is derived from the enclosing function's
qualified name), Restore loads the persisted bindings back into the
scope, and the loop continues from the last saved state. Drawing
randomness from the checkpoint's Rand makes the resumed run
bit-for-bit identical to an uninterrupted one.

# Basic Usage

	func computePrimes(n int) ([]int64, error) {
	    vars := state.NewVars()
	    vars.SetInt("candidate", 2)
	    vars.SetInts("primes", []int64{2})

	    chp, err := resume.New(vars)
	    if err != nil {
	        return nil, err
	    }
	    defer chp.Close()

	    ctx := context.Background()
	    if _, err := chp.Restore(ctx); err != nil {
	        return nil, err
	    }

	    // ... extend vars in a loop, calling chp.Sync(ctx) each pass ...

	    if err := chp.Save(ctx); err != nil {
	        return nil, err
	    }
	    return vars.Ints("primes", nil), nil
	}

# Identity

Without WithName the checkpoint is keyed by the constructing
function's fully qualified name, so the same code resumes its own
state across process restarts without naming anything. When one
function runs several logically distinct computations, such as
recursion or concurrent invocations, pass WithName; the resolver never
guesses a disambiguation.

# Persistence

Records are gzip-compressed JSON blobs written atomically (temp file +
rename) to one file per identity under a hidden directory, 24h TTL and
30s sync throttle by default. SQLite and in-memory backends are
available through config or WithStore.

# Failure Policy

A missing or expired record is a valid initial state: Restore reports
it silently and leaves the scope untouched. An unreadable record is
discarded with a warning, trading the lost checkpoint for forward
progress. Storage failures on Save and Sync always surface to the
caller, and nothing in the package retries.
*/
package resume

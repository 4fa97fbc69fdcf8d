// Package rng provides a deterministic random source whose state can
// be snapshotted and restored, so a resumed computation draws the same
// sequence an uninterrupted run would have drawn.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mathrand "math/rand/v2"
)

// Source is a seekable random source backed by a PCG generator. Its
// full state fits in a small opaque blob, captured with State and
// re-applied with SetState.
//
// Source is not safe for concurrent use.
type Source struct {
	pcg  *mathrand.PCG
	rand *mathrand.Rand
}

// New creates a source seeded with the given pair.
func New(seed1, seed2 uint64) *Source {
	pcg := mathrand.NewPCG(seed1, seed2)
	return &Source{pcg: pcg, rand: mathrand.New(pcg)}
}

// NewRandomized creates a source seeded from the system entropy pool.
func NewRandomized() *Source {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Entropy read failure is effectively impossible on supported
		// platforms; fall back to a fixed seed rather than panic.
		return New(1, 2)
	}
	return New(binary.LittleEndian.Uint64(buf[:8]), binary.LittleEndian.Uint64(buf[8:]))
}

// State returns the generator state as an opaque blob.
func (s *Source) State() ([]byte, error) {
	data, err := s.pcg.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("snapshot rng state: %w", err)
	}
	return data, nil
}

// SetState re-applies a blob previously returned by State. After a
// successful call the next draws are identical to the draws that would
// have followed the snapshot.
func (s *Source) SetState(data []byte) error {
	if err := s.pcg.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("restore rng state: %w", err)
	}
	return nil
}

// Rand returns the *rand.Rand view of the source for the full
// math/rand/v2 API.
func (s *Source) Rand() *mathrand.Rand {
	return s.rand
}

// Uint64 returns a random 64-bit value.
func (s *Source) Uint64() uint64 { return s.rand.Uint64() }

// IntN returns a random int in [0, n).
func (s *Source) IntN(n int) int { return s.rand.IntN(n) }

// Float64 returns a random float in [0, 1).
func (s *Source) Float64() float64 { return s.rand.Float64() }

// Perm returns a random permutation of [0, n).
func (s *Source) Perm(n int) []int { return s.rand.Perm(n) }

// Shuffle pseudo-randomizes the order of n elements.
func (s *Source) Shuffle(n int, swap func(i, j int)) { s.rand.Shuffle(n, swap) }

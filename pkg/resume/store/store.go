// Package store provides persistent storage backends for checkpoint
// records.
package store

import (
	"errors"
	"fmt"
	"time"
)

// Store persists encoded checkpoint records keyed by identity.
// Implementations must be safe for concurrent use within a process;
// no cross-process coordination is provided.
type Store interface {
	// Save stores a record for an identity, overwriting any previous
	// record. The write is atomic: a crash mid-save never leaves a
	// partial record visible to Load.
	Save(identity string, data []byte) error

	// Load retrieves a record.
	// Returns ErrNotFound if no record exists for the identity.
	Load(identity string) ([]byte, error)

	// Stat returns record metadata without loading the payload.
	// Returns ErrNotFound if no record exists for the identity.
	Stat(identity string) (Info, error)

	// Delete removes a record.
	// Returns nil if the record doesn't exist.
	Delete(identity string) error

	// List returns metadata for all stored records.
	// Returns empty slice (not error) if the store is empty.
	List() ([]Info, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides record metadata without loading the payload.
type Info struct {
	Identity string
	ModTime  time.Time
	Size     int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a record doesn't exist.
	ErrNotFound = errors.New("checkpoint record not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("checkpoint store closed")
)

// StorageError wraps I/O failures from store backends.
type StorageError struct {
	// Op is the operation that failed ("save", "load", "stat", "delete", "list").
	Op string
	// Identity is the record the operation targeted, if any.
	Identity string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Identity != "" {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.Identity, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Exists reports whether a record is present for the identity.
func Exists(s Store, identity string) (bool, error) {
	_, err := s.Stat(identity)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Expired reports whether the record for identity is older than ttl.
// An absent record counts as expired.
func Expired(s Store, identity string, ttl time.Duration) (bool, error) {
	info, err := s.Stat(identity)
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return time.Since(info.ModTime) > ttl, nil
}

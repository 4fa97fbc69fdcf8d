// Package codec serializes checkpoint records to compressed blobs and
// back. The wire form is gzip-compressed JSON with an explicit format
// version; anything the decoder cannot read cleanly is reported as a
// *codec.Error so callers can treat the record as corrupt.
package codec

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/randalmurphal/resume/pkg/resume/state"
)

// Version is the current record format version.
// Increment when making breaking changes to record structure.
const Version = 1

// Record is the persisted unit of a checkpoint: the captured variable
// mapping, the random generator snapshot, and metadata.
type Record struct {
	Version  int                    `json:"version"`
	Identity string                 `json:"identity"`
	SavedAt  time.Time              `json:"saved_at"`
	Vars     map[string]state.Value `json:"vars"`
	RNGState []byte                 `json:"rng_state,omitempty"`
}

// NewRecord creates a record for the given identity with the current
// timestamp.
func NewRecord(identity string, vars map[string]state.Value, rngState []byte) *Record {
	return &Record{
		Version:  Version,
		Identity: identity,
		SavedAt:  time.Now().UTC(),
		Vars:     vars,
		RNGState: rngState,
	}
}

// Error reports a failed encode or decode.
type Error struct {
	// Op is the operation that failed ("encode", "decode").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("codec %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Encode serializes a record to a compressed blob.
func Encode(r *Record) ([]byte, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, &Error{Op: "encode", Err: err}
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, &Error{Op: "encode", Err: err}
	}
	if err := zw.Close(); err != nil {
		return nil, &Error{Op: "encode", Err: err}
	}
	return buf.Bytes(), nil
}

// Decode deserializes a compressed blob into a record. A version
// mismatch is a decode error: the caller cannot assume anything about
// the payload of a record written by a different format.
func Decode(data []byte) (*Record, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Op: "decode", Err: err}
	}
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, &Error{Op: "decode", Err: err}
	}
	if err := zr.Close(); err != nil {
		return nil, &Error{Op: "decode", Err: err}
	}

	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, &Error{Op: "decode", Err: err}
	}
	if r.Version != Version {
		return nil, &Error{Op: "decode", Err: fmt.Errorf("record version %d, expected %d", r.Version, Version)}
	}
	return &r, nil
}

package store

import (
	"database/sql"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists records to a single SQLite database file.
// It is suitable for single-process production use when many
// checkpoints should live in one artifact instead of a directory.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite record store.
// The path should be a file path (e.g., "./checkpoints.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, &StorageError{Op: "open", Err: err}
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			identity TEXT NOT NULL PRIMARY KEY,
			updated_at TEXT NOT NULL,
			data BLOB NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, &StorageError{Op: "open", Err: err}
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store. The upsert runs in a single statement, so a
// crash mid-save leaves the previous record intact.
func (s *SQLiteStore) Save(identity string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO records (identity, updated_at, data)
		VALUES (?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET
			updated_at = excluded.updated_at,
			data = excluded.data
	`, identity, time.Now().UTC().Format(time.RFC3339Nano), data)

	if err != nil {
		return &StorageError{Op: "save", Identity: identity, Err: err}
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(identity string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var data []byte
	err := s.db.QueryRow(`
		SELECT data FROM records WHERE identity = ?
	`, identity).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StorageError{Op: "load", Identity: identity, Err: err}
	}
	return data, nil
}

// Stat implements Store.
func (s *SQLiteStore) Stat(identity string) (Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Info{}, ErrStoreClosed
	}

	var updatedAt string
	var size int64
	err := s.db.QueryRow(`
		SELECT updated_at, LENGTH(data) FROM records WHERE identity = ?
	`, identity).Scan(&updatedAt, &size)

	if err == sql.ErrNoRows {
		return Info{}, ErrNotFound
	}
	if err != nil {
		return Info{}, &StorageError{Op: "stat", Identity: identity, Err: err}
	}

	modTime, _ := time.Parse(time.RFC3339Nano, updatedAt)
	return Info{Identity: identity, ModTime: modTime, Size: size}, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`DELETE FROM records WHERE identity = ?`, identity)
	if err != nil {
		return &StorageError{Op: "delete", Identity: identity, Err: err}
	}
	return nil
}

// List implements Store.
func (s *SQLiteStore) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT identity, updated_at, LENGTH(data)
		FROM records
		ORDER BY identity
	`)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	defer rows.Close()

	infos := make([]Info, 0)
	for rows.Next() {
		var info Info
		var updatedAt string
		if err := rows.Scan(&info.Identity, &updatedAt, &info.Size); err != nil {
			return nil, &StorageError{Op: "list", Err: err}
		}
		info.ModTime, _ = time.Parse(time.RFC3339Nano, updatedAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}

	return infos, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// SetModTime backdates a record's timestamp. Test helper for
// exercising expiration without sleeping.
func (s *SQLiteStore) SetModTime(identity string, t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	res, err := s.db.Exec(`
		UPDATE records SET updated_at = ? WHERE identity = ?
	`, t.UTC().Format(time.RFC3339Nano), identity)
	if err != nil {
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

package store

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory record store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]storedRecord
	closed bool
}

// storedRecord holds record data with metadata for Stat/List.
type storedRecord struct {
	data    []byte
	modTime time.Time
}

// NewMemoryStore creates a new in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]storedRecord)}
}

// Save implements Store.
func (m *MemoryStore) Save(identity string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy data to avoid retaining caller's slice
	stored := make([]byte, len(data))
	copy(stored, data)

	m.data[identity] = storedRecord{data: stored, modTime: time.Now().UTC()}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(identity string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	rec, ok := m.data[identity]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(rec.data))
	copy(out, rec.data)
	return out, nil
}

// Stat implements Store.
func (m *MemoryStore) Stat(identity string) (Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Info{}, ErrStoreClosed
	}

	rec, ok := m.data[identity]
	if !ok {
		return Info{}, ErrNotFound
	}
	return Info{Identity: identity, ModTime: rec.modTime, Size: int64(len(rec.data))}, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(identity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, identity)
	return nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.data))
	for identity, rec := range m.data {
		infos = append(infos, Info{
			Identity: identity,
			ModTime:  rec.modTime,
			Size:     int64(len(rec.data)),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Identity < infos[j].Identity
	})
	return infos, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// SetModTime backdates a record's timestamp. Test helper for
// exercising expiration without sleeping.
func (m *MemoryStore) SetModTime(identity string, t time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.data[identity]
	if !ok {
		return false
	}
	rec.modTime = t
	m.data[identity] = rec
	return true
}

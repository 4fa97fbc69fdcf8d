package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultRoot is the default checkpoint directory, hidden under the
// working directory.
const DefaultRoot = ".checkpoints"

// Ext is the file extension for checkpoint record files.
const Ext = ".ckpt"

// unsafeRunes matches everything not allowed in a record filename.
var unsafeRunes = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// FileStore keeps one record file per identity under a root directory.
// Writes go to a temp file in the same directory and are renamed into
// place, so an interrupted save leaves either the previous record or
// nothing.
type FileStore struct {
	root   string
	mu     sync.RWMutex
	closed bool
}

// NewFileStore creates a file store rooted at dir. An empty dir means
// DefaultRoot. The directory is created lazily on first save.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultRoot
	}
	return &FileStore{root: dir}
}

// Root returns the store's root directory.
func (s *FileStore) Root() string {
	return s.root
}

// PathFor maps an identity to its record file path. Distinct
// identities that sanitize to the same filename collide; callers that
// mint exotic identities should pick filesystem-safe ones.
func (s *FileStore) PathFor(identity string) string {
	name := unsafeRunes.ReplaceAllString(identity, "_")
	return filepath.Join(s.root, name+Ext)
}

// Save implements Store.
func (s *FileStore) Save(identity string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	path := s.PathFor(identity)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &StorageError{Op: "save", Identity: identity, Err: err}
	}

	// Temp file in the same directory so the rename stays on one
	// filesystem and is atomic.
	tmp := filepath.Join(filepath.Dir(path),
		fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &StorageError{Op: "save", Identity: identity, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &StorageError{Op: "save", Identity: identity, Err: err}
	}
	return nil
}

// Load implements Store.
func (s *FileStore) Load(identity string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	data, err := os.ReadFile(s.PathFor(identity))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StorageError{Op: "load", Identity: identity, Err: err}
	}
	return data, nil
}

// Stat implements Store.
func (s *FileStore) Stat(identity string) (Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Info{}, ErrStoreClosed
	}

	fi, err := os.Stat(s.PathFor(identity))
	if errors.Is(err, fs.ErrNotExist) {
		return Info{}, ErrNotFound
	}
	if err != nil {
		return Info{}, &StorageError{Op: "stat", Identity: identity, Err: err}
	}
	return Info{Identity: identity, ModTime: fi.ModTime(), Size: fi.Size()}, nil
}

// Delete implements Store.
func (s *FileStore) Delete(identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	err := os.Remove(s.PathFor(identity))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &StorageError{Op: "delete", Identity: identity, Err: err}
	}
	return nil
}

// List implements Store. Temp files from in-flight saves are skipped.
// Listed identities are the sanitized filenames, which may differ from
// the identities originally saved.
func (s *FileStore) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}

	infos := make([]Info, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Ext) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			return nil, &StorageError{Op: "list", Err: err}
		}
		infos = append(infos, Info{
			Identity: strings.TrimSuffix(name, Ext),
			ModTime:  fi.ModTime(),
			Size:     fi.Size(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Identity < infos[j].Identity
	})
	return infos, nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Package store owns the persisted ROI state: the per-project baseline
// record and the append-only snapshot log. Persistence goes through a
// small Port interface so tests run against an in-memory fake and the
// backing technology can be swapped without touching the services.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Port is the persistence boundary for the baseline and snapshot
// services. Read returns ErrNotFound for missing keys; any other failure
// propagates unchanged.
type Port interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Ensure() error
}

// FileStore persists each key as a JSON file in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir. The directory
// is created on first write, not here.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Ensure creates the storage directory if it does not exist.
func (s *FileStore) Ensure() error {
	return os.MkdirAll(s.dir, 0755)
}

func (s *FileStore) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) Write(key string, data []byte) error {
	if err := s.Ensure(); err != nil {
		return fmt.Errorf("ensure storage dir: %w", err)
	}
	if err := os.WriteFile(s.keyPath(key), data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) keyPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// MemStore is an in-memory Port for tests.
type MemStore struct {
	mu   sync.Mutex
	data map[string][]byte

	// FailWith, when set, is returned by every Read and Write. Lets tests
	// exercise the storage-failure propagation path.
	FailWith error
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (s *MemStore) Ensure() error { return nil }

func (s *MemStore) Read(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	data, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (s *MemStore) Write(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.data[key] = cp
	return nil
}

package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// LocalStore is a file-backed string key-value store. It plays the role
// the browser's localStorage plays for a web front-end: a small local
// mirror for the session token and the fields derived from it. It never
// holds authoritative state and may diverge from the server until the
// next verification.
//
// Every mutation is flushed to disk immediately via a temp-file rename,
// so a crash never leaves a half-written file behind.
type LocalStore struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewLocalStore loads the store at path. A missing or unreadable file
// yields an empty store rather than an error; the mirror is disposable
// by design.
func NewLocalStore(path string) (*LocalStore, error) {
	s := &LocalStore{path: path, data: map[string]string{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		// Corrupt mirror: start over.
		s.data = map[string]string{}
	}
	return s, nil
}

// Get returns the value for key, or "" when the key is absent.
func (s *LocalStore) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

// Set stores value under key and flushes to disk.
func (s *LocalStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flush()
}

// Remove deletes key and flushes to disk. Removing an absent key is a
// no-op.
func (s *LocalStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flush()
}

// flush writes the whole map atomically. Caller holds s.mu.
func (s *LocalStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".localstore-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Package store implements the JSON-file persistence layer.  Each
// collection is one file holding a single JSON array, rewritten
// wholesale on every mutation.  Reads never fail: a missing or
// unparsable file behaves as an empty collection.  Writes go through a
// temp file and an atomic rename so a crash mid-write can never leave
// a truncated collection behind.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Collection names one of the backing files.
type Collection string

const (
	Users     Collection = "users"
	Cars      Collection = "cars"
	Favorites Collection = "favorites"
	Orders    Collection = "orders"
)

var collections = []Collection{Users, Cars, Favorites, Orders}

// Store owns the data directory.  All mutations of a collection must
// run inside Update, which serializes writers per collection; the
// original whole-file overwrite had a last-writer-wins race between
// concurrent requests.
type Store struct {
	dir string
	log *zap.Logger
	mu  map[Collection]*sync.Mutex
}

// New returns a Store rooted at dir, creating it if needed.
func New(dir string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	mu := make(map[Collection]*sync.Mutex, len(collections))
	for _, c := range collections {
		mu[c] = &sync.Mutex{}
	}
	return &Store{dir: dir, log: log, mu: mu}, nil
}

func (s *Store) path(c Collection) string {
	return filepath.Join(s.dir, string(c)+".json")
}

// Exists reports whether the collection's backing file is present.
// Seeding uses it to avoid clobbering existing data.
func (s *Store) Exists(c Collection) bool {
	_, err := os.Stat(s.path(c))
	return err == nil
}

// Read decodes the collection into out, which must be a pointer to a
// slice.  An absent or unreadable file leaves out empty; the failure
// is logged, never returned.
func (s *Store) Read(c Collection, out any) {
	b, err := os.ReadFile(s.path(c))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("collection unreadable, treating as empty",
				zap.String("collection", string(c)), zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal(b, out); err != nil {
		s.log.Warn("collection corrupt, treating as empty",
			zap.String("collection", string(c)), zap.Error(err))
		// wipe whatever the failed decode left behind
		_ = json.Unmarshal([]byte("[]"), out)
	}
}

// Write replaces the collection with records.  The payload is written
// to a temp file in the same directory and renamed over the target, so
// readers observe either the old or the new array, never a prefix.
func (s *Store) Write(c Collection, records any) error {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		s.log.Error("marshal collection failed",
			zap.String("collection", string(c)), zap.Error(err))
		return err
	}
	tmp, err := os.CreateTemp(s.dir, string(c)+".*.tmp")
	if err != nil {
		s.log.Error("create temp file failed",
			zap.String("collection", string(c)), zap.Error(err))
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpName, s.path(c))
	}
	if err != nil {
		_ = os.Remove(tmpName)
		s.log.Error("write collection failed",
			zap.String("collection", string(c)), zap.Error(err))
		return err
	}
	return nil
}

// Update runs fn while holding the collection's mutex.  Every
// read-modify-write cycle (create, update, delete) must go through
// here so two concurrent mutations of the same collection cannot lose
// each other's writes.
func (s *Store) Update(c Collection, fn func() error) error {
	mu := s.mu[c]
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

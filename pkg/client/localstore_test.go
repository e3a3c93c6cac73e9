package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := NewLocalStore(path)
	require.NoError(t, err)
	assert.Empty(t, s.Get("missing"))

	require.NoError(t, s.Set("token", "abc"))
	require.NoError(t, s.Set("username", "ivan"))
	assert.Equal(t, "abc", s.Get("token"))

	// a second instance sees what the first flushed
	reopened, err := NewLocalStore(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", reopened.Get("token"))
	assert.Equal(t, "ivan", reopened.Get("username"))

	require.NoError(t, reopened.Remove("token"))
	assert.Empty(t, reopened.Get("token"))
	require.NoError(t, reopened.Remove("token"), "removing twice is fine")
}

func TestLocalStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := NewLocalStore(path)
	require.NoError(t, err)
	assert.Empty(t, s.Get("anything"))
}

func TestLocalStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "store.json")
	s, err := NewLocalStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "v"))

	reopened, err := NewLocalStore(path)
	require.NoError(t, err)
	assert.Equal(t, "v", reopened.Get("k"))
}

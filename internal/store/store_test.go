package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type record struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestReadMissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)

	var out []record
	s.Read(Cars, &out)
	assert.Empty(t, out)
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	in := []record{{ID: 1, Name: "one"}, {ID: 2, Name: "two"}}
	require.NoError(t, s.Write(Cars, in))

	var out []record
	s.Read(Cars, &out)
	assert.Equal(t, in, out)
}

func TestReadCorruptFileIsEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.path(Users), []byte(`[{"id": 1,`), 0o644))

	out := []record{{ID: 99}} // pre-populated to prove it gets wiped
	s.Read(Users, &out)
	assert.Empty(t, out)
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write(Orders, []record{{ID: 1}}))

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
	assert.True(t, s.Exists(Orders))
}

func TestWriteProducesIndentedJSON(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write(Cars, []record{{ID: 1, Name: "x"}}))

	raw, err := os.ReadFile(filepath.Join(s.dir, "cars.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  {")
}

func TestUpdateSerializesWriters(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write(Favorites, []record{}))

	// 50 concurrent read-modify-write appends; without the collection
	// lock most of them would overwrite each other.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			_ = s.Update(Favorites, func() error {
				var recs []record
				s.Read(Favorites, &recs)
				recs = append(recs, record{ID: n})
				return s.Write(Favorites, recs)
			})
		}(int64(i))
	}
	wg.Wait()

	var recs []record
	s.Read(Favorites, &recs)
	assert.Len(t, recs, 50)
}

func TestSeedCreatesMissingCollectionsOnly(t *testing.T) {
	s := newTestStore(t)

	existing := []record{{ID: 42, Name: "keep me"}}
	require.NoError(t, s.Write(Users, existing))

	require.NoError(t, s.Seed())

	for _, c := range collections {
		assert.True(t, s.Exists(c), "collection %s not seeded", c)
	}

	// The pre-existing users file must not be clobbered by the admin
	// seed.
	var users []record
	s.Read(Users, &users)
	require.Len(t, users, 1)
	assert.Equal(t, int64(42), users[0].ID)

	// Favorites seed empty, cars seed with the catalogue.
	var favs []record
	s.Read(Favorites, &favs)
	assert.Empty(t, favs)

	var cars []record
	s.Read(Cars, &cars)
	assert.NotEmpty(t, cars)
}

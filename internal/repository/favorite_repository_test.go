package repository

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/projectd/dealership-api/internal/model"
	"github.com/projectd/dealership-api/internal/store"
)

func newFavoriteFixture(t *testing.T) (*FavoriteRepo, *CarRepo) {
	t.Helper()
	s, err := store.New(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	cars := NewCarRepo(s)
	return NewFavoriteRepo(s, cars), cars
}

func mustCreateCar(t *testing.T, cars *CarRepo, name string) model.Car {
	t.Helper()
	car, err := cars.Create(model.Car{Name: name, Brand: "Test", Price: 1000000, IsAvailable: true})
	require.NoError(t, err)
	return car
}

func TestFavoriteAddListRemove(t *testing.T) {
	favs, cars := newFavoriteFixture(t)
	car := mustCreateCar(t, cars, "Camry")

	created, err := favs.Add(10, car.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, int64(10), created.UserID)
	assert.False(t, created.AddedAt.IsZero())

	assert.True(t, favs.IsFavorite(10, car.ID))
	assert.Equal(t, 1, favs.CountForUser(10))

	list := favs.ForUser(10)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Car)
	assert.Equal(t, "Camry", list[0].Car.Name)

	require.NoError(t, favs.Remove(10, car.ID))
	assert.False(t, favs.IsFavorite(10, car.ID))
	assert.Empty(t, favs.ForUser(10))
}

func TestFavoriteAddDuplicate(t *testing.T) {
	favs, cars := newFavoriteFixture(t)
	car := mustCreateCar(t, cars, "X5")

	_, err := favs.Add(1, car.ID)
	require.NoError(t, err)
	_, err = favs.Add(1, car.ID)
	assert.ErrorIs(t, err, ErrAlreadyFavorite)

	// Same car for another user is fine.
	_, err = favs.Add(2, car.ID)
	assert.NoError(t, err)
}

func TestFavoriteAddUnknownCar(t *testing.T) {
	favs, _ := newFavoriteFixture(t)

	_, err := favs.Add(1, 999)
	assert.ErrorIs(t, err, ErrCarNotFound)
	assert.Equal(t, 0, favs.CountForUser(1))
}

func TestFavoriteRemoveMissing(t *testing.T) {
	favs, _ := newFavoriteFixture(t)
	assert.ErrorIs(t, favs.Remove(1, 1), ErrNotFound)
}

func TestFavoriteOrphanFiltering(t *testing.T) {
	favs, cars := newFavoriteFixture(t)
	kept := mustCreateCar(t, cars, "Golf")
	doomed := mustCreateCar(t, cars, "Solaris")

	_, err := favs.Add(5, kept.ID)
	require.NoError(t, err)
	_, err = favs.Add(5, doomed.ID)
	require.NoError(t, err)

	require.NoError(t, cars.Delete(doomed.ID))

	// The orphan row stays on disk (the count still sees it) but the
	// joined listing filters it out.
	list := favs.ForUser(5)
	require.Len(t, list, 1)
	assert.Equal(t, kept.ID, list[0].CarID)
	assert.Equal(t, 2, favs.CountForUser(5))
}

func TestFavoriteForUserEmptyIsSlice(t *testing.T) {
	favs, _ := newFavoriteFixture(t)
	list := favs.ForUser(123)
	assert.NotNil(t, list, "must marshal as [] rather than null")
	assert.Empty(t, list)
}

func TestFavoriteConcurrentSamePairAddsCommitOnce(t *testing.T) {
	favs, cars := newFavoriteFixture(t)
	car := mustCreateCar(t, cars, "Camry")

	// Racing adds of the same (user, car) pair: the duplicate check and
	// the write share one critical section, so exactly one may commit.
	const n = 20
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int64
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := favs.Add(1, car.ID)
			switch {
			case err == nil:
				succeeded.Add(1)
			default:
				assert.ErrorIs(t, err, ErrAlreadyFavorite)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), succeeded.Load())
	assert.Len(t, favs.all(), 1)
	assert.Equal(t, 1, favs.CountForUser(1))
}

func TestFavoriteConcurrentAddsGetDistinctIDs(t *testing.T) {
	favs, cars := newFavoriteFixture(t)
	car := mustCreateCar(t, cars, "Model 3")

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			_, err := favs.Add(user, car.ID)
			assert.NoError(t, err)
		}(int64(i + 1))
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, f := range favs.all() {
		assert.False(t, seen[f.ID], "duplicate favorite id %d", f.ID)
		seen[f.ID] = true
	}
	assert.Len(t, seen, n)
}

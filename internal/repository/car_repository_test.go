package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/projectd/dealership-api/internal/model"
	"github.com/projectd/dealership-api/internal/store"
)

func newCarRepo(t *testing.T) *CarRepo {
	t.Helper()
	s, err := store.New(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return NewCarRepo(s)
}

func TestCarCreateAssignsIDAndTimestamp(t *testing.T) {
	r := newCarRepo(t)

	car, err := r.Create(model.Car{Name: "Camry", Brand: "Toyota", Price: 2500000, Type: model.BodySedan, IsAvailable: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), car.ID)
	assert.False(t, car.CreatedAt.IsZero())
	assert.Nil(t, car.UpdatedAt)

	second, err := r.Create(model.Car{Name: "X5", Brand: "BMW", Price: 6000000})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
}

func TestCarApplyShallowMerge(t *testing.T) {
	r := newCarRepo(t)
	car, err := r.Create(model.Car{Name: "Golf", Brand: "Volkswagen", Price: 1800000, IsAvailable: true})
	require.NoError(t, err)

	available := false
	price := int64(1700000)
	got, err := r.Apply(car.ID, CarUpdate{IsAvailable: &available, Price: &price})
	require.NoError(t, err)

	assert.False(t, got.IsAvailable)
	assert.Equal(t, price, got.Price)
	assert.Equal(t, "Golf", got.Name, "unpatched field untouched")
	require.NotNil(t, got.UpdatedAt)
}

func TestCarApplyUnknownID(t *testing.T) {
	r := newCarRepo(t)
	_, err := r.Apply(404, CarUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCarDelete(t *testing.T) {
	r := newCarRepo(t)
	car, err := r.Create(model.Car{Name: "Solaris", Brand: "Hyundai", Price: 1500000})
	require.NoError(t, err)

	require.NoError(t, r.Delete(car.ID))
	assert.False(t, r.Exists(car.ID))
	assert.ErrorIs(t, r.Delete(car.ID), ErrNotFound)
}

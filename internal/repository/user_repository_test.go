package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/projectd/dealership-api/internal/auth"
	"github.com/projectd/dealership-api/internal/store"
)

func newUserRepo(t *testing.T) *UserRepo {
	t.Helper()
	s, err := store.New(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return NewUserRepo(s)
}

func TestUserCreateHashesPassword(t *testing.T) {
	r := newUserRepo(t)

	u, err := r.Create("ivan", "Ivan@Example.COM", "secret123", "Иван Петров", "+7 900 000-00-00")
	require.NoError(t, err)

	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "ivan@example.com", u.Email, "email lowercased")
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, auth.IsHashed(u.Password))
	assert.True(t, auth.VerifyPassword("secret123", u.Password))
	assert.True(t, u.IsActive)
	assert.Nil(t, u.UpdatedAt)
}

func TestUserCreateConflicts(t *testing.T) {
	r := newUserRepo(t)
	_, err := r.Create("ivan", "ivan@example.com", "secret123", "", "")
	require.NoError(t, err)

	_, err = r.Create("ivan", "other@example.com", "secret123", "", "")
	assert.ErrorIs(t, err, ErrUsernameExists)

	// Email conflict is case-insensitive.
	_, err = r.Create("petr", "IVAN@example.com", "secret123", "", "")
	assert.ErrorIs(t, err, ErrEmailExists)

	assert.Len(t, r.All(), 1)
}

func TestUserByUsernameIsCaseSensitive(t *testing.T) {
	r := newUserRepo(t)
	_, err := r.Create("Ivan", "ivan@example.com", "secret123", "", "")
	require.NoError(t, err)

	_, err = r.ByUsername("Ivan")
	assert.NoError(t, err)
	_, err = r.ByUsername("ivan")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserApplyMergesAndStampsUpdatedAt(t *testing.T) {
	r := newUserRepo(t)
	u, err := r.Create("ivan", "ivan@example.com", "secret123", "Иван", "+7 900")
	require.NoError(t, err)

	phone := "+7 911 111-11-11"
	got, err := r.Apply(u.ID, ProfileUpdate{Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, phone, got.Phone)
	assert.Equal(t, "Иван", got.FullName, "unpatched field untouched")
	require.NotNil(t, got.UpdatedAt)

	// The digest must survive a profile update unchanged.
	stored, err := r.ByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Password, stored.Password)
}

func TestUserApplyUnknownID(t *testing.T) {
	r := newUserRepo(t)
	_, err := r.Apply(404, ProfileUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserIDsIncrementPastDeletedMax(t *testing.T) {
	r := newUserRepo(t)
	a, err := r.Create("a", "a@example.com", "secret123", "", "")
	require.NoError(t, err)
	b, err := r.Create("b", "b@example.com", "secret123", "", "")
	require.NoError(t, err)
	assert.Equal(t, a.ID+1, b.ID)
}

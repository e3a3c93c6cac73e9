package repository

import (
	"strings"
	"time"

	"github.com/projectd/dealership-api/internal/auth"
	"github.com/projectd/dealership-api/internal/model"
	"github.com/projectd/dealership-api/internal/store"
)

// UserRepo reads and writes the users collection.
type UserRepo struct{ Store *store.Store }

func NewUserRepo(s *store.Store) *UserRepo { return &UserRepo{Store: s} }

// All returns every user record, password digests included; callers
// that serve users over the API must sanitize them first.
func (r *UserRepo) All() []model.User {
	var users []model.User
	r.Store.Read(store.Users, &users)
	return users
}

// ByID returns the user with the given id or ErrNotFound.
func (r *UserRepo) ByID(id int64) (model.User, error) {
	for _, u := range r.All() {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// ByUsername returns the user with the exact username or ErrNotFound.
// Lookup is case-sensitive, matching the login contract.
func (r *UserRepo) ByUsername(username string) (model.User, error) {
	for _, u := range r.All() {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// Create registers a new user.  Uniqueness of username (exact) and
// email (case-insensitive) is checked inside the collection lock, the
// password is stored as a digest, and the id is the next free integer.
func (r *UserRepo) Create(username, email, password, fullName, phone string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var created model.User
	err := r.Store.Update(store.Users, func() error {
		var users []model.User
		r.Store.Read(store.Users, &users)
		for _, u := range users {
			if strings.EqualFold(u.Email, email) {
				return ErrEmailExists
			}
			if u.Username == username {
				return ErrUsernameExists
			}
		}
		created = model.User{
			ID:        nextUserID(users),
			Username:  username,
			Email:     email,
			Password:  auth.HashPassword(password),
			FullName:  fullName,
			Phone:     phone,
			CreatedAt: time.Now().UTC(),
			IsActive:  true,
			Role:      model.RoleUser,
		}
		users = append(users, created)
		return r.Store.Write(store.Users, users)
	})
	if err != nil {
		return model.User{}, err
	}
	return created, nil
}

// ProfileUpdate carries the fields PUT /api/users/:id may change.
// There is deliberately no password field: password changes are
// outside this API's surface, so a password key in the request body is
// silently dropped at the binding layer.
type ProfileUpdate struct {
	Username *string     `json:"username"`
	Email    *string     `json:"email"`
	FullName *string     `json:"full_name"`
	Phone    *string     `json:"phone"`
	IsActive *bool       `json:"is_active"`
	Role     *model.Role `json:"role"`
}

// Apply merges the non-nil fields of upd into the user and stamps
// updated_at.  Returns the updated record or ErrNotFound.
func (r *UserRepo) Apply(id int64, upd ProfileUpdate) (model.User, error) {
	var updated model.User
	err := r.Store.Update(store.Users, func() error {
		var users []model.User
		r.Store.Read(store.Users, &users)
		for i, u := range users {
			if u.ID != id {
				continue
			}
			if upd.Username != nil {
				u.Username = *upd.Username
			}
			if upd.Email != nil {
				u.Email = strings.ToLower(strings.TrimSpace(*upd.Email))
			}
			if upd.FullName != nil {
				u.FullName = *upd.FullName
			}
			if upd.Phone != nil {
				u.Phone = *upd.Phone
			}
			if upd.IsActive != nil {
				u.IsActive = *upd.IsActive
			}
			if upd.Role != nil {
				u.Role = *upd.Role
			}
			now := time.Now().UTC()
			u.UpdatedAt = &now
			users[i] = u
			updated = u
			return r.Store.Write(store.Users, users)
		}
		return ErrNotFound
	})
	if err != nil {
		return model.User{}, err
	}
	return updated, nil
}

func nextUserID(users []model.User) int64 {
	var max int64
	for _, u := range users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}

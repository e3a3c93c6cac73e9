package repository

import (
	"time"

	"github.com/projectd/dealership-api/internal/model"
	"github.com/projectd/dealership-api/internal/store"
)

// FavoriteRepo reads and writes the favorites collection.  The (user,
// car) uniqueness invariant is enforced here, inside the collection
// lock, since the file store itself has no constraints.
type FavoriteRepo struct {
	Store *store.Store
	Cars  *CarRepo
}

func NewFavoriteRepo(s *store.Store, cars *CarRepo) *FavoriteRepo {
	return &FavoriteRepo{Store: s, Cars: cars}
}

func (r *FavoriteRepo) all() []model.Favorite {
	var favs []model.Favorite
	r.Store.Read(store.Favorites, &favs)
	return favs
}

// ForUser returns the user's favorites joined with their cars.  A
// favorite whose car has been deleted is filtered out of the result
// (its row stays on disk, harmless until the favorite is removed).
func (r *FavoriteRepo) ForUser(userID int64) []model.FavoriteWithCar {
	cars := r.Cars.All()
	byID := make(map[int64]model.Car, len(cars))
	for _, c := range cars {
		byID[c.ID] = c
	}

	out := []model.FavoriteWithCar{}
	for _, f := range r.all() {
		if f.UserID != userID {
			continue
		}
		car, ok := byID[f.CarID]
		if !ok {
			continue // orphan: car was deleted after the favorite was added
		}
		out = append(out, model.FavoriteWithCar{Favorite: f, Car: &car})
	}
	return out
}

// IsFavorite reports whether the (user, car) pair is bookmarked.
func (r *FavoriteRepo) IsFavorite(userID, carID int64) bool {
	for _, f := range r.all() {
		if f.UserID == userID && f.CarID == carID {
			return true
		}
	}
	return false
}

// CountForUser returns the number of favorite rows for the user,
// orphans included; the dashboard badge only needs a cheap count.
func (r *FavoriteRepo) CountForUser(userID int64) int {
	n := 0
	for _, f := range r.all() {
		if f.UserID == userID {
			n++
		}
	}
	return n
}

// Add bookmarks a car for a user.  The car must exist and the pair
// must not already be bookmarked; both checks run under the favorites
// lock so two parallel adds cannot both commit.
func (r *FavoriteRepo) Add(userID, carID int64) (model.Favorite, error) {
	var created model.Favorite
	err := r.Store.Update(store.Favorites, func() error {
		if !r.Cars.Exists(carID) {
			return ErrCarNotFound
		}
		var favs []model.Favorite
		r.Store.Read(store.Favorites, &favs)
		for _, f := range favs {
			if f.UserID == userID && f.CarID == carID {
				return ErrAlreadyFavorite
			}
		}
		created = model.Favorite{
			ID:      nextFavoriteID(favs),
			UserID:  userID,
			CarID:   carID,
			AddedAt: time.Now().UTC(),
		}
		favs = append(favs, created)
		return r.Store.Write(store.Favorites, favs)
	})
	if err != nil {
		return model.Favorite{}, err
	}
	return created, nil
}

// Remove deletes the favorite identified by its composite key.
// Returns ErrNotFound when no row matched.
func (r *FavoriteRepo) Remove(userID, carID int64) error {
	return r.Store.Update(store.Favorites, func() error {
		var favs []model.Favorite
		r.Store.Read(store.Favorites, &favs)
		kept := favs[:0]
		for _, f := range favs {
			if !(f.UserID == userID && f.CarID == carID) {
				kept = append(kept, f)
			}
		}
		if len(kept) == len(favs) {
			return ErrNotFound
		}
		return r.Store.Write(store.Favorites, kept)
	})
}

func nextFavoriteID(favs []model.Favorite) int64 {
	var max int64
	for _, f := range favs {
		if f.ID > max {
			max = f.ID
		}
	}
	return max + 1
}

package model

import "time"

// Favorite is a user's bookmark of a car.  At most one favorite may
// exist per (UserID, CarID) pair; the repository enforces this under
// the collection lock since the file store has no constraints.
type Favorite struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"userId"`
	CarID   int64     `json:"carId"`
	AddedAt time.Time `json:"addedAt"`
}

// FavoriteWithCar is the read shape of the favorites endpoints: the
// favorite joined with its car.  Favorites whose car has been deleted
// are never returned (orphan-safe read), so Car is non-nil in every
// served record.
type FavoriteWithCar struct {
	Favorite
	Car *Car `json:"car"`
}

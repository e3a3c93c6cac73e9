// Package repository layers typed collection access over the file
// store.  Sentinel errors let handlers map failure modes onto HTTP
// statuses without inspecting error strings: not-found pairs with 404,
// the duplicate errors with 400 (the wire format the front-end already
// understands), and anything else with 500.
package repository

import "errors"

// ErrNotFound is returned when a record id (or composite key) does not
// exist in its collection.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists signals a registration with an already-taken
// username.  Usernames are compared case-sensitively.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists signals a registration with an already-taken email.
// Emails are stored lowercased and compared case-insensitively.
var ErrEmailExists = errors.New("email already exists")

// ErrAlreadyFavorite signals a duplicate (userId, carId) favorite.
var ErrAlreadyFavorite = errors.New("already in favorites")

// ErrCarNotFound signals a favorite referencing a car that does not
// exist.
var ErrCarNotFound = errors.New("car not found")

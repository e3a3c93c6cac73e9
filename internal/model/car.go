package model

import "time"

// BodyType is the catalog's car category. The front-end filter bar
// only knows these four values.
type BodyType string

const (
	BodyCoupe     BodyType = "coupe"
	BodySedan     BodyType = "sedan"
	BodyHatchback BodyType = "hatchback"
	BodySUV       BodyType = "suv"
)

// Car is a record of the `cars` collection.  JSON field names follow
// the catalog's wire format (camelCase), unlike users which are
// snake_case; both shapes are kept as-is for compatibility with the
// existing front-end.
type Car struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Brand       string     `json:"brand"`
	Year        int        `json:"year"`
	Price       int64      `json:"price"`
	Type        BodyType   `json:"type"`
	IsAvailable bool       `json:"isAvailable"`
	Image       string     `json:"image"`
	Description string     `json:"description"`
	Specs       string     `json:"specs"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

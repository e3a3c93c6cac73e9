package repository

import (
	"time"

	"github.com/projectd/dealership-api/internal/model"
	"github.com/projectd/dealership-api/internal/store"
)

// CarRepo reads and writes the cars collection.
type CarRepo struct{ Store *store.Store }

func NewCarRepo(s *store.Store) *CarRepo { return &CarRepo{Store: s} }

// All returns the full catalog.
func (r *CarRepo) All() []model.Car {
	var cars []model.Car
	r.Store.Read(store.Cars, &cars)
	return cars
}

// ByID returns the car with the given id or ErrNotFound.
func (r *CarRepo) ByID(id int64) (model.Car, error) {
	for _, c := range r.All() {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Car{}, ErrNotFound
}

// Exists reports whether a car with the given id is in the catalog.
func (r *CarRepo) Exists(id int64) bool {
	_, err := r.ByID(id)
	return err == nil
}

// Create appends car to the catalog, assigning the next free id and
// the creation timestamp.  Availability defaults are the handler's
// concern; the repository stores what it is given.
func (r *CarRepo) Create(car model.Car) (model.Car, error) {
	err := r.Store.Update(store.Cars, func() error {
		var cars []model.Car
		r.Store.Read(store.Cars, &cars)
		car.ID = nextCarID(cars)
		car.CreatedAt = time.Now().UTC()
		car.UpdatedAt = nil
		cars = append(cars, car)
		return r.Store.Write(store.Cars, cars)
	})
	if err != nil {
		return model.Car{}, err
	}
	return car, nil
}

// CarUpdate carries the fields PUT /api/cars/:id may change.  Pointer
// fields distinguish "absent" from zero values so the merge stays
// shallow: only keys present in the request body are applied.
type CarUpdate struct {
	Name        *string         `json:"name"`
	Brand       *string         `json:"brand"`
	Year        *int            `json:"year"`
	Price       *int64          `json:"price"`
	Type        *model.BodyType `json:"type"`
	IsAvailable *bool           `json:"isAvailable"`
	Image       *string         `json:"image"`
	Description *string         `json:"description"`
	Specs       *string         `json:"specs"`
}

// Apply merges the non-nil fields of upd into the car and stamps
// updatedAt.  Returns the updated record or ErrNotFound.
func (r *CarRepo) Apply(id int64, upd CarUpdate) (model.Car, error) {
	var updated model.Car
	err := r.Store.Update(store.Cars, func() error {
		var cars []model.Car
		r.Store.Read(store.Cars, &cars)
		for i, c := range cars {
			if c.ID != id {
				continue
			}
			if upd.Name != nil {
				c.Name = *upd.Name
			}
			if upd.Brand != nil {
				c.Brand = *upd.Brand
			}
			if upd.Year != nil {
				c.Year = *upd.Year
			}
			if upd.Price != nil {
				c.Price = *upd.Price
			}
			if upd.Type != nil {
				c.Type = *upd.Type
			}
			if upd.IsAvailable != nil {
				c.IsAvailable = *upd.IsAvailable
			}
			if upd.Image != nil {
				c.Image = *upd.Image
			}
			if upd.Description != nil {
				c.Description = *upd.Description
			}
			if upd.Specs != nil {
				c.Specs = *upd.Specs
			}
			now := time.Now().UTC()
			c.UpdatedAt = &now
			cars[i] = c
			updated = c
			return r.Store.Write(store.Cars, cars)
		}
		return ErrNotFound
	})
	if err != nil {
		return model.Car{}, err
	}
	return updated, nil
}

// Delete removes the car with the given id, filter-and-rewrite style.
// Favorites referencing the car are left in place; reads filter such
// orphans out.
func (r *CarRepo) Delete(id int64) error {
	return r.Store.Update(store.Cars, func() error {
		var cars []model.Car
		r.Store.Read(store.Cars, &cars)
		kept := cars[:0]
		for _, c := range cars {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(cars) {
			return ErrNotFound
		}
		return r.Store.Write(store.Cars, kept)
	})
}

func nextCarID(cars []model.Car) int64 {
	var max int64
	for _, c := range cars {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

package store

import (
	_ "embed"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/projectd/dealership-api/internal/model"
)

//go:embed cars_seed.json
var carsSeed []byte

// adminDigest is SHA-256("password"); the bootstrap account is meant
// to be used with the demo login flow and replaced in production.
const adminDigest = "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"

// Seed creates any collection file that does not exist yet.  Seeding
// policy: one administrator user, the bundled car dataset, and empty
// favorites and orders.  Existing files are never touched, so a
// restart cannot reset live data.
func (s *Store) Seed() error {
	if !s.Exists(Users) {
		created, _ := time.Parse(time.RFC3339, "2025-11-17T10:30:00Z")
		admin := model.User{
			ID:        1,
			Username:  "admin",
			Email:     "admin@projectd.com",
			Password:  adminDigest,
			FullName:  "Администратор",
			Phone:     "+7 (999) 123-45-67",
			CreatedAt: created,
			IsActive:  true,
			Role:      model.RolePremium,
		}
		if err := s.Write(Users, []model.User{admin}); err != nil {
			return err
		}
		s.log.Info("seeded users collection", zap.String("admin", admin.Username))
	}
	if !s.Exists(Cars) {
		var cars []model.Car
		if err := json.Unmarshal(carsSeed, &cars); err != nil {
			return err
		}
		if err := s.Write(Cars, cars); err != nil {
			return err
		}
		s.log.Info("seeded cars collection", zap.Int("count", len(cars)))
	}
	if !s.Exists(Favorites) {
		if err := s.Write(Favorites, []model.Favorite{}); err != nil {
			return err
		}
		s.log.Info("seeded favorites collection")
	}
	if !s.Exists(Orders) {
		if err := s.Write(Orders, []model.Order{}); err != nil {
			return err
		}
		s.log.Info("seeded orders collection")
	}
	return nil
}

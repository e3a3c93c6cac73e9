package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projectd/dealership-api/internal/model"
	"github.com/projectd/dealership-api/internal/repository"
)

// StatisticsHandler serves GET /api/statistics.  Counts are computed
// fresh from the collections on every call; at this scale a cache
// would only add staleness.
type StatisticsHandler struct {
	Users *repository.UserRepo
	Cars  *repository.CarRepo
}

func NewStatisticsHandler(users *repository.UserRepo, cars *repository.CarRepo) *StatisticsHandler {
	return &StatisticsHandler{Users: users, Cars: cars}
}

// Get handles GET /api/statistics.
func (h *StatisticsHandler) Get(c echo.Context) error {
	users := h.Users.All()
	cars := h.Cars.All()

	stats := model.Statistics{
		TotalUsers: len(users),
		TotalCars:  len(cars),
	}
	for _, car := range cars {
		if car.IsAvailable {
			stats.AvailableCars++
		}
	}
	for _, u := range users {
		if u.Role == model.RolePremium {
			stats.PremiumUsers++
		}
	}
	return c.JSON(http.StatusOK, stats)
}

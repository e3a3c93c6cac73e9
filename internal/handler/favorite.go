package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/projectd/dealership-api/internal/logger"
	"github.com/projectd/dealership-api/internal/model"
	"github.com/projectd/dealership-api/internal/repository"
)

// FavoriteHandler serves the favorites endpoints.
type FavoriteHandler struct {
	Favorites *repository.FavoriteRepo
	Cars      *repository.CarRepo
}

func NewFavoriteHandler(favs *repository.FavoriteRepo, cars *repository.CarRepo) *FavoriteHandler {
	return &FavoriteHandler{Favorites: favs, Cars: cars}
}

// ListForUser handles GET /api/favorites/:userId; each favorite is
// joined with its car and orphans are filtered out.
func (h *FavoriteHandler) ListForUser(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusOK, []model.FavoriteWithCar{})
	}
	return c.JSON(http.StatusOK, h.Favorites.ForUser(userID))
}

// Check handles GET /api/favorites/:userId/:carId.
func (h *FavoriteHandler) Check(c echo.Context) error {
	userID, err1 := strconv.ParseInt(c.Param("userId"), 10, 64)
	carID, err2 := strconv.ParseInt(c.Param("carId"), 10, 64)
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusOK, echo.Map{"isFavorite": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"isFavorite": h.Favorites.IsFavorite(userID, carID)})
}

// Count handles GET /api/favorites-count/:userId, the cheap badge
// counter for the dashboard.
func (h *FavoriteHandler) Count(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"count": 0})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": h.Favorites.CountForUser(userID)})
}

type addFavoriteReq struct {
	UserID int64 `json:"userId"`
	CarID  int64 `json:"carId"`
}

// Add handles POST /api/favorites.  The car must exist and the pair
// must not already be bookmarked; the created favorite is returned
// joined with its car so the UI can render it without a second fetch.
func (h *FavoriteHandler) Add(c echo.Context) error {
	var req addFavoriteReq
	if err := c.Bind(&req); err != nil || req.UserID == 0 || req.CarID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Missing required fields"})
	}

	fav, err := h.Favorites.Add(req.UserID, req.CarID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCarNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Car not found"})
		case errors.Is(err, repository.ErrAlreadyFavorite):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Already in favorites"})
		default:
			logger.FromEcho(c).Error("add favorite failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Internal server error"})
		}
	}

	car, _ := h.Cars.ByID(fav.CarID)
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"favorite": model.FavoriteWithCar{Favorite: fav, Car: &car},
	})
}

// Remove handles DELETE /api/favorites/:userId/:carId, keyed by the
// composite pair rather than the favorite id.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, err1 := strconv.ParseInt(c.Param("userId"), 10, 64)
	carID, err2 := strconv.ParseInt(c.Param("carId"), 10, 64)
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Favorite not found"})
	}
	if err := h.Favorites.Remove(userID, carID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Favorite not found"})
		}
		logger.FromEcho(c).Error("remove favorite failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Removed from favorites"})
}

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

// CarHandler serves the catalog CRUD endpoints.
type CarHandler struct {
	Cars *repository.CarRepo
}

func NewCarHandler(cars *repository.CarRepo) *CarHandler { return &CarHandler{Cars: cars} }

// List handles GET /api/cars and returns the raw catalog array.
func (h *CarHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Cars.All())
}

// Get handles GET /api/cars/:id.
func (h *CarHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Car not found"})
	}
	car, err := h.Cars.ByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Car not found"})
	}
	return c.JSON(http.StatusOK, car)
}

type createCarReq struct {
	Name        string         `json:"name"`
	Brand       string         `json:"brand"`
	Year        int            `json:"year"`
	Price       int64          `json:"price"`
	Type        model.BodyType `json:"type"`
	IsAvailable *bool          `json:"isAvailable"`
	Image       string         `json:"image"`
	Description string         `json:"description"`
	Specs       string         `json:"specs"`
}

// Create handles POST /api/cars.  Name, brand and price are required;
// isAvailable defaults to true unless the body explicitly sets false.
func (h *CarHandler) Create(c echo.Context) error {
	var req createCarReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required fields"})
	}
	if req.Name == "" || req.Brand == "" || req.Price == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required fields"})
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	car, err := h.Cars.Create(model.Car{
		Name:        req.Name,
		Brand:       req.Brand,
		Year:        req.Year,
		Price:       req.Price,
		Type:        req.Type,
		IsAvailable: available,
		Image:       req.Image,
		Description: req.Description,
		Specs:       req.Specs,
	})
	if err != nil {
		logger.FromEcho(c).Error("create car failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "car": car})
}

// Update handles PUT /api/cars/:id as a shallow merge of the supplied
// fields.
func (h *CarHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Car not found"})
	}
	var upd repository.CarUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	car, err := h.Cars.Apply(id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Car not found"})
		}
		logger.FromEcho(c).Error("update car failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "car": car})
}

// Delete handles DELETE /api/cars/:id, filter-and-rewrite style.
func (h *CarHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Car not found"})
	}
	if err := h.Cars.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Car not found"})
		}
		logger.FromEcho(c).Error("delete car failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Car deleted"})
}

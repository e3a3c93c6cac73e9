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

// UserHandler serves the user list/get/update endpoints.  Password
// digests never leave this surface: reads sanitize every record, and
// the update path has no password field to begin with.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(users *repository.UserRepo) *UserHandler { return &UserHandler{Users: users} }

// List handles GET /api/users.
func (h *UserHandler) List(c echo.Context) error {
	users := h.Users.All()
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitized())
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}
	user, err := h.Users.ByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}
	return c.JSON(http.StatusOK, user.Sanitized())
}

// Update handles PUT /api/users/:id.  A password key in the body is
// silently ignored (ProfileUpdate has no such field); updated_at is
// stamped on success.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}
	var upd repository.ProfileUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request body"})
	}
	user, err := h.Users.Apply(id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		logger.FromEcho(c).Error("update user failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user.Sanitized()})
}

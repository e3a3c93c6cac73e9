package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/projectd/dealership-api/internal/logger"
)

// RequestID tags every request with an X-Request-ID (generated when
// the client did not send one) and stores a request-scoped logger
// carrying that id under the "logger" context key.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			c.Set("logger", logger.L().With(zap.String("request_id", id)))
			return next(c)
		}
	}
}

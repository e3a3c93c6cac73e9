// Package router maps the /api surface onto handlers and decides
// which middleware guards which routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/projectd/dealership-api/internal/config"
	"github.com/projectd/dealership-api/internal/handler"
	"github.com/projectd/dealership-api/internal/middleware"
)

// Deps bundles everything route registration needs.  Cache and
// RateLimit may be nil (no Redis); passing nil simply skips them.
type Deps struct {
	Cfg       config.Config
	Auth      *handler.AuthHandler
	Cars      *handler.CarHandler
	Users     *handler.UserHandler
	Favorites *handler.FavoriteHandler
	Orders    *handler.OrderHandler
	Stats     *handler.StatisticsHandler
	Cache     echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
}

// RegisterRoutes wires the full API surface.  Everything lives under
// /api except the Prometheus scrape endpoint.  Only /api/me requires a
// bearer token; the rest of the surface is open, as the front-end
// expects.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/metrics", middleware.MetricsHandler())

	api := e.Group("/api")
	if d.RateLimit != nil {
		api.Use(d.RateLimit)
	}

	api.GET("/health", handler.Health)

	// auth
	api.POST("/register", d.Auth.Register)
	api.POST("/login", d.Auth.Login)
	api.GET("/me", d.Auth.Me, middleware.BearerAuth(d.Cfg.JWTSecret))

	// catalog; reads go through the response cache when Redis is up.
	// Statistics stays uncached: its counts must be fresh on every call.
	if d.Cache != nil {
		api.GET("/cars", d.Cars.List, d.Cache)
		api.GET("/cars/:id", d.Cars.Get, d.Cache)
	} else {
		api.GET("/cars", d.Cars.List)
		api.GET("/cars/:id", d.Cars.Get)
	}
	api.GET("/statistics", d.Stats.Get)
	api.POST("/cars", d.Cars.Create)
	api.PUT("/cars/:id", d.Cars.Update)
	api.DELETE("/cars/:id", d.Cars.Delete)

	// users
	api.GET("/users", d.Users.List)
	api.GET("/users/:id", d.Users.Get)
	api.PUT("/users/:id", d.Users.Update)

	// favorites
	api.GET("/favorites/:userId", d.Favorites.ListForUser)
	api.GET("/favorites/:userId/:carId", d.Favorites.Check)
	api.GET("/favorites-count/:userId", d.Favorites.Count)
	api.POST("/favorites", d.Favorites.Add)
	api.DELETE("/favorites/:userId/:carId", d.Favorites.Remove)

	// orders
	api.POST("/orders", d.Orders.Create)
}

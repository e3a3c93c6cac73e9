package main

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/projectd/dealership-api/internal/auth"
	"github.com/projectd/dealership-api/internal/config"
	"github.com/projectd/dealership-api/internal/handler"
	"github.com/projectd/dealership-api/internal/logger"
	"github.com/projectd/dealership-api/internal/middleware"
	"github.com/projectd/dealership-api/internal/queue"
	"github.com/projectd/dealership-api/internal/repository"
	"github.com/projectd/dealership-api/internal/router"
	queue_publisher "github.com/projectd/dealership-api/internal/service"
	"github.com/projectd/dealership-api/internal/store"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic("init logger: " + err.Error())
	}
	log := logger.L()
	log.Info("starting dealership api",
		zap.String("env", cfg.Env), zap.String("port", cfg.Port),
		zap.Bool("demo_login", cfg.DemoLogin))

	st, err := store.New(cfg.DataDir, log)
	if err != nil {
		log.Fatal("init store", zap.Error(err))
	}
	if err := st.Seed(); err != nil {
		log.Fatal("seed collections", zap.Error(err))
	}
	if err := auth.MigratePasswords(st, log); err != nil {
		log.Fatal("migrate passwords", zap.Error(err))
	}

	users := repository.NewUserRepo(st)
	cars := repository.NewCarRepo(st)
	favorites := repository.NewFavoriteRepo(st, cars)
	orders := repository.NewOrderRepo(st)

	// Redis is optional; without it cache and rate limiting are off.
	rdb := config.NewRedisClient()
	var cacheMW, rateMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.ResponseCache(config.LoadCacheConfig(), rdb)
		rateMW = middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
		log.Info("redis connected, cache and rate limiting enabled")
	} else {
		log.Warn("redis unavailable, cache and rate limiting disabled")
	}

	go queue.StartOrderConsumer()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.RequestID())
	e.Use(logger.Middleware())
	e.Use(middleware.Metrics())

	router.RegisterRoutes(e, router.Deps{
		Cfg:       cfg,
		Auth:      handler.NewAuthHandler(cfg, users),
		Cars:      handler.NewCarHandler(cars),
		Users:     handler.NewUserHandler(users),
		Favorites: handler.NewFavoriteHandler(favorites, cars),
		Orders:    handler.NewOrderHandler(orders, queue_publisher.PublishOrderCreated),
		Stats:     handler.NewStatisticsHandler(users, cars),
		Cache:     cacheMW,
		RateLimit: rateMW,
	})

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// File: cmd/service/main.go
// @title        User Management API
// @version      1.0
// @description  Account CRUD, name search and password login.
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"os"

	"user-management/internal/cache"
	"user-management/internal/config"
	"user-management/internal/database"
	"user-management/internal/handler"
	"user-management/internal/logging"
	"user-management/internal/middleware"
	"user-management/internal/router"
	"user-management/internal/service"
	"user-management/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	_ "user-management/docs" // swagger spec
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if cfg.Server.Debug {
		log = log.Level(zerolog.DebugLevel)
	}

	db, err := newPgxPool(context.Background(), cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()
	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set, user cache disabled")
	}

	if err := runMigrationsFn(cfg.Database.URL); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	wp := newWorkerPool(cfg.Security.WorkerCount)
	defer wp.Stop()

	accounts := service.NewAccounts(db, rdb, wp, log, service.Options{
		BcryptCost: cfg.Security.BcryptCost,
		CacheTTL:   cfg.Redis.TTL,
	})

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Server.Debug
	e.HTTPErrorHandler = handler.ErrorHandler(log)
	e.Use(middleware.Stack(log)...)

	router.Setup(e, accounts, db, rdb)

	log.Info().Str("addr", cfg.Server.Addr()).Bool("debug", cfg.Server.Debug).Msg("starting server")
	return startServer(e, cfg.Server.Addr())
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}

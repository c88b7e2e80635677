// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"user-management/internal/cache"
	"user-management/internal/database"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports that the process is up.
// @Summary     Health check
// @Description Returns a fixed message while the service is running
// @Tags        health
// @Produce     json
// @Success     200 {object} api.Envelope
// @Router      / [get]
func HealthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return OK(c, http.StatusOK, "User Management System is running", nil)
	}
}

// PingHandler checks the database and the cache.
// @Summary     Dependency check
// @Description Pings the database and writes a probe key to the cache
// @Tags        health
// @Produce     json
// @Success     200 {object} api.Envelope
// @Failure     500 {object} api.Envelope
// @Router      /health [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return Error(c, err, "database unhealthy")
		}
		if err := cch.Set(ctx, "health:ping", "pong", 10*time.Second).Err(); err != nil {
			return Error(c, err, "cache unhealthy")
		}
		return OK(c, http.StatusOK, "pong", nil)
	}
}

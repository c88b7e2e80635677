// File: internal/router/router.go
package router

import (
	"user-management/internal/cache"
	"user-management/internal/database"
	"user-management/internal/handler"
	"user-management/internal/handler/auth"
	"user-management/internal/handler/users"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Setup registers every route.
func Setup(e *echo.Echo, svc handler.Accounts, db database.DB, cch cache.Cache) {
	e.GET("/", handler.HealthHandler())
	e.GET("/health", handler.PingHandler(db, cch))

	e.GET("/users", users.ListUsersHandler(svc))
	e.POST("/users", users.CreateUserHandler(svc))

	e.GET("/user/:id", users.GetUserHandler(svc))
	e.PUT("/user/:id", users.UpdateUserHandler(svc))
	e.DELETE("/user/:id", users.DeleteUserHandler(svc))

	e.GET("/search", users.SearchUsersHandler(svc))
	e.POST("/login", auth.LoginHandler(svc))

	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

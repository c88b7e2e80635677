// File: internal/handler/auth/login.go
package auth

import (
	"net/http"

	"user-management/internal/api"
	"user-management/internal/handler"
	"user-management/internal/validate"

	"github.com/labstack/echo/v4"
)

// LoginHandler checks an email/password pair. Unknown email and wrong
// password produce the same 401.
// @Summary     Log in
// @Description Verifies credentials and returns the user on success
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "Credentials"
// @Success     200  {object} api.Envelope{data=api.UserResponse}
// @Failure     400  {object} api.Envelope
// @Failure     401  {object} api.Envelope
// @Failure     500  {object} api.Envelope
// @Router      /login [post]
func LoginHandler(svc handler.Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := handler.BindJSON(c, &req); err != nil {
			return handler.Error(c, err, "Failed to authenticate user")
		}
		creds, err := validate.Login(&req)
		if err != nil {
			return handler.Error(c, err, "Failed to authenticate user")
		}

		user, err := svc.Authenticate(c.Request().Context(), creds.Email, creds.Password)
		if err != nil {
			return handler.Error(c, err, "Failed to authenticate user")
		}
		return handler.OK(c, http.StatusOK, "Login successful", api.NewUserResponse(*user))
	}
}

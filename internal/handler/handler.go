// Package handler maps HTTP requests onto the validator and the account
// service and shapes every response into an api.Envelope.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"user-management/internal/api"
	"user-management/internal/apperr"
	"user-management/internal/model"
	"user-management/internal/validate"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Accounts is the account service as seen by the handlers.
type Accounts interface {
	Create(ctx context.Context, name, email, password string) (*model.User, error)
	Get(ctx context.Context, id int) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id int, name, email *string) (*model.User, error)
	Delete(ctx context.Context, id int) (bool, error)
	Search(ctx context.Context, term string) ([]model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

const (
	msgNotJSON     = "Content-Type must be application/json"
	msgMalformed   = "Request data must be a JSON object"
	msgNotFound    = "User not found"
	msgInternal    = "Internal server error"
	msgNoEndpoint  = "Endpoint not found"
	msgBadMethod   = "Method not allowed"
	msgBadLogin    = "Invalid email or password"
	msgDuplicateEm = "Email already exists"
)

// Fail writes an error envelope.
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, api.Error(message))
}

// OK writes a success envelope.
func OK(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, api.Success(message, data))
}

// Error maps err to its status. Unclassified errors are logged with full
// detail and answered with fallback only.
func Error(c echo.Context, err error, fallback string) error {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		return Fail(c, http.StatusBadRequest, verr.Reason)
	case errors.Is(err, apperr.ErrDuplicateEmail):
		return Fail(c, http.StatusConflict, msgDuplicateEm)
	case errors.Is(err, apperr.ErrNotFound):
		return Fail(c, http.StatusNotFound, msgNotFound)
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return Fail(c, http.StatusUnauthorized, msgBadLogin)
	}
	zerolog.Ctx(c.Request().Context()).Error().Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg(fallback)
	return Fail(c, http.StatusInternalServerError, fallback)
}

// IsJSON reports whether the request declares a JSON body.
func IsJSON(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(strings.ToLower(ct), echo.MIMEApplicationJSON)
}

// BindJSON requires a JSON content type and decodes the body into dst.
func BindJSON(c echo.Context, dst any) error {
	if !IsJSON(c) {
		return &validate.Error{Reason: msgNotJSON}
	}
	if err := c.Bind(dst); err != nil {
		return &validate.Error{Reason: msgMalformed}
	}
	return nil
}

// ErrorHandler replaces echo's default so unknown routes, wrong methods and
// panics share the error envelope. Internal detail is only logged.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, message := http.StatusInternalServerError, msgInternal
		var he *echo.HTTPError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusNotFound:
				status, message = he.Code, msgNoEndpoint
			case http.StatusMethodNotAllowed:
				status, message = he.Code, msgBadMethod
			default:
				if he.Code < http.StatusInternalServerError {
					status, message = he.Code, http.StatusText(he.Code)
				}
			}
		}
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Msg("unhandled error")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = Fail(c, status, message)
		}
		if werr != nil {
			log.Error().Err(werr).Msg("write error response")
		}
	}
}

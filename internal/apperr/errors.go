// Package apperr holds the error kinds shared between the store, the
// service and the HTTP layer.
package apperr

import "errors"

// Sentinel errors mapped to HTTP status by the handler layer.
var (
	ErrDuplicateEmail     = errors.New("Email already exists")
	ErrNotFound           = errors.New("User not found")
	ErrInvalidCredentials = errors.New("Invalid email or password")
)

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. The central HTTP error handler maps
// each to its status code; messages carried alongside (via echo.HTTPError or
// handler responses) follow the API contract verbatim.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRoleNotFound    = errors.New("role not found")
	ErrDiveLogNotFound = errors.New("dive log not found")

	ErrEmailExists    = errors.New("user with this email already exists")
	ErrRoleNameExists = errors.New("role with this name already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")

	ErrForbidden  = errors.New("access forbidden")
	ErrValidation = errors.New("validation failed")
)

// Error wraps a sentinel with the exact client-facing message. errors.Is
// resolves through Kind, so the HTTP layer can keep matching on sentinels
// while surfacing the contract's verbatim wording.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

// E builds a sentinel-kinded error with a formatted message.
func E(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

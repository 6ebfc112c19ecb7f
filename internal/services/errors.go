package services

import (
	"database/sql"
	"errors"
)

// Service-level errors. Handlers map these to HTTP status codes; anything
// else is treated as internal and only logged.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalid      = errors.New("invalid request")

	ErrCodeExpired     = errors.New("code expired")
	ErrCodeInvalid     = errors.New("code invalid")
	ErrTooManyAttempts = errors.New("too many attempts")
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/trackinventory/trackinventory/internal/sessions"
)

// ErrMissingToken is returned when a login response carries no usable token.
var ErrMissingToken = errors.New("api: authentication token missing in response")

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int
	Message    string
}

// Error implements the `error` interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %s", http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %s: %s", http.StatusText(e.StatusCode), e.Message)
}

// Is reports rejected-credential responses as sessions.ErrUnauthorized so the
// session controller can force a sign-out without knowing about HTTP.
func (e *Error) Is(target error) bool {
	return target == sessions.ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// IsUnauthorized reports whether err is a rejected-credential response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, sessions.ErrUnauthorized)
}

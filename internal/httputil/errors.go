package httputil

import (
	"errors"
	"net/http"

	"github.com/trackinventory/trackinventory/internal/log"
)

// HTTPError contains an HTTP status code and wrapped error.
type HTTPError struct {
	// HTTP status codes as registered with IANA.
	Status int
	// Err is the wrapped error.
	Err error
}

// NewError returns an error that contains a HTTP status and error.
func NewError(status int, err error) error {
	return &HTTPError{Status: status, Err: err}
}

// Error implements the `error` interface.
func (e *HTTPError) Error() string {
	return http.StatusText(e.Status) + ": " + e.Err.Error()
}

// Unwrap implements the `error` Unwrap interface.
func (e *HTTPError) Unwrap() error { return e.Err }

// ErrorResponse replies to the request with the specified error message and HTTP code.
// It does not otherwise end the request; the caller should ensure no further
// writes are done to w.
func (e *HTTPError) ErrorResponse(w http.ResponseWriter, r *http.Request) {
	if e.Status >= http.StatusInternalServerError {
		log.FromRequest(r).Error().Err(e.Err).Int("status", e.Status).Msg("httputil: error")
	}
	response := struct {
		Status int    `json:"status"`
		Error  string `json:"error"`
	}{
		Status: e.Status,
		Error:  e.Error(),
	}
	RenderJSON(w, e.Status, response)
}

// HandlerFunc calls f(w, r) and handles any returned error.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// ServeHTTP calls f(w, r) and renders any returned error.
func (f HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := f(w, r); err != nil {
		var e *HTTPError
		if !errors.As(err, &e) {
			e = &HTTPError{Status: http.StatusInternalServerError, Err: err}
		}
		e.ErrorResponse(w, r)
	}
}

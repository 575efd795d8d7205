// Package sessions handles the client's session lifecycle: a durable
// credential store, an in-memory controller that owns all session
// transitions, and best-effort bearer-token claim extraction.
package sessions

import "errors"

var (
	// ErrNoSessionFound is the error for when no session is found.
	ErrNoSessionFound = errors.New("internal/sessions: session is not found")
	// ErrMalformed is the error for when a session is found but is malformed.
	ErrMalformed = errors.New("internal/sessions: session is malformed")
	// ErrUnauthorized is the error for when the backend rejects the session's
	// credential. Fetch errors matching it force a sign-out.
	ErrUnauthorized = errors.New("internal/sessions: credential rejected")
)

// Store has the functions for saving, loading, and clearing the persisted
// session record. Persistence is an optimization, not a requirement: callers
// must tolerate any of these operations failing.
type Store interface {
	// LoadSession reads the persisted record. It returns ErrNoSessionFound
	// when no record exists and ErrMalformed when one exists but cannot be
	// decoded.
	LoadSession() (*State, error)
	// SaveSession persists the full record, overwriting any prior value.
	// A nil or token-less state deletes the record instead.
	SaveSession(*State) error
	// ClearSession deletes the persisted record.
	ClearSession() error
}

// Package guard gates access to protected routes on session state.
package guard

import (
	"net/http"
	"net/url"

	"github.com/trackinventory/trackinventory/internal/log"
	"github.com/trackinventory/trackinventory/internal/urlutil"
)

// Authenticator is the single session fact the guard may depend on.
type Authenticator interface {
	IsAuthenticated() bool
}

// Decision is the result of evaluating a request against the guard.
type Decision struct {
	Allowed bool
	// Redirect is the sign-in destination, carrying the originally requested
	// URL, set when Allowed is false.
	Redirect string
}

// Guard is a pure predicate over the session controller's authentication
// flag. It holds no state of its own and produces no side effects.
type Guard struct {
	auth      Authenticator
	signInURL *url.URL
}

// New creates a guard that sends unauthenticated requests to signInURL.
func New(auth Authenticator, signInURL *url.URL) *Guard {
	return &Guard{auth: auth, signInURL: signInURL}
}

// Check evaluates access to the requested URL at call time.
func (g *Guard) Check(requested *url.URL) Decision {
	if g.auth.IsAuthenticated() {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: urlutil.SignInURL(g.signInURL, requested)}
}

// Middleware redirects unauthenticated requests to the sign-in entry point,
// preserving the originally requested destination.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := g.Check(r.URL)
		if !decision.Allowed {
			log.FromRequest(r).Debug().Str("path", r.URL.Path).Msg("guard: redirecting to sign-in")
			http.Redirect(w, r, decision.Redirect, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

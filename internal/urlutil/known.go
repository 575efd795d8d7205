package urlutil

import (
	"net/http"
	"net/url"
)

// QueryRedirectURI is the query parameter that carries the originally
// requested destination through a sign-in redirect.
const QueryRedirectURI = "redirect_uri"

// RedirectURL returns the redirect URL from the query string.
func RedirectURL(r *http.Request) (string, bool) {
	if v := r.FormValue(QueryRedirectURI); v != "" {
		return v, true
	}
	return "", false
}

// SignInURL builds the sign-in URL for a request that was denied access,
// carrying the originally requested destination so the caller may return
// there after a successful login.
func SignInURL(signInURL, redirectURL *url.URL) string {
	u := *signInURL
	q := u.Query()
	q.Set(QueryRedirectURI, redirectURL.String())
	u.RawQuery = q.Encode()
	return u.String()
}

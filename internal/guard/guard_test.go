package guard

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackinventory/trackinventory/internal/urlutil"
)

type staticAuth bool

func (a staticAuth) IsAuthenticated() bool { return bool(a) }

func mustParse(t *testing.T, rawURL string) *url.URL {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u
}

func TestGuard_Check(t *testing.T) {
	t.Parallel()
	signIn := mustParse(t, "http://127.0.0.1:8321/signin")

	t.Run("authenticated", func(t *testing.T) {
		g := New(staticAuth(true), signIn)
		d := g.Check(mustParse(t, "/api/profile"))
		assert.True(t, d.Allowed)
		assert.Empty(t, d.Redirect)
	})

	t.Run("anonymous", func(t *testing.T) {
		g := New(staticAuth(false), signIn)
		d := g.Check(mustParse(t, "/api/profile?tab=billing"))
		assert.False(t, d.Allowed)

		redirect := mustParse(t, d.Redirect)
		assert.Equal(t, "/signin", redirect.Path)
		assert.Equal(t, "/api/profile?tab=billing", redirect.Query().Get(urlutil.QueryRedirectURI))
	})
}

func TestGuard_Middleware(t *testing.T) {
	t.Parallel()
	signIn := mustParse(t, "http://127.0.0.1:8321/signin")
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("passes authenticated requests through", func(t *testing.T) {
		g := New(staticAuth(true), signIn)
		w := httptest.NewRecorder()
		g.Middleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
		assert.Equal(t, http.StatusTeapot, w.Code)
	})

	t.Run("redirects anonymous requests", func(t *testing.T) {
		g := New(staticAuth(false), signIn)
		w := httptest.NewRecorder()
		g.Middleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
		require.Equal(t, http.StatusFound, w.Code)

		location := mustParse(t, w.Header().Get("Location"))
		assert.Equal(t, "/signin", location.Path)
		assert.Equal(t, "/api/profile", location.Query().Get(urlutil.QueryRedirectURI))
	})
}

package urlutil

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndValidateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"good", "https://api.trackinventory.in", false},
		{"with path", "http://127.0.0.1:8321/signin", false},
		{"empty", "", true},
		{"no scheme", "api.trackinventory.in", true},
		{"no host", "https://", true},
		{"missing protocol with port", "api.trackinventory.in:443", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, err := ParseAndValidateURL(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.in, u.String())
		})
	}
}

func TestSignInURL(t *testing.T) {
	t.Parallel()

	signIn, err := ParseAndValidateURL("http://127.0.0.1:8321/signin")
	require.NoError(t, err)
	requested, err := url.Parse("/api/profile?tab=billing")
	require.NoError(t, err)

	got := SignInURL(signIn, requested)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "/signin", u.Path)
	assert.Equal(t, "/api/profile?tab=billing", u.Query().Get(QueryRedirectURI))
	// the original URL keeps its query
	assert.Empty(t, signIn.RawQuery)
}

func TestRedirectURL(t *testing.T) {
	t.Parallel()

	r, err := http.NewRequest(http.MethodGet, "http://127.0.0.1:8321/signin?redirect_uri=%2Fdashboard", nil)
	require.NoError(t, err)
	got, ok := RedirectURL(r)
	assert.True(t, ok)
	assert.Equal(t, "/dashboard", got)

	r, err = http.NewRequest(http.MethodGet, "http://127.0.0.1:8321/signin", nil)
	require.NoError(t, err)
	_, ok = RedirectURL(r)
	assert.False(t, ok)
}

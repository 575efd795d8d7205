package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackinventory/trackinventory/internal/tripper"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return New(u, opts...)
}

func TestClient_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name      string
		response  string
		wantToken string
		wantUser  string
		wantErr   error
	}{
		{
			"accessToken field",
			`{"accessToken":"tok-1","user":{"id":"7","email":"a@b.c"}}`,
			"tok-1", "a@b.c", nil,
		},
		{
			"token field fallback",
			`{"token":"tok-2"}`,
			"tok-2", "", nil,
		},
		{
			"missing token",
			`{"user":{"id":"7"}}`,
			"", "", ErrMissingToken,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/User/Login", r.URL.Path)

				var body map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "ada@example.com", body["email"])
				assert.EqualValues(t, 2, body["source"])

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.response))
			}))

			result, err := c.Login(ctx, "ada@example.com", "hunter2")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantToken, result.Token)
			if tc.wantUser != "" {
				require.NotNil(t, result.User)
				assert.Equal(t, tc.wantUser, result.User.Email)
			} else {
				assert.Nil(t, result.User)
			}
		})
	}
}

func TestClient_BearerToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})

	t.Run("token source injects the session token", func(t *testing.T) {
		c := newTestClient(t, handler, WithTokenSource(TokenSourceFunc(func() string { return "tok-1" })))
		_, err := c.do(ctx, request{method: http.MethodGet, path: "/x"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok-1", seen)
	})

	t.Run("empty token sends no header", func(t *testing.T) {
		c := newTestClient(t, handler, WithTokenSource(TokenSourceFunc(func() string { return "" })))
		_, err := c.do(ctx, request{method: http.MethodGet, path: "/x"})
		require.NoError(t, err)
		assert.Empty(t, seen)
	})

	t.Run("explicit bearer wins over the token source", func(t *testing.T) {
		c := newTestClient(t, handler, WithTokenSource(TokenSourceFunc(func() string { return "tok-1" })))
		_, err := c.do(ctx, request{method: http.MethodGet, path: "/x", bearer: "tok-override"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok-override", seen)
	})
}

func TestClient_WithTransport(t *testing.T) {
	t.Parallel()

	var hit bool
	base := tripper.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		hit = true
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{}`)),
			Header:     http.Header{},
			Request:    req,
		}, nil
	})

	u, err := url.Parse("https://api.example.com")
	require.NoError(t, err)
	c := New(u, WithTransport(base))

	_, err = c.do(context.Background(), request{method: http.MethodGet, path: "/x"})
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestClient_ErrorResponses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("401 maps to a rejected credential", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
		}))

		_, err := c.FetchProfile(ctx, "tok-stale")
		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "token expired", apiErr.Message)
	})

	t.Run("other statuses are not unauthorized", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
		}))

		_, err := c.FetchProfile(ctx, "tok-1")
		require.Error(t, err)
		assert.False(t, IsUnauthorized(err))
	})

	t.Run("non-json error body", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gateway timeout", http.StatusBadGateway)
		}))

		_, err := c.do(ctx, request{method: http.MethodGet, path: "/x"})
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Empty(t, apiErr.Message)
	})
}

func TestClient_FetchProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name     string
		response string
		wantMail string
	}{
		{"bare object", `{"id":"7","email":"a@b.c"}`, "a@b.c"},
		{"data envelope", `{"data":{"id":"7","emailId":"a@b.c"}}`, "a@b.c"},
		{"one-element array", `[{"id":7,"email":"a@b.c"}]`, "a@b.c"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/User/GetUserDetails", r.URL.Path)
				assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
				_, _ = w.Write([]byte(tc.response))
			}))

			user, err := c.FetchProfile(ctx, "tok-1")
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, tc.wantMail, user.Email)
		})
	}
}

func TestClient_GetServiceByName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Service/GetByName", r.URL.Path)
		assert.Equal(t, "inventory-pro", r.URL.Query().Get("name"))
		_, _ = w.Write([]byte(`{"id":3,"name":"inventory-pro","oneYearPrice":4999,"twoYearPrice":8999}`))
	}))

	svc, plans, err := c.GetServiceByName(ctx, "inventory-pro")
	require.NoError(t, err)
	assert.Equal(t, "inventory-pro", svc.Name)
	require.Len(t, plans, 2)
	assert.Equal(t, Plan{ID: "3-1Y", ServiceID: "3", Name: "inventory-pro", Price: 4999, Years: 1}, plans[0])
	assert.Equal(t, Plan{ID: "3-2Y", ServiceID: "3", Name: "inventory-pro", Price: 8999, Years: 2}, plans[1])
}

func TestClient_ApplyPromo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid code", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/Promo/Apply", r.URL.Path)
			_, _ = w.Write([]byte(`{"success":true,"discountValue":500}`))
		}))

		result, err := c.ApplyPromo(ctx, "LAUNCH500")
		require.NoError(t, err)
		assert.EqualValues(t, 500, result.DiscountValue)
	})

	t.Run("rejected code is an error", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success":false}`))
		}))

		_, err := c.ApplyPromo(ctx, "NOPE")
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	})
}

// Package api is a typed client for the Track Inventory REST backend. The
// backend is an opaque collaborator: this package only knows request and
// response shapes, decodes them tolerantly, and never retries on its own.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/trackinventory/trackinventory/internal/httputil"
	"github.com/trackinventory/trackinventory/internal/tripper"
	"github.com/trackinventory/trackinventory/internal/version"
)

const maxResponseBytes = 4 << 20

// A TokenSource supplies the current bearer token for outbound requests.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc wraps a function in a TokenSource interface.
type TokenSourceFunc func() string

// Token calls the underlying function.
func (f TokenSourceFunc) Token() string { return f() }

// Client calls the Track Inventory backend.
type Client struct {
	baseURL *url.URL
	hc      *http.Client
}

// An Option customizes the client.
type Option func(*options)

type options struct {
	transport http.RoundTripper
	tokens    TokenSource
}

// WithTransport sets the base round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithTokenSource sets the bearer-token source attached to every request that
// does not already carry an Authorization header.
func WithTokenSource(src TokenSource) Option {
	return func(o *options) { o.tokens = src }
}

// New creates a backend client rooted at baseURL.
func New(baseURL *url.URL, opts ...Option) *Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	chain := tripper.NewChain()
	if o.tokens != nil {
		chain = tripper.NewChain(bearerTripper(o.tokens))
	}
	rt := chain.Then(httputil.NewLoggingRoundTripper(o.transport))

	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Transport: rt},
	}
}

// bearerTripper injects the current session token into outbound requests,
// leaving any explicitly set Authorization header alone.
func bearerTripper(src TokenSource) tripper.Constructor {
	return func(next http.RoundTripper) http.RoundTripper {
		return tripper.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("Authorization") == "" {
				if token := src.Token(); token != "" {
					req = req.Clone(req.Context())
					req.Header.Set("Authorization", "Bearer "+token)
				}
			}
			return next.RoundTrip(req)
		})
	}
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	bearer string // overrides the token source when set
}

// do performs one backend request and returns the raw response body.
// Non-2xx responses decode into *Error.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	u := c.baseURL.ResolveReference(&url.URL{Path: c.baseURL.Path + r.path})
	if r.query != nil {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("api: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+r.bearer)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}

	if res.StatusCode/100 != 2 {
		apiErr := &Error{StatusCode: res.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &payload); err == nil {
			apiErr.Message = payload.Message
		}
		return nil, apiErr
	}

	return data, nil
}

// doJSON performs one backend request and decodes the response into out when
// out is non-nil.
func (c *Client) doJSON(ctx context.Context, r request, out any) error {
	data, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

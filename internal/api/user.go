package api

import (
	"context"
	"net/http"

	"github.com/trackinventory/trackinventory/internal/sessions"
)

// FetchProfile retrieves the caller's profile using an explicit bearer token,
// so that a response can always be attributed to the token that requested it.
// It implements sessions.ProfileFetcher.
func (c *Client) FetchProfile(ctx context.Context, token string) (*sessions.User, error) {
	data, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/User/GetUserDetails",
		bearer: token,
	})
	if err != nil {
		return nil, err
	}
	return sessions.DecodeUser(data)
}

// CreateUpdateUser saves profile edits.
func (c *Client) CreateUpdateUser(ctx context.Context, user *sessions.User) (*sessions.User, error) {
	data, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/User/CreateUpdate",
		body:   user,
	})
	if err != nil {
		return nil, err
	}
	updated, err := sessions.DecodeUser(data)
	if err != nil {
		// some deployments return an empty body on success
		return nil, nil
	}
	return updated, nil
}

// SaveBusinessDetails stores the business profile collected during
// onboarding.
func (c *Client) SaveBusinessDetails(ctx context.Context, details *sessions.Business) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/User/BusinessDetails",
		body: map[string]any{
			"Name":       details.Name,
			"CategoryId": details.CategoryID,
			"Country":    details.Country,
			"State":      details.State,
			"Address1":   details.Address1,
			"Address2":   details.Address2,
			"ZipCode":    details.ZipCode,
		},
	})
	return err
}

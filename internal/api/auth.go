package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/trackinventory/trackinventory/internal/sessions"
)

// sourceWeb identifies this client to the backend's login endpoint.
const sourceWeb = 2

// LoginResult is a successful authentication: a bearer token, always, and
// whatever profile the backend chose to include.
type LoginResult struct {
	Token string
	User  *sessions.User
}

// Login authenticates with email and password. A response without a token is
// a failed login regardless of status code.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	data, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/User/Login",
		body: map[string]any{
			"email":    email,
			"password": password,
			"source":   sourceWeb,
		},
	})
	if err != nil {
		return nil, err
	}
	return decodeLoginResult(data)
}

func decodeLoginResult(data []byte) (*LoginResult, error) {
	var raw struct {
		AccessToken string          `json:"accessToken"`
		Token       string          `json:"token"`
		User        json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	token := raw.AccessToken
	if token == "" {
		token = raw.Token
	}
	if token == "" {
		return nil, ErrMissingToken
	}

	result := &LoginResult{Token: token}
	if len(raw.User) > 0 && string(raw.User) != "null" {
		user, err := sessions.DecodeUser(raw.User)
		if err == nil {
			// the profile is a convenience; the authoritative copy comes from
			// the profile fetch
			result.User = user
		}
	}
	return result, nil
}

// SignUpRequest registers a new account.
type SignUpRequest struct {
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password"`
}

// SignUp creates an account. The backend follows up with an OTP to the given
// address.
func (c *Client) SignUp(ctx context.Context, req *SignUpRequest) error {
	body := map[string]any{
		"email":        req.Email,
		"firstName":    req.FirstName,
		"lastName":     req.LastName,
		"mobileNumber": req.MobileNumber,
		"password":     req.Password,
		"id":           "-1", // backend convention for "create"
	}
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/User/SignUp", body: body})
	return err
}

// SendOTP asks the backend to issue a one-time passcode.
func (c *Client) SendOTP(ctx context.Context, sentTo string, isEmail bool) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/OTP/SendOTP",
		body: map[string]any{
			"sentTo":  sentTo,
			"isEmail": isEmail,
		},
	})
	return err
}

// VerifyOTP verifies a one-time passcode. On success the backend returns a
// usable token directly, so no credential ever needs to be replayed.
func (c *Client) VerifyOTP(ctx context.Context, code, sentTo string, isEmail bool) (*LoginResult, error) {
	data, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/OTP/VerifyOTP",
		body: map[string]any{
			"inputotp": code,
			"isEmail":  isEmail,
			"sentTo":   sentTo,
		},
	})
	if err != nil {
		return nil, err
	}
	return decodeLoginResult(data)
}

// ResetPassword sets a new password after an OTP-verified reset.
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/User/ResetPassword",
		body: map[string]any{
			"email":       email,
			"newPassword": newPassword,
		},
	})
	return err
}

// ChangePassword changes the signed-in user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/User/ChangePassword",
		body: map[string]any{
			"oldPassword": oldPassword,
			"newPassword": newPassword,
		},
	})
	return err
}

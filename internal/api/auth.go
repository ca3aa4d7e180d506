package api

import (
	"context"
	"errors"
	"net/http"
)

// Login exchanges credentials for a bearer token. On success the token is
// recorded in the session; on failure the session is left untouched and the
// backend's message ("Invalid credentials" on a 401) is returned as *Error.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password required")
	}

	body := map[string]string{
		"username": username,
		"password": password,
	}
	var payload LoginResponse
	if err := c.request(ctx, http.MethodPost, "/admin/login", nil, body, &payload); err != nil {
		return nil, err
	}
	if payload.AccessToken == "" {
		return nil, errors.New("login response missing access token")
	}

	if err := c.session.SetToken(payload.AccessToken, payload.Admin.Username); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Logout discards the stored bearer token. The backend keeps no server-side
// session, so this is purely a client-side operation.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// Authenticated reports whether the client currently holds a bearer token.
func (c *Client) Authenticated() bool {
	return c.session.Authenticated()
}

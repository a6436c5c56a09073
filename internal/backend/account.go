package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/greenbasket/storefront/internal/entities"
)

// Session is an authenticated backend session.
type Session struct {
	Token string        `json:"token"`
	User  entities.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session and installs its token on
// the client.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	u := fmt.Sprintf("%s/v1/account/sessions", c.baseURL)

	body, err := c.doJSON(ctx, http.MethodPost, u, loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var session Session
	if err := decode(body, &session); err != nil {
		return nil, err
	}

	c.SetSessionToken(session.Token)
	return &session, nil
}

// Logout revokes the current session and clears the installed token.
// A backend that no longer knows the session is treated as logged out.
func (c *Client) Logout(ctx context.Context) error {
	u := fmt.Sprintf("%s/v1/account/sessions/current", c.baseURL)

	_, err := c.doWithRetry(ctx, http.MethodDelete, u, nil)
	c.SetSessionToken("")
	if err == ErrUnauthorized || err == ErrNotFound {
		return nil
	}
	return err
}

// Me returns the account behind the installed session token.
// ErrUnauthorized means no valid session is installed.
func (c *Client) Me(ctx context.Context) (*entities.User, error) {
	u := fmt.Sprintf("%s/v1/account/me", c.baseURL)

	body, err := c.doWithRetry(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var user entities.User
	if err := decode(body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

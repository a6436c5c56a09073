package backend

import (
	"context"
	"errors"
	"log"

	"github.com/greenbasket/storefront/internal/entities"
)

// AuthClient answers "who is signed in" for the stores. It implements
// the AuthOracle interface defined in internal/wishlist/store.go.
type AuthClient struct {
	client   *Client
	loginURL string
}

func NewAuthClient(client *Client, loginURL string) *AuthClient {
	return &AuthClient{client: client, loginURL: loginURL}
}

// CurrentUser returns the signed-in account, or nil when no valid
// session is installed. Only transport and server failures are errors.
func (a *AuthClient) CurrentUser(ctx context.Context) (*entities.User, error) {
	user, err := a.client.Me(ctx)
	if errors.Is(err, ErrUnauthorized) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// RedirectToLogin records that a signed-out visitor tried a
// members-only action. The HTTP layer turns the resulting sentinel
// into a redirect to the hosted login page.
func (a *AuthClient) RedirectToLogin() {
	log.Printf("Auth: sign-in required, redirecting to %s", a.loginURL)
}

// LoginURL is the hosted sign-in page visitors are sent to.
func (a *AuthClient) LoginURL() string {
	return a.loginURL
}

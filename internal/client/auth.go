package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/storefront/internal/constants"
	internalhttp "github.com/fivetwenty-io/storefront/internal/http"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

// AuthClient implements storefront.AuthClient. It is the only writer of the
// session store besides the caller.
type AuthClient struct {
	httpClient *internalhttp.Client
	session    storefront.SessionStore
}

// NewAuthClient creates a new auth client.
func NewAuthClient(httpClient *internalhttp.Client, session storefront.SessionStore) *AuthClient {
	return &AuthClient{
		httpClient: httpClient,
		session:    session,
	}
}

// Login implements storefront.AuthClient.Login. On success the returned
// token becomes the session token.
func (c *AuthClient) Login(ctx context.Context, request *storefront.LoginRequest) (*storefront.LoginResponse, error) {
	if request == nil || request.Email == "" {
		return nil, storefront.NewInvalidError(constants.ErrEmptyEmail)
	}

	if request.Password == "" {
		return nil, storefront.NewInvalidError(constants.ErrEmptyPassword)
	}

	resp, err := c.httpClient.Do(ctx, &storefront.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   request,
	})
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	var login storefront.LoginResponse

	err = json.Unmarshal(resp.Body, &login)
	if err != nil {
		return nil, storefront.NewDecodeError(fmt.Errorf("parsing login response: %w", err), resp.Body)
	}

	if login.Token == "" {
		return nil, storefront.NewDecodeError(constants.ErrNotAuthenticated, resp.Body)
	}

	c.session.SetToken(login.Token)

	return &login, nil
}

// Logout implements storefront.AuthClient.Logout. The local session is
// cleared even when the backend call fails.
func (c *AuthClient) Logout(ctx context.Context) error {
	defer c.session.Clear()

	if !c.session.Authenticated() {
		return nil
	}

	_, err := c.httpClient.Post(ctx, "/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("logging out: %w", err)
	}

	return nil
}

// Me implements storefront.AuthClient.Me.
func (c *AuthClient) Me(ctx context.Context) (*storefront.User, error) {
	if !c.session.Authenticated() {
		return nil, storefront.NewInvalidError(storefront.ErrNotAuthenticated)
	}

	user, err := fetchOnce[storefront.User](ctx, c.httpClient, "/auth/me", nil, true)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	return &user, nil
}

package sfclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/storefront/internal/client"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

// New creates a new storefront client. A scheme-less endpoint defaults to
// https.
func New(ctx context.Context, config *storefront.Config) (storefront.Client, error) {
	if config == nil {
		return nil, storefront.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, storefront.ErrAPIEndpointRequired
	}

	normalized := *config
	normalized.APIEndpoint = normalizeEndpoint(config.APIEndpoint)

	sfClient, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return sfClient, nil
}

// NewWithSession creates a client around an existing session store, so
// several clients (or a client and its hooks) share one token.
func NewWithSession(ctx context.Context, config *storefront.Config, session storefront.SessionStore) (storefront.Client, error) {
	if config == nil {
		return nil, storefront.ErrConfigRequired
	}

	normalized := *config
	normalized.APIEndpoint = normalizeEndpoint(config.APIEndpoint)

	sfClient, err := client.NewWithSession(ctx, &normalized, session)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return sfClient, nil
}

// NewWithEndpoint creates an unauthenticated client.
func NewWithEndpoint(ctx context.Context, endpoint string) (storefront.Client, error) {
	return New(ctx, &storefront.Config{APIEndpoint: endpoint})
}

// NewWithToken creates a client whose session starts with token.
func NewWithToken(ctx context.Context, endpoint, token string) (storefront.Client, error) {
	return New(ctx, &storefront.Config{APIEndpoint: endpoint, AccessToken: token})
}

// NewWithPassword creates a client and logs in with email and password.
func NewWithPassword(ctx context.Context, endpoint, email, password string) (storefront.Client, error) {
	sfClient, err := NewWithEndpoint(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	_, err = sfClient.Auth().Login(ctx, &storefront.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	return sfClient, nil
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

package client

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fivetwenty-io/storefront/internal/auth"
	"github.com/fivetwenty-io/storefront/internal/constants"
	"github.com/fivetwenty-io/storefront/internal/http"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

// Client implements the storefront.Client interface.
type Client struct {
	httpClient *http.Client
	session    storefront.SessionStore
	cache      storefront.Cache
	baseURL    string
	logger     storefront.Logger

	// Resource clients
	products   storefront.ProductsClient
	brands     storefront.BrandsClient
	categories storefront.CategoriesClient
	services   storefront.ServicesClient
	courses    storefront.CoursesClient
	bookings   storefront.BookingsClient
	auth       storefront.AuthClient
}

// New creates a new storefront client with a session store seeded from
// config.AccessToken.
func New(ctx context.Context, config *storefront.Config) (*Client, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	return NewWithSession(ctx, config, auth.NewSessionStore(config.AccessToken))
}

// NewWithSession creates a new storefront client around an existing session
// store, e.g. one shared with other clients or persisted by the CLI.
func NewWithSession(ctx context.Context, config *storefront.Config, session storefront.SessionStore) (*Client, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	if session == nil {
		session = auth.NewSessionStore(config.AccessToken)
	}

	httpOpts, cache, err := createHTTPClientOptions(ctx, config)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(config.APIEndpoint, "/")
	httpClient := http.NewClient(baseURL, session, httpOpts...)

	logger := config.Logger
	if logger == nil {
		logger = storefront.NoopLogger{}
	}

	client := &Client{
		httpClient: httpClient,
		session:    session,
		cache:      cache,
		baseURL:    baseURL,
		logger:     logger,
	}

	// Initialize resource clients
	client.initializeResourceClients()

	return client, nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(ctx context.Context, config *storefront.Config) ([]http.Option, storefront.Cache, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	var cache storefront.Cache

	if config.Cache != nil {
		var err error

		cache, err = storefront.NewCacheFromConfig(ctx, config.Cache)
		if err != nil {
			return nil, nil, fmt.Errorf("creating cache: %w", err)
		}

		if cache != nil {
			httpOpts = append(httpOpts, http.WithCache(cache, config.Cache.CacheOptionsOrDefault()))
		}
	}

	return httpOpts, cache, nil
}

func (c *Client) initializeResourceClients() {
	c.products = NewProductsClient(c.httpClient)
	c.brands = NewBrandsClient(c.httpClient)
	c.categories = NewCategoriesClient(c.httpClient)
	c.services = NewServicesClient(c.httpClient)
	c.courses = NewCoursesClient(c.httpClient)
	c.bookings = NewBookingsClient(c.httpClient)
	c.auth = NewAuthClient(c.httpClient, c.session)
}

// BaseURL returns the normalized API endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Cache returns the response cache, or nil when caching is off.
func (c *Client) Cache() storefront.Cache {
	return c.cache
}

// Close releases the response cache when it holds a connection, such as a
// NATS bucket. The client must not be used afterwards.
func (c *Client) Close() error {
	closer, ok := c.cache.(io.Closer)
	if !ok {
		return nil
	}

	err := closer.Close()
	if err != nil {
		return fmt.Errorf("closing cache: %w", err)
	}

	return nil
}

// Resource client accessors

// Products implements storefront.Client.Products.
func (c *Client) Products() storefront.ProductsClient {
	return c.products
}

// Brands implements storefront.Client.Brands.
func (c *Client) Brands() storefront.BrandsClient {
	return c.brands
}

// Categories implements storefront.Client.Categories.
func (c *Client) Categories() storefront.CategoriesClient {
	return c.categories
}

// Services implements storefront.Client.Services.
func (c *Client) Services() storefront.ServicesClient {
	return c.services
}

// Courses implements storefront.Client.Courses.
func (c *Client) Courses() storefront.CoursesClient {
	return c.courses
}

// Bookings implements storefront.Client.Bookings.
func (c *Client) Bookings() storefront.BookingsClient {
	return c.bookings
}

// Auth implements storefront.Client.Auth.
func (c *Client) Auth() storefront.AuthClient {
	return c.auth
}

// Session implements storefront.Client.Session.
func (c *Client) Session() storefront.SessionStore {
	return c.session
}

// Transport implements storefront.Client.Transport.
func (c *Client) Transport() storefront.Transport {
	return c.httpClient
}

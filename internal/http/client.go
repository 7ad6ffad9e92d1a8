// Package http implements the storefront transport on top of
// go-retryablehttp.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/storefront/internal/constants"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

// TokenSource supplies the current session token. An empty token means
// unauthenticated.
type TokenSource interface {
	Token() string
}

// Client is the HTTP transport. It implements storefront.Transport.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokens       TokenSource
	userAgent    string
	logger       storefront.Logger
	debug        bool
	interceptors *storefront.InterceptorChain
	cache        storefront.Cache
	cacheOptions *storefront.CacheOptions
}

// Option configures the HTTP client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger storefront.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables retries. Only connection errors, 429 and 5xx
// responses are retried.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = retryWaitMin
		c.httpClient.RetryWaitMax = retryWaitMax
	}
}

// WithTimeout bounds each call, retries included.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient.HTTPClient = client
		}
	}
}

// WithInterceptors runs chain around every request.
func WithInterceptors(chain *storefront.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithCache serves unauthenticated GETs from cache while entries are fresh.
func WithCache(cache storefront.Cache, options *storefront.CacheOptions) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheOptions = options
	}
}

// NewClient creates a new HTTP client. tokens may be nil for a client that
// never attaches credentials.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = 0

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: retryClient,
		tokens:     tokens,
		userAgent:  constants.DefaultUserAgent,
		logger:     storefront.NoopLogger{},
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.debug && client.httpClient.RetryMax > 0 {
		client.httpClient.Logger = leveledLogger{logger: client.logger}
	}

	if client.cache != nil && client.cacheOptions == nil {
		client.cacheOptions = storefront.DefaultCacheOptions()
	}

	return client
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes req. A non-2xx response is returned together with a KindHTTP
// *storefront.Error.
func (c *Client) Do(ctx context.Context, req *storefront.Request) (*storefront.Response, error) {
	if req == nil || strings.TrimSpace(req.Path) == "" {
		return nil, storefront.NewInvalidError(storefront.ErrPathRequired)
	}

	if c.interceptors != nil {
		err := c.interceptors.ExecuteRequestInterceptors(ctx, req)
		if err != nil {
			return nil, storefront.NewInvalidError(err)
		}
	}

	fullURL := c.buildURL(req)

	cacheKey := ""
	if c.cacheable(req) {
		cacheKey = requestCacheKey(req, fullURL)
	}

	if cacheKey != "" && !req.NoCache {
		entry, err := c.cache.Get(ctx, cacheKey)
		if err == nil {
			resp := &storefront.Response{StatusCode: http.StatusOK, Body: entry.Data, Cached: true}
			c.runResponseInterceptors(ctx, req, resp)

			return resp, nil
		}
	}

	httpReq, err := c.newRequest(ctx, req, fullURL)
	if err != nil {
		return nil, err
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     req.Method,
			"url":        fullURL,
			"auth":       httpReq.Header.Get(constants.HeaderAuthorization) != "",
			"request_id": httpReq.Header.Get(constants.HeaderRequestID),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		sfErr := c.transportError(ctx, err)
		sfErr.Method = req.Method
		sfErr.Path = req.Path

		c.runResponseInterceptors(ctx, req, &storefront.Response{Error: sfErr})

		return nil, sfErr
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		sfErr := c.transportError(ctx, fmt.Errorf("reading response body: %w", err))
		sfErr.Method = req.Method
		sfErr.Path = req.Path

		return nil, sfErr
	}

	resp := &storefront.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": httpResp.StatusCode,
			"duration":    time.Since(start).String(),
			"size":        len(body),
		})
	}

	if httpResp.StatusCode < constants.HTTPStatusOK || httpResp.StatusCode >= constants.HTTPStatusMultipleChoices {
		sfErr := storefront.NewHTTPError(httpResp.StatusCode, body)
		sfErr.Method = req.Method
		sfErr.Path = req.Path
		resp.Error = sfErr

		c.runResponseInterceptors(ctx, req, resp)

		return resp, sfErr
	}

	if cacheKey != "" {
		c.store(ctx, cacheKey, resp)
	}

	if req.Method != http.MethodGet && c.cache != nil {
		c.invalidate(ctx, req.Path)
	}

	c.runResponseInterceptors(ctx, req, resp)

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query storefront.QueryParams, withAuth bool) (*storefront.Response, error) {
	values, err := query.Values()
	if err != nil {
		return nil, storefront.NewInvalidError(err)
	}

	if len(values) == 0 {
		values = nil
	}

	return c.Do(ctx, &storefront.Request{
		Method:   http.MethodGet,
		Path:     path,
		Query:    values,
		WithAuth: withAuth,
	})
}

// Post performs an authenticated POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*storefront.Response, error) {
	return c.Do(ctx, &storefront.Request{Method: http.MethodPost, Path: path, Body: body, WithAuth: true})
}

// Put performs an authenticated PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*storefront.Response, error) {
	return c.Do(ctx, &storefront.Request{Method: http.MethodPut, Path: path, Body: body, WithAuth: true})
}

// Patch performs an authenticated PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*storefront.Response, error) {
	return c.Do(ctx, &storefront.Request{Method: http.MethodPatch, Path: path, Body: body, WithAuth: true})
}

// Delete performs an authenticated DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*storefront.Response, error) {
	return c.Do(ctx, &storefront.Request{Method: http.MethodDelete, Path: path, WithAuth: true})
}

// InvalidateCache drops every cached response.
func (c *Client) InvalidateCache(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}

	return c.cache.Clear(ctx)
}

func (c *Client) buildURL(req *storefront.Request) string {
	path := req.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	fullURL := c.baseURL + path

	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	return fullURL
}

func (c *Client) newRequest(ctx context.Context, req *storefront.Request, fullURL string) (*retryablehttp.Request, error) {
	var body interface{}

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, storefront.NewInvalidError(fmt.Errorf("marshaling request body: %w", err))
		}

		body = bytes.NewReader(data)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, storefront.NewInvalidError(fmt.Errorf("creating request: %w", err))
	}

	httpReq.Header.Set(constants.HeaderAccept, constants.ContentTypeJSON)
	httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)
	httpReq.Header.Set(constants.HeaderRequestID, uuid.NewString())

	if req.Body != nil {
		httpReq.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if req.WithAuth && c.tokens != nil {
		token := c.tokens.Token()
		if token != "" {
			httpReq.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
		}
	}

	return httpReq, nil
}

func (c *Client) transportError(ctx context.Context, err error) *storefront.Error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return storefront.NewCanceledError(ctxErr)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return storefront.NewCanceledError(err)
	}

	return storefront.NewNetworkError(err)
}

func (c *Client) cacheable(req *storefront.Request) bool {
	if c.cache == nil || req.Method != http.MethodGet || req.WithAuth {
		return false
	}

	if len(c.cacheOptions.CachePaths) == 0 {
		return true
	}

	for _, prefix := range c.cacheOptions.CachePaths {
		if strings.HasPrefix(req.Path, prefix) {
			return true
		}
	}

	return false
}

// requestCacheKey identifies a cached response by method, URL and the
// request headers set by interceptors, so brands never share entries.
func requestCacheKey(req *storefront.Request, fullURL string) string {
	var key strings.Builder

	key.WriteString(req.Method)
	key.WriteString(" ")
	key.WriteString(fullURL)

	names := make([]string, 0, len(req.Headers))
	for name := range req.Headers {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	for _, name := range names {
		key.WriteString("|")
		key.WriteString(strings.ToLower(name))
		key.WriteString("=")
		key.WriteString(req.Headers[name])
	}

	return key.String()
}

// resourcePrefix is the cache key prefix shared by every GET under the
// first segment of path: /products/p-1 maps onto "GET <base>/products".
func (c *Client) resourcePrefix(path string) string {
	segment := strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(segment, "/?"); i >= 0 {
		segment = segment[:i]
	}

	return http.MethodGet + " " + c.baseURL + "/" + segment
}

// invalidate drops cached reads of the resource a successful write touched.
// Caches that cannot drop by prefix are cleared.
func (c *Client) invalidate(ctx context.Context, path string) {
	var err error

	if scoped, ok := c.cache.(storefront.ScopedCache); ok {
		err = scoped.DeletePrefix(ctx, c.resourcePrefix(path))
	} else {
		err = c.cache.Clear(ctx)
	}

	if err != nil {
		c.logger.Warn("cache invalidation failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
}

func (c *Client) store(ctx context.Context, key string, resp *storefront.Response) {
	entry := &storefront.CacheEntry{
		Data: resp.Body,
		ETag: resp.Headers.Get(constants.HeaderETag),
	}

	if c.cacheOptions.TTL > 0 {
		entry.ExpiresAt = time.Now().Add(c.cacheOptions.TTL)
	}

	err := c.cache.Set(ctx, key, entry)
	if err != nil {
		c.logger.Warn("cache store failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (c *Client) runResponseInterceptors(ctx context.Context, req *storefront.Request, resp *storefront.Response) {
	if c.interceptors == nil {
		return
	}

	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{
			"path":  req.Path,
			"error": err.Error(),
		})
	}
}

package client

import (
	"context"
	"fmt"
	"strings"

	internalhttp "github.com/fivetwenty-io/storefront/internal/http"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

// resourceClient implements storefront.ResourceClient for one collection on
// top of the fetch and mutation hooks. Reads are authenticated only when
// readAuth is set; writes always are.
type resourceClient[T, L, C, U any] struct {
	httpClient *internalhttp.Client
	path       string
	singular   string
	plural     string
	readAuth   bool

	creator *storefront.Creator[*C, T]
	updater *storefront.Updater[*U, T]
	deleter *storefront.Deleter
}

func newResourceClient[T, L, C, U any](httpClient *internalhttp.Client, path, singular, plural string, readAuth bool) *resourceClient[T, L, C, U] {
	// The hooks only fail on a nil transport or an empty path, and both are
	// fixed here.
	creator, _ := storefront.NewCreator[*C, T](httpClient, path)
	updater, _ := storefront.NewUpdater[*U, T](httpClient, path)
	deleter, _ := storefront.NewDeleter(httpClient, path)

	return &resourceClient[T, L, C, U]{
		httpClient: httpClient,
		path:       path,
		singular:   singular,
		plural:     plural,
		readAuth:   readAuth,
		creator:    creator,
		updater:    updater,
		deleter:    deleter,
	}
}

// List returns one page of the collection.
func (c *resourceClient[T, L, C, U]) List(ctx context.Context, params storefront.QueryParams) (*L, error) {
	list, err := fetchOnce[L](ctx, c.httpClient, c.path, params, c.readAuth)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.plural, err)
	}

	return &list, nil
}

// Get returns one resource by id.
func (c *resourceClient[T, L, C, U]) Get(ctx context.Context, id string) (*T, error) {
	if strings.TrimSpace(id) == "" {
		return nil, storefront.NewInvalidError(storefront.ErrIDRequired)
	}

	resource, err := fetchOnce[T](ctx, c.httpClient, storefront.JoinPath(c.path, id), nil, c.readAuth)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", c.singular, err)
	}

	return &resource, nil
}

// Create creates a resource.
func (c *resourceClient[T, L, C, U]) Create(ctx context.Context, request *C) (*T, error) {
	resource, err := c.creator.Execute(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.singular, err)
	}

	return &resource, nil
}

// Update patches a resource.
func (c *resourceClient[T, L, C, U]) Update(ctx context.Context, id string, request *U) (*T, error) {
	resource, err := c.updater.Execute(ctx, id, request)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", c.singular, err)
	}

	return &resource, nil
}

// Delete removes a resource. Any 2xx response is success and its body is
// ignored.
func (c *resourceClient[T, L, C, U]) Delete(ctx context.Context, id string) error {
	err := c.deleter.Execute(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", c.singular, err)
	}

	return nil
}

// fetchOnce runs a single GET through a lazy Fetcher and closes it.
func fetchOnce[T any](ctx context.Context, transport storefront.Transport, path string, params storefront.QueryParams, withAuth bool) (T, error) {
	var zero T

	fetcher, err := storefront.NewFetcher[T](ctx, transport, path,
		storefront.WithLazy(), storefront.WithQuery(params), storefront.WithAuth(withAuth))
	if err != nil {
		return zero, storefront.NewInvalidError(err)
	}
	defer fetcher.Close()

	return fetcher.Refetch(ctx)
}

package storefront

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/storefront/internal/constants"
)

// PageFunc fetches one page for params.
type PageFunc[T any] func(ctx context.Context, params QueryParams) (Page[T], error)

// ListPages adapts a resource client's List method to a PageFunc.
func ListPages[T any, L Page[T]](list func(ctx context.Context, params QueryParams) (*L, error)) PageFunc[T] {
	return func(ctx context.Context, params QueryParams) (Page[T], error) {
		page, err := list(ctx, params)
		if err != nil {
			return nil, err
		}

		return *page, nil
	}
}

// PaginationIterator walks a paginated collection one page at a time.
type PaginationIterator[T any] struct {
	fetch   PageFunc[T]
	params  QueryParams
	page    int
	done    bool
	fetched int
}

// NewPaginationIterator starts at the page in params, or page 1.
func NewPaginationIterator[T any](fetch PageFunc[T], params QueryParams) *PaginationIterator[T] {
	params = params.Clone()
	if params == nil {
		params = NewQueryParams()
	}

	page := 1
	if value, ok := params["page"].(int); ok && value > 0 {
		page = value
	}

	if _, ok := params["limit"]; !ok {
		params.WithLimit(constants.StandardPageSize)
	}

	return &PaginationIterator[T]{fetch: fetch, params: params, page: page}
}

// HasNext reports whether Next may return more items.
func (it *PaginationIterator[T]) HasNext() bool {
	return !it.done
}

// Next fetches the next page.
func (it *PaginationIterator[T]) Next(ctx context.Context) ([]T, error) {
	if it.done {
		return nil, ErrNoMorePages
	}

	if it.fetched >= constants.MaxPages {
		it.done = true

		return nil, fmt.Errorf("%w: stopped after %d pages", ErrNoMorePages, constants.MaxPages)
	}

	page, err := it.fetch(ctx, it.params.Clone().WithPage(it.page))
	if err != nil {
		return nil, err
	}

	it.fetched++

	items := page.Items()
	if !page.PageInfo().Next() || len(items) == 0 {
		it.done = true
	}

	it.page++

	return items, nil
}

// FetchAllPages collects every item of a collection, following
// pagination.totalPages.
func FetchAllPages[T any](ctx context.Context, fetch PageFunc[T], params QueryParams) ([]T, error) {
	iterator := NewPaginationIterator(fetch, params)

	var all []T

	for iterator.HasNext() {
		items, err := iterator.Next(ctx)
		if err != nil {
			return all, err
		}

		all = append(all, items...)
	}

	return all, nil
}

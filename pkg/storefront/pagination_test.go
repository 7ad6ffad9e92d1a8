package storefront_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

// pagedProducts serves total products split into pages of the requested limit.
func pagedProducts(total int, seen *[]storefront.QueryParams) func(context.Context, storefront.QueryParams) (*storefront.ProductList, error) {
	return func(_ context.Context, params storefront.QueryParams) (*storefront.ProductList, error) {
		*seen = append(*seen, params)

		page, _ := params["page"].(int)
		limit, _ := params["limit"].(int)
		totalPages := (total + limit - 1) / limit

		list := &storefront.ProductList{
			Pagination: storefront.Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages},
		}

		for i := (page - 1) * limit; i < total && i < page*limit; i++ {
			list.Products = append(list.Products, storefront.Product{Resource: storefront.Resource{ID: string(rune('a' + i))}})
		}

		return list, nil
	}
}

func TestFetchAllPages(t *testing.T) {
	t.Parallel()

	var seen []storefront.QueryParams

	params := storefront.NewQueryParams().WithLimit(2).WithFilter("brand", "acme")

	products, err := storefront.FetchAllPages(context.Background(),
		storefront.ListPages[storefront.Product](pagedProducts(5, &seen)), params)
	require.NoError(t, err)
	require.Len(t, products, 5)
	assert.Equal(t, "e", products[4].ID)

	require.Len(t, seen, 3)
	assert.Equal(t, "acme", seen[2]["brand"])
	assert.NotContains(t, params, "page", "caller params are not mutated")
}

func TestPaginationIterator(t *testing.T) {
	t.Parallel()

	var seen []storefront.QueryParams

	iterator := storefront.NewPaginationIterator(
		storefront.ListPages[storefront.Product](pagedProducts(3, &seen)),
		storefront.NewQueryParams().WithPage(2).WithLimit(2))

	require.True(t, iterator.HasNext())

	items, err := iterator.Next(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.False(t, iterator.HasNext())

	_, err = iterator.Next(context.Background())
	require.ErrorIs(t, err, storefront.ErrNoMorePages)
}

func TestPaginationIterator_DefaultsAndErrors(t *testing.T) {
	t.Parallel()

	var seen []storefront.QueryParams

	iterator := storefront.NewPaginationIterator(storefront.ListPages[storefront.Product](pagedProducts(0, &seen)), nil)

	items, err := iterator.Next(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.False(t, iterator.HasNext())
	assert.Equal(t, 1, seen[0]["page"])
	assert.Equal(t, 20, seen[0]["limit"])

	boom := errors.New("boom")
	failing := storefront.NewPaginationIterator(storefront.ListPages[storefront.Product](
		func(context.Context, storefront.QueryParams) (*storefront.ProductList, error) { return nil, boom }), nil)

	_, err = failing.Next(context.Background())
	require.ErrorIs(t, err, boom)
	assert.True(t, failing.HasNext())
}

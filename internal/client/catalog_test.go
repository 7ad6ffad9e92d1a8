package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/storefront/internal/client"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

func TestProductsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/products", request.URL.Path)
		assert.Equal(t, "GET", request.Method)
		assert.Equal(t, "brand=acme&limit=2&page=1", request.URL.RawQuery)
		checkAuth(t, request, false)

		response := storefront.ProductList{
			Products: []storefront.Product{
				{Resource: storefront.Resource{ID: "p-1"}, Name: "Matcha Latte", Price: 4.5},
				{Resource: storefront.Resource{ID: "p-2"}, Name: "Hojicha", Price: 4},
			},
			Pagination: storefront.Pagination{Page: 1, Limit: 2, Total: 2, TotalPages: 1},
		}

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	sfClient := newTestClient(t, server)

	params := storefront.NewQueryParams().WithPage(1).WithLimit(2).WithFilter("brand", "acme")

	list, err := sfClient.Products().List(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, list.Products, 2)
	assert.Equal(t, "Matcha Latte", list.Products[0].Name)
	assert.Equal(t, 1, list.Pagination.TotalPages)
}

func TestProductsClient_ListEmptyQuery(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/products", request.RequestURI)
		_, _ = writer.Write([]byte(`{"products":[],"pagination":{"page":1,"limit":20,"total":0,"totalPages":0}}`))
	}))
	defer server.Close()

	list, err := newTestClient(t, server).Products().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, list.Products)
}

func TestProductsClient_ListDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`<html>oops</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server).Products().List(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, storefront.IsKind(err, storefront.KindDecode))
}

func TestProductsClient_Get(t *testing.T) {
	t.Parallel()

	tests := []TestGetOperation[storefront.Product]{
		{
			Name:         "existing product",
			ID:           "p-1",
			ExpectedPath: "/products/p-1",
			StatusCode:   http.StatusOK,
			Response:     &storefront.Product{Resource: storefront.Resource{ID: "p-1"}, Name: "Matcha Latte"},
		},
		{
			Name:         "missing product",
			ID:           "missing",
			ExpectedPath: "/products/missing",
			StatusCode:   http.StatusNotFound,
			WantErr:      true,
			ErrMessage:   "Resource not found",
		},
		{
			Name:       "empty id",
			ID:         "",
			WantErr:    true,
			ErrMessage: "resource id is required",
		},
	}

	RunGetTests(t, tests, func(c *client.Client) func(context.Context, string) (*storefront.Product, error) {
		return c.Products().Get
	})
}

func TestProductsClient_Create(t *testing.T) {
	t.Parallel()

	tests := []TestCreateOperation[storefront.ProductCreateRequest, storefront.Product]{
		{
			Name:         "create product",
			Request:      &storefront.ProductCreateRequest{Name: "Matcha Latte", Price: 4.5, Stock: 10},
			ExpectedPath: "/products",
			StatusCode:   http.StatusCreated,
			Response:     &storefront.Product{Resource: storefront.Resource{ID: "p-1"}, Name: "Matcha Latte"},
		},
		{
			Name:         "validation error",
			Request:      &storefront.ProductCreateRequest{},
			ExpectedPath: "/products",
			StatusCode:   http.StatusUnprocessableEntity,
			Response:     map[string]interface{}{"errors": []map[string]string{{"message": "name is required"}}},
			WantErr:      true,
			ErrMessage:   "name is required",
		},
	}

	RunCreateTests(t, tests, func(c *client.Client) func(context.Context, *storefront.ProductCreateRequest) (*storefront.Product, error) {
		return c.Products().Create
	})
}

func TestProductsClient_Update(t *testing.T) {
	t.Parallel()

	price := 5.0

	tests := []TestUpdateOperation[storefront.ProductUpdateRequest, storefront.Product]{
		{
			Name:         "update price",
			ID:           "p-1",
			Request:      &storefront.ProductUpdateRequest{Price: &price},
			ExpectedPath: "/products/p-1",
			StatusCode:   http.StatusOK,
			Response:     &storefront.Product{Resource: storefront.Resource{ID: "p-1"}, Price: price},
		},
		{
			Name:         "forbidden",
			ID:           "p-1",
			Request:      &storefront.ProductUpdateRequest{Price: &price},
			ExpectedPath: "/products/p-1",
			StatusCode:   http.StatusForbidden,
			WantErr:      true,
			ErrMessage:   "HTTP 403",
		},
	}

	RunUpdateTests(t, tests, func(c *client.Client) func(context.Context, string, *storefront.ProductUpdateRequest) (*storefront.Product, error) {
		return c.Products().Update
	})
}

func TestProductsClient_Delete(t *testing.T) {
	t.Parallel()

	tests := []TestDeleteOperation{
		{
			Name:         "no content",
			ID:           "p-1",
			ExpectedPath: "/products/p-1",
			StatusCode:   http.StatusNoContent,
		},
		{
			Name:         "json body",
			ID:           "p-1",
			ExpectedPath: "/products/p-1",
			StatusCode:   http.StatusOK,
			Response:     map[string]bool{"deleted": true},
		},
		{
			Name:         "not found",
			ID:           "missing",
			ExpectedPath: "/products/missing",
			StatusCode:   http.StatusNotFound,
			Response:     map[string]string{"message": "Product not found"},
			WantErr:      true,
			ErrMessage:   "Product not found",
		},
	}

	RunDeleteTests(t, tests, func(c *client.Client) func(context.Context, string) error {
		return c.Products().Delete
	})
}

func TestBrandsAndCategories_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		checkAuth(t, request, false)

		switch request.URL.Path {
		case "/brands":
			_, _ = writer.Write([]byte(`{"brands":[{"id":"b-1","name":"Acme","slug":"acme"}]}`))
		case "/categories":
			_, _ = writer.Write([]byte(`{"categories":[{"id":"c-1","name":"Tea"},{"id":"c-2","name":"Coffee"}]}`))
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	sfClient := newTestClient(t, server)

	brands, err := sfClient.Brands().List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, brands.Brands, 1)
	assert.Equal(t, "acme", brands.Brands[0].Slug)

	categories, err := sfClient.Categories().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, categories.Categories, 2)
}

package storefront_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

func TestParseErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "empty", body: "", want: ""},
		{name: "message", body: `{"message":"Product not found"}`, want: "Product not found"},
		{name: "error string", body: `{"error":"Invalid token"}`, want: "Invalid token"},
		{name: "error object", body: `{"error":{"message":"Slot taken"}}`, want: "Slot taken"},
		{
			name: "validation list",
			body: `{"errors":[{"message":"name is required"},{"msg":"price must be positive"}]}`,
			want: "name is required; price must be positive",
		},
		{name: "plain text", body: "Bad Gateway", want: "Bad Gateway"},
		{name: "unrecognised json", body: `{"status":"fail"}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, storefront.ParseErrorMessage([]byte(tt.body)))
		})
	}

	long := strings.Repeat("x", 1000)
	assert.Len(t, storefront.ParseErrorMessage([]byte(long)), 256)
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	withMessage := storefront.NewHTTPError(404, []byte(`{"message":"Product not found"}`))
	withMessage.Method = "GET"
	withMessage.Path = "/products/p-1"
	assert.Equal(t, "GET /products/p-1: HTTP 404: Product not found", withMessage.Error())

	bare := storefront.NewHTTPError(502, nil)
	assert.Equal(t, "HTTP 502 Bad Gateway", bare.Error())

	network := storefront.NewNetworkError(errors.New("dial tcp: refused"))
	assert.Equal(t, "network error: dial tcp: refused", network.Error())
}

func TestError_Predicates(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("deleting product: %w", storefront.NewHTTPError(404, nil))

	assert.True(t, storefront.IsNotFound(wrapped))
	assert.Equal(t, 404, storefront.StatusCode(wrapped))
	assert.False(t, storefront.IsServerError(wrapped))

	assert.True(t, storefront.IsUnauthorized(storefront.NewHTTPError(401, nil)))
	assert.True(t, storefront.IsForbidden(storefront.NewHTTPError(403, nil)))
	assert.True(t, storefront.IsValidation(storefront.NewHTTPError(422, nil)))
	assert.True(t, storefront.IsValidation(storefront.NewHTTPError(400, nil)))
	assert.True(t, storefront.IsServerError(storefront.NewHTTPError(503, nil)))
	assert.False(t, storefront.IsNotFound(errors.New("404")))
	assert.Zero(t, storefront.StatusCode(errors.New("plain")))
}

func TestAsError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, storefront.AsError(nil))

	original := storefront.NewDecodeError(errors.New("bad json"), nil)
	assert.Same(t, original, storefront.AsError(fmt.Errorf("wrap: %w", original)))

	assert.Equal(t, storefront.KindCanceled, storefront.AsError(context.Canceled).Kind)
	assert.Equal(t, storefront.KindCanceled, storefront.AsError(fmt.Errorf("op: %w", context.DeadlineExceeded)).Kind)
	assert.Equal(t, storefront.KindInvalid, storefront.AsError(storefront.ErrIDRequired).Kind)
	assert.Equal(t, storefront.KindNetwork, storefront.AsError(errors.New("reset")).Kind)

	require.ErrorIs(t, storefront.NewInvalidError(storefront.ErrPathRequired), storefront.ErrPathRequired)
}

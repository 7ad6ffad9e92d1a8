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

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/auth/login":
			assert.Empty(t, request.Header.Get("Authorization"))

			var login storefront.LoginRequest

			_ = json.NewDecoder(request.Body).Decode(&login)

			if login.Password != "secret" {
				writer.WriteHeader(http.StatusUnauthorized)
				_, _ = writer.Write([]byte(`{"message":"Invalid credentials"}`))

				return
			}

			_ = json.NewEncoder(writer).Encode(storefront.LoginResponse{
				Token: "session-token",
				User:  storefront.User{Name: "Ada", Email: login.Email, Role: "admin"},
			})
		case "/auth/me":
			assert.Equal(t, "Bearer session-token", request.Header.Get("Authorization"))
			_ = json.NewEncoder(writer).Encode(storefront.User{Name: "Ada", Role: "admin"})
		case "/auth/logout":
			assert.Equal(t, "Bearer session-token", request.Header.Get("Authorization"))
			writer.WriteHeader(http.StatusNoContent)
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestAuthClient_LoginMeLogout(t *testing.T) {
	t.Parallel()

	server := newAuthServer(t)
	defer server.Close()

	sfClient, err := client.New(context.Background(), &storefront.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	var tokens []string

	sfClient.Session().Subscribe(func(token string) { tokens = append(tokens, token) })

	login, err := sfClient.Auth().Login(context.Background(), &storefront.LoginRequest{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "session-token", login.Token)
	assert.Equal(t, "session-token", sfClient.Session().Token())

	user, err := sfClient.Auth().Me(context.Background())
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	require.NoError(t, sfClient.Auth().Logout(context.Background()))
	assert.False(t, sfClient.Session().Authenticated())

	assert.Equal(t, []string{"session-token", ""}, tokens)
}

func TestAuthClient_LoginFailure(t *testing.T) {
	t.Parallel()

	server := newAuthServer(t)
	defer server.Close()

	sfClient, err := client.New(context.Background(), &storefront.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	_, err = sfClient.Auth().Login(context.Background(), &storefront.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, storefront.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.False(t, sfClient.Session().Authenticated())
}

func TestAuthClient_Validation(t *testing.T) {
	t.Parallel()

	sfClient, err := client.New(context.Background(), &storefront.Config{APIEndpoint: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = sfClient.Auth().Login(context.Background(), &storefront.LoginRequest{Password: "x"})
	require.Error(t, err)
	assert.True(t, storefront.IsKind(err, storefront.KindInvalid))

	_, err = sfClient.Auth().Me(context.Background())
	require.ErrorIs(t, err, storefront.ErrNotAuthenticated)

	// Logging out without a session never reaches the backend.
	require.NoError(t, sfClient.Auth().Logout(context.Background()))
}

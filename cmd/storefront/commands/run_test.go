package commands_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/storefront/cmd/storefront/commands"
	"github.com/fivetwenty-io/storefront/internal/constants"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

type backend struct {
	requests atomic.Int32
	brand    atomic.Value
	query    atomic.Value
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	t.Helper()

	state := &backend{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(writer http.ResponseWriter, request *http.Request) {
		var login storefront.LoginRequest
		_ = json.NewDecoder(request.Body).Decode(&login)

		if login.Password != "secret" {
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"message":"Invalid credentials"}`))

			return
		}

		_, _ = writer.Write([]byte(`{"token":"tok-1","user":{"id":"u-1","name":"Ada","email":"` + login.Email + `","role":"admin"}}`))
	})
	mux.HandleFunc("POST /auth/logout", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /auth/me", func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("Authorization") != "Bearer tok-1" {
			writer.WriteHeader(http.StatusUnauthorized)

			return
		}

		_, _ = writer.Write([]byte(`{"id":"u-1","name":"Ada","email":"ada@example.com","role":"admin"}`))
	})
	mux.HandleFunc("GET /products", func(writer http.ResponseWriter, request *http.Request) {
		state.brand.Store(request.Header.Get("X-Brand"))
		state.query.Store(request.URL.RawQuery)

		_, _ = writer.Write([]byte(`{"products":[{"id":"p-1","name":"Sencha","price":4.5},{"id":"p-2","name":"Matcha","price":9}],
			"pagination":{"page":1,"limit":20,"total":2,"totalPages":1}}`))
	})
	mux.HandleFunc("DELETE /products/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	})

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		state.requests.Add(1)
		writer.Header().Set("Content-Type", "application/json")
		mux.ServeHTTP(writer, request)
	}))
	t.Cleanup(server.Close)

	return state, server
}

func TestLoginWhoamiLogout(t *testing.T) {
	_, server := newBackend(t)
	configFile := setupCLI(t, server.URL)

	out, err := runCommand(t, commands.NewLoginCommand(), "", "--email", "ada@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Ada <ada@example.com>")

	config := readConfigFile(t, configFile)
	assert.Equal(t, "tok-1", config.Token)
	assert.Equal(t, server.URL, config.API)

	viper.Set("output", constants.OutputFormatJSON)

	out, err = runCommand(t, commands.NewWhoamiCommand(), "")
	require.NoError(t, err)

	var user storefront.User
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.Equal(t, "u-1", user.ID)
	assert.True(t, user.IsAdmin())

	out, err = runCommand(t, commands.NewLogoutCommand(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully logged out")
	assert.Empty(t, readConfigFile(t, configFile).Token)

	_, err = runCommand(t, commands.NewWhoamiCommand(), "")
	require.ErrorIs(t, err, constants.ErrNotAuthenticated)
}

func TestLogin_PromptsAndFailures(t *testing.T) {
	_, server := newBackend(t)
	configFile := setupCLI(t, server.URL)

	out, err := runCommand(t, commands.NewLoginCommand(), "ada@example.com\nwrong\n")
	require.Error(t, err)
	assert.Contains(t, out, "Email: ")
	assert.Contains(t, out, "Password: ")
	assert.True(t, storefront.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.NoFileExists(t, configFile)

	_, err = runCommand(t, commands.NewLoginCommand(), "\n")
	require.ErrorIs(t, err, constants.ErrEmptyEmail)
}

func TestProductsList(t *testing.T) {
	state, server := newBackend(t)
	setupCLI(t, server.URL)
	viper.Set("brand", "acme")
	viper.Set("output", constants.OutputFormatJSON)

	out, err := runCommand(t, commands.NewProductsCommand(), "", "list", "--brand", "acme", "--per-page", "5")
	require.NoError(t, err)

	var products []storefront.Product
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	require.Len(t, products, 2)
	assert.Equal(t, "Matcha", products[1].Name)

	assert.Equal(t, "acme", state.brand.Load())
	assert.Equal(t, "brand=acme&limit=5&page=1", state.query.Load())

	viper.Set("output", constants.OutputFormatTable)

	out, err = runCommand(t, commands.NewProductsCommand(), "", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Sencha")
	assert.Contains(t, out, "4.50")
	assert.NotContains(t, out, "Use --all")
}

func TestProductsDelete(t *testing.T) {
	state, server := newBackend(t)
	setupCLI(t, server.URL)
	viper.Set("token", "tok-1")

	out, err := runCommand(t, commands.NewProductsCommand(), "n\n", "delete", "p-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete cancelled")
	assert.Zero(t, state.requests.Load())

	out, err = runCommand(t, commands.NewProductsCommand(), "", "delete", "p-1", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted product p-1")
	assert.Equal(t, int32(1), state.requests.Load())
}

func TestAuthenticatedCommandsNeedSession(t *testing.T) {
	state, server := newBackend(t)
	setupCLI(t, server.URL)

	_, err := runCommand(t, commands.NewBookingsCommand(), "", "list")
	require.ErrorIs(t, err, constants.ErrNotAuthenticated)

	_, err = runCommand(t, commands.NewBookingsCommand(), "", "cancel", "bk-1")
	require.ErrorIs(t, err, constants.ErrNotAuthenticated)

	_, err = runCommand(t, commands.NewProductsCommand(), "", "create", "--name", "Kukicha", "--price", "3")
	require.ErrorIs(t, err, constants.ErrNotAuthenticated)

	_, err = runCommand(t, commands.NewProductsCommand(), "", "create", "--name", "Kukicha")
	require.ErrorIs(t, err, constants.ErrPriceRequired)

	assert.Zero(t, state.requests.Load())
}

func TestNoAPIConfigured(t *testing.T) {
	setupCLI(t, "")

	_, err := runCommand(t, commands.NewBrandsCommand(), "", "list")
	require.ErrorIs(t, err, constants.ErrNoAPIConfigured)
}

func TestConfigSetAndShow(t *testing.T) {
	configFile := setupCLI(t, "")

	_, err := runCommand(t, commands.NewConfigCommand(), "", "set", "api", "https://api.example.com/v1")
	require.NoError(t, err)

	_, err = runCommand(t, commands.NewConfigCommand(), "", "set", "retries", "2")
	require.NoError(t, err)

	_, err = runCommand(t, commands.NewConfigCommand(), "", "set", "output", "xml")
	require.ErrorIs(t, err, constants.ErrInvalidOutput)

	_, err = runCommand(t, commands.NewConfigCommand(), "", "set", "retries", "-1")
	require.Error(t, err)

	_, err = runCommand(t, commands.NewConfigCommand(), "", "set", "cache", "redis")
	require.Error(t, err)

	_, err = runCommand(t, commands.NewConfigCommand(), "", "set", "colour", "red")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)

	config := readConfigFile(t, configFile)
	assert.Equal(t, "https://api.example.com/v1", config.API)
	assert.Equal(t, 2, config.Retries)

	require.NoError(t, commands.NewConfigPersister().UpdateToken("secret-token", time.Time{}))

	viper.Set("output", constants.OutputFormatJSON)

	out, err := runCommand(t, commands.NewConfigCommand(), "", "show")
	require.NoError(t, err)

	var shown commands.Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, commands.Masked, shown.Token)
	assert.Equal(t, "secret-token", readConfigFile(t, configFile).Token)
}

func TestVersionCommand(t *testing.T) {
	setupCLI(t, "")
	viper.Set("output", constants.OutputFormatYAML)

	out, err := runCommand(t, commands.NewVersionCommand("1.2.3", "abc123", "2026-10-01"), "")
	require.NoError(t, err)
	assert.Contains(t, out, "version: 1.2.3")
	assert.Contains(t, out, "commit: abc123")
}

package graph_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"app-inventory/core/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(serverURL string) graph.Config {
	return graph.Config{
		TenantID:     "tenant-1",
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		AuthorityURL: serverURL,
		BaseURL:      serverURL + "/beta",
		Scope:        "https://graph.microsoft.com/.default",
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Complete", func(t *testing.T) {
		assert.NoError(t, testConfig("http://x").Validate())
	})

	t.Run("Reports every missing credential", func(t *testing.T) {
		err := graph.Config{ClientID: "c"}.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, graph.ErrMissingCredentials))
		assert.Contains(t, err.Error(), "tenant ID")
		assert.Contains(t, err.Error(), "client secret")
		assert.NotContains(t, err.Error(), "client ID")
	})
}

func TestConfig_URLs(t *testing.T) {
	cfg := graph.Config{
		TenantID:     "contoso",
		AuthorityURL: "https://login.microsoftonline.com/",
		BaseURL:      "https://graph.microsoft.com/beta/",
	}
	assert.Equal(t, "https://login.microsoftonline.com/contoso/oauth2/v2.0/token", cfg.TokenURL())
	assert.Equal(t, "https://graph.microsoft.com/beta/deviceAppManagement/mobileApps", cfg.MobileAppsURL())
}

func TestTokenProvider_Token(t *testing.T) {
	t.Run("Client credentials grant", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/tenant-1/oauth2/v2.0/token", r.URL.Path)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
			assert.Equal(t, "client-1", r.PostForm.Get("client_id"))
			assert.Equal(t, "secret-1", r.PostForm.Get("client_secret"))
			assert.Equal(t, "https://graph.microsoft.com/.default", r.PostForm.Get("scope"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token_type":"Bearer","expires_in":3599,"access_token":"tok-123"}`))
		}))
		defer server.Close()

		token, err := graph.NewTokenProvider(testConfig(server.URL), nil).Token(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "tok-123", token)
	})

	t.Run("Rejected credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
		}))
		defer server.Close()

		_, err := graph.NewTokenProvider(testConfig(server.URL), nil).Token(context.Background())
		var httpErr *graph.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
		assert.True(t, httpErr.IsUnauthorized())
		assert.Contains(t, httpErr.Message, "invalid_client")
	})

	t.Run("Missing access token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"token_type":"Bearer"}`))
		}))
		defer server.Close()

		_, err := graph.NewTokenProvider(testConfig(server.URL), nil).Token(context.Background())
		assert.ErrorContains(t, err, "access_token")
	})

	t.Run("No request without credentials", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		cfg := testConfig(server.URL)
		cfg.ClientSecret = ""
		_, err := graph.NewTokenProvider(cfg, nil).Token(context.Background())
		assert.ErrorIs(t, err, graph.ErrMissingCredentials)
		assert.False(t, called)
	})
}

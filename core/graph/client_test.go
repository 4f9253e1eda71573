package graph_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"app-inventory/core/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_ListMobileApps(t *testing.T) {
	t.Run("Follows next links in order", func(t *testing.T) {
		var server *httptest.Server
		requests := 0
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")

			switch r.URL.Query().Get("$skiptoken") {
			case "":
				assert.Equal(t, "/beta/deviceAppManagement/mobileApps", r.URL.Path)
				fmt.Fprintf(w, `{"value":[
					{"id":"a1","@odata.type":"#microsoft.graph.androidStoreApp","packageId":"com.a"},
					{"id":"a2","@odata.type":"#microsoft.graph.iosStoreApp","appStoreUrl":"https://apps.apple.com/us/app/x/id1"}
				],"@odata.nextLink":"%s/beta/deviceAppManagement/mobileApps?$skiptoken=p2"}`, server.URL)
			case "p2":
				fmt.Fprintf(w, `{"value":[{"id":"a3","@odata.type":"#microsoft.graph.win32LobApp"}],
					"@odata.nextLink":"%s/beta/deviceAppManagement/mobileApps?$skiptoken=p3"}`, server.URL)
			case "p3":
				fmt.Fprint(w, `{"value":[{"id":"a4","@odata.type":"#microsoft.graph.iosVppApp","displayName":"Four"}]}`)
			}
		}))
		defer server.Close()

		client := graph.NewClient(testConfig(server.URL), nil, zap.NewNop())
		apps, err := client.ListMobileApps(context.Background(), "tok")
		require.NoError(t, err)

		assert.Equal(t, 3, requests)
		require.Len(t, apps, 4)
		ids := []string{apps[0].ID, apps[1].ID, apps[2].ID, apps[3].ID}
		assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, ids)
		assert.Equal(t, "com.a", apps[0].PackageID)
		assert.Equal(t, "#microsoft.graph.iosStoreApp", apps[1].ODataType)
		assert.Equal(t, "Four", apps[3].DisplayName)
	})

	t.Run("Empty collection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"value":[]}`)
		}))
		defer server.Close()

		apps, err := graph.NewClient(testConfig(server.URL), nil, zap.NewNop()).ListMobileApps(context.Background(), "tok")
		assert.NoError(t, err)
		assert.Empty(t, apps)
	})

	t.Run("Failed page aborts the fetch", func(t *testing.T) {
		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("$skiptoken") == "" {
				fmt.Fprintf(w, `{"value":[{"id":"a1"}],"@odata.nextLink":"%s/beta/deviceAppManagement/mobileApps?$skiptoken=p2"}`, server.URL)
				return
			}
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		apps, err := graph.NewClient(testConfig(server.URL), nil, zap.NewNop()).ListMobileApps(context.Background(), "tok")
		assert.Nil(t, apps)
		var httpErr *graph.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
		assert.Contains(t, err.Error(), "page 2")
	})
}

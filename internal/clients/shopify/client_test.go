package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noopLog = ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})

func newTestClient(server *httptest.Server) *Client {
	return &Client{
		url:        server.URL,
		token:      "test-token",
		pageSize:   2,
		httpClient: server.Client(),
		log:        noopLog,
	}
}

func pageResponse(hasNext bool, cursor string, products ...[2]string) map[string]any {
	edges := make([]map[string]any, 0, len(products))
	for _, p := range products {
		edges = append(edges, map[string]any{
			"node": map[string]any{"id": p[0], "title": p[1]},
		})
	}
	return map[string]any{
		"data": map[string]any{
			"products": map[string]any{
				"pageInfo": map[string]any{"hasNextPage": hasNext, "endCursor": cursor},
				"edges":    edges,
			},
		},
	}
}

func TestFetchProducts(t *testing.T) {
	t.Run("pages through the whole catalog with cursors", func(t *testing.T) {
		var cursors []any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-token", r.Header.Get("X-Shopify-Access-Token"))

			var req struct {
				Variables map[string]any `json:"variables"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			cursors = append(cursors, req.Variables["after"])
			assert.Equal(t, float64(2), req.Variables["first"])

			var page map[string]any
			if req.Variables["after"] == nil {
				page = pageResponse(true, "cursor-1",
					[2]string{"gid://shopify/Product/1", "Wine One"},
					[2]string{"gid://shopify/Product/2", "Wine Two"},
				)
			} else {
				page = pageResponse(false, "",
					[2]string{"gid://shopify/Product/3", "Wine Three"},
				)
			}
			require.NoError(t, json.NewEncoder(w).Encode(page))
		}))
		defer server.Close()

		products, err := newTestClient(server).FetchProducts(context.Background())
		require.NoError(t, err)

		require.Len(t, products, 3)
		assert.Equal(t, "gid://shopify/Product/1", products[0].GID)
		assert.Equal(t, "Wine One", products[0].Title)
		assert.Equal(t, "gid://shopify/Product/3", products[2].GID)

		require.Len(t, cursors, 2)
		assert.Nil(t, cursors[0])
		assert.Equal(t, "cursor-1", cursors[1])
	})

	t.Run("empty catalog", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewEncoder(w).Encode(pageResponse(false, "")))
		}))
		defer server.Close()

		products, err := newTestClient(server).FetchProducts(context.Background())
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("http error aborts the fetch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "throttled", http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := newTestClient(server).FetchProducts(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "throttled")
	})

	t.Run("graphql error aborts the fetch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp := map[string]any{
				"errors": []map[string]any{{"message": "access denied"}},
			}
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		}))
		defer server.Close()

		_, err := newTestClient(server).FetchProducts(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	})
}

func TestNewClientPageSize(t *testing.T) {
	t.Run("caps the page size at the API maximum", func(t *testing.T) {
		c := NewClient(Config{ShopHandle: "shop", APIVersion: "2024-10", PageSize: 1000}, noopLog)
		assert.Equal(t, maxPageSize, c.pageSize)
	})

	t.Run("defaults the page size when unset", func(t *testing.T) {
		c := NewClient(Config{ShopHandle: "shop", APIVersion: "2024-10"}, noopLog)
		assert.Equal(t, maxPageSize, c.pageSize)
	})

	t.Run("builds the admin endpoint from handle and version", func(t *testing.T) {
		c := NewClient(Config{ShopHandle: "shop", APIVersion: "2024-10"}, noopLog)
		assert.Equal(t, "https://shop.myshopify.com/admin/api/2024-10/graphql.json", c.url)
	})
}

// Package shopify fetches the product catalog from the Shopify Admin
// GraphQL API.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/cuvee/pkg/models"
	"github.com/Ramsey-B/cuvee/pkg/tracing"
)

const maxPageSize = 250

const productsQuery = `query Products($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    pageInfo { hasNextPage endCursor }
    edges { node { id title } }
  }
}`

// Config holds Shopify Admin API configuration
type Config struct {
	ShopHandle string
	APIVersion string
	APIToken   string
	PageSize   int
}

// Client pages through the shop's products over the Admin GraphQL API.
type Client struct {
	url        string
	token      string
	pageSize   int
	httpClient *http.Client
	log        ectologger.Logger
}

// NewClient creates a new Shopify Admin API client
func NewClient(cfg Config, log ectologger.Logger) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return &Client{
		url:      fmt.Sprintf("https://%s.myshopify.com/admin/api/%s/graphql.json", cfg.ShopHandle, cfg.APIVersion),
		token:    cfg.APIToken,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type productsPage struct {
	PageInfo struct {
		HasNextPage bool   `json:"hasNextPage"`
		EndCursor   string `json:"endCursor"`
	} `json:"pageInfo"`
	Edges []struct {
		Node struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"node"`
	} `json:"edges"`
}

type graphqlResponse struct {
	Data struct {
		Products productsPage `json:"products"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchProducts pages through the full catalog and returns gid/title pairs
// in catalog order. Any HTTP or GraphQL error aborts the fetch.
func (c *Client) FetchProducts(ctx context.Context) ([]models.CatalogProduct, error) {
	ctx, span := tracing.StartSpan(ctx, "shopify.Client.FetchProducts")
	defer span.End()

	var products []models.CatalogProduct
	var after *string
	for {
		page, err := c.fetchPage(ctx, after)
		if err != nil {
			return nil, err
		}

		for _, edge := range page.Edges {
			products = append(products, models.CatalogProduct{
				GID:   edge.Node.ID,
				Title: edge.Node.Title,
			})
		}

		if !page.PageInfo.HasNextPage {
			break
		}
		cursor := page.PageInfo.EndCursor
		after = &cursor
	}

	c.log.WithContext(ctx).WithField("product_count", len(products)).Info("Fetched product catalog from Shopify")
	return products, nil
}

func (c *Client) fetchPage(ctx context.Context, after *string) (*productsPage, error) {
	variables := map[string]any{"first": c.pageSize}
	if after != nil {
		variables["after"] = *after
	}

	body, err := json.Marshal(graphqlRequest{Query: productsQuery, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("marshal products query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("shopify error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode products page: %w", err)
	}
	if len(decoded.Errors) > 0 {
		return nil, fmt.Errorf("shopify graphql error: %s", decoded.Errors[0].Message)
	}

	return &decoded.Data.Products, nil
}

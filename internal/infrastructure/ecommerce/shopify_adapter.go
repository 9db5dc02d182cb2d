package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Constants for the Shopify Admin API
const (
	// maxShopifyResponseSize limits response bodies to prevent memory exhaustion
	maxShopifyResponseSize = 10 * 1024 * 1024 // 10MB max response
	// shopifyPageSize is the maximum page size the Admin API allows
	shopifyPageSize = 250
	// accessTokenHeader authenticates Admin API requests
	accessTokenHeader = "X-Shopify-Access-Token"
)

// StoreCredentials identifies one tenant's store on the platform
type StoreCredentials struct {
	ShopDomain  string
	AccessToken string
}

// ShopifyAdapter pulls catalog, customer and order data from the Shopify
// Admin REST API. It is used for full syncs; incremental updates arrive
// through the webhook ingress instead.
type ShopifyAdapter struct {
	config     *ShopifyConfig
	httpClient *http.Client
	baseURL    string // overridden in tests
}

// NewShopifyAdapter creates a new Shopify adapter with the given configuration
func NewShopifyAdapter(config *ShopifyConfig) (*ShopifyAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &ShopifyAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// FetchProducts retrieves all products for the store, paging by since_id
func (a *ShopifyAdapter) FetchProducts(ctx context.Context, creds StoreCredentials) ([]ShopifyProduct, error) {
	var all []ShopifyProduct
	sinceID := int64(0)
	for {
		var page struct {
			Products []ShopifyProduct `json:"products"`
		}
		if err := a.get(ctx, creds, "products.json", sinceID, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Products...)
		if len(page.Products) < shopifyPageSize {
			return all, nil
		}
		sinceID = page.Products[len(page.Products)-1].ID
	}
}

// FetchCustomers retrieves all customers for the store, paging by since_id
func (a *ShopifyAdapter) FetchCustomers(ctx context.Context, creds StoreCredentials) ([]ShopifyCustomer, error) {
	var all []ShopifyCustomer
	sinceID := int64(0)
	for {
		var page struct {
			Customers []ShopifyCustomer `json:"customers"`
		}
		if err := a.get(ctx, creds, "customers.json", sinceID, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Customers...)
		if len(page.Customers) < shopifyPageSize {
			return all, nil
		}
		sinceID = page.Customers[len(page.Customers)-1].ID
	}
}

// FetchOrders retrieves all orders for the store, paging by since_id
func (a *ShopifyAdapter) FetchOrders(ctx context.Context, creds StoreCredentials) ([]ShopifyOrder, error) {
	var all []ShopifyOrder
	sinceID := int64(0)
	for {
		var page struct {
			Orders []ShopifyOrder `json:"orders"`
		}
		if err := a.get(ctx, creds, "orders.json", sinceID, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Orders...)
		if len(page.Orders) < shopifyPageSize {
			return all, nil
		}
		sinceID = page.Orders[len(page.Orders)-1].ID
	}
}

// get performs an authenticated Admin API GET and decodes the response
func (a *ShopifyAdapter) get(ctx context.Context, creds StoreCredentials, resource string, sinceID int64, out any) error {
	endpoint := a.endpoint(creds.ShopDomain, resource)

	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("shopify: invalid endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(shopifyPageSize))
	if sinceID > 0 {
		q.Set("since_id", strconv.FormatInt(sinceID, 10))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set(accessTokenHeader, creds.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shopify: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxShopifyResponseSize))
	if err != nil {
		return fmt.Errorf("shopify: reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("shopify: %s returned status %d", resource, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("shopify: decoding %s response: %w", resource, err)
	}
	return nil
}

// endpoint builds the Admin API URL for a resource
func (a *ShopifyAdapter) endpoint(shopDomain, resource string) string {
	if a.baseURL != "" {
		return fmt.Sprintf("%s/admin/api/%s/%s", a.baseURL, a.config.APIVersion, resource)
	}
	return fmt.Sprintf("https://%s/admin/api/%s/%s", shopDomain, a.config.APIVersion, resource)
}

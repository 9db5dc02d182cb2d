package ecommerce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// ShopifyConfig holds configuration for the Shopify platform integration.
// The webhook secret is injected at construction; it is never read from
// ambient process state so verification is deterministic under test.
type ShopifyConfig struct {
	// WebhookSecret is the shared secret Shopify signs webhook bodies with
	WebhookSecret string
	// APIVersion is the Admin API version (e.g. "2024-01")
	APIVersion string
	// TimeoutSeconds is the HTTP request timeout for Admin API calls
	TimeoutSeconds int
}

// Errors for Shopify configuration
var (
	ErrShopifyConfigMissingSecret = errors.New("shopify: webhook secret is required")
)

// NewShopifyConfig creates a new Shopify configuration with defaults
func NewShopifyConfig(webhookSecret string) *ShopifyConfig {
	return &ShopifyConfig{
		WebhookSecret:  webhookSecret,
		APIVersion:     "2024-01",
		TimeoutSeconds: 30,
	}
}

// Validate validates the Shopify configuration
func (c *ShopifyConfig) Validate() error {
	if c.WebhookSecret == "" {
		return ErrShopifyConfigMissingSecret
	}
	if c.APIVersion == "" {
		c.APIVersion = "2024-01"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// SignWebhook computes the base64-encoded HMAC-SHA256 signature Shopify
// attaches to webhook deliveries in the X-Shopify-Hmac-Sha256 header.
func (c *ShopifyConfig) SignWebhook(rawBody []byte) string {
	h := hmac.New(sha256.New, []byte(c.WebhookSecret))
	h.Write(rawBody)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// VerifyWebhookSignature checks that rawBody was signed with the configured
// secret. It fails closed: a missing signature or an unconfigured secret
// rejects the request. The comparison is constant-time.
func (c *ShopifyConfig) VerifyWebhookSignature(rawBody []byte, signature string) bool {
	if signature == "" || c.WebhookSecret == "" {
		return false
	}
	expected := c.SignWebhook(rawBody)
	return hmac.Equal([]byte(expected), []byte(signature))
}

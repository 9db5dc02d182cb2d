package ecommerce

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shopify resource representations shared by the webhook ingress path and
// the Admin API adapter. Shopify serializes money as strings and omits
// fields freely, so every numeric accessor parses defensively: absent or
// malformed input yields zero instead of failing the whole record.

// ShopifyCustomer is a customer resource as Shopify delivers it
type ShopifyCustomer struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	TotalSpent string `json:"total_spent"`
	UpdatedAt  string `json:"updated_at"`
}

// TotalSpentDecimal parses the total spent, defaulting to zero
func (c ShopifyCustomer) TotalSpentDecimal() decimal.Decimal {
	return parseDecimal(c.TotalSpent)
}

// UpdatedAtTime parses the source update timestamp, defaulting to zero time
func (c ShopifyCustomer) UpdatedAtTime() time.Time {
	return parseTime(c.UpdatedAt)
}

// ShopifyOrder is an order resource as Shopify delivers it. Webhook
// payloads may embed the customer that placed the order.
type ShopifyOrder struct {
	ID          int64            `json:"id"`
	OrderNumber int64            `json:"order_number"`
	TotalPrice  string           `json:"total_price"`
	Currency    string           `json:"currency"`
	ProcessedAt string           `json:"processed_at"`
	UpdatedAt   string           `json:"updated_at"`
	Customer    *ShopifyCustomer `json:"customer,omitempty"`
}

// TotalPriceDecimal parses the order total, defaulting to zero
func (o ShopifyOrder) TotalPriceDecimal() decimal.Decimal {
	return parseDecimal(o.TotalPrice)
}

// ProcessedAtTime parses the processing timestamp, defaulting to zero time
func (o ShopifyOrder) ProcessedAtTime() time.Time {
	return parseTime(o.ProcessedAt)
}

// UpdatedAtTime parses the source update timestamp. Orders without an
// updated_at fall back to processed_at so the upsert watermark still moves.
func (o ShopifyOrder) UpdatedAtTime() time.Time {
	if ts := parseTime(o.UpdatedAt); !ts.IsZero() {
		return ts
	}
	return o.ProcessedAtTime()
}

// ShopifyVariant is a product variant; only the price is consumed
type ShopifyVariant struct {
	ID    int64  `json:"id"`
	Price string `json:"price"`
}

// ShopifyProduct is a product resource as Shopify delivers it
type ShopifyProduct struct {
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	Variants  []ShopifyVariant `json:"variants"`
	UpdatedAt string           `json:"updated_at"`
}

// PriceDecimal returns the first variant's price, defaulting to zero
func (p ShopifyProduct) PriceDecimal() decimal.Decimal {
	if len(p.Variants) == 0 {
		return decimal.Zero
	}
	return parseDecimal(p.Variants[0].Price)
}

// UpdatedAtTime parses the source update timestamp, defaulting to zero time
func (p ShopifyProduct) UpdatedAtTime() time.Time {
	return parseTime(p.UpdatedAt)
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return ts
}

package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopmetrics/backend/internal/domain/shared"
)

// DashboardStats is the headline summary of one tenant's store
type DashboardStats struct {
	TotalOrders    int64           `json:"total_orders"`
	TotalCustomers int64           `json:"total_customers"`
	TotalProducts  int64           `json:"total_products"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

// DailySales is one day's order count and revenue
type DailySales struct {
	Date       string          `json:"date"`
	OrderCount int64           `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// TopCustomer ranks a customer by lifetime spend
type TopCustomer struct {
	ExternalID string          `json:"external_id"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// OrderQuery selects a page of orders, optionally bounded by processed_at.
// A nil bound leaves that side open.
type OrderQuery struct {
	Filter shared.Filter
	From   *time.Time
	To     *time.Time
}

// OrderRow is one row of the paginated order list
type OrderRow struct {
	ID            uuid.UUID       `json:"id"`
	ExternalID    string          `json:"external_id"`
	OrderNumber   int64           `json:"order_number"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Currency      string          `json:"currency"`
	ProcessedAt   time.Time       `json:"processed_at"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
}

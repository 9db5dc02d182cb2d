package shop

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopmetrics/backend/internal/domain/shared"
)

// Order is the canonical record for a storefront order, keyed by the
// (ExternalID, TenantID) composite. CustomerID links to the canonical
// customer record when the order payload embedded customer data.
type Order struct {
	shared.TenantEntity
	ExternalID      string
	OrderNumber     int64
	TotalPrice      decimal.Decimal
	Currency        string
	ProcessedAt     time.Time
	CustomerID      *uuid.UUID
	SourceUpdatedAt time.Time
}

// NewOrder creates a canonical order record for a tenant
func NewOrder(tenantID uuid.UUID, externalID string) (*Order, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Order requires a tenant")
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "Order requires an external id")
	}
	return &Order{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ExternalID:   externalID,
		TotalPrice:   decimal.Zero,
	}, nil
}

// AttachCustomer links the order to a canonical customer record
func (o *Order) AttachCustomer(customerID uuid.UUID) {
	o.CustomerID = &customerID
}

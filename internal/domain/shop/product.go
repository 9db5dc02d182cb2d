package shop

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopmetrics/backend/internal/domain/shared"
)

// Product is the canonical record for a storefront product, keyed by the
// (ExternalID, TenantID) composite.
type Product struct {
	shared.TenantEntity
	ExternalID      string
	Title           string
	Price           decimal.Decimal
	SourceUpdatedAt time.Time
}

// NewProduct creates a canonical product record for a tenant
func NewProduct(tenantID uuid.UUID, externalID string) (*Product, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Product requires a tenant")
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "Product requires an external id")
	}
	return &Product{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ExternalID:   externalID,
		Price:        decimal.Zero,
	}, nil
}

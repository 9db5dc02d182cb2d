package shop

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopmetrics/backend/internal/domain/shared"
)

// Customer is the canonical record for a storefront customer. Identity is
// the (ExternalID, TenantID) composite; the internal UUID exists only for
// foreign keys and is never used as the upsert key.
type Customer struct {
	shared.TenantEntity
	ExternalID      string
	FirstName       string
	LastName        string
	Email           string
	TotalSpent      decimal.Decimal
	SourceUpdatedAt time.Time
}

// NewCustomer creates a canonical customer record for a tenant
func NewCustomer(tenantID uuid.UUID, externalID string) (*Customer, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Customer requires a tenant")
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "Customer requires an external id")
	}
	return &Customer{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ExternalID:   externalID,
		TotalSpent:   decimal.Zero,
	}, nil
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// IsNewerThan reports whether this record's source timestamp supersedes the
// other's. Equal timestamps count as newer so redeliveries still apply.
func (c *Customer) IsNewerThan(other *Customer) bool {
	if other == nil {
		return true
	}
	return !c.SourceUpdatedAt.Before(other.SourceUpdatedAt)
}

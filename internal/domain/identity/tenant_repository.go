package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopmetrics/backend/internal/domain/shared"
)

// TenantRepository defines the persistence contract for tenants
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	// FindByShopDomain resolves the tenant an inbound webhook belongs to.
	// Returns shared.ErrNotFound when the domain is not registered.
	FindByShopDomain(ctx context.Context, shopDomain string) (*Tenant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByShopDomain(ctx context.Context, shopDomain string) (bool, error)
}

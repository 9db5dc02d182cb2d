package identity

import (
	"strings"

	"github.com/shopmetrics/backend/internal/domain/shared"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusInactive  TenantStatus = "inactive"
	TenantStatusSuspended TenantStatus = "suspended"
)

// TenantPlan represents the subscription plan of a tenant
type TenantPlan string

const (
	TenantPlanFree TenantPlan = "free"
	TenantPlanPro  TenantPlan = "pro"
)

// Tenant represents a single connected store whose data is isolated from
// all other stores. The shop domain is the identity the source platform
// uses when delivering webhooks.
type Tenant struct {
	shared.BaseEntity
	Name        string
	ShopDomain  string
	AccessToken string
	Status      TenantStatus
	Plan        TenantPlan
}

// NewTenant creates a new tenant for the given shop domain
func NewTenant(name, shopDomain string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	shopDomain = NormalizeShopDomain(shopDomain)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot be empty")
	}
	if shopDomain == "" {
		return nil, shared.NewDomainError("INVALID_SHOP_DOMAIN", "Shop domain cannot be empty")
	}
	return &Tenant{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		ShopDomain: shopDomain,
		Status:     TenantStatusActive,
		Plan:       TenantPlanFree,
	}, nil
}

// NormalizeShopDomain lowercases and trims a shop domain so lookups are
// insensitive to how the platform formats the header.
func NormalizeShopDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// IsActive returns true if the tenant can receive events
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// Suspend marks the tenant as suspended
func (t *Tenant) Suspend() {
	t.Status = TenantStatusSuspended
}

// Activate marks the tenant as active
func (t *Tenant) Activate() {
	t.Status = TenantStatusActive
}

// SetAccessToken stores the Admin API access token used for full syncs
func (t *Tenant) SetAccessToken(token string) {
	t.AccessToken = token
}

package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopmetrics/backend/internal/domain/identity"
	"github.com/shopmetrics/backend/internal/domain/shared"
)

// TenantService handles tenant provisioning and lookup
type TenantService struct {
	tenants identity.TenantRepository
	users   identity.UserRepository
	logger  *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(tenants identity.TenantRepository, users identity.UserRepository, logger *zap.Logger) *TenantService {
	return &TenantService{
		tenants: tenants,
		users:   users,
		logger:  logger,
	}
}

// CreateTenant provisions a tenant for a shop domain and assigns the
// creating user to it. Webhooks for the domain start resolving as soon as
// the tenant row is visible.
func (s *TenantService) CreateTenant(ctx context.Context, userID uuid.UUID, input CreateTenantInput) (*TenantView, error) {
	shopDomain := identity.NormalizeShopDomain(input.ShopDomain)
	exists, err := s.tenants.ExistsByShopDomain(ctx, shopDomain)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("SHOP_DOMAIN_TAKEN", "A tenant is already registered for this shop domain")
	}

	tenant, err := identity.NewTenant(input.Name, shopDomain)
	if err != nil {
		return nil, err
	}
	if input.AccessToken != "" {
		tenant.SetAccessToken(input.AccessToken)
	}

	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.AssignTenant(tenant.ID)
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("tenant provisioned",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("shop_domain", tenant.ShopDomain),
	)
	return tenantView(tenant), nil
}

// GetTenant returns a tenant by id
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*TenantView, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return tenantView(tenant), nil
}

// ListTenants returns tenants page by page
func (s *TenantService) ListTenants(ctx context.Context, filter shared.Filter) ([]TenantView, error) {
	tenants, err := s.tenants.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]TenantView, len(tenants))
	for i := range tenants {
		views[i] = *tenantView(&tenants[i])
	}
	return views, nil
}

// UpdateAccessToken rotates the Admin API token used by the sync adapter
func (s *TenantService) UpdateAccessToken(ctx context.Context, id uuid.UUID, accessToken string) error {
	if accessToken == "" {
		return shared.NewDomainError("INVALID_INPUT", "Access token cannot be empty")
	}

	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return err
	}

	tenant.SetAccessToken(accessToken)
	return s.tenants.Save(ctx, tenant)
}

// ResolveForUser loads the tenant assigned to a user, if any
func (s *TenantService) ResolveForUser(ctx context.Context, userID uuid.UUID) (*TenantView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TenantID == nil {
		return nil, shared.ErrNotFound
	}

	tenant, err := s.tenants.FindByID(ctx, *user.TenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("user references missing tenant",
				zap.String("user_id", userID.String()),
			)
		}
		return nil, err
	}
	return tenantView(tenant), nil
}

func tenantView(t *identity.Tenant) *TenantView {
	return &TenantView{
		ID:         t.ID,
		Name:       t.Name,
		ShopDomain: t.ShopDomain,
		Status:     string(t.Status),
		Plan:       string(t.Plan),
		CreatedAt:  t.CreatedAt,
	}
}

package sync

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopmetrics/backend/internal/domain/identity"
	"github.com/shopmetrics/backend/internal/domain/shared"
	"github.com/shopmetrics/backend/internal/domain/shop"
	"github.com/shopmetrics/backend/internal/infrastructure/ecommerce"
)

// StoreFetcher pulls full resource listings from the storefront platform
type StoreFetcher interface {
	FetchProducts(ctx context.Context, creds ecommerce.StoreCredentials) ([]ecommerce.ShopifyProduct, error)
	FetchCustomers(ctx context.Context, creds ecommerce.StoreCredentials) ([]ecommerce.ShopifyCustomer, error)
	FetchOrders(ctx context.Context, creds ecommerce.StoreCredentials) ([]ecommerce.ShopifyOrder, error)
}

// Result summarizes one full sync run
type Result struct {
	Products  int `json:"products"`
	Customers int `json:"customers"`
	Orders    int `json:"orders"`
	Failed    int `json:"failed"`
}

// Service performs a full backfill of a tenant's store through the Admin
// API. Webhooks keep data fresh afterwards; the sync exists for onboarding
// and for repairing gaps after downtime. Records flow through the same
// guarded upserts as webhook events, so a sync can never clobber fresher
// webhook data.
type Service struct {
	tenants   identity.TenantRepository
	orders    shop.OrderRepository
	customers shop.CustomerRepository
	products  shop.ProductRepository
	fetcher   StoreFetcher
	logger    *zap.Logger
}

// NewService creates a new sync service
func NewService(
	tenants identity.TenantRepository,
	orders shop.OrderRepository,
	customers shop.CustomerRepository,
	products shop.ProductRepository,
	fetcher StoreFetcher,
	logger *zap.Logger,
) *Service {
	return &Service{
		tenants:   tenants,
		orders:    orders,
		customers: customers,
		products:  products,
		fetcher:   fetcher,
		logger:    logger,
	}
}

// SyncTenant pulls the full product, customer and order listings for one
// tenant and upserts them. Individual record failures are counted, logged
// and skipped; the sync keeps going.
func (s *Service) SyncTenant(ctx context.Context, tenantID uuid.UUID) (*Result, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.AccessToken == "" {
		return nil, shared.NewDomainError("NO_ACCESS_TOKEN", "Tenant has no Admin API access token configured")
	}

	creds := ecommerce.StoreCredentials{
		ShopDomain:  tenant.ShopDomain,
		AccessToken: tenant.AccessToken,
	}

	result := &Result{}

	if err := s.syncProducts(ctx, tenant.ID, creds, result); err != nil {
		return nil, fmt.Errorf("sync products: %w", err)
	}
	if err := s.syncCustomers(ctx, tenant.ID, creds, result); err != nil {
		return nil, fmt.Errorf("sync customers: %w", err)
	}
	if err := s.syncOrders(ctx, tenant.ID, creds, result); err != nil {
		return nil, fmt.Errorf("sync orders: %w", err)
	}

	s.logger.Info("tenant sync completed",
		zap.String("tenant_id", tenant.ID.String()),
		zap.Int("products", result.Products),
		zap.Int("customers", result.Customers),
		zap.Int("orders", result.Orders),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *Service) syncProducts(ctx context.Context, tenantID uuid.UUID, creds ecommerce.StoreCredentials, result *Result) error {
	listing, err := s.fetcher.FetchProducts(ctx, creds)
	if err != nil {
		return err
	}

	for _, src := range listing {
		if src.ID == 0 {
			result.Failed++
			continue
		}

		product, err := shop.NewProduct(tenantID, strconv.FormatInt(src.ID, 10))
		if err != nil {
			result.Failed++
			continue
		}
		product.Title = src.Title
		product.Price = src.PriceDecimal()
		product.SourceUpdatedAt = src.UpdatedAtTime()

		if err := s.products.Upsert(ctx, product); err != nil {
			s.logger.Warn("product sync upsert failed",
				zap.String("tenant_id", tenantID.String()),
				zap.String("external_id", product.ExternalID),
				zap.Error(err),
			)
			result.Failed++
			continue
		}
		result.Products++
	}
	return nil
}

func (s *Service) syncCustomers(ctx context.Context, tenantID uuid.UUID, creds ecommerce.StoreCredentials, result *Result) error {
	listing, err := s.fetcher.FetchCustomers(ctx, creds)
	if err != nil {
		return err
	}

	for _, src := range listing {
		if src.ID == 0 {
			result.Failed++
			continue
		}

		customer, err := shop.NewCustomer(tenantID, strconv.FormatInt(src.ID, 10))
		if err != nil {
			result.Failed++
			continue
		}
		customer.FirstName = src.FirstName
		customer.LastName = src.LastName
		customer.Email = src.Email
		customer.TotalSpent = src.TotalSpentDecimal()
		customer.SourceUpdatedAt = src.UpdatedAtTime()

		if err := s.customers.Upsert(ctx, customer); err != nil {
			s.logger.Warn("customer sync upsert failed",
				zap.String("tenant_id", tenantID.String()),
				zap.String("external_id", customer.ExternalID),
				zap.Error(err),
			)
			result.Failed++
			continue
		}
		result.Customers++
	}
	return nil
}

func (s *Service) syncOrders(ctx context.Context, tenantID uuid.UUID, creds ecommerce.StoreCredentials, result *Result) error {
	listing, err := s.fetcher.FetchOrders(ctx, creds)
	if err != nil {
		return err
	}

	for _, src := range listing {
		if src.ID == 0 {
			result.Failed++
			continue
		}

		order, err := shop.NewOrder(tenantID, strconv.FormatInt(src.ID, 10))
		if err != nil {
			result.Failed++
			continue
		}
		order.OrderNumber = src.OrderNumber
		order.TotalPrice = src.TotalPriceDecimal()
		order.Currency = src.Currency
		order.ProcessedAt = src.ProcessedAtTime()
		order.SourceUpdatedAt = src.UpdatedAtTime()

		if src.Customer != nil && src.Customer.ID != 0 {
			stored, err := s.customers.FindByExternalID(ctx, tenantID, strconv.FormatInt(src.Customer.ID, 10))
			if err == nil {
				order.AttachCustomer(stored.ID)
			}
		}

		if err := s.orders.Upsert(ctx, order); err != nil {
			s.logger.Warn("order sync upsert failed",
				zap.String("tenant_id", tenantID.String()),
				zap.String("external_id", order.ExternalID),
				zap.Error(err),
			)
			result.Failed++
			continue
		}
		result.Orders++
	}
	return nil
}

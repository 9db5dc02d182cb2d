package ingest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shopmetrics/backend/internal/domain/identity"
	"github.com/shopmetrics/backend/internal/domain/ingestion"
	"github.com/shopmetrics/backend/internal/domain/shared"
	"github.com/shopmetrics/backend/internal/domain/shop"
)

// MockTenantRepository is a mock implementation of identity.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByShopDomain(ctx context.Context, shopDomain string) (*identity.Tenant, error) {
	args := m.Called(ctx, shopDomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) ExistsByShopDomain(ctx context.Context, shopDomain string) (bool, error) {
	args := m.Called(ctx, shopDomain)
	return args.Bool(0), args.Error(1)
}

// MockOrderRepository is a mock implementation of shop.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Upsert(ctx context.Context, order *shop.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*shop.Order, error) {
	args := m.Called(ctx, tenantID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Order), args.Error(1)
}

// MockCustomerRepository is a mock implementation of shop.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Upsert(ctx context.Context, customer *shop.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*shop.Customer, error) {
	args := m.Called(ctx, tenantID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Customer), args.Error(1)
}

// MockProductRepository is a mock implementation of shop.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Upsert(ctx context.Context, product *shop.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*shop.Product, error) {
	args := m.Called(ctx, tenantID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Product), args.Error(1)
}

// MockDeadLetterRepository is a mock implementation of ingestion.DeadLetterRepository
type MockDeadLetterRepository struct {
	mock.Mock
}

func (m *MockDeadLetterRepository) Save(ctx context.Context, letter *ingestion.DeadLetter) error {
	args := m.Called(ctx, letter)
	return args.Error(0)
}

func (m *MockDeadLetterRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ingestion.DeadLetter, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ingestion.DeadLetter), args.Error(1)
}

func (m *MockDeadLetterRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeadLetterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// recordingSink captures dispatched events for assertions
type recordingSink struct {
	mu     sync.Mutex
	events []InboundEvent
}

func (s *recordingSink) Dispatch(event InboundEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) Events() []InboundEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]InboundEvent, len(s.events))
	copy(out, s.events)
	return out
}

package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopmetrics/backend/internal/domain/shared"
	"github.com/shopmetrics/backend/internal/infrastructure/cache"
)

// MockReportRepository is a mock implementation of Repository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) DashboardStats(ctx context.Context, tenantID uuid.UUID) (*DashboardStats, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DashboardStats), args.Error(1)
}

func (m *MockReportRepository) SalesByDay(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]DailySales, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DailySales), args.Error(1)
}

func (m *MockReportRepository) TopCustomers(ctx context.Context, tenantID uuid.UUID, limit int) ([]TopCustomer, error) {
	args := m.Called(ctx, tenantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TopCustomer), args.Error(1)
}

func (m *MockReportRepository) ListOrders(ctx context.Context, tenantID uuid.UUID, query OrderQuery) (*shared.Paginated[OrderRow], error) {
	args := m.Called(ctx, tenantID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[OrderRow]), args.Error(1)
}

func TestDashboardService_GetStats(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("first call hits the repository, second the cache", func(t *testing.T) {
		repo := new(MockReportRepository)
		svc := NewDashboardService(repo, cache.NewInMemoryReportCache(), zap.NewNop())

		stats := &DashboardStats{
			TotalOrders:  5,
			TotalRevenue: decimal.RequireFromString("100.00"),
		}
		repo.On("DashboardStats", mock.Anything, tenantID).Return(stats, nil).Once()

		first, err := svc.GetStats(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), first.TotalOrders)

		second, err := svc.GetStats(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), second.TotalOrders)
		assert.True(t, second.TotalRevenue.Equal(first.TotalRevenue))

		repo.AssertNumberOfCalls(t, "DashboardStats", 1)
	})

	t.Run("tenants do not share cache entries", func(t *testing.T) {
		repo := new(MockReportRepository)
		svc := NewDashboardService(repo, cache.NewInMemoryReportCache(), zap.NewNop())

		otherTenant := uuid.New()
		repo.On("DashboardStats", mock.Anything, tenantID).Return(&DashboardStats{TotalOrders: 1}, nil).Once()
		repo.On("DashboardStats", mock.Anything, otherTenant).Return(&DashboardStats{TotalOrders: 2}, nil).Once()

		first, err := svc.GetStats(ctx, tenantID)
		require.NoError(t, err)
		second, err := svc.GetStats(ctx, otherTenant)
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.TotalOrders)
		assert.Equal(t, int64(2), second.TotalOrders)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		repo := new(MockReportRepository)
		svc := NewDashboardService(repo, cache.NewInMemoryReportCache(), zap.NewNop())

		repo.On("DashboardStats", mock.Anything, tenantID).Return(nil, assert.AnError)

		_, err := svc.GetStats(ctx, tenantID)
		assert.Error(t, err)
	})
}

func TestDashboardService_GetSalesByDay(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("window defaults applied and result cached", func(t *testing.T) {
		repo := new(MockReportRepository)
		svc := NewDashboardService(repo, cache.NewInMemoryReportCache(), zap.NewNop())

		series := []DailySales{{Date: "2026-03-01", OrderCount: 2, Revenue: decimal.RequireFromString("30.00")}}
		repo.On("SalesByDay", mock.Anything, tenantID, mock.Anything, mock.Anything).Return(series, nil).Once()

		first, err := svc.GetSalesByDay(ctx, tenantID, 0)
		require.NoError(t, err)
		require.Len(t, first, 1)

		// Second read with the same (defaulted) window comes from cache
		second, err := svc.GetSalesByDay(ctx, tenantID, 0)
		require.NoError(t, err)
		assert.Equal(t, first[0].Date, second[0].Date)

		repo.AssertNumberOfCalls(t, "SalesByDay", 1)
	})
}

func TestDashboardService_GetTopCustomers(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	repo := new(MockReportRepository)
	svc := NewDashboardService(repo, cache.NewInMemoryReportCache(), zap.NewNop())

	customers := []TopCustomer{{ExternalID: "501", FirstName: "Jane", TotalSpent: decimal.RequireFromString("500.00")}}
	repo.On("TopCustomers", mock.Anything, tenantID, 5).Return(customers, nil).Once()

	first, err := svc.GetTopCustomers(ctx, tenantID, 5)
	require.NoError(t, err)
	second, err := svc.GetTopCustomers(ctx, tenantID, 5)
	require.NoError(t, err)

	assert.Equal(t, first[0].ExternalID, second[0].ExternalID)
	repo.AssertNumberOfCalls(t, "TopCustomers", 1)
}

package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopmetrics/backend/internal/domain/shared"
	"github.com/shopmetrics/backend/internal/infrastructure/cache"
)

// Dashboard results tolerate short staleness; webhook processing keeps the
// tables fresh and the cache just smooths repeated reads.
const (
	statsCacheTTL = time.Minute
	salesCacheTTL = 5 * time.Minute
)

// DashboardService serves the dashboard read models, caching the expensive
// aggregates. Cache failures fall through to the database silently.
type DashboardService struct {
	repo   Repository
	cache  cache.ReportCache
	logger *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repo Repository, reportCache cache.ReportCache, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		repo:   repo,
		cache:  reportCache,
		logger: logger,
	}
}

// GetStats returns the headline stats for a tenant
func (s *DashboardService) GetStats(ctx context.Context, tenantID uuid.UUID) (*DashboardStats, error) {
	key := fmt.Sprintf("%s:stats", tenantID)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var stats DashboardStats
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
		s.cache.Invalidate(ctx, key)
	}

	stats, err := s.repo.DashboardStats(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	s.cacheJSON(ctx, key, stats, statsCacheTTL)
	return stats, nil
}

// GetSalesByDay returns the daily sales series for the trailing window
func (s *DashboardService) GetSalesByDay(ctx context.Context, tenantID uuid.UUID, days int) ([]DailySales, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	key := fmt.Sprintf("%s:sales:%d", tenantID, days)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var series []DailySales
		if err := json.Unmarshal(cached, &series); err == nil {
			return series, nil
		}
		s.cache.Invalidate(ctx, key)
	}

	to := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	from := to.AddDate(0, 0, -days)

	series, err := s.repo.SalesByDay(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	s.cacheJSON(ctx, key, series, salesCacheTTL)
	return series, nil
}

// GetTopCustomers returns the tenant's highest lifetime spenders
func (s *DashboardService) GetTopCustomers(ctx context.Context, tenantID uuid.UUID, limit int) ([]TopCustomer, error) {
	key := fmt.Sprintf("%s:top-customers:%d", tenantID, limit)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var customers []TopCustomer
		if err := json.Unmarshal(cached, &customers); err == nil {
			return customers, nil
		}
		s.cache.Invalidate(ctx, key)
	}

	customers, err := s.repo.TopCustomers(ctx, tenantID, limit)
	if err != nil {
		return nil, err
	}

	s.cacheJSON(ctx, key, customers, salesCacheTTL)
	return customers, nil
}

// ListOrders returns one page of the tenant's orders. Pages are not cached;
// the query is cheap and pagination makes keys explode.
func (s *DashboardService) ListOrders(ctx context.Context, tenantID uuid.UUID, query OrderQuery) (*shared.Paginated[OrderRow], error) {
	return s.repo.ListOrders(ctx, tenantID, query)
}

func (s *DashboardService) cacheJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("failed to marshal report for cache", zap.String("key", key), zap.Error(err))
		return
	}
	s.cache.Set(ctx, key, payload, ttl)
}

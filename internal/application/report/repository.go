package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopmetrics/backend/internal/domain/shared"
	"github.com/shopmetrics/backend/internal/infrastructure/persistence/models"
)

// Repository reads aggregated views for the dashboard
type Repository interface {
	DashboardStats(ctx context.Context, tenantID uuid.UUID) (*DashboardStats, error)
	SalesByDay(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]DailySales, error)
	TopCustomers(ctx context.Context, tenantID uuid.UUID, limit int) ([]TopCustomer, error)
	ListOrders(ctx context.Context, tenantID uuid.UUID, query OrderQuery) (*shared.Paginated[OrderRow], error)
}

// GormReportRepository implements Repository with aggregate queries over the
// canonical order, customer and product tables
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// DashboardStats returns the headline counts and total revenue for a tenant
func (r *GormReportRepository) DashboardStats(ctx context.Context, tenantID uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("tenant_id = ?", tenantID).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// SalesByDay returns per-day order counts and revenue in [from, to]
func (r *GormReportRepository) SalesByDay(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]DailySales, error) {
	var rows []DailySales
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("tenant_id = ? AND processed_at >= ? AND processed_at < ?", tenantID, from, to).
		Select("DATE(processed_at) AS date, COUNT(*) AS order_count, COALESCE(SUM(total_price), 0) AS revenue").
		Group("DATE(processed_at)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopCustomers returns the highest lifetime spenders for a tenant
func (r *GormReportRepository) TopCustomers(ctx context.Context, tenantID uuid.UUID, limit int) ([]TopCustomer, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var rows []TopCustomer
	err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("tenant_id = ?", tenantID).
		Select("external_id, first_name, last_name, email, total_spent").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListOrders returns one page of orders, newest first, with the customer
// name joined in when the order references a customer. The optional From/To
// bounds apply to processed_at (From inclusive, To exclusive).
func (r *GormReportRepository) ListOrders(ctx context.Context, tenantID uuid.UUID, query OrderQuery) (*shared.Paginated[OrderRow], error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("orders.tenant_id = ?", tenantID)
		if query.From != nil {
			tx = tx.Where("orders.processed_at >= ?", *query.From)
		}
		if query.To != nil {
			tx = tx.Where("orders.processed_at < ?", *query.To)
		}
		return tx
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Scopes(scope).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []OrderRow
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Scopes(scope).
		Select(`orders.id, orders.external_id, orders.order_number, orders.total_price,
			orders.currency, orders.processed_at,
			COALESCE(TRIM(COALESCE(customers.first_name, '') || ' ' || COALESCE(customers.last_name, '')), '') AS customer_name,
			COALESCE(customers.email, '') AS customer_email`).
		Joins("LEFT JOIN customers ON customers.id = orders.customer_id").
		Order("orders.processed_at DESC").
		Offset(query.Filter.Offset()).
		Limit(query.Filter.Limit()).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	pageNum := query.Filter.Page
	if pageNum < 1 {
		pageNum = 1
	}
	page := shared.NewPaginated(rows, total, pageNum, query.Filter.Limit())
	return &page, nil
}

var _ Repository = (*GormReportRepository)(nil)

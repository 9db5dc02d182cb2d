package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopmetrics/backend/internal/domain/shared"
	"github.com/shopmetrics/backend/internal/domain/shop"
	"github.com/shopmetrics/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements shop.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Upsert inserts the order or updates the existing row for the same
// (tenant_id, external_id) key. The update only applies when the incoming
// source_updated_at is not older than the stored one, so a redelivered or
// out-of-order event can never overwrite fresher data.
func (r *GormOrderRepository) Upsert(ctx context.Context, order *shop.Order) error {
	var model models.OrderModel
	model.FromDomain(order)

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"order_number", "total_price", "currency", "processed_at",
			"customer_id", "source_updated_at", "updated_at",
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "excluded.source_updated_at >= orders.source_updated_at"},
		}},
	}).Create(&model).Error
}

// FindByExternalID finds an order by its source platform id within a tenant
func (r *GormOrderRepository) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*shop.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND external_id = ?", tenantID, externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

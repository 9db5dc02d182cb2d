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

// GormShopCustomerRepository implements shop.CustomerRepository using GORM
type GormShopCustomerRepository struct {
	db *gorm.DB
}

// NewGormShopCustomerRepository creates a new GormShopCustomerRepository
func NewGormShopCustomerRepository(db *gorm.DB) *GormShopCustomerRepository {
	return &GormShopCustomerRepository{db: db}
}

// Upsert inserts the customer or updates the existing row for the same
// (tenant_id, external_id) key, guarded by source_updated_at.
func (r *GormShopCustomerRepository) Upsert(ctx context.Context, customer *shop.Customer) error {
	var model models.CustomerModel
	model.FromDomain(customer)

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"first_name", "last_name", "email", "total_spent",
			"source_updated_at", "updated_at",
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "excluded.source_updated_at >= customers.source_updated_at"},
		}},
	}).Create(&model).Error
}

// FindByExternalID finds a customer by its source platform id within a tenant
func (r *GormShopCustomerRepository) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*shop.Customer, error) {
	var model models.CustomerModel
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

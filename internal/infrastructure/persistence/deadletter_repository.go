package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopmetrics/backend/internal/domain/ingestion"
	"github.com/shopmetrics/backend/internal/domain/shared"
	"github.com/shopmetrics/backend/internal/infrastructure/persistence/models"
)

// GormDeadLetterRepository implements ingestion.DeadLetterRepository using GORM
type GormDeadLetterRepository struct {
	db *gorm.DB
}

// NewGormDeadLetterRepository creates a new GormDeadLetterRepository
func NewGormDeadLetterRepository(db *gorm.DB) *GormDeadLetterRepository {
	return &GormDeadLetterRepository{db: db}
}

// Save persists a dead letter
func (r *GormDeadLetterRepository) Save(ctx context.Context, letter *ingestion.DeadLetter) error {
	model := deadLetterModelFromDomain(letter)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindAll returns dead letters ordered newest first
func (r *GormDeadLetterRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ingestion.DeadLetter, error) {
	var letterModels []models.WebhookDeadLetterModel
	if err := r.db.WithContext(ctx).
		Model(&models.WebhookDeadLetterModel{}).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&letterModels).Error; err != nil {
		return nil, err
	}

	letters := make([]ingestion.DeadLetter, len(letterModels))
	for i, model := range letterModels {
		letters[i] = *deadLetterModelToDomain(&model)
	}
	return letters, nil
}

// Count returns the total number of dead letters
func (r *GormDeadLetterRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WebhookDeadLetterModel{}).Count(&count).Error
	return count, err
}

// Delete removes a dead letter, typically after a successful replay
func (r *GormDeadLetterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.WebhookDeadLetterModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func deadLetterModelFromDomain(l *ingestion.DeadLetter) *models.WebhookDeadLetterModel {
	return &models.WebhookDeadLetterModel{
		ID:         l.ID,
		Topic:      l.Topic,
		ShopDomain: l.ShopDomain,
		Payload:    l.Payload,
		LastError:  l.LastError,
		Attempts:   l.Attempts,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

func deadLetterModelToDomain(m *models.WebhookDeadLetterModel) *ingestion.DeadLetter {
	return &ingestion.DeadLetter{
		ID:         m.ID,
		Topic:      m.Topic,
		ShopDomain: m.ShopDomain,
		Payload:    m.Payload,
		LastError:  m.LastError,
		Attempts:   m.Attempts,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// WebhookDeadLetterModel stores webhook events that exhausted their retries
// or could not be enqueued. Rows are kept for manual inspection and replay.
type WebhookDeadLetterModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	Topic      string    `gorm:"type:varchar(100);not null;index"`
	ShopDomain string    `gorm:"type:varchar(255);not null;index"`
	Payload    []byte    `gorm:"type:bytea"`
	LastError  string    `gorm:"type:text"`
	Attempts   int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"not null;index"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WebhookDeadLetterModel) TableName() string {
	return "webhook_dead_letters"
}

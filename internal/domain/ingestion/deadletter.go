package ingestion

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shopmetrics/backend/internal/domain/shared"
)

// DeadLetter records a webhook event that could not be processed after all
// retries, or that arrived while the ingest queue was full. The raw payload
// is kept so the event can be replayed once the cause is fixed.
type DeadLetter struct {
	ID         uuid.UUID
	Topic      string
	ShopDomain string
	Payload    []byte
	LastError  string
	Attempts   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewDeadLetter creates a dead letter for a failed event
func NewDeadLetter(topic, shopDomain string, payload []byte, attempts int, lastError string) *DeadLetter {
	now := time.Now().UTC()
	return &DeadLetter{
		ID:         uuid.New(),
		Topic:      topic,
		ShopDomain: shopDomain,
		Payload:    payload,
		LastError:  lastError,
		Attempts:   attempts,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// DeadLetterRepository defines the persistence contract for dead letters
type DeadLetterRepository interface {
	Save(ctx context.Context, letter *DeadLetter) error
	FindAll(ctx context.Context, filter shared.Filter) ([]DeadLetter, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

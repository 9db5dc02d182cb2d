package shop

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the persistence contract for orders.
// Upsert must be atomic with respect to concurrent deliveries of the same
// (external id, tenant) key: the source platform redelivers events and does
// not guarantee ordering, so implementations only overwrite when the
// incoming SourceUpdatedAt is not older than the stored one.
type OrderRepository interface {
	Upsert(ctx context.Context, order *Order) error
	// FindByExternalID returns shared.ErrNotFound when no record matches
	FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*Order, error)
}

// CustomerRepository defines the persistence contract for customers
type CustomerRepository interface {
	Upsert(ctx context.Context, customer *Customer) error
	FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*Customer, error)
}

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	Upsert(ctx context.Context, product *Product) error
	FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*Product, error)
}

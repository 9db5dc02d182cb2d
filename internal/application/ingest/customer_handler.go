package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopmetrics/backend/internal/domain/shop"
	"github.com/shopmetrics/backend/internal/infrastructure/ecommerce"
)

// CustomerHandler upserts canonical customers from customer webhook payloads
type CustomerHandler struct {
	customers shop.CustomerRepository
	logger    *zap.Logger
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers shop.CustomerRepository, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, logger: logger}
}

// Handle parses a customer payload and performs the idempotent upsert
func (h *CustomerHandler) Handle(ctx context.Context, tenantID uuid.UUID, payload []byte) error {
	var src ecommerce.ShopifyCustomer
	if err := json.Unmarshal(payload, &src); err != nil {
		return fmt.Errorf("unmarshal customer payload: %w", err)
	}
	if src.ID == 0 {
		return fmt.Errorf("customer payload has no external id")
	}

	customer, err := shop.NewCustomer(tenantID, strconv.FormatInt(src.ID, 10))
	if err != nil {
		return err
	}
	customer.FirstName = src.FirstName
	customer.LastName = src.LastName
	customer.Email = src.Email
	customer.TotalSpent = src.TotalSpentDecimal()
	customer.SourceUpdatedAt = src.UpdatedAtTime()

	if err := h.customers.Upsert(ctx, customer); err != nil {
		return fmt.Errorf("upsert customer %s: %w", customer.ExternalID, err)
	}

	h.logger.Debug("customer upserted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("external_id", customer.ExternalID),
	)
	return nil
}

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

// OrderHandler upserts canonical orders from order webhook payloads.
// When the payload embeds the customer that placed the order, the customer
// record is upserted first so the order can reference it.
type OrderHandler struct {
	orders    shop.OrderRepository
	customers shop.CustomerRepository
	logger    *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders shop.OrderRepository, customers shop.CustomerRepository, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders:    orders,
		customers: customers,
		logger:    logger,
	}
}

// Handle parses an order payload and performs the idempotent upsert
func (h *OrderHandler) Handle(ctx context.Context, tenantID uuid.UUID, payload []byte) error {
	var src ecommerce.ShopifyOrder
	if err := json.Unmarshal(payload, &src); err != nil {
		return fmt.Errorf("unmarshal order payload: %w", err)
	}
	if src.ID == 0 {
		return fmt.Errorf("order payload has no external id")
	}

	order, err := shop.NewOrder(tenantID, strconv.FormatInt(src.ID, 10))
	if err != nil {
		return err
	}
	order.OrderNumber = src.OrderNumber
	order.TotalPrice = src.TotalPriceDecimal()
	order.Currency = src.Currency
	order.ProcessedAt = src.ProcessedAtTime()
	order.SourceUpdatedAt = src.UpdatedAtTime()

	if src.Customer != nil && src.Customer.ID != 0 {
		customerID, err := h.upsertEmbeddedCustomer(ctx, tenantID, src.Customer)
		if err != nil {
			return fmt.Errorf("upsert embedded customer: %w", err)
		}
		order.AttachCustomer(customerID)
	}

	if err := h.orders.Upsert(ctx, order); err != nil {
		return fmt.Errorf("upsert order %s: %w", order.ExternalID, err)
	}

	h.logger.Debug("order upserted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("external_id", order.ExternalID),
	)
	return nil
}

// upsertEmbeddedCustomer writes the customer sub-record and returns the
// internal id of the row that ends up current, which may predate this event.
func (h *OrderHandler) upsertEmbeddedCustomer(ctx context.Context, tenantID uuid.UUID, src *ecommerce.ShopifyCustomer) (uuid.UUID, error) {
	externalID := strconv.FormatInt(src.ID, 10)

	customer, err := shop.NewCustomer(tenantID, externalID)
	if err != nil {
		return uuid.Nil, err
	}
	customer.FirstName = src.FirstName
	customer.LastName = src.LastName
	customer.Email = src.Email
	customer.TotalSpent = src.TotalSpentDecimal()
	customer.SourceUpdatedAt = src.UpdatedAtTime()

	if err := h.customers.Upsert(ctx, customer); err != nil {
		return uuid.Nil, err
	}

	stored, err := h.customers.FindByExternalID(ctx, tenantID, externalID)
	if err != nil {
		return uuid.Nil, err
	}
	return stored.ID, nil
}

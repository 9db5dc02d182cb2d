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

// ProductHandler upserts canonical products from product webhook payloads
type ProductHandler struct {
	products shop.ProductRepository
	logger   *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products shop.ProductRepository, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// Handle parses a product payload and performs the idempotent upsert
func (h *ProductHandler) Handle(ctx context.Context, tenantID uuid.UUID, payload []byte) error {
	var src ecommerce.ShopifyProduct
	if err := json.Unmarshal(payload, &src); err != nil {
		return fmt.Errorf("unmarshal product payload: %w", err)
	}
	if src.ID == 0 {
		return fmt.Errorf("product payload has no external id")
	}

	product, err := shop.NewProduct(tenantID, strconv.FormatInt(src.ID, 10))
	if err != nil {
		return err
	}
	product.Title = src.Title
	product.Price = src.PriceDecimal()
	product.SourceUpdatedAt = src.UpdatedAtTime()

	if err := h.products.Upsert(ctx, product); err != nil {
		return fmt.Errorf("upsert product %s: %w", product.ExternalID, err)
	}

	h.logger.Debug("product upserted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("external_id", product.ExternalID),
	)
	return nil
}

package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopmetrics/backend/internal/domain/shop"
)

func TestOrderHandler_Handle(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("upserts order from full payload", func(t *testing.T) {
		orders := new(MockOrderRepository)
		customers := new(MockCustomerRepository)
		h := NewOrderHandler(orders, customers, zap.NewNop())

		orders.On("Upsert", mock.Anything, mock.MatchedBy(func(o *shop.Order) bool {
			return o.TenantID == tenantID &&
				o.ExternalID == "9001" &&
				o.OrderNumber == 42 &&
				o.TotalPrice.Equal(decimal.RequireFromString("19.99")) &&
				o.Currency == "USD" &&
				o.ProcessedAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		})).Return(nil)

		body := []byte(`{"id":9001,"order_number":42,"total_price":"19.99","currency":"USD","processed_at":"2024-01-01T00:00:00Z"}`)
		err := h.Handle(ctx, tenantID, body)

		require.NoError(t, err)
		orders.AssertExpectations(t)
		customers.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("malformed price defaults to zero", func(t *testing.T) {
		orders := new(MockOrderRepository)
		customers := new(MockCustomerRepository)
		h := NewOrderHandler(orders, customers, zap.NewNop())

		orders.On("Upsert", mock.Anything, mock.MatchedBy(func(o *shop.Order) bool {
			return o.TotalPrice.IsZero()
		})).Return(nil)

		body := []byte(`{"id":9002,"total_price":"not-a-number"}`)
		err := h.Handle(ctx, tenantID, body)

		require.NoError(t, err)
		orders.AssertExpectations(t)
	})

	t.Run("embedded customer is upserted before the order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		customers := new(MockCustomerRepository)
		h := NewOrderHandler(orders, customers, zap.NewNop())

		stored, err := shop.NewCustomer(tenantID, "501")
		require.NoError(t, err)

		customers.On("Upsert", mock.Anything, mock.MatchedBy(func(c *shop.Customer) bool {
			return c.TenantID == tenantID && c.ExternalID == "501" && c.Email == "jane@example.com"
		})).Return(nil)
		customers.On("FindByExternalID", mock.Anything, tenantID, "501").Return(stored, nil)
		orders.On("Upsert", mock.Anything, mock.MatchedBy(func(o *shop.Order) bool {
			return o.CustomerID != nil && *o.CustomerID == stored.ID
		})).Return(nil)

		body := []byte(`{"id":9003,"total_price":"10.00","customer":{"id":501,"email":"jane@example.com","total_spent":"99.00"}}`)
		err = h.Handle(ctx, tenantID, body)

		require.NoError(t, err)
		customers.AssertExpectations(t)
		orders.AssertExpectations(t)
	})

	t.Run("customer upsert failure stops the order upsert", func(t *testing.T) {
		orders := new(MockOrderRepository)
		customers := new(MockCustomerRepository)
		h := NewOrderHandler(orders, customers, zap.NewNop())

		customers.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("db down"))

		body := []byte(`{"id":9004,"customer":{"id":502}}`)
		err := h.Handle(ctx, tenantID, body)

		assert.Error(t, err)
		orders.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("payload without external id is an error", func(t *testing.T) {
		orders := new(MockOrderRepository)
		customers := new(MockCustomerRepository)
		h := NewOrderHandler(orders, customers, zap.NewNop())

		err := h.Handle(ctx, tenantID, []byte(`{"order_number":42}`))
		assert.Error(t, err)
		orders.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		orders := new(MockOrderRepository)
		customers := new(MockCustomerRepository)
		h := NewOrderHandler(orders, customers, zap.NewNop())

		orders.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("db down"))

		err := h.Handle(ctx, tenantID, []byte(`{"id":9005}`))
		assert.Error(t, err)
	})
}

func TestCustomerHandler_Handle(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("upserts customer with parsed total spent", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		h := NewCustomerHandler(customers, zap.NewNop())

		customers.On("Upsert", mock.Anything, mock.MatchedBy(func(c *shop.Customer) bool {
			return c.ExternalID == "501" &&
				c.FirstName == "Jane" &&
				c.TotalSpent.Equal(decimal.RequireFromString("250.00"))
		})).Return(nil)

		body := []byte(`{"id":501,"first_name":"Jane","last_name":"Doe","total_spent":"250.00","updated_at":"2024-02-01T00:00:00Z"}`)
		err := h.Handle(ctx, tenantID, body)

		require.NoError(t, err)
		customers.AssertExpectations(t)
	})

	t.Run("absent total spent defaults to zero", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		h := NewCustomerHandler(customers, zap.NewNop())

		customers.On("Upsert", mock.Anything, mock.MatchedBy(func(c *shop.Customer) bool {
			return c.TotalSpent.IsZero()
		})).Return(nil)

		err := h.Handle(ctx, tenantID, []byte(`{"id":502}`))
		require.NoError(t, err)
	})
}

func TestProductHandler_Handle(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("takes the first variant price", func(t *testing.T) {
		products := new(MockProductRepository)
		h := NewProductHandler(products, zap.NewNop())

		products.On("Upsert", mock.Anything, mock.MatchedBy(func(p *shop.Product) bool {
			return p.ExternalID == "901" &&
				p.Title == "Widget" &&
				p.Price.Equal(decimal.RequireFromString("29.99"))
		})).Return(nil)

		body := []byte(`{"id":901,"title":"Widget","variants":[{"id":1,"price":"29.99"},{"id":2,"price":"39.99"}]}`)
		err := h.Handle(ctx, tenantID, body)

		require.NoError(t, err)
		products.AssertExpectations(t)
	})

	t.Run("product without variants gets zero price", func(t *testing.T) {
		products := new(MockProductRepository)
		h := NewProductHandler(products, zap.NewNop())

		products.On("Upsert", mock.Anything, mock.MatchedBy(func(p *shop.Product) bool {
			return p.Price.IsZero()
		})).Return(nil)

		err := h.Handle(ctx, tenantID, []byte(`{"id":902,"title":"No Variants"}`))
		require.NoError(t, err)
	})
}

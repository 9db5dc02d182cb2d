package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopmetrics/backend/internal/domain/shared"
	"github.com/shopmetrics/backend/internal/domain/shop"
)

// Shop models carry a composite unique index on (tenant_id, external_id):
// external ids are only unique within a tenant, and the index is what the
// conditional ON CONFLICT upserts target. They declare TenantID themselves
// instead of embedding TenantScopedModel so the column participates in the
// composite index rather than the default single-column one.

// CustomerModel is the persistence model for shop.Customer
type CustomerModel struct {
	BaseModel
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_customers_tenant_external"`
	ExternalID      string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_customers_tenant_external"`
	FirstName       string          `gorm:"type:varchar(100)"`
	LastName        string          `gorm:"type:varchar(100)"`
	Email           string          `gorm:"type:varchar(255);index"`
	TotalSpent      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	SourceUpdatedAt time.Time       `gorm:"index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to a domain customer
func (m *CustomerModel) ToDomain() *shop.Customer {
	return &shop.Customer{
		TenantEntity: shared.TenantEntity{
			BaseEntity: m.BaseModel.ToDomain(),
			TenantID:   m.TenantID,
		},
		ExternalID:      m.ExternalID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		TotalSpent:      m.TotalSpent,
		SourceUpdatedAt: m.SourceUpdatedAt,
	}
}

// FromDomain populates the model from a domain customer
func (m *CustomerModel) FromDomain(c *shop.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.TenantID = c.TenantID
	m.ExternalID = c.ExternalID
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Email = c.Email
	m.TotalSpent = c.TotalSpent
	m.SourceUpdatedAt = c.SourceUpdatedAt
}

// OrderModel is the persistence model for shop.Order
type OrderModel struct {
	BaseModel
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_orders_tenant_external"`
	ExternalID      string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_orders_tenant_external"`
	OrderNumber     int64           `gorm:"not null;default:0"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Currency        string          `gorm:"type:varchar(10)"`
	ProcessedAt     time.Time       `gorm:"index"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index"`
	SourceUpdatedAt time.Time       `gorm:"index"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the model to a domain order
func (m *OrderModel) ToDomain() *shop.Order {
	return &shop.Order{
		TenantEntity: shared.TenantEntity{
			BaseEntity: m.BaseModel.ToDomain(),
			TenantID:   m.TenantID,
		},
		ExternalID:      m.ExternalID,
		OrderNumber:     m.OrderNumber,
		TotalPrice:      m.TotalPrice,
		Currency:        m.Currency,
		ProcessedAt:     m.ProcessedAt,
		CustomerID:      m.CustomerID,
		SourceUpdatedAt: m.SourceUpdatedAt,
	}
}

// FromDomain populates the model from a domain order
func (m *OrderModel) FromDomain(o *shop.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.TenantID = o.TenantID
	m.ExternalID = o.ExternalID
	m.OrderNumber = o.OrderNumber
	m.TotalPrice = o.TotalPrice
	m.Currency = o.Currency
	m.ProcessedAt = o.ProcessedAt
	m.CustomerID = o.CustomerID
	m.SourceUpdatedAt = o.SourceUpdatedAt
}

// ProductModel is the persistence model for shop.Product
type ProductModel struct {
	BaseModel
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_products_tenant_external"`
	ExternalID      string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_products_tenant_external"`
	Title           string          `gorm:"type:varchar(500)"`
	Price           decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	SourceUpdatedAt time.Time       `gorm:"index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain product
func (m *ProductModel) ToDomain() *shop.Product {
	return &shop.Product{
		TenantEntity: shared.TenantEntity{
			BaseEntity: m.BaseModel.ToDomain(),
			TenantID:   m.TenantID,
		},
		ExternalID:      m.ExternalID,
		Title:           m.Title,
		Price:           m.Price,
		SourceUpdatedAt: m.SourceUpdatedAt,
	}
}

// FromDomain populates the model from a domain product
func (m *ProductModel) FromDomain(p *shop.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.TenantID = p.TenantID
	m.ExternalID = p.ExternalID
	m.Title = p.Title
	m.Price = p.Price
	m.SourceUpdatedAt = p.SourceUpdatedAt
}

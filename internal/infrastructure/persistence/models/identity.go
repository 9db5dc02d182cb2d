package models

import (
	"github.com/google/uuid"

	"github.com/shopmetrics/backend/internal/domain/identity"
)

// TenantModel is the persistence model for identity.Tenant
type TenantModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null"`
	ShopDomain  string `gorm:"type:varchar(255);not null;uniqueIndex"`
	AccessToken string `gorm:"type:varchar(255)"`
	Status      string `gorm:"type:varchar(20);not null;default:'active'"`
	Plan        string `gorm:"type:varchar(20);not null;default:'free'"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the model to a domain tenant
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		ShopDomain:  m.ShopDomain,
		AccessToken: m.AccessToken,
		Status:      identity.TenantStatus(m.Status),
		Plan:        identity.TenantPlan(m.Plan),
	}
}

// FromDomain populates the model from a domain tenant
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Name = t.Name
	m.ShopDomain = t.ShopDomain
	m.AccessToken = t.AccessToken
	m.Status = string(t.Status)
	m.Plan = string(t.Plan)
}

// UserModel is the persistence model for identity.User
type UserModel struct {
	BaseModel
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	TenantID     *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		TenantID:     m.TenantID,
	}
}

// FromDomain populates the model from a domain user
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.TenantID = u.TenantID
}

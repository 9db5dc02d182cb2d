package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains input for user registration
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginInput contains credentials for login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshInput contains a refresh token
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResult is returned from login, registration and refresh
type AuthResult struct {
	UserID                uuid.UUID  `json:"user_id"`
	Email                 string     `json:"email"`
	TenantID              *uuid.UUID `json:"tenant_id,omitempty"`
	AccessToken           string     `json:"access_token"`
	RefreshToken          string     `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time  `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time  `json:"refresh_token_expires_at"`
}

// CreateTenantInput contains input for tenant provisioning
type CreateTenantInput struct {
	Name        string `json:"name" binding:"required"`
	ShopDomain  string `json:"shop_domain" binding:"required,shopdomain"`
	AccessToken string `json:"access_token"`
}

// TenantView is the read representation of a tenant
type TenantView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	ShopDomain string    `json:"shop_domain"`
	Status     string    `json:"status"`
	Plan       string    `json:"plan"`
	CreatedAt  time.Time `json:"created_at"`
}

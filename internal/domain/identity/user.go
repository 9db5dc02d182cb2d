package identity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopmetrics/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// User represents a dashboard user account. A user may optionally be bound
// to a tenant; users without a tenant have not completed store setup yet.
type User struct {
	shared.BaseEntity
	Email        string
	PasswordHash string
	TenantID     *uuid.UUID
}

// NewUser creates a new user with a bcrypt-hashed password
func NewUser(email, password string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		PasswordHash: string(hash),
	}, nil
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// AssignTenant links the user to a tenant after store setup
func (u *User) AssignTenant(tenantID uuid.UUID) {
	u.TenantID = &tenantID
}

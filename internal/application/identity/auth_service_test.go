package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopmetrics/backend/internal/domain/identity"
	"github.com/shopmetrics/backend/internal/domain/shared"
	"github.com/shopmetrics/backend/internal/infrastructure/auth"
	"github.com/shopmetrics/backend/internal/infrastructure/config"
)

func newAuthTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "shopmetrics-test",
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a new user and returns tokens", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newAuthTestJWTService(), zap.NewNop())

		users.On("ExistsByEmail", mock.Anything, "owner@example.com").Return(false, nil)
		users.On("Save", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
			return u.Email == "owner@example.com" && u.CheckPassword("s3cret-pass") == nil
		})).Return(nil)

		result, err := svc.Register(ctx, RegisterInput{Email: "owner@example.com", Password: "s3cret-pass"})

		require.NoError(t, err)
		assert.Equal(t, "owner@example.com", result.Email)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		users.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newAuthTestJWTService(), zap.NewNop())

		users.On("ExistsByEmail", mock.Anything, "owner@example.com").Return(true, nil)

		_, err := svc.Register(ctx, RegisterInput{Email: "owner@example.com", Password: "s3cret-pass"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	newStoredUser := func(t *testing.T) *identity.User {
		user, err := identity.NewUser("owner@example.com", "s3cret-pass")
		require.NoError(t, err)
		return user
	}

	t.Run("valid credentials return tokens", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newAuthTestJWTService(), zap.NewNop())

		user := newStoredUser(t)
		users.On("FindByEmail", mock.Anything, "owner@example.com").Return(user, nil)

		result, err := svc.Login(ctx, LoginInput{Email: "owner@example.com", Password: "s3cret-pass"})

		require.NoError(t, err)
		assert.Equal(t, user.ID, result.UserID)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("wrong password and unknown email give the same error", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newAuthTestJWTService(), zap.NewNop())

		users.On("FindByEmail", mock.Anything, "owner@example.com").Return(newStoredUser(t), nil)
		users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, shared.ErrNotFound)

		_, errWrongPassword := svc.Login(ctx, LoginInput{Email: "owner@example.com", Password: "wrong"})
		_, errUnknownEmail := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "s3cret-pass"})

		require.Error(t, errWrongPassword)
		require.Error(t, errUnknownEmail)
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("valid refresh token issues a new pair", func(t *testing.T) {
		users := new(MockUserRepository)
		jwtService := newAuthTestJWTService()
		svc := NewAuthService(users, jwtService, zap.NewNop())

		user, err := identity.NewUser("owner@example.com", "s3cret-pass")
		require.NoError(t, err)
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: user.ID,
			Email:  user.Email,
		})
		require.NoError(t, err)

		result, err := svc.Refresh(ctx, RefreshInput{RefreshToken: pair.RefreshToken})

		require.NoError(t, err)
		assert.Equal(t, user.ID, result.UserID)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("garbage refresh token is rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newAuthTestJWTService(), zap.NewNop())

		_, err := svc.Refresh(ctx, RefreshInput{RefreshToken: "not.a.token"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TOKEN", domainErr.Code)
	})
}

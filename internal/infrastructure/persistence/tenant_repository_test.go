package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopmetrics/backend/internal/domain/identity"
	"github.com/shopmetrics/backend/internal/domain/shared"
	"github.com/shopmetrics/backend/internal/infrastructure/persistence/models"
)

// newMockTenantRepository creates a GormTenantRepository with a mocked SQL connection
func newMockTenantRepository(t *testing.T) (*GormTenantRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormTenantRepository(gormDB), mock, mockDB
}

func TestGormTenantRepository_FindByShopDomain(t *testing.T) {
	t.Run("finds tenant and normalizes the domain", func(t *testing.T) {
		repo, mock, mockDB := newMockTenantRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "shop_domain", "access_token", "status", "plan"}).
			AddRow(tenantID, "Acme Store", "acme.myshopify.com", "", "active", "free")

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE shop_domain = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("acme.myshopify.com", 1).
			WillReturnRows(rows)

		tenant, err := repo.FindByShopDomain(context.Background(), "  ACME.myshopify.com ")

		assert.NoError(t, err)
		require.NotNil(t, tenant)
		assert.Equal(t, tenantID, tenant.ID)
		assert.Equal(t, "acme.myshopify.com", tenant.ShopDomain)
		assert.True(t, tenant.IsActive())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unregistered domain", func(t *testing.T) {
		repo, mock, mockDB := newMockTenantRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE shop_domain = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ghost.myshopify.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		tenant, err := repo.FindByShopDomain(context.Background(), "ghost.myshopify.com")

		assert.Nil(t, tenant)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func setupIdentityTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlitedriver.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.TenantModel{}, &models.UserModel{})
	require.NoError(t, err)

	return db
}

func TestGormTenantRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a tenant", func(t *testing.T) {
		db := setupIdentityTestDB(t)
		repo := NewGormTenantRepository(db)

		tenant, err := identity.NewTenant("Acme Store", "acme.myshopify.com")
		require.NoError(t, err)
		tenant.SetAccessToken("shpat_token")

		require.NoError(t, repo.Save(ctx, tenant))

		found, err := repo.FindByID(ctx, tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Store", found.Name)
		assert.Equal(t, "acme.myshopify.com", found.ShopDomain)
		assert.Equal(t, "shpat_token", found.AccessToken)
	})

	t.Run("ExistsByShopDomain reflects saved tenants", func(t *testing.T) {
		db := setupIdentityTestDB(t)
		repo := NewGormTenantRepository(db)

		exists, err := repo.ExistsByShopDomain(ctx, "acme.myshopify.com")
		require.NoError(t, err)
		assert.False(t, exists)

		tenant, err := identity.NewTenant("Acme Store", "acme.myshopify.com")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, tenant))

		exists, err = repo.ExistsByShopDomain(ctx, "ACME.myshopify.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Delete removes the tenant", func(t *testing.T) {
		db := setupIdentityTestDB(t)
		repo := NewGormTenantRepository(db)

		tenant, err := identity.NewTenant("Acme Store", "acme.myshopify.com")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, tenant))

		require.NoError(t, repo.Delete(ctx, tenant.ID))

		_, err = repo.FindByID(ctx, tenant.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("Delete of unknown id returns ErrNotFound", func(t *testing.T) {
		db := setupIdentityTestDB(t)
		repo := NewGormTenantRepository(db)

		err := repo.Delete(ctx, uuid.New())
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a user and verifies password", func(t *testing.T) {
		db := setupIdentityTestDB(t)
		repo := NewGormUserRepository(db)

		user, err := identity.NewUser("owner@example.com", "s3cret-pass")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, user))

		found, err := repo.FindByEmail(ctx, "OWNER@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.NoError(t, found.CheckPassword("s3cret-pass"))
		assert.Error(t, found.CheckPassword("wrong"))
	})

	t.Run("ExistsByEmail is case insensitive", func(t *testing.T) {
		db := setupIdentityTestDB(t)
		repo := NewGormUserRepository(db)

		user, err := identity.NewUser("owner@example.com", "s3cret-pass")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, user))

		exists, err := repo.ExistsByEmail(ctx, "Owner@Example.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("FindByEmail returns ErrNotFound for unknown email", func(t *testing.T) {
		db := setupIdentityTestDB(t)
		repo := NewGormUserRepository(db)

		user, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.Nil(t, user)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

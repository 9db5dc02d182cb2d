package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopmetrics/backend/internal/domain/ingestion"
	"github.com/shopmetrics/backend/internal/domain/shared"
	"github.com/shopmetrics/backend/internal/infrastructure/persistence/models"
)

func setupDeadLetterTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.WebhookDeadLetterModel{})
	require.NoError(t, err)

	return db
}

func TestGormDeadLetterRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("saves and lists dead letters", func(t *testing.T) {
		db := setupDeadLetterTestDB(t)
		repo := NewGormDeadLetterRepository(db)

		letter := ingestion.NewDeadLetter(
			"orders/create",
			"acme.myshopify.com",
			[]byte(`{"id":1}`),
			3,
			"tenant lookup failed",
		)
		require.NoError(t, repo.Save(ctx, letter))

		letters, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, letters, 1)
		assert.Equal(t, "orders/create", letters[0].Topic)
		assert.Equal(t, "acme.myshopify.com", letters[0].ShopDomain)
		assert.Equal(t, []byte(`{"id":1}`), letters[0].Payload)
		assert.Equal(t, 3, letters[0].Attempts)
		assert.Equal(t, "tenant lookup failed", letters[0].LastError)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("delete removes a replayed letter", func(t *testing.T) {
		db := setupDeadLetterTestDB(t)
		repo := NewGormDeadLetterRepository(db)

		letter := ingestion.NewDeadLetter("orders/create", "acme.myshopify.com", nil, 1, "boom")
		require.NoError(t, repo.Save(ctx, letter))
		require.NoError(t, repo.Delete(ctx, letter.ID))

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		assert.Equal(t, shared.ErrNotFound, repo.Delete(ctx, uuid.New()))
	})
}

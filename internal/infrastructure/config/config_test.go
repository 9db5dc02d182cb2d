package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shopmetrics-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "2024-01", cfg.Shopify.APIVersion)
	assert.Equal(t, 4, cfg.Ingest.Workers)
	assert.Equal(t, 256, cfg.Ingest.QueueSize)
	assert.Equal(t, 3, cfg.Ingest.MaxRetries)
	// No default webhook secret: verification must fail closed until configured
	assert.Empty(t, cfg.Shopify.WebhookSecret)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SHOPMETRICS_APP_PORT", "9090")
	t.Setenv("SHOPMETRICS_SHOPIFY_WEBHOOK_SECRET", "test-webhook-secret")
	t.Setenv("SHOPMETRICS_INGEST_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "test-webhook-secret", cfg.Shopify.WebhookSecret)
	assert.Equal(t, 8, cfg.Ingest.Workers)
}

func TestLoad_ProductionValidation(t *testing.T) {
	t.Run("requires jwt secret", func(t *testing.T) {
		t.Setenv("SHOPMETRICS_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("requires webhook secret", func(t *testing.T) {
		t.Setenv("SHOPMETRICS_APP_ENV", "production")
		t.Setenv("SHOPMETRICS_JWT_SECRET", strings.Repeat("x", 32))

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shopify.webhook_secret")
	})

	t.Run("rejects short jwt secret", func(t *testing.T) {
		t.Setenv("SHOPMETRICS_APP_ENV", "production")
		t.Setenv("SHOPMETRICS_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "analytics",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5433")
	assert.Contains(t, dsn, "sslmode=require")
	// Password must be escaped, not embedded raw
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.Addr())
}

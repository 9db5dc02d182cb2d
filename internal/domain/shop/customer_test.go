package shop

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates customer with zero spend", func(t *testing.T) {
		c, err := NewCustomer(tenantID, " 2001 ")
		require.NoError(t, err)

		assert.Equal(t, "2001", c.ExternalID)
		assert.Equal(t, tenantID, c.TenantID)
		assert.True(t, c.TotalSpent.Equal(decimal.Zero))
	})

	t.Run("rejects nil tenant", func(t *testing.T) {
		_, err := NewCustomer(uuid.Nil, "2001")
		assert.Error(t, err)
	})

	t.Run("rejects empty external id", func(t *testing.T) {
		_, err := NewCustomer(tenantID, "  ")
		assert.Error(t, err)
	})
}

func TestCustomer_FullName(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "2001")
	require.NoError(t, err)

	c.FirstName = "Alice"
	c.LastName = "Smith"
	assert.Equal(t, "Alice Smith", c.FullName())

	c.LastName = ""
	assert.Equal(t, "Alice", c.FullName())
}

func TestCustomer_IsNewerThan(t *testing.T) {
	tenantID := uuid.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	older, _ := NewCustomer(tenantID, "2001")
	older.SourceUpdatedAt = base

	newer, _ := NewCustomer(tenantID, "2001")
	newer.SourceUpdatedAt = base.Add(time.Hour)

	same, _ := NewCustomer(tenantID, "2001")
	same.SourceUpdatedAt = base

	assert.True(t, newer.IsNewerThan(older))
	assert.False(t, older.IsNewerThan(newer))
	// equal timestamps apply, so redeliveries are not silently dropped
	assert.True(t, same.IsNewerThan(older))
	assert.True(t, older.IsNewerThan(nil))
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryReportCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss on empty cache", func(t *testing.T) {
		c := NewInMemoryReportCache()
		value, ok := c.Get(ctx, "tenant1:dashboard")
		assert.False(t, ok)
		assert.Nil(t, value)
	})

	t.Run("hit after set", func(t *testing.T) {
		c := NewInMemoryReportCache()
		c.Set(ctx, "tenant1:dashboard", []byte(`{"orders":5}`), time.Minute)

		value, ok := c.Get(ctx, "tenant1:dashboard")
		assert.True(t, ok)
		assert.Equal(t, []byte(`{"orders":5}`), value)
	})

	t.Run("miss after expiry", func(t *testing.T) {
		c := NewInMemoryReportCache()
		c.Set(ctx, "tenant1:dashboard", []byte(`{}`), -time.Second)

		_, ok := c.Get(ctx, "tenant1:dashboard")
		assert.False(t, ok)
	})

	t.Run("miss after invalidate", func(t *testing.T) {
		c := NewInMemoryReportCache()
		c.Set(ctx, "tenant1:dashboard", []byte(`{}`), time.Minute)
		c.Invalidate(ctx, "tenant1:dashboard")

		_, ok := c.Get(ctx, "tenant1:dashboard")
		assert.False(t, ok)
	})
}

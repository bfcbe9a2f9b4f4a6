package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newTestRegistry(t *testing.T) (*CartRegistry, *time.Time) {
	t.Helper()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	registry := NewCartRegistry(memory.NewKeyValueStore(), domain.DefaultPricingPolicy(), nil)
	registry.now = func() time.Time { return now }
	return registry, &now
}

func TestCartRegistryReturnsSameStorePerSession(t *testing.T) {
	registry, _ := newTestRegistry(t)

	first := registry.ForSession("s1")
	second := registry.ForSession("s1")
	assert.Same(t, first, second)

	other := registry.ForSession("s2")
	assert.NotSame(t, first, other)
	assert.Len(t, registry.carts, 2)
}

func TestCartRegistryEvictsIdleSessions(t *testing.T) {
	registry, now := newTestRegistry(t)
	registry.idleTTL = 10 * time.Minute

	stale := registry.ForSession("stale")
	stale.Add(domain.Product{ID: "p1", Name: "Lamp", PriceMinor: 2000, Stock: 3})

	*now = now.Add(11 * time.Minute)
	registry.ForSession("fresh")

	require.Len(t, registry.carts, 1)
	_, kept := registry.carts["fresh"]
	assert.True(t, kept, "idle session must be evicted, fresh one kept")

	// Состояние выселенной корзины поднимается заново из key-value хранилища.
	revived := registry.ForSession("stale")
	items := revived.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].Product.ID)
}

func TestCartRegistryCapsSessionCount(t *testing.T) {
	registry, now := newTestRegistry(t)
	registry.maxSessions = 2

	registry.ForSession("s1")
	*now = now.Add(time.Minute)
	registry.ForSession("s2")
	*now = now.Add(time.Minute)
	registry.ForSession("s3")

	require.Len(t, registry.carts, 2)
	_, evicted := registry.carts["s1"]
	assert.False(t, evicted, "oldest session must be evicted at the cap")
}

package cache

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T) (*RedisSearchCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSearchCache(client, time.Minute), mr
}

func TestRedisSearchCache(t *testing.T) {
	cache, _ := setupRedisCache(t)
	ctx := context.Background()

	// Промах
	items, err := cache.Get(ctx, "search:drill:0:15")
	require.NoError(t, err)
	assert.Nil(t, items)

	stored := []*models.Item{{ID: 5, Name: "Drill", Available: true}}
	require.NoError(t, cache.Set(ctx, "search:drill:0:15", stored))

	items, err = cache.Get(ctx, "search:drill:0:15")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Drill", items[0].Name)

	// Пустой результат кэшируется и отличим от промаха
	require.NoError(t, cache.Set(ctx, "search:none:0:15", []*models.Item{}))
	items, err = cache.Get(ctx, "search:none:0:15")
	require.NoError(t, err)
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRedisSearchCacheTTL(t *testing.T) {
	cache, mr := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "search:drill:0:15", []*models.Item{{ID: 5}}))

	mr.FastForward(2 * time.Minute)

	items, err := cache.Get(ctx, "search:drill:0:15")
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestRedisSearchCacheInvalidate(t *testing.T) {
	cache, mr := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "search:drill:0:15", []*models.Item{{ID: 5}}))
	require.NoError(t, cache.Set(ctx, "search:saw:0:15", []*models.Item{{ID: 6}}))
	// Посторонний ключ в той же базе инвалидация трогать не должна
	mr.Set("unrelated", "value")

	require.NoError(t, cache.Invalidate(ctx))

	items, err := cache.Get(ctx, "search:drill:0:15")
	require.NoError(t, err)
	assert.Nil(t, items)

	assert.True(t, mr.Exists("unrelated"))
	assert.False(t, mr.Exists(indexKey))
}

func TestRedisSearchCacheDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisSearchCache(client, time.Minute)
	mr.Close()

	_, err := cache.Get(context.Background(), "search:drill:0:15")
	assert.Error(t, err)
}

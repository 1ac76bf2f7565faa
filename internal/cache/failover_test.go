package cache

import (
	"context"
	"io"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailoverSearchCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := zerolog.New(io.Discard)
	primary := NewRedisSearchCache(client, time.Minute)
	fallback := NewMemorySearchCache(time.Minute)
	cache := NewFailoverSearchCache(primary, fallback, &logger)

	ctx := context.Background()
	items := []*models.Item{{ID: 5, Name: "Drill"}}

	require.NoError(t, cache.Set(ctx, "key", items))

	got, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	require.Len(t, got, 1)

	// После падения Redis кэш продолжает работать на памяти
	mr.Close()

	require.NoError(t, cache.Set(ctx, "key2", items))

	got, err = cache.Get(ctx, "key2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Drill", got[0].Name)
}

func TestFailoverSearchCacheInvalidate(t *testing.T) {
	logger := zerolog.New(io.Discard)
	primary := NewMemorySearchCache(time.Minute)
	fallback := NewMemorySearchCache(time.Minute)
	cache := NewFailoverSearchCache(primary, fallback, &logger)

	ctx := context.Background()
	require.NoError(t, primary.Set(ctx, "key", []*models.Item{{ID: 5}}))
	require.NoError(t, fallback.Set(ctx, "key", []*models.Item{{ID: 5}}))

	require.NoError(t, cache.Invalidate(ctx))

	items, err := primary.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, items)

	items, err = fallback.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, items)
}

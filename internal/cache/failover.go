package cache

import (
	"context"
	"sync/atomic"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// FailoverSearchCache переключается на резервный кэш при отказе основного
// и периодически пробует вернуться обратно.
type FailoverSearchCache struct {
	primary   domain.SearchCache
	fallback  domain.SearchCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverSearchCache(primary, fallback domain.SearchCache, logger *zerolog.Logger) *FailoverSearchCache {
	return &FailoverSearchCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverSearchCache) Get(ctx context.Context, key string) ([]*models.Item, error) {
	if !c.isDown.Load() {
		items, err := c.primary.Get(ctx, key)
		if err == nil {
			return items, nil
		}
		c.logger.Error().Err(err).Msg("Primary search cache failed, falling back to memory")
		c.isDown.Store(true)
		c.lastCheck = time.Now()
	}

	// Пробуем восстановиться через минуту
	if c.isDown.Load() && time.Since(c.lastCheck) > time.Minute {
		items, err := c.primary.Get(ctx, key)
		if err == nil {
			c.isDown.Store(false)
			return items, nil
		}
		c.lastCheck = time.Now()
	}

	return c.fallback.Get(ctx, key)
}

func (c *FailoverSearchCache) Set(ctx context.Context, key string, items []*models.Item) error {
	if !c.isDown.Load() {
		err := c.primary.Set(ctx, key, items)
		if err == nil {
			return nil
		}
		c.logger.Error().Err(err).Msg("Primary search cache failed, falling back to memory")
		c.isDown.Store(true)
		c.lastCheck = time.Now()
	}

	return c.fallback.Set(ctx, key, items)
}

func (c *FailoverSearchCache) Invalidate(ctx context.Context) error {
	// Резервный кэш чистим всегда, чтобы после переключений не осталось
	// устаревших результатов
	fallbackErr := c.fallback.Invalidate(ctx)

	if !c.isDown.Load() {
		if err := c.primary.Invalidate(ctx); err != nil {
			c.logger.Error().Err(err).Msg("Primary search cache failed, falling back to memory")
			c.isDown.Store(true)
			c.lastCheck = time.Now()
			return fallbackErr
		}
	}
	return fallbackErr
}

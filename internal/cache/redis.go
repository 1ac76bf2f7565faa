package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shareit/internal/config"
	"shareit/internal/models"

	"github.com/redis/go-redis/v9"
)

const indexKey = "search_cache:index"

// RedisSearchCache хранит результаты поиска вещей в Redis. Ключи
// регистрируются в индексном множестве, чтобы инвалидация не задевала
// чужие данные в той же базе.
type RedisSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisSearchCache(client *redis.Client, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisSearchCache) Get(ctx context.Context, key string) ([]*models.Item, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get search results from redis: %w", err)
	}

	var items []*models.Item
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search results: %w", err)
	}
	if items == nil {
		items = []*models.Item{}
	}
	return items, nil
}

func (c *RedisSearchCache) Set(ctx context.Context, key string, items []*models.Item) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, indexKey, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set search results in redis: %w", err)
	}
	return nil
}

func (c *RedisSearchCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	keys, err := c.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list cached search keys: %w", err)
	}

	keys = append(keys, indexKey)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate search cache: %w", err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}

package cache

import (
	"campusflow/core/config"
	"campusflow/core/logger"
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	base
	client *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Cache:NewRedisClient:Ping", err)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("Cache:NewRedisClient:Connected", "addr", cfg.Addr, "db", cfg.DB)
	return client, nil
}

func NewRedisCache(client *redis.Client) *RedisCache {
	c := &RedisCache{client: client}
	c.base = base{prim: c}
	return c
}

func (c *RedisCache) Client() *redis.Client {
	return c.client
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if stdErrors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		logger.Error("RedisCache:Get", "key", key, "error", err)
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Incr bumps a counter, setting the ttl only when the key is created.
func (c *RedisCache) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("RedisCache:Incr", "key", key, "error", err)
		return 0, err
	}
	return incr.Val(), nil
}

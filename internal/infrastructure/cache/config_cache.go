// Package cache provides caching for the derived configuration.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	settingsapp "github.com/invoicehub/backend/internal/application/settings"
	"github.com/invoicehub/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// configCacheKey is the single Redis key holding the derived configuration
const configCacheKey = "invoicehub:config"

// defaultConfigTTL bounds staleness if an invalidation is ever lost
const defaultConfigTTL = 5 * time.Minute

// Ensure RedisConfigCache implements ConfigCache
var _ settingsapp.ConfigCache = (*RedisConfigCache)(nil)

// RedisConfigCache caches the derived configuration in Redis. Cache failures
// are logged and treated as misses; the store stays authoritative.
type RedisConfigCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisConfigCacheOption is a functional option for configuring the cache
type RedisConfigCacheOption func(*RedisConfigCache)

// WithConfigTTL sets a custom cache TTL
func WithConfigTTL(ttl time.Duration) RedisConfigCacheOption {
	return func(c *RedisConfigCache) {
		c.ttl = ttl
	}
}

// WithConfigCacheLogger sets the logger for the cache
func WithConfigCacheLogger(logger *zap.Logger) RedisConfigCacheOption {
	return func(c *RedisConfigCache) {
		c.logger = logger
	}
}

// NewRedisConfigCache creates a Redis-backed configuration cache
func NewRedisConfigCache(cfg config.RedisConfig, opts ...RedisConfigCacheOption) (*RedisConfigCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisConfigCache{
		client:     client,
		ownsClient: true,
		ttl:        defaultConfigTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisConfigCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisConfigCacheWithClient(client *redis.Client, opts ...RedisConfigCacheOption) *RedisConfigCache {
	cache := &RedisConfigCache{
		client:     client,
		ownsClient: false,
		ttl:        defaultConfigTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Get retrieves the cached configuration, reporting a miss on any failure
func (c *RedisConfigCache) Get(ctx context.Context) (*settingsapp.ConfigResponse, bool) {
	data, err := c.client.Get(ctx, configCacheKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Error("failed to read configuration from cache", zap.Error(err))
		return nil, false
	}

	var cfg settingsapp.ConfigResponse
	if err := json.Unmarshal(data, &cfg); err != nil {
		c.logger.Error("failed to unmarshal cached configuration", zap.Error(err))
		// Drop the corrupted entry
		_ = c.client.Del(ctx, configCacheKey)
		return nil, false
	}

	return &cfg, true
}

// Set stores the derived configuration
func (c *RedisConfigCache) Set(ctx context.Context, cfg *settingsapp.ConfigResponse) {
	if cfg == nil {
		return
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		c.logger.Error("failed to marshal configuration for cache", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, configCacheKey, data, c.ttl).Err(); err != nil {
		c.logger.Error("failed to write configuration to cache", zap.Error(err))
	}
}

// Invalidate drops the cached configuration
func (c *RedisConfigCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, configCacheKey).Err(); err != nil {
		c.logger.Error("failed to invalidate configuration cache", zap.Error(err))
	}
}

// Close closes the Redis client if this cache owns it
func (c *RedisConfigCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

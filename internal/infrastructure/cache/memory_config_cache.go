package cache

import (
	"context"
	"sync"
	"time"

	settingsapp "github.com/invoicehub/backend/internal/application/settings"
)

// Ensure InMemoryConfigCache implements ConfigCache
var _ settingsapp.ConfigCache = (*InMemoryConfigCache)(nil)

// InMemoryConfigCache caches the derived configuration in process memory.
// It suits single-instance deployments and tests; Redis replaces it when
// several instances must see invalidations from each other.
type InMemoryConfigCache struct {
	mu        sync.RWMutex
	value     *settingsapp.ConfigResponse
	expiresAt time.Time
	ttl       time.Duration
}

// NewInMemoryConfigCache creates an in-memory configuration cache.
// A non-positive ttl falls back to the default.
func NewInMemoryConfigCache(ttl time.Duration) *InMemoryConfigCache {
	if ttl <= 0 {
		ttl = defaultConfigTTL
	}
	return &InMemoryConfigCache{ttl: ttl}
}

// Get retrieves the cached configuration if present and not expired
func (c *InMemoryConfigCache) Get(ctx context.Context) (*settingsapp.ConfigResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.value == nil || time.Now().After(c.expiresAt) {
		return nil, false
	}
	return c.value, true
}

// Set stores the derived configuration
func (c *InMemoryConfigCache) Set(ctx context.Context, cfg *settingsapp.ConfigResponse) {
	if cfg == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = cfg
	c.expiresAt = time.Now().Add(c.ttl)
}

// Invalidate drops the cached configuration
func (c *InMemoryConfigCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = nil
}

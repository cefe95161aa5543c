// Package memory provides an in-memory cache implementation.
// This is suitable for single-node deployments and tests where Redis is
// not available. NOT suitable for distributed deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/prn-tf/package-catalog/internal/repository"
)

// Cache implements repository.Cache using in-memory storage.
type Cache struct {
	mu      sync.RWMutex
	items   map[string]*cacheItem
	stopCh  chan struct{}
	stopped bool
}

// cacheItem represents a single cached item.
type cacheItem struct {
	value     []byte
	expiresAt time.Time
	noExpiry  bool
}

// isExpired checks if the item has expired.
func (i *cacheItem) isExpired() bool {
	if i.noExpiry {
		return false
	}
	return time.Now().After(i.expiresAt)
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	c := &Cache{
		items:  make(map[string]*cacheItem),
		stopCh: make(chan struct{}),
	}

	// Start cleanup goroutine.
	go c.cleanupLoop()

	return c
}

// cleanupLoop periodically removes expired items.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired items.
func (c *Cache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, item := range c.items {
		if item.isExpired() {
			delete(c.items, key)
		}
	}
}

// Get retrieves a value by key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || item.isExpired() {
		return nil, repository.ErrCacheMiss
	}

	// Return a copy to prevent mutation.
	result := make([]byte, len(item.value))
	copy(result, item.value)
	return result, nil
}

// Set stores a value with an optional TTL. A zero TTL means no expiry.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	item := &cacheItem{value: valueCopy}
	if ttl == 0 {
		item.noExpiry = true
	} else {
		item.expiresAt = time.Now().Add(ttl)
	}

	c.items[key] = item
	return nil
}

// Delete removes a value by key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// Close stops the cleanup goroutine.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.stopped {
		close(c.stopCh)
		c.stopped = true
	}
	return nil
}

// Ensure Cache implements repository.Cache.
var _ repository.Cache = (*Cache)(nil)

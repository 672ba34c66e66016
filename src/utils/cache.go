package utils

import (
	"sync"
	"time"
)

type cacheEntry[T any] struct {
	value      T
	expiration time.Time
}

// Cache is a keyed in-memory cache with per-entry expiration.
type Cache[T any] struct {
	entries map[string]cacheEntry[T]
	mutex   sync.RWMutex
	now     func() time.Time
}

// NewCache initializes an empty cache.
func NewCache[T any]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]cacheEntry[T]),
		now:     time.Now,
	}
}

// Set stores value under key for duration. A non-positive duration never expires.
func (c *Cache[T]) Set(key string, value T, duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var expiration time.Time
	if duration > 0 {
		expiration = c.now().Add(duration)
	}
	c.entries[key] = cacheEntry[T]{value: value, expiration: expiration}
}

// Get returns the value for key when present and not expired.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[key]
	if !ok || (!entry.expiration.IsZero() && c.now().After(entry.expiration)) {
		var zero T
		return zero, false
	}
	return entry.value, true
}

// Delete removes key.
func (c *Cache[T]) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
}

// Clear removes every entry.
func (c *Cache[T]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]cacheEntry[T])
}

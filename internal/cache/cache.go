// Package cache is a small bounded TTL cache used by the search client to
// keep recent results around as a fallback when live search fails.
package cache

import (
	"sync"
	"time"
)

type item struct {
	value     interface{}
	expiresAt time.Time
	storedAt  time.Time
}

// Cache evicts by TTL and, when full, by oldest insertion. It is owned by
// whoever constructs it; there is no package-level instance.
type Cache struct {
	mu         sync.RWMutex
	items      map[string]item
	ttl        time.Duration
	maxEntries int
}

func New(ttl time.Duration, maxEntries int) *Cache {
	return &Cache{
		items:      make(map[string]item),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if c.maxEntries > 0 && len(c.items) >= c.maxEntries {
		if _, exists := c.items[key]; !exists {
			c.evictOldest()
		}
	}

	c.items[key] = item{
		value:     value,
		expiresAt: now.Add(c.ttl),
		storedAt:  now,
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, exists := c.items[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(it.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return it.value, true
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// evictOldest removes the entry with the earliest storedAt. Caller holds the
// lock.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, it := range c.items {
		if oldestKey == "" || it.storedAt.Before(oldest) {
			oldestKey = k
			oldest = it.storedAt
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

package storage

import (
	"container/list"
	"sync"
	"time"
)

// cacheItem represents an item in the cache
type cacheItem[V any] struct {
	key       string
	value     V
	timestamp time.Time
	element   *list.Element
}

// Cache is an LRU cache with optional TTL, safe for concurrent use
type Cache[V any] struct {
	maxSize int
	ttl     time.Duration
	items   map[string]*cacheItem[V]
	lruList *list.List
	mu      sync.Mutex
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once

	hits   uint64
	misses uint64
}

// NewCache creates a cache holding at most maxSize items; ttl 0 disables expiry
func NewCache[V any](maxSize int, ttl time.Duration) *Cache[V] {
	if maxSize <= 0 {
		maxSize = 1
	}

	cache := &Cache[V]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*cacheItem[V]),
		lruList: list.New(),
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	if ttl > 0 {
		go cache.cleanupRoutine()
	}

	return cache
}

// Set adds or updates an item, evicting the least recently used one when full
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if item, exists := c.items[key]; exists {
		item.value = value
		item.timestamp = now
		c.lruList.MoveToFront(item.element)
		return
	}

	item := &cacheItem[V]{key: key, value: value, timestamp: now}
	item.element = c.lruList.PushFront(item)
	c.items[key] = item

	if len(c.items) > c.maxSize {
		c.evictOldest()
	}
}

// Get returns an unexpired item and marks it recently used
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	item, exists := c.items[key]
	if !exists {
		c.misses++
		return zero, false
	}

	if c.expired(item) {
		c.deleteItem(item)
		c.misses++
		return zero, false
	}

	c.lruList.MoveToFront(item.element)
	c.hits++
	return item.value, true
}

// Delete removes an item from the cache
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item, exists := c.items[key]; exists {
		c.deleteItem(item)
	}
}

// Len returns the current number of items
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns cache statistics
func (c *Cache[V]) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{
		Size:    len(c.items),
		MaxSize: c.maxSize,
		TTL:     c.ttl,
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

// Close stops the expiry routine
func (c *Cache[V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache[V]) expired(item *cacheItem[V]) bool {
	return c.ttl > 0 && c.now().Sub(item.timestamp) > c.ttl
}

// evictOldest removes the least recently used item
func (c *Cache[V]) evictOldest() {
	if element := c.lruList.Back(); element != nil {
		c.deleteItem(element.Value.(*cacheItem[V]))
	}
}

// deleteItem removes an item from both map and list
func (c *Cache[V]) deleteItem(item *cacheItem[V]) {
	delete(c.items, item.key)
	c.lruList.Remove(item.element)
}

// cleanupRoutine periodically removes expired items
func (c *Cache[V]) cleanupRoutine() {
	ticker := time.NewTicker(c.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.cleanupExpired()
		}
	}
}

// cleanupExpired removes all expired items
func (c *Cache[V]) cleanupExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if c.expired(item) {
			c.deleteItem(item)
		}
	}
}

// CacheStats represents cache statistics
type CacheStats struct {
	Size    int           `json:"size"`
	MaxSize int           `json:"max_size"`
	TTL     time.Duration `json:"ttl"`
	Hits    uint64        `json:"hits"`
	Misses  uint64        `json:"misses"`
}

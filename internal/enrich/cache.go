package enrich

import (
	"context"
	"sync"
	"time"
)

// Cache is a bounded TTL cache with single-flight resolution: concurrent
// lookups for the same key run the resolve function once and share its
// result. Empty results are never cached so a transient failure does not
// poison the key for the TTL.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]cacheEntry
	inflight map[string]*call
	ttl      time.Duration
	maxSize  int
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

type call struct {
	done  chan struct{}
	value string
	err   error
}

// NewCache creates a cache holding at most maxSize entries for ttl each.
func NewCache(ttl time.Duration, maxSize int) *Cache {
	return &Cache{
		entries:  make(map[string]cacheEntry),
		inflight: make(map[string]*call),
		ttl:      ttl,
		maxSize:  maxSize,
	}
}

// Do returns the cached value for key, or runs resolve once to produce it.
// Waiters for an in-flight key block until that resolution completes or
// their context is cancelled.
func (c *Cache) Do(ctx context.Context, key string, resolve func() (string, error)) (string, error) {
	c.mu.Lock()

	if e, ok := c.entries[key]; ok {
		if time.Now().Before(e.expiresAt) {
			c.mu.Unlock()
			return e.value, nil
		}
		delete(c.entries, key)
	}

	if cl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-cl.done:
			return cl.value, cl.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	cl := &call{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()

	cl.value, cl.err = resolve()

	c.mu.Lock()
	delete(c.inflight, key)
	if cl.err == nil && cl.value != "" {
		c.evictIfFull()
		c.entries[key] = cacheEntry{
			value:     cl.value,
			expiresAt: time.Now().Add(c.ttl),
		}
	}
	c.mu.Unlock()

	close(cl.done)
	return cl.value, cl.err
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictIfFull drops expired entries first, then the entry closest to expiry.
// Caller holds the lock.
func (c *Cache) evictIfFull() {
	if len(c.entries) < c.maxSize {
		return
	}

	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.maxSize {
		return
	}

	var oldestKey string
	var oldestAt time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.expiresAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.expiresAt
		}
	}
	delete(c.entries, oldestKey)
}

package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

const (
	defaultMaxEntries = 1024
	defaultTTL        = 15 * time.Minute

	// After a bound overflow, eviction trims down to this fraction of
	// MaxEntries so every Set doesn't pay the eviction cost.
	targetFillRatio = 0.75
)

// InMemoryConfig holds configuration for the in-memory cache
type InMemoryConfig struct {
	MaxEntries int           // bound on stored results (default: 1024)
	TTL        time.Duration // how long results stay valid (default: 15 minutes)
}

// entry is a stored result with its insertion bookkeeping. seq breaks
// storedAt ties so eviction order stays deterministic within one clock tick.
type entry struct {
	result   combat.DPRResult
	storedAt time.Time
	seq      uint64
}

// inMemoryCache is an in-memory implementation of Cache
// Useful for testing and running without Redis
type inMemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxEntries int
	ttl        time.Duration
	seq        uint64
}

// NewInMemory creates a new in-memory cache
func NewInMemory(cfg *InMemoryConfig) Cache {
	maxEntries := defaultMaxEntries
	ttl := defaultTTL
	if cfg != nil {
		if cfg.MaxEntries > 0 {
			maxEntries = cfg.MaxEntries
		}
		if cfg.TTL > 0 {
			ttl = cfg.TTL
		}
	}

	return &inMemoryCache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

// Get returns the cached result for key, expiring it lazily
func (c *inMemoryCache) Get(ctx context.Context, key string) (*combat.DPRResult, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("cache key is required")
	}

	c.mu.RLock()
	cached, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return nil, dnderr.NotFoundf("no cached result for key '%s'", key).
			WithMeta("key", key)
	}

	if time.Since(cached.storedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a newer Set may have replaced it
		if current, still := c.entries[key]; still && current.seq == cached.seq {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, dnderr.NotFoundf("no cached result for key '%s'", key).
			WithMeta("key", key)
	}

	// Return a copy to avoid external modifications
	resultCopy := cached.result
	return &resultCopy, nil
}

// Set stores a result, evicting when the entry bound is exceeded
func (c *inMemoryCache) Set(ctx context.Context, key string, result *combat.DPRResult) error {
	if key == "" {
		return dnderr.InvalidArgument("cache key is required")
	}
	if result == nil {
		return dnderr.InvalidArgument("result cannot be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.entries[key] = entry{
		result:   *result,
		storedAt: time.Now(),
		seq:      c.seq,
	}

	if len(c.entries) > c.maxEntries {
		c.evictLocked()
	}

	return nil
}

// Clear removes every cached result
func (c *inMemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	return nil
}

// evictLocked removes expired entries first, then the oldest remaining
// entries until the cache is at or under its target fill. Callers must
// hold the write lock.
func (c *inMemoryCache) evictLocked() {
	for key, cached := range c.entries {
		if time.Since(cached.storedAt) > c.ttl {
			delete(c.entries, key)
		}
	}

	target := int(float64(c.maxEntries) * targetFillRatio)
	if target < 1 {
		target = 1
	}
	if len(c.entries) <= target {
		return
	}

	type aged struct {
		key      string
		storedAt time.Time
		seq      uint64
	}
	order := make([]aged, 0, len(c.entries))
	for key, cached := range c.entries {
		order = append(order, aged{key: key, storedAt: cached.storedAt, seq: cached.seq})
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].storedAt.Equal(order[j].storedAt) {
			return order[i].seq < order[j].seq
		}
		return order[i].storedAt.Before(order[j].storedAt)
	})

	for _, oldest := range order[:len(order)-target] {
		delete(c.entries, oldest.key)
	}
}

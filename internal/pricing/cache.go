package pricing

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is how long catalog reads are reused.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	value     any
	fetchedAt time.Time
}

// CachedCatalog wraps a Catalog and reuses each lookup result until it is
// older than the TTL. Expiry is checked on every read. Safe for concurrent use.
type CachedCatalog struct {
	next    Catalog
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCachedCatalog creates a cache in front of next. A non-positive ttl
// falls back to DefaultCacheTTL.
func NewCachedCatalog(next Catalog, ttl time.Duration) *CachedCatalog {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedCatalog{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Invalidate drops every cached entry.
func (c *CachedCatalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of entries currently held, expired or not.
func (c *CachedCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *CachedCatalog) lookup(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.fetchedAt) >= c.ttl {
		return nil, false
	}
	return e.value, true
}

func (c *CachedCatalog) store(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, fetchedAt: c.now()}
}

// cached returns the fresh entry for key or fetches and stores it. Errors
// are not cached.
func cached[T any](c *CachedCatalog, key string, fetch func() (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		return v.(T), nil
	}
	v, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	c.store(key, v)
	return v, nil
}

// GetService implements Catalog.
func (c *CachedCatalog) GetService(ctx context.Context, selector string) (*Service, error) {
	return cached(c, "service:"+selector, func() (*Service, error) {
		return c.next.GetService(ctx, selector)
	})
}

// GetComplexity implements Catalog.
func (c *CachedCatalog) GetComplexity(ctx context.Context, selector string) (*ComplexityLevel, error) {
	return cached(c, "complexity:"+selector, func() (*ComplexityLevel, error) {
		return c.next.GetComplexity(ctx, selector)
	})
}

// GetOverride implements Catalog.
func (c *CachedCatalog) GetOverride(ctx context.Context, serviceSelector, complexitySelector string) (*Override, error) {
	return cached(c, "override:"+serviceSelector+"|"+complexitySelector, func() (*Override, error) {
		return c.next.GetOverride(ctx, serviceSelector, complexitySelector)
	})
}

// GetAddons implements Catalog.
func (c *CachedCatalog) GetAddons(ctx context.Context, ids []string, activeOnly bool) ([]Addon, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	key := "addons:" + strings.Join(slices.Compact(sorted), ",")
	if activeOnly {
		key += ":active"
	}
	addons, err := cached(c, key, func() ([]Addon, error) {
		return c.next.GetAddons(ctx, ids, activeOnly)
	})
	return slices.Clone(addons), err
}

package secrets

import (
	"context"
	"sync"
	"time"
)

// Cached is a read-through Provider decorator with a short TTL, bounding
// the per-request latency of the underlying secret store. Invalidate
// supports out-of-band secret rotation.
type Cached struct {
	inner Provider
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedBundle
}

type cachedBundle struct {
	bundle  Bundle
	expires time.Time
}

// NewCached wraps a provider with a TTL cache. A non-positive ttl disables
// caching and every Fetch goes to the inner provider.
func NewCached(inner Provider, ttl time.Duration) *Cached {
	return &Cached{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedBundle),
	}
}

// Fetch returns the cached bundle when fresh, otherwise refreshes from the
// inner provider. Errors are not cached.
func (c *Cached) Fetch(ctx context.Context, name string) (Bundle, error) {
	if c.ttl <= 0 {
		return c.inner.Fetch(ctx, name)
	}

	c.mu.RLock()
	if e, ok := c.entries[name]; ok && c.now().Before(e.expires) {
		c.mu.RUnlock()
		return e.bundle, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring the write lock (another goroutine may
	// have refreshed).
	if e, ok := c.entries[name]; ok && c.now().Before(e.expires) {
		return e.bundle, nil
	}

	b, err := c.inner.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	c.entries[name] = cachedBundle{bundle: b, expires: c.now().Add(c.ttl)}
	return b, nil
}

// Invalidate drops the cached copy of a bundle so the next Fetch hits the
// underlying store. Call after rotating a secret.
func (c *Cached) Invalidate(name string) {
	c.mu.Lock()
	delete(c.entries, name)
	c.mu.Unlock()
}

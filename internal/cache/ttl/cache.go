// Package ttl implements the process-wide time-bounded cache that sits in front of
// the data provider. Reads self-expire; the janitor only bounds memory.
package ttl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"goflare.io/kalori/internal/models"
)

const (
	// DefaultTTL applies when Set is called without an explicit TTL.
	DefaultTTL = time.Hour
	// DefaultCleanupInterval is how often the janitor sweeps expired entries.
	DefaultCleanupInterval = 10 * time.Minute
)

// Option configures a Cache.
type Option func(*Cache)

// WithDefaultTTL overrides the TTL used when none is given to Set.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

// WithCleanupInterval overrides the janitor interval.
func WithCleanupInterval(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.cleanupInterval = d
		}
	}
}

// WithLogger sets the logger used by the janitor.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// Cache maps string keys to values with a per-entry expiry.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*models.Entry

	defaultTTL      time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
	logger          *zap.Logger
	metrics         *models.Metrics

	// generation changes on every Delete and Clear; loads started under an
	// older generation return their value but do not store it.
	generation uint64
	sf         *singleflight.Group

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
}

// New creates an empty Cache. The janitor is not running until Start is called.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:         make(map[string]*models.Entry),
		defaultTTL:      DefaultTTL,
		cleanupInterval: DefaultCleanupInterval,
		now:             time.Now,
		logger:          zap.NewNop(),
		metrics:         models.NewMetrics(),
		sf:              new(singleflight.Group),
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set stores value under key, replacing any previous entry. A missing or
// non-positive ttl falls back to the default.
func (c *Cache) Set(key string, value any, ttl ...time.Duration) {
	expiration := c.defaultTTL
	if len(ttl) > 0 && ttl[0] > 0 {
		expiration = ttl[0]
	}

	c.mu.Lock()
	c.entries[key] = models.NewEntry(value, c.now(), expiration)
	c.mu.Unlock()
}

// Get returns the value for key if it is present and unexpired. An expired
// entry is removed as a side effect.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.metrics.Misses.Inc()
		return nil, false
	}
	if entry.IsExpired(c.now()) {
		delete(c.entries, key)
		c.metrics.Expirations.Inc()
		c.metrics.Misses.Inc()
		return nil, false
	}

	c.metrics.Hits.Inc()
	return entry.Value, true
}

// Has reports whether Get would succeed.
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes key. Idempotent. A load of key already in flight will not store its result.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.generation++
	sf := c.sf
	c.mu.Unlock()
	sf.Forget(key)
}

// Clear removes every entry. Loads already in flight will not store their results,
// and later loads do not join them.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*models.Entry)
	c.generation++
	c.sf = new(singleflight.Group)
	c.mu.Unlock()
}

// Cleanup removes all entries whose expiry has passed and returns how many were removed.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if entry.IsExpired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	c.metrics.Expirations.Add(int64(removed))
	return removed
}

// Size returns the number of stored entries, including expired ones not yet swept.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() models.Snapshot {
	return c.metrics.Snapshot(c.Size())
}

// GetOrLoad returns the cached value for key, or calls loader and caches its result
// for ttl. Concurrent misses on the same key share one loader call. The shared call
// does not inherit cancellation from any single caller; each caller stops waiting
// when its own ctx ends. Loader errors are returned and never cached.
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	c.mu.Lock()
	sf := c.sf
	c.mu.Unlock()

	loadCtx := context.WithoutCancel(ctx)
	ch := sf.DoChan(key, func() (v any, err error) {
		// DoChan re-raises panics on its own goroutine, out of reach of the caller's recover.
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("loader panicked: %v", rec)
			}
		}()

		gen := c.currentGeneration()
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		c.metrics.Loads.Inc()
		v, err = loader(loadCtx)
		if err != nil {
			return nil, err
		}
		c.setIfGeneration(key, v, ttl, gen)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load %q: %w", key, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("load %q: %w", key, res.Err)
		}
		return res.Val, nil
	}
}

func (c *Cache) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// setIfGeneration stores value only if no Delete or Clear happened since gen.
func (c *Cache) setIfGeneration(key string, value any, ttl time.Duration, gen uint64) {
	expiration := c.defaultTTL
	if ttl > 0 {
		expiration = ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		c.logger.Debug("Dropping stale load result", zap.String("key", key))
		return
	}
	c.entries[key] = models.NewEntry(value, c.now(), expiration)
}

// Load is the typed form of GetOrLoad.
func Load[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		c.Delete(key)
		return zero, fmt.Errorf("cache entry %q has type %T, want %T", key, v, zero)
	}
	return typed, nil
}

package evaluation

import (
	"context"
	"sync"
	"time"
)

const (
	defaultLoadRetries = 2
	defaultRetryDelay  = time.Second
)

// Source loads the configured options from the system of record.
type Source interface {
	LoadOptions(ctx context.Context) ([]Option, error)
}

// CatalogCache memoizes the option catalog after the first successful
// read. Invalidation is manual: callers that mutate the configuration must
// call Invalidate or Refetch themselves.
type CatalogCache struct {
	source     Source
	maxRetries int
	retryDelay time.Duration
	sleep      func(time.Duration)

	mu      sync.Mutex
	loaded  bool
	catalog *Catalog
}

// NewCatalogCache wraps a source with the default retry policy: two extra
// attempts at a fixed one-second delay.
func NewCatalogCache(source Source) *CatalogCache {
	return &CatalogCache{
		source:     source,
		maxRetries: defaultLoadRetries,
		retryDelay: defaultRetryDelay,
		sleep:      time.Sleep,
	}
}

// SetRetryPolicy overrides the load retry budget and delay.
func (c *CatalogCache) SetRetryPolicy(maxRetries int, delay time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxRetries = maxRetries
	c.retryDelay = delay
}

// Catalog returns the cached catalog, loading it on first use. A load that
// still fails after the retry budget yields an empty catalog, so reads
// degrade to LabelNotEvaluated instead of surfacing the failure.
func (c *CatalogCache) Catalog(ctx context.Context) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.catalog
	}

	c.catalog = NewCatalog(c.load(ctx))
	c.loaded = true
	return c.catalog
}

// Invalidate drops the cached catalog; the next read loads again.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.catalog = nil
}

// Refetch reloads immediately and replaces the cached catalog.
func (c *CatalogCache) Refetch(ctx context.Context) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.catalog = NewCatalog(c.load(ctx))
	c.loaded = true
	return c.catalog
}

func (c *CatalogCache) load(ctx context.Context) []Option {
	for attempt := 0; ; attempt++ {
		options, err := c.source.LoadOptions(ctx)
		if err == nil {
			return options
		}
		if attempt >= c.maxRetries {
			return nil
		}
		c.sleep(c.retryDelay)
	}
}

package completion

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/giovannadias1704-collab/medplanner-sub000/pkg/observability"
)

const (
	defaultCacheSize = 256
	defaultCacheTTL  = 12 * time.Hour
)

// CacheConfig configures CachingCompleter.
type CacheConfig struct {
	Size int
	TTL  time.Duration

	// Validate rejects replies that must not be cached. Nil caches every reply.
	Validate func(reply string) error
}

type cacheEntry struct {
	reply    string
	storedAt time.Time
}

// CachingCompleter remembers successful, valid replies per prompt. Prompts embed the
// reference date, so entries never leak across days.
type CachingCompleter struct {
	next     Completer
	cache    *lru.Cache[string, cacheEntry]
	ttl      time.Duration
	validate func(string) error
	metrics  observability.Metrics
	now      func() time.Time
}

// NewCachingCompleter wraps next with an LRU cache.
func NewCachingCompleter(next Completer, cfg CacheConfig, metrics observability.Metrics) (*CachingCompleter, error) {
	if cfg.Size <= 0 {
		cfg.Size = defaultCacheSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultCacheTTL
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	cache, err := lru.New[string, cacheEntry](cfg.Size)
	if err != nil {
		return nil, err
	}
	return &CachingCompleter{
		next:     next,
		cache:    cache,
		ttl:      cfg.TTL,
		validate: cfg.Validate,
		metrics:  metrics,
		now:      time.Now,
	}, nil
}

// Complete returns a cached reply when one is fresh, otherwise calls the wrapped completer.
func (c *CachingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if entry, ok := c.cache.Get(prompt); ok {
		if c.now().Sub(entry.storedAt) < c.ttl {
			c.metrics.Counter(observability.MetricCompletionCacheHits, 1)
			return entry.reply, nil
		}
		c.cache.Remove(prompt)
	}
	c.metrics.Counter(observability.MetricCompletionCacheMisses, 1)

	reply, err := c.next.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	if c.validate != nil && c.validate(reply) != nil {
		c.metrics.Counter(observability.MetricCompletionCacheRejected, 1)
		return reply, nil
	}
	c.cache.Add(prompt, cacheEntry{reply: reply, storedAt: c.now()})
	return reply, nil
}

// Len returns the number of cached replies.
func (c *CachingCompleter) Len() int {
	return c.cache.Len()
}

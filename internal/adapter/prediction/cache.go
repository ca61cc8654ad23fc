package prediction

import (
	"context"
	"sync"

	"github.com/saferoute/risk-report-service/internal/domain"
	"github.com/saferoute/risk-report-service/internal/observability"
)

// CachedPredictor wraps a Predictor with an in-memory LRU cache. Identical
// submissions yield identical predictions, so repeat requests skip the
// upstream call entirely.
type CachedPredictor struct {
	inner   domain.Predictor
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedPredictor creates a cache decorator around a predictor.
func NewCachedPredictor(inner domain.Predictor, maxEntries int, metrics *observability.Metrics) *CachedPredictor {
	return &CachedPredictor{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedPredictor) Predict(ctx context.Context, sub domain.Submission) ([]byte, error) {
	key := sub.CacheKey()
	if payload, ok := c.cache.get(key); ok {
		c.metrics.PredictionCache.WithLabelValues("hit").Inc()
		return payload, nil
	}
	c.metrics.PredictionCache.WithLabelValues("miss").Inc()

	payload, err := c.inner.Predict(ctx, sub)
	if err != nil {
		return payload, err
	}
	// Only cache non-empty payloads so transient empty responses can be retried.
	if len(payload) > 0 {
		c.cache.put(key, payload)
	}
	return payload, nil
}

// CheckHealth delegates to the wrapped predictor; health is never cached.
func (c *CachedPredictor) CheckHealth(ctx context.Context) error {
	return c.inner.CheckHealth(ctx)
}

// lruCache is a simple thread-safe LRU cache for raw prediction payloads.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []byte
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}

package anchor

import (
	"sync"
	"time"

	"github.com/anchorkit/anchorkit/failure"
	"github.com/anchorkit/anchorkit/transport"
)

type quoteKey struct {
	endpoint   string
	baseAsset  string
	quoteAsset string
	amount     uint64
}

type quoteEntry struct {
	quote     transport.Quote
	expiresAt time.Time
}

// quoteCache holds fetched quotes until either the cache TTL or the
// quote's own validity window runs out, whichever comes first.
type quoteCache struct {
	mu      sync.RWMutex
	entries map[quoteKey]quoteEntry
	nowFn   func() time.Time
}

func newQuoteCache(nowFn func() time.Time) *quoteCache {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &quoteCache{
		entries: make(map[quoteKey]quoteEntry),
		nowFn:   nowFn,
	}
}

// get returns the cached quote for key, or a cache-kind failure: miss,
// TTL expiry, or a quote past its own validity. Dead entries are evicted.
func (c *quoteCache) get(key quoteKey) (transport.Quote, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return transport.Quote{}, failure.New(failure.KindCacheMiss, "quote_cache", "no cached quote")
	}

	now := c.nowFn()
	if now.After(entry.expiresAt) {
		c.evict(key)
		return transport.Quote{}, failure.New(failure.KindCacheExpired, "quote_cache", "cached quote past ttl")
	}
	if entry.quote.Expired(now) {
		c.evict(key)
		return transport.Quote{}, failure.New(failure.KindStaleData, "quote_cache", "cached quote expired")
	}
	return entry.quote, nil
}

func (c *quoteCache) set(key quoteKey, q transport.Quote, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = quoteEntry{
		quote:     q,
		expiresAt: c.nowFn().Add(ttl),
	}
}

func (c *quoteCache) evict(key quoteKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

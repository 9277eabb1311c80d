package anchor

import (
	"testing"
	"time"

	"github.com/anchorkit/anchorkit/failure"
	"github.com/anchorkit/anchorkit/transport"
)

func TestQuoteCache_MissThenHit(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newQuoteCache(func() time.Time { return now })

	key := quoteKey{endpoint: "https://a", baseAsset: "USDC", quoteAsset: "EURC", amount: 100}
	_, err := c.get(key)
	wantKind(t, err, failure.KindCacheMiss)

	q := transport.Quote{QuoteID: "q-1", ExpiresAt: now.Add(time.Hour)}
	c.set(key, q, 30*time.Second)

	got, err := c.get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.QuoteID != "q-1" {
		t.Fatalf("quote = %+v", got)
	}
}

func TestQuoteCache_TTLExpiryEvicts(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newQuoteCache(func() time.Time { return now })

	key := quoteKey{endpoint: "https://a", baseAsset: "USDC", quoteAsset: "EURC", amount: 100}
	c.set(key, transport.Quote{QuoteID: "q-1", ExpiresAt: now.Add(time.Hour)}, 30*time.Second)

	now = now.Add(31 * time.Second)
	_, err := c.get(key)
	wantKind(t, err, failure.KindCacheExpired)

	// The dead entry was evicted, so the next lookup is a plain miss.
	_, err = c.get(key)
	wantKind(t, err, failure.KindCacheMiss)
}

func TestQuoteCache_QuoteExpiryBeatsTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newQuoteCache(func() time.Time { return now })

	key := quoteKey{endpoint: "https://a", baseAsset: "USDC", quoteAsset: "EURC", amount: 100}
	c.set(key, transport.Quote{QuoteID: "q-1", ExpiresAt: now.Add(10 * time.Second)}, time.Hour)

	now = now.Add(11 * time.Second)
	_, err := c.get(key)
	wantKind(t, err, failure.KindStaleData)

	_, err = c.get(key)
	wantKind(t, err, failure.KindCacheMiss)
}

func TestQuoteCache_KeysAreDistinct(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newQuoteCache(func() time.Time { return now })

	a := quoteKey{endpoint: "https://a", baseAsset: "USDC", quoteAsset: "EURC", amount: 100}
	b := a
	b.amount = 200
	c.set(a, transport.Quote{QuoteID: "q-a", ExpiresAt: now.Add(time.Hour)}, time.Hour)

	_, err := c.get(b)
	wantKind(t, err, failure.KindCacheMiss)
}

package marketdata

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

type cachedPrice struct {
	price     decimal.Decimal
	fetchedAt time.Time
}

type fetchResult struct {
	price decimal.Decimal
	ok    bool
}

// Cache is a PriceSource that remembers prices fetched from another source
// for a fixed TTL. Only available prices are kept; an unavailable price or a
// failed fetch is retried on the next call. Concurrent misses for the same
// symbol share one upstream fetch.
type Cache struct {
	source PriceSource
	ttl    time.Duration
	clock  Clock
	logger *slog.Logger

	store *cache.Cache
	group singleflight.Group
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock replaces the wall clock used to age entries.
func WithClock(clock Clock) CacheOption {
	return func(c *Cache) { c.clock = clock }
}

// WithLogger sets the logger for fetch failures.
func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) { c.logger = logger }
}

// NewCache wraps source with a cache whose entries live for ttl. A
// non-positive ttl disables caching but keeps fetch de-duplication.
func NewCache(source PriceSource, ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{
		source: source,
		ttl:    ttl,
		clock:  SystemClock,
		logger: slog.Default(),
		// Entries never expire inside go-cache; age is checked against the
		// injected clock on read.
		store: cache.New(cache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentPrice returns a cached price when one younger than the TTL exists
// and otherwise fetches from the wrapped source.
func (c *Cache) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, bool, error) {
	if price, ok := c.lookup(symbol); ok {
		return price, true, nil
	}

	// The shared fetch must outlive any single caller that gives up.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(symbol, func() (any, error) {
		price, ok, err := c.source.CurrentPrice(fetchCtx, symbol)
		if err != nil {
			return nil, err
		}
		if ok && c.ttl > 0 {
			c.store.Set(symbol, cachedPrice{price: price, fetchedAt: c.clock.Now()}, cache.NoExpiration)
		}
		return fetchResult{price: price, ok: ok}, nil
	})

	select {
	case <-ctx.Done():
		return decimal.Zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			c.logger.Warn("price fetch failed", "symbol", symbol, "error", res.Err)
			return decimal.Zero, false, res.Err
		}
		r := res.Val.(fetchResult)
		return r.price, r.ok, nil
	}
}

func (c *Cache) lookup(symbol string) (decimal.Decimal, bool) {
	v, found := c.store.Get(symbol)
	if !found {
		return decimal.Zero, false
	}
	entry := v.(cachedPrice)
	if c.clock.Now().Sub(entry.fetchedAt) >= c.ttl {
		c.store.Delete(symbol)
		return decimal.Zero, false
	}
	return entry.price, true
}

// Invalidate drops the cached price of symbol.
func (c *Cache) Invalidate(symbol string) {
	c.store.Delete(symbol)
}

// Flush drops every cached price.
func (c *Cache) Flush() {
	c.store.Flush()
}

// Len reports how many prices are cached, including stale ones not yet read.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

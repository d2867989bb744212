// Package cache provides TTL-based memoization of expensive calculator
// outputs, invalidated by domain change events.
//
// A ResultCache is an explicitly constructed instance passed to its callers;
// there is no package-level singleton, so tests get isolated caches and
// several configurations can coexist in one process.
package cache

import (
	"strings"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is applied when a caller passes a non-positive TTL.
const DefaultTTL = time.Hour

// ScopePortfolio is the scope segment of portfolio-wide results, which any
// account or transaction change invalidates.
const ScopePortfolio = "portfolio"

// entryOverheadBytes is the rough per-entry bookkeeping cost used for the
// approximate memory figure in Stats. Observability only, no contract.
const entryOverheadBytes = 96

// Stats is a snapshot of cache counters. Observability only.
type Stats struct {
	Entries       int
	ApproxBytes   int64
	Hits          int64
	Misses        int64
	Invalidations int64
}

// ResultCache memoizes calculator outputs with per-entry TTLs.
// The backing store handles concurrent access and reclaims expired entries
// with a background sweep; expiry itself is lazy, so correctness never
// depends on the sweep running.
type ResultCache struct {
	store      *gocache.Cache
	defaultTTL time.Duration
	group      singleflight.Group

	hits          atomic.Int64
	misses        atomic.Int64
	invalidations atomic.Int64
}

// New creates a ResultCache. defaultTTL <= 0 falls back to DefaultTTL;
// sweepInterval <= 0 disables the background sweep (expired entries then
// linger until overwritten, which only costs memory, not correctness).
func New(defaultTTL, sweepInterval time.Duration) *ResultCache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &ResultCache{
		store:      gocache.New(defaultTTL, sweepInterval),
		defaultTTL: defaultTTL,
	}
}

// Key builds a canonical cache key of the form "kind:scope[:part...]".
// The scope segment is what InvalidateScope matches on, so every key caching
// account-derived data must put the account ID there.
func Key(kind, scope string, parts ...string) string {
	segments := append([]string{kind, scope}, parts...)
	return strings.Join(segments, ":")
}

// scopeOf extracts the scope segment of a canonical key, or "" for keys not
// built by Key.
func scopeOf(key string) string {
	segments := strings.SplitN(key, ":", 3)
	if len(segments) < 2 {
		return ""
	}
	return segments[1]
}

// Put stores a value until now+ttl. A non-positive ttl uses the default.
func (c *ResultCache) Put(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.store.Set(key, value, ttl)
}

// Get returns the cached value for key if it has not expired.
func (c *ResultCache) Get(key string) (any, bool) {
	value, found := c.store.Get(key)
	if !found {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return value, true
}

// Delete removes a single entry regardless of TTL.
func (c *ResultCache) Delete(key string) {
	c.store.Delete(key)
}

// GetOrCompute returns the cached value for key, computing and storing it on
// a miss. Concurrent misses on the same key are collapsed into a single
// computation. Errors are never cached.
func (c *ResultCache) GetOrCompute(key string, ttl time.Duration, compute func() (any, error)) (any, error) {
	if value, found := c.Get(key); found {
		return value, nil
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have filled the entry while we queued
		if value, found := c.store.Get(key); found {
			return value, nil
		}
		value, err := compute()
		if err != nil {
			return nil, err
		}
		c.Put(key, value, ttl)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// InvalidateScope deletes every entry whose scope segment equals scope,
// regardless of TTL, and returns the number deleted.
//
// This is a full scan of the live entries. The cache is bounded by the open
// portfolio/report keys, so the scan stays cheap; a secondary scope index is
// not worth the complexity at that size. Readers racing the scan may see a
// partially invalidated scope, which costs them at most one extra miss.
func (c *ResultCache) InvalidateScope(scope string) int {
	if scope == "" {
		return 0
	}

	deleted := 0
	for key := range c.store.Items() {
		if scopeOf(key) == scope {
			c.store.Delete(key)
			deleted++
		}
	}
	if deleted > 0 {
		c.invalidations.Add(int64(deleted))
	}
	return deleted
}

// Flush drops every entry. Intended for tests and full recomputation forks.
func (c *ResultCache) Flush() {
	c.store.Flush()
}

// Stats returns a point-in-time snapshot of the counters.
func (c *ResultCache) Stats() Stats {
	items := c.store.Items()

	var approx int64
	for key := range items {
		approx += int64(len(key)) + entryOverheadBytes
	}

	return Stats{
		Entries:       len(items),
		ApproxBytes:   approx,
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Invalidations: c.invalidations.Load(),
	}
}

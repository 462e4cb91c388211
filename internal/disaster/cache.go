package disaster

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultCacheTTL bounds how long a fetched collection is served before the
// next request goes upstream again.
const DefaultCacheTTL = 5 * time.Minute

// timeboxCache maps request-shaped keys to fetched results. Entries expire
// lazily on read; nothing evicts them in the background, expired entries are
// simply overwritten by the next writer.
//
// Concurrent misses on the same key are not deduplicated: each miss fetches
// on its own and the last writer wins. Entries are idempotently re-derivable,
// so the race is harmless and cheaper than coalescing.
type timeboxCache struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value    any
	storedAt time.Time
}

// newTimeboxCache creates a cache. A zero ttl falls back to DefaultCacheTTL;
// a nil clock falls back to the real one.
func newTimeboxCache(ttl time.Duration, clock clockwork.Clock) *timeboxCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &timeboxCache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]cacheEntry),
	}
}

// get returns the stored value while the entry is still inside its window.
func (c *timeboxCache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.clock.Since(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.value, true
}

// put records the value with the current time, superseding any previous
// entry under the key.
func (c *timeboxCache) put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, storedAt: c.clock.Now()}
}

// isValid reports whether key holds an unexpired entry.
func (c *timeboxCache) isValid(key string) bool {
	_, ok := c.get(key)
	return ok
}

// len reports the number of entries, expired ones included.
func (c *timeboxCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

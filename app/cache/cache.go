// Package cache provides a keyed memoization cache shared across requests.
// Each key has at most one computation in flight; concurrent callers for
// the same key wait on it instead of duplicating it, and a successful
// result is kept for the lifetime of the cache. Unrelated keys never
// serialize.
package cache

import "sync"

type entry[V any] struct {
	ready chan struct{} // closed when val and err are set
	val   V
	err   error
}

type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[V]
}

func New[V any]() *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]*entry[V]),
	}
}

// GetOrCompute returns the memoized result for key, running compute if no
// caller has claimed the key yet. Only successes are memoized: a failed
// computation reports its error to every caller waiting on it, then
// releases the key so the next caller can retry.
func (c *Cache[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.mu.Lock()
		e, ok = c.entries[key]
		if !ok {
			e = &entry[V]{ready: make(chan struct{})}
			c.entries[key] = e
			c.mu.Unlock()

			e.val, e.err = compute()
			if e.err != nil {
				// a transient failure must not pin the key for the
				// process lifetime
				c.mu.Lock()
				delete(c.entries, key)
				c.mu.Unlock()
			}
			close(e.ready)
			return e.val, e.err
		}
		c.mu.Unlock()
	}

	<-e.ready
	return e.val, e.err
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

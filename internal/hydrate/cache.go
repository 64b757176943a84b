package hydrate

import "sync"

// Cache holds hydrated image URLs keyed by product key. An empty value is a
// cached negative ("looked it up, no image there") and is terminal for the
// session: negatives are never refetched. Workers only ever write distinct
// keys (the needs-list is deduplicated before dispatch), so a plain
// last-write-wins map behind a mutex is enough.
type Cache struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewCache() *Cache {
	return &Cache{m: make(map[string]string)}
}

// Lookup returns the cached URL and whether any entry (including a negative)
// exists for the key.
func (c *Cache) Lookup(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	url, ok := c.m[key]
	return url, ok
}

func (c *Cache) Set(key, url string) {
	c.mu.Lock()
	c.m[key] = url
	c.mu.Unlock()
}

// Len reports how many keys have been looked up, negatives included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

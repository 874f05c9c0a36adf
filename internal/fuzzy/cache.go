package fuzzy

import (
	"container/list"
	"sync"
)

// Cache provides LRU caching for query results.
// It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	maxSize int
	items   map[string]*list.Element
	lru     *list.List
}

// cacheEntry holds a cached query result.
type cacheEntry struct {
	query   string
	matches []Match
}

// NewCache creates a new LRU cache with the given maximum size.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &Cache{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// Get retrieves cached matches for a query.
// Returns nil if not found.
func (c *Cache) Get(query string) []Match {
	// Check with a read lock first; misses are the common case.
	c.mu.RLock()
	_, ok := c.items[query]
	if !ok {
		c.mu.RUnlock()
		return nil
	}
	c.mu.RUnlock()

	// Hit: write lock to update LRU order.
	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check in case the entry was evicted between locks.
	elem, ok := c.items[query]
	if !ok {
		return nil
	}

	c.lru.MoveToFront(elem)

	entry := elem.Value.(*cacheEntry) //nolint:errcheck // list only contains *cacheEntry

	// Return a copy to prevent external modification. Positions must be
	// copied too or callers could mutate the cached entry through them.
	return copyMatches(entry.matches)
}

// Set stores matches for a query in the cache.
func (c *Cache) Set(query string, matches []Match) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[query]; ok {
		c.lru.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry) //nolint:errcheck // list only contains *cacheEntry
		entry.matches = copyMatches(matches)
		return
	}

	if c.lru.Len() >= c.maxSize {
		c.evictOldest()
	}

	entry := &cacheEntry{
		query:   query,
		matches: copyMatches(matches),
	}
	elem := c.lru.PushFront(entry)
	c.items[query] = elem
}

// Delete removes a specific query from the cache.
func (c *Cache) Delete(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[query]; ok {
		c.removeElement(elem)
	}
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Len()
}

// evictOldest removes the least recently used entry.
// Must be called with lock held.
func (c *Cache) evictOldest() {
	if elem := c.lru.Back(); elem != nil {
		c.removeElement(elem)
	}
}

// removeElement removes an element from the cache.
// Must be called with lock held.
func (c *Cache) removeElement(elem *list.Element) {
	c.lru.Remove(elem)
	entry := elem.Value.(*cacheEntry) //nolint:errcheck // list only contains *cacheEntry
	delete(c.items, entry.query)
}

// copyMatches creates a deep copy of matches.
func copyMatches(matches []Match) []Match {
	copied := make([]Match, len(matches))
	for i, m := range matches {
		copied[i] = Match{
			Item:  m.Item,
			Score: m.Score,
		}
		if m.Positions != nil {
			copied[i].Positions = make([]int, len(m.Positions))
			copy(copied[i].Positions, m.Positions)
		}
	}
	return copied
}

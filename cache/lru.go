package cache

import "container/list"

// lru is the shared eviction core: a map for O(1) lookup and an intrusive
// list ordered most-recent-first. Not safe for concurrent use; the owning
// cache wraps it in a mutex held only for list/map surgery.
type lru[K comparable, V any] struct {
	capacity int
	entries  map[K]*list.Element
	order    *list.List // Front = most recently used
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

func newLRU[K comparable, V any](capacity int) *lru[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &lru[K, V]{
		capacity: capacity,
		entries:  make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
}

// get promotes the entry to most-recently-used on hit
func (c *lru[K, V]) get(key K) (V, bool) {
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*lruEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// peek reads without promoting
func (c *lru[K, V]) peek(key K) (V, bool) {
	if elem, ok := c.entries[key]; ok {
		return elem.Value.(*lruEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// put inserts or overwrites, then evicts least-recently-used entries until
// the cache is back at capacity. Returns the number of evictions
func (c *lru[K, V]) put(key K, value V) int {
	if elem, ok := c.entries[key]; ok {
		elem.Value.(*lruEntry[K, V]).value = value
		c.order.MoveToFront(elem)
		return 0
	}

	c.entries[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})

	evicted := 0
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.removeElement(oldest)
		evicted++
	}
	return evicted
}

// remove deletes a specific key if present
func (c *lru[K, V]) remove(key K) bool {
	elem, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeElement(elem)
	return true
}

// removeIf deletes every entry the predicate selects, returning the count.
// Used for index-based trimming that is independent of recency
func (c *lru[K, V]) removeIf(pred func(K) bool) int {
	removed := 0
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if pred(elem.Value.(*lruEntry[K, V]).key) {
			c.removeElement(elem)
			removed++
		}
		elem = next
	}
	return removed
}

func (c *lru[K, V]) removeElement(elem *list.Element) {
	entry := elem.Value.(*lruEntry[K, V])
	delete(c.entries, entry.key)
	c.order.Remove(elem)
}

func (c *lru[K, V]) len() int {
	return c.order.Len()
}

func (c *lru[K, V]) clear() {
	c.entries = make(map[K]*list.Element, c.capacity)
	c.order.Init()
}

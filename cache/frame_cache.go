package cache

import (
	"sync"

	"github.com/lixenwraith/replay/core"
)

// FrameCache holds decoded raw frames keyed by frame index. Buffers are
// shared by pointer and treated as immutable once inserted; Get never
// copies pixels and the lock is never held during decode or pixel math.
type FrameCache struct {
	mu    sync.Mutex
	lru   *lru[int, *core.PixelBuffer]
	stats Stats
}

// NewFrameCache creates a cache bounded to capacity frames
func NewFrameCache(capacity int) *FrameCache {
	return &FrameCache{
		lru: newLRU[int, *core.PixelBuffer](capacity),
	}
}

// Get returns the cached buffer for index, promoting it to MRU
func (c *FrameCache) Get(index int) (*core.PixelBuffer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf, ok := c.lru.get(index)
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return buf, ok
}

// Contains reports residency without promoting, for prefetch planning
func (c *FrameCache) Contains(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.lru.peek(index)
	return ok
}

// Put inserts or overwrites the buffer for index, evicting LRU entries
// past capacity
func (c *FrameCache) Put(index int, buf *core.PixelBuffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Evictions += uint64(c.lru.put(index, buf))
}

// EvictBelow removes every entry with index < floor, regardless of recency.
// The prefetcher calls this to bound trailing retention behind the cursor
func (c *FrameCache) EvictBelow(floor int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := c.lru.removeIf(func(index int) bool {
		return index < floor
	})
	c.stats.Evictions += uint64(removed)
	return removed
}

// Len returns the current entry count
func (c *FrameCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.len()
}

// Capacity returns the configured bound
func (c *FrameCache) Capacity() int {
	return c.lru.capacity
}

// Clear drops all entries, for seeks that invalidate the whole window
func (c *FrameCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.clear()
}

// Stats returns a snapshot of the effectiveness counters
func (c *FrameCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

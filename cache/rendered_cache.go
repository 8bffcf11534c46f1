package cache

import (
	"sync"

	"github.com/lixenwraith/replay/core"
)

// RenderedKey identifies one composited result: a frame index plus the
// digest of every pixel-affecting render setting. Equal key guarantees a
// pixel-identical buffer, which is what makes returning cached composites
// without recomputation sound.
type RenderedKey struct {
	Frame    int
	Settings uint64
}

// RenderedFrameCache holds fully composited frames. Settings changes
// invalidate lazily: old entries carry a hash that will never match again
// and age out through normal LRU pressure.
type RenderedFrameCache struct {
	mu    sync.Mutex
	lru   *lru[RenderedKey, *core.PixelBuffer]
	stats Stats
}

// NewRenderedFrameCache creates a cache bounded to capacity entries
func NewRenderedFrameCache(capacity int) *RenderedFrameCache {
	return &RenderedFrameCache{
		lru: newLRU[RenderedKey, *core.PixelBuffer](capacity),
	}
}

// Get returns the composited buffer for key, promoting it to MRU
func (c *RenderedFrameCache) Get(key RenderedKey) (*core.PixelBuffer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf, ok := c.lru.get(key)
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return buf, ok
}

// Put inserts the composited buffer for key
func (c *RenderedFrameCache) Put(key RenderedKey, buf *core.PixelBuffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Evictions += uint64(c.lru.put(key, buf))
}

// Len returns the current entry count
func (c *RenderedFrameCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.len()
}

// Clear drops all entries
func (c *RenderedFrameCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.clear()
}

// Stats returns a snapshot of the effectiveness counters
func (c *RenderedFrameCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

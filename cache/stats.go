package cache

// Stats is a point-in-time snapshot of cache effectiveness counters.
// Fields are mutated under the owning cache's lock; the snapshot returned
// by Stats() is a consistent copy
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRatio returns Hits/(Hits+Misses), 0 when the cache is untouched
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

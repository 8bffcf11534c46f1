package parameter

import "time"

// Frame caching
const (
	// FrameCacheCapacity is the raw-frame cache size in frames (~8s at 30fps)
	FrameCacheCapacity = 240

	// RenderedCacheCapacity is the composited-frame cache size in frames.
	// Entries go stale on every settings change so a small cache suffices
	RenderedCacheCapacity = 48
)

// Prefetch
const (
	// PrefetchNearWindow is the latency-critical look-ahead in frames;
	// a miss here stalls playback on a synchronous decode
	PrefetchNearWindow = 10

	// PrefetchFarWindow is the total look-ahead in frames, filled only
	// once the near window is complete
	PrefetchFarWindow = 60

	// PrefetchBackBuffer is the trailing retention in frames kept for
	// short rewinds before the prefetcher trims them
	PrefetchBackBuffer = 30

	// PrefetchIdleDelay is how long the worker sleeps when the near
	// window is already full
	PrefetchIdleDelay = 5 * time.Millisecond
)

// Playback
const (
	// DefaultFPS is the assumed source frame rate when the container
	// reports none
	DefaultFPS = 30.0

	// SpeedMin and SpeedMax bound the playback speed multiplier
	SpeedMin = 0.125
	SpeedMax = 8.0

	// CatchUpLimit is the tick-debt multiple beyond which the clock
	// resynchronizes instead of bursting frames after a stall
	CatchUpLimit = 2.0
)

// Overlay worker
const (
	// OverlayStaleness is the maximum frame distance at which an
	// asynchronously composited result is still presentable
	OverlayStaleness = 2
)

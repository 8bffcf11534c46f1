package playback

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/replay/parameter"
)

// State is a snapshot of the pacing state machine
type State struct {
	Frame   int
	Speed   float64
	Playing bool
}

// Clock is the frame-pacing state machine. Two states, Paused and Playing;
// while playing, Tick converts elapsed wall-clock time under the speed
// multiplier into at most one frame advance per call, drift-free.
//
// The generation counter makes pause/seek linearizable with the scheduler:
// every control call bumps it, and a tick carrying a stale generation
// commits nothing. Once Pause returns, no in-flight tick can advance the
// frame.
type Clock struct {
	mu sync.Mutex
	tp TimeProvider

	fps         float64
	totalFrames int

	frame    int
	speed    float64
	playing  bool
	lastTick time.Time

	generation atomic.Uint64
}

// NewClock creates a paused clock at frame 0
func NewClock(tp TimeProvider, fps float64, totalFrames int) *Clock {
	if fps <= 0 {
		fps = parameter.DefaultFPS
	}
	return &Clock{
		tp:          tp,
		fps:         fps,
		totalFrames: totalFrames,
		speed:       1.0,
	}
}

// Generation returns the current control generation. The scheduler captures
// it before sleeping and hands it back to TickIfCurrent
func (c *Clock) Generation() uint64 {
	return c.generation.Load()
}

// State returns a consistent snapshot
func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Frame: c.frame, Speed: c.speed, Playing: c.playing}
}

// Frame returns the current frame index
func (c *Clock) Frame() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// Playing reports whether the clock is in the Playing state
func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Interval returns the current frame interval under the speed multiplier
func (c *Clock) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.intervalLocked()
}

func (c *Clock) intervalLocked() time.Duration {
	return time.Duration(float64(time.Second) / (c.fps * c.speed))
}

// Play transitions Paused -> Playing. lastTick resets to now so time
// accumulated while paused cannot trigger a catch-up burst
func (c *Clock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.playing {
		return
	}
	if c.frame >= c.totalFrames-1 {
		// Replay from the start when asked to play at end of stream
		c.frame = 0
	}
	c.playing = true
	c.lastTick = c.tp.Now()
	c.generation.Add(1)
}

// Pause transitions Playing -> Paused. Guaranteed: no tick advances the
// frame after this returns
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.playing = false
	c.generation.Add(1)
}

// Seek jumps to index (clamped to the stream), resetting tick timing.
// Legal in both states; playback continues from the new position
func (c *Clock) Seek(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 {
		index = 0
	}
	if index > c.totalFrames-1 {
		index = c.totalFrames - 1
	}
	c.frame = index
	c.lastTick = c.tp.Now()
	c.generation.Add(1)
}

// SetSpeed changes the multiplier, clamped to the configured range.
// Takes effect on the next tick; no pause/resume cycle required
func (c *Clock) SetSpeed(speed float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if speed < parameter.SpeedMin {
		speed = parameter.SpeedMin
	}
	if speed > parameter.SpeedMax {
		speed = parameter.SpeedMax
	}
	c.speed = speed
	c.generation.Add(1)
}

// Tick advances at most one frame if its interval has elapsed.
// Returns the frame index and whether an advance happened
func (c *Clock) Tick() (int, bool) {
	return c.TickIfCurrent(c.generation.Load())
}

// TickIfCurrent is Tick gated on the control generation: a tick scheduled
// before a pause/seek/speed change carries a stale generation and commits
// nothing
func (c *Clock) TickIfCurrent(generation uint64) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.playing || generation != c.generation.Load() {
		return c.frame, false
	}

	interval := c.intervalLocked()
	now := c.tp.Now()
	if now.Sub(c.lastTick) < interval {
		return c.frame, false
	}

	// Advance lastTick by the interval, not to now: overhead then eats
	// into the next interval instead of accumulating as drift
	c.lastTick = c.lastTick.Add(interval)

	// After a stall, resynchronize rather than bursting through the debt
	if now.Sub(c.lastTick) > time.Duration(parameter.CatchUpLimit*float64(interval)) {
		c.lastTick = now.Add(-interval)
	}

	if c.frame >= c.totalFrames-1 {
		c.playing = false
		c.generation.Add(1)
		return c.frame, false
	}
	c.frame++

	if c.frame >= c.totalFrames-1 {
		// Last frame reached: Playing -> Paused
		c.playing = false
		c.generation.Add(1)
	}
	return c.frame, true
}

// NextDeadline returns when the next tick is due, and whether one is due
// at all (false while paused)
func (c *Clock) NextDeadline() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.playing {
		return time.Time{}, false
	}
	return c.lastTick.Add(c.intervalLocked()), true
}

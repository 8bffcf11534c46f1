package playback

import (
	"testing"
	"time"
)

func newTestClock(fps float64, totalFrames int) (*Clock, *MockTimeProvider) {
	tp := NewMockTimeProvider(time.Unix(1000, 0))
	return NewClock(tp, fps, totalFrames), tp
}

// Over a simulated 10 second run at 30fps/1.0x with zero overhead,
// exactly 300 advances must occur and none before its scheduled time
func TestPacingAccuracy(t *testing.T) {
	clock, tp := newTestClock(30, 100000)
	clock.Play()

	interval := clock.Interval()
	start := tp.Now()
	nextDue := start.Add(interval)

	advances := 0
	step := time.Millisecond
	for elapsed := time.Duration(0); elapsed < 10*time.Second; elapsed += step {
		tp.Advance(step)
		if _, advanced := clock.Tick(); advanced {
			if tp.Now().Before(nextDue) {
				t.Fatalf("advance %d fired early: now=%v due=%v", advances, tp.Now().Sub(start), nextDue.Sub(start))
			}
			nextDue = nextDue.Add(interval)
			advances++
		}
	}

	if advances < 299 || advances > 301 {
		t.Errorf("expected 300±1 advances over 10s at 30fps, got %d", advances)
	}
}

func TestSpeedMultiplierPacing(t *testing.T) {
	clock, tp := newTestClock(30, 100000)
	clock.SetSpeed(2.0)
	clock.Play()

	advances := 0
	for i := 0; i < 1000; i++ {
		tp.Advance(time.Millisecond)
		if _, ok := clock.Tick(); ok {
			advances++
		}
	}

	// 1s at 30fps * 2.0x = 60 frames
	if advances < 59 || advances > 61 {
		t.Errorf("expected ~60 advances at 2x speed over 1s, got %d", advances)
	}
}

func TestSpeedChangeTakesEffectWithoutPause(t *testing.T) {
	clock, tp := newTestClock(30, 100000)
	clock.Play()

	for i := 0; i < 500; i++ {
		tp.Advance(time.Millisecond)
		clock.Tick()
	}
	before := clock.Frame()

	clock.SetSpeed(4.0)
	if !clock.Playing() {
		t.Fatal("speed change must not pause playback")
	}

	advances := 0
	for i := 0; i < 1000; i++ {
		tp.Advance(time.Millisecond)
		if _, ok := clock.Tick(); ok {
			advances++
		}
	}
	// 1s at 30fps * 4x = 120
	if advances < 119 || advances > 121 {
		t.Errorf("expected ~120 advances at 4x after live speed change, got %d (from frame %d)", advances, before)
	}
}

// lastTick accumulates by interval, so processing overhead shorter than
// the clamp threshold must not slow the effective rate
func TestDriftCorrection(t *testing.T) {
	clock, tp := newTestClock(30, 100000)
	clock.Play()

	interval := clock.Interval()
	advances := 0
	// Each iteration overshoots the tick point by 40% of an interval;
	// a naive lastTick=now clock would run ~40% slow
	for i := 0; i < 300; i++ {
		tp.Advance(interval + interval*4/10)
		if _, ok := clock.Tick(); ok {
			advances++
		}
		// Consume the accumulated credit with a zero-advance poll
		if _, ok := clock.Tick(); ok {
			advances++
		}
	}

	// 300 iterations * 1.4 intervals = 420 intervals of simulated time
	if advances < 415 || advances > 421 {
		t.Errorf("drift correction failed: %d advances for 420 intervals", advances)
	}
}

// A long stall must resynchronize, not burst through the whole debt
func TestStallClampPreventsBurst(t *testing.T) {
	clock, tp := newTestClock(30, 100000)
	clock.Play()

	interval := clock.Interval()

	// Stall for 2 simulated seconds, then resume normal ticking
	tp.Advance(2 * time.Second)
	burst := 0
	for i := 0; i < 5; i++ {
		if _, ok := clock.Tick(); ok {
			burst++
		}
		tp.Advance(time.Microsecond)
	}
	if burst > 2 {
		t.Errorf("expected clamped catch-up after stall, got burst of %d", burst)
	}

	// Steady state resumes at the target rate
	advances := 0
	for i := 0; i < 60; i++ {
		tp.Advance(interval)
		if _, ok := clock.Tick(); ok {
			advances++
		}
	}
	if advances < 59 || advances > 61 {
		t.Errorf("rate wrong after stall recovery: %d advances in 60 intervals", advances)
	}
}

func TestPlayResetsTickOrigin(t *testing.T) {
	clock, tp := newTestClock(30, 100000)
	clock.Play()
	tp.Advance(100 * time.Millisecond)
	clock.Tick()
	clock.Pause()

	frame := clock.Frame()

	// A long pause must not produce a catch-up burst on resume
	tp.Advance(30 * time.Second)
	clock.Play()

	if _, ok := clock.Tick(); ok {
		t.Error("tick immediately after Play advanced: pause time leaked in")
	}
	if clock.Frame() != frame {
		t.Errorf("frame moved across pause: %d -> %d", frame, clock.Frame())
	}
}

func TestPauseCancelsInFlightTick(t *testing.T) {
	clock, tp := newTestClock(30, 100000)
	clock.Play()

	// Scheduler captured this generation, then went to sleep
	generation := clock.Generation()
	tp.Advance(time.Second)

	clock.Pause()

	if _, advanced := clock.TickIfCurrent(generation); advanced {
		t.Error("tick with pre-pause generation must not advance the frame")
	}
}

func TestSeekInvalidatesPendingTick(t *testing.T) {
	clock, tp := newTestClock(30, 100000)
	clock.Play()

	generation := clock.Generation()
	tp.Advance(time.Second)
	clock.Seek(500)

	if _, advanced := clock.TickIfCurrent(generation); advanced {
		t.Error("tick with pre-seek generation must not advance the frame")
	}
	if clock.Frame() != 500 {
		t.Errorf("seek lost: frame=%d", clock.Frame())
	}
}

func TestSeekClamps(t *testing.T) {
	clock, _ := newTestClock(30, 100)
	clock.Seek(-5)
	if clock.Frame() != 0 {
		t.Errorf("negative seek should clamp to 0, got %d", clock.Frame())
	}
	clock.Seek(1000)
	if clock.Frame() != 99 {
		t.Errorf("overlong seek should clamp to last frame, got %d", clock.Frame())
	}
}

func TestEndOfStreamPauses(t *testing.T) {
	clock, tp := newTestClock(30, 10)
	clock.Play()

	for i := 0; i < 2000; i++ {
		tp.Advance(10 * time.Millisecond)
		clock.Tick()
	}

	if clock.Playing() {
		t.Error("clock should pause at end of stream")
	}
	if clock.Frame() != 9 {
		t.Errorf("expected to rest at last frame 9, got %d", clock.Frame())
	}
}

func TestPlayAtEndRestarts(t *testing.T) {
	clock, tp := newTestClock(30, 10)
	clock.Play()
	for i := 0; i < 2000; i++ {
		tp.Advance(10 * time.Millisecond)
		clock.Tick()
	}

	clock.Play()
	if clock.Frame() != 0 || !clock.Playing() {
		t.Errorf("play at end of stream should restart: frame=%d playing=%v", clock.Frame(), clock.Playing())
	}
}

package prefetch

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/replay/cache"
	"github.com/lixenwraith/replay/core"
	"github.com/lixenwraith/replay/media"
)

// fakeDecoder is an instrumented in-memory decoder
type fakeDecoder struct {
	mu         sync.Mutex
	total      int
	pos        int
	seeks      map[int]int
	reads      int
	failFrames map[int]bool
}

func newFakeDecoder(total int) *fakeDecoder {
	return &fakeDecoder{
		total:      total,
		seeks:      make(map[int]int),
		failFrames: make(map[int]bool),
	}
}

func (d *fakeDecoder) ReadNext() (*core.PixelBuffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pos >= d.total {
		return nil, media.ErrEndOfStream
	}
	index := d.pos
	d.pos++
	d.reads++
	if d.failFrames[index] {
		return nil, errors.New("bitstream corrupt")
	}
	buf := core.NewPixelBuffer(4, 4)
	buf.Fill(core.RGB{R: uint8(index)})
	return buf, nil
}

func (d *fakeDecoder) Seek(index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seeks[index]++
	d.pos = index
	return nil
}

func (d *fakeDecoder) Position() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pos
}

func (d *fakeDecoder) TotalFrames() int { return d.total }
func (d *fakeDecoder) Close() error     { return nil }

func (d *fakeDecoder) seekCount(index int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seeks[index]
}

func (d *fakeDecoder) totalSeeks() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.seeks {
		n += c
	}
	return n
}

func testConfig() Config {
	return Config{
		NearWindow: 10,
		FarWindow:  30,
		BackBuffer: 5,
		IdleDelay:  time.Millisecond,
	}
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal(msg)
}

func TestWorkerFillsNearWindow(t *testing.T) {
	fc := cache.NewFrameCache(64)
	dec := newFakeDecoder(300)
	w := NewWorker(fc, dec, testConfig(), func(string, ...any) {})

	w.SetCursor(0)
	w.Start()
	defer w.Stop()

	waitFor(t, func() bool {
		for i := 1; i <= 10; i++ {
			if !fc.Contains(i) {
				return false
			}
		}
		return true
	}, "near window [1,10] never filled")
}

func TestWorkerFillsFarWindowAfterNear(t *testing.T) {
	fc := cache.NewFrameCache(64)
	dec := newFakeDecoder(300)
	w := NewWorker(fc, dec, testConfig(), func(string, ...any) {})

	w.SetCursor(0)
	w.Start()
	defer w.Stop()

	waitFor(t, func() bool {
		for i := 1; i <= 30; i++ {
			if !fc.Contains(i) {
				return false
			}
		}
		return true
	}, "far window [1,30] never filled")
}

func TestWorkerPrefersSequentialReads(t *testing.T) {
	fc := cache.NewFrameCache(64)
	dec := newFakeDecoder(300)
	w := NewWorker(fc, dec, testConfig(), func(string, ...any) {})

	w.SetCursor(0)
	w.Start()
	waitFor(t, func() bool { return fc.Contains(30) }, "window never filled")
	w.Stop()

	// Filling a contiguous window from position 0 needs at most a couple
	// of seeks (initial placement); sequential reads do the rest
	if dec.totalSeeks() > 3 {
		t.Errorf("expected mostly sequential decoding, got %d seeks", dec.totalSeeks())
	}
}

func TestWorkerFollowsSeek(t *testing.T) {
	fc := cache.NewFrameCache(128)
	dec := newFakeDecoder(1000)
	w := NewWorker(fc, dec, testConfig(), func(string, ...any) {})

	w.SetCursor(0)
	w.Start()
	defer w.Stop()
	waitFor(t, func() bool { return fc.Contains(10) }, "initial window never filled")

	// User scrubs far away; worker recomputes its window next iteration
	w.SetCursor(500)
	waitFor(t, func() bool {
		for i := 501; i <= 510; i++ {
			if !fc.Contains(i) {
				return false
			}
		}
		return true
	}, "near window after seek never filled")
}

func TestWorkerTrimsBehindCursor(t *testing.T) {
	fc := cache.NewFrameCache(256)
	dec := newFakeDecoder(1000)
	cfg := testConfig()
	w := NewWorker(fc, dec, cfg, func(string, ...any) {})

	w.SetCursor(0)
	w.Start()
	defer w.Stop()
	waitFor(t, func() bool { return fc.Contains(10) }, "initial fill")

	w.SetCursor(100)
	waitFor(t, func() bool { return fc.Contains(101) }, "fill after move")

	// Everything behind cursor-backBuffer must be trimmed
	waitFor(t, func() bool { return !fc.Contains(10) }, "stale trailing frames never trimmed")
}

func TestWorkerSkipsFailedFrames(t *testing.T) {
	fc := cache.NewFrameCache(64)
	dec := newFakeDecoder(300)
	dec.failFrames[5] = true

	logged := make(chan struct{}, 16)
	w := NewWorker(fc, dec, testConfig(), func(string, ...any) {
		select {
		case logged <- struct{}{}:
		default:
		}
	})

	w.SetCursor(0)
	w.Start()
	defer w.Stop()

	// The bad frame is skipped, the rest of the window still fills
	waitFor(t, func() bool { return fc.Contains(6) && fc.Contains(10) }, "worker stalled on a bad frame")
	if fc.Contains(5) {
		t.Error("failed frame should leave its slot empty")
	}
	select {
	case <-logged:
	case <-time.After(time.Second):
		t.Error("decode failure was not reported to the logger")
	}
}

func TestWorkerStopsAtEndOfStream(t *testing.T) {
	fc := cache.NewFrameCache(64)
	dec := newFakeDecoder(20)
	w := NewWorker(fc, dec, testConfig(), func(string, ...any) {})

	w.SetCursor(15)
	w.Start()
	defer w.Stop()

	waitFor(t, func() bool { return fc.Contains(19) }, "tail of stream never filled")
	// No index past the stream end may appear
	if fc.Contains(20) || fc.Contains(25) {
		t.Error("worker cached frames past end of stream")
	}
}

func TestWorkerStopIsIdempotent(t *testing.T) {
	fc := cache.NewFrameCache(16)
	dec := newFakeDecoder(100)
	w := NewWorker(fc, dec, testConfig(), nil)
	w.Start()
	w.Stop()
	w.Stop()
}

func TestWorkerIdlesOnPermanentlyFailingFrame(t *testing.T) {
	fc := cache.NewFrameCache(64)
	dec := newFakeDecoder(300)
	dec.failFrames[5] = true

	cfg := testConfig()
	cfg.IdleDelay = 20 * time.Millisecond
	w := NewWorker(fc, dec, cfg, func(string, ...any) {})

	w.SetCursor(0)
	w.Start()
	defer w.Stop()

	// Let the healthy frames land, then watch the retry rate on the bad one
	waitFor(t, func() bool { return fc.Contains(30) }, "window never filled around the bad frame")
	before := dec.seekCount(5)
	time.Sleep(200 * time.Millisecond)
	retries := dec.seekCount(5) - before

	// With only the broken frame left, every iteration must take the idle
	// sleep: at most one retry per idle period, not a hot spin
	if retries > 15 {
		t.Errorf("bad frame retried %d times in 200ms, worker is spinning instead of idling", retries)
	}
}

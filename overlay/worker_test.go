package overlay

import (
	"testing"
	"time"

	"github.com/lixenwraith/replay/core"
)

func waitForResult(t *testing.T, w *Worker, frame int, hash uint64) *core.PixelBuffer {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if buf, _, ok := w.TryResult(frame, hash); ok {
			return buf
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("no worker result for frame %d within deadline", frame)
	return nil
}

func TestWorkerProducesResult(t *testing.T) {
	c := NewCompositor(30, func(string, ...any) {})
	w := NewWorker(c, 2)
	w.Start()
	defer w.Stop()

	settings := fullSettings()
	w.Submit(10, testFrame(), testEntities(), settings)

	buf := waitForResult(t, w, 10, settings.Hash())
	if buf.W != 160 || buf.H != 90 {
		t.Errorf("unexpected result dimensions %dx%d", buf.W, buf.H)
	}
}

func TestWorkerStalenessWindow(t *testing.T) {
	c := NewCompositor(30, func(string, ...any) {})
	w := NewWorker(c, 2)
	w.Start()
	defer w.Stop()

	settings := DefaultSettings()
	w.Submit(10, testFrame(), testEntities(), settings)
	waitForResult(t, w, 10, settings.Hash())

	// Within the window in both directions; the result always reports
	// the frame it was rendered for, not the one asked about
	for _, want := range []int{8, 9, 10, 11, 12} {
		_, frame, ok := w.TryResult(want, settings.Hash())
		if !ok {
			t.Errorf("frame %d should be within staleness window of 10", want)
		} else if frame != 10 {
			t.Errorf("result frame = %d, want 10", frame)
		}
	}
	// Outside the window: treated as a miss, caller goes synchronous
	for _, want := range []int{7, 13, 100} {
		if _, _, ok := w.TryResult(want, settings.Hash()); ok {
			t.Errorf("frame %d should be outside staleness window of 10", want)
		}
	}
}

func TestWorkerRejectsStaleSettings(t *testing.T) {
	c := NewCompositor(30, func(string, ...any) {})
	w := NewWorker(c, 2)
	w.Start()
	defer w.Stop()

	settings := DefaultSettings()
	w.Submit(5, testFrame(), testEntities(), settings)
	waitForResult(t, w, 5, settings.Hash())

	changed := settings
	changed.MarkerStyle = MarkerStar
	if _, _, ok := w.TryResult(5, changed.Hash()); ok {
		t.Error("result rendered under old settings must not satisfy a new hash")
	}
}

func TestWorkerNewestRequestWins(t *testing.T) {
	c := NewCompositor(30, func(string, ...any) {})
	w := NewWorker(c, 0)

	settings := DefaultSettings()
	frame := testFrame()
	entities := testEntities()

	// Worker not started: both submissions land in the mailbox, second
	// overwrites the first
	w.Submit(1, frame, entities, settings)
	w.Submit(2, frame, entities, settings)

	w.Start()
	defer w.Stop()

	waitForResult(t, w, 2, settings.Hash())
	if _, _, ok := w.TryResult(1, settings.Hash()); ok {
		t.Error("overwritten request should never produce a frame-1 result at staleness 0")
	}
}

func TestWorkerSubmitNonBlocking(t *testing.T) {
	c := NewCompositor(30, func(string, ...any) {})
	w := NewWorker(c, 2)
	w.Start()
	defer w.Stop()

	settings := fullSettings()
	frame := testFrame()
	entities := testEntities()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			w.Submit(i, frame, entities, settings)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked the caller")
	}
}

func TestWorkerStopIsIdempotent(t *testing.T) {
	c := NewCompositor(30, nil)
	w := NewWorker(c, 2)
	w.Start()
	w.Stop()
	w.Stop()

	// Submitting after stop is a no-op, not a panic
	w.Submit(1, testFrame(), testEntities(), DefaultSettings())
}

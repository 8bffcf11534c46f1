package overlay

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/replay/core"
)

// request is one pending composite job. The mailbox holds at most one:
// submitting while one is pending overwrites it (newest wins), so the
// playback thread never blocks here
type request struct {
	frame    int
	buf      *core.PixelBuffer
	entities []core.Entity
	settings RenderSettings
}

type result struct {
	frame    int
	settings uint64
	buf      *core.PixelBuffer
}

// Worker runs the fully-featured composite pass on its own goroutine and
// publishes results with bounded staleness. The playback loop submits
// without blocking and falls back to the fast synchronous path whenever
// the published result has drifted too far behind
type Worker struct {
	compositor *Compositor
	staleness  int

	mu      sync.Mutex
	cond    *sync.Cond
	pending *request
	done    *result

	stopOnce sync.Once
	stopped  bool
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewWorker creates a worker around the given compositor. staleness is the
// maximum frame distance at which a published result is still usable
func NewWorker(compositor *Compositor, staleness int) *Worker {
	w := &Worker{
		compositor: compositor,
		staleness:  staleness,
	}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Start launches the worker goroutine
func (w *Worker) Start() {
	if w.running.CompareAndSwap(false, true) {
		w.wg.Add(1)
		go w.loop()
	}
}

// Stop shuts the worker down and waits for the in-flight job, if any
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		w.pending = nil
		w.mu.Unlock()
		w.cond.Broadcast()
		w.wg.Wait()
	})
}

// Submit hands the worker a frame to composite. Non-blocking; silently
// replaces a pending, not-yet-started request
func (w *Worker) Submit(frameIndex int, buf *core.PixelBuffer, entities []core.Entity, settings RenderSettings) {
	w.mu.Lock()
	if !w.stopped {
		w.pending = &request{
			frame:    frameIndex,
			buf:      buf,
			entities: entities,
			settings: settings,
		}
	}
	w.mu.Unlock()
	w.cond.Signal()
}

// TryResult returns the latest published composite if it lies within the
// staleness window of wantIndex and was rendered under settingsHash,
// along with the frame the composite was actually rendered for. Callers
// may display a near-miss but must only cache an exact one. Anything else
// is a miss and the caller composites synchronously
func (w *Worker) TryResult(wantIndex int, settingsHash uint64) (*core.PixelBuffer, int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.done == nil || w.done.settings != settingsHash {
		return nil, 0, false
	}
	dist := wantIndex - w.done.frame
	if dist < 0 {
		dist = -dist
	}
	if dist > w.staleness {
		return nil, 0, false
	}
	return w.done.buf, w.done.frame, true
}

func (w *Worker) loop() {
	defer w.wg.Done()

	for {
		w.mu.Lock()
		for w.pending == nil && !w.stopped {
			w.cond.Wait()
		}
		if w.stopped {
			w.mu.Unlock()
			return
		}
		req := w.pending
		w.pending = nil
		w.mu.Unlock()

		// Composite outside the lock; new submissions land in the empty
		// mailbox slot while this one renders
		buf := w.compositor.Composite(req.buf, req.entities, req.settings, req.frame)

		w.mu.Lock()
		w.done = &result{
			frame:    req.frame,
			settings: req.settings.Hash(),
			buf:      buf,
		}
		w.mu.Unlock()
	}
}

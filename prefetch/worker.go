// Package prefetch keeps the frame cache populated ahead of the playback
// cursor so frame advances almost never wait on decode latency.
package prefetch

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/replay/cache"
	"github.com/lixenwraith/replay/media"
	"github.com/lixenwraith/replay/parameter"
)

// Logger receives skip/failure reports from the worker
type Logger func(format string, args ...any)

// Config tunes the look-ahead windows
type Config struct {
	NearWindow int           // latency-critical look-ahead, filled first
	FarWindow  int           // total look-ahead
	BackBuffer int           // trailing frames retained for rewind
	IdleDelay  time.Duration // sleep when the near window is full
}

// DefaultConfig returns the tuned defaults
func DefaultConfig() Config {
	return Config{
		NearWindow: parameter.PrefetchNearWindow,
		FarWindow:  parameter.PrefetchFarWindow,
		BackBuffer: parameter.PrefetchBackBuffer,
		IdleDelay:  parameter.PrefetchIdleDelay,
	}
}

// Worker is the background prefetcher. It owns its decoder handle; the UI
// thread's decoder is never touched from here, which is what rules out
// seek races between prefetching and user scrubbing.
//
// The worker re-derives its target window from the cursor on every
// iteration, so a seek needs no cancellation API: stale targets simply
// stop being targets.
type Worker struct {
	cache  *cache.FrameCache
	dec    media.Decoder
	cfg    Config
	logger Logger

	cursor atomic.Int64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewWorker creates a prefetcher around its own decoder handle. logger may
// be nil for stdlib log
func NewWorker(frameCache *cache.FrameCache, dec media.Decoder, cfg Config, logger Logger) *Worker {
	if logger == nil {
		logger = log.Printf
	}
	if cfg.NearWindow < 1 {
		cfg.NearWindow = 1
	}
	if cfg.FarWindow < cfg.NearWindow {
		cfg.FarWindow = cfg.NearWindow
	}
	return &Worker{
		cache:    frameCache,
		dec:      dec,
		cfg:      cfg,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// SetCursor publishes the playback position the windows are computed from
func (w *Worker) SetCursor(frame int) {
	w.cursor.Store(int64(frame))
}

// Start launches the prefetch loop
func (w *Worker) Start() {
	if w.running.CompareAndSwap(false, true) {
		w.wg.Add(1)
		go w.loop()
	}
}

// Stop halts the loop and waits for it to exit
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		if w.running.CompareAndSwap(true, false) {
			close(w.stopChan)
			w.wg.Wait()
		}
	})
}

func (w *Worker) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		default:
		}

		cursor := int(w.cursor.Load())
		total := w.dec.TotalFrames()

		// Near window stalls playback on a miss; fill it completely
		// before spending any decode time on the far window
		nearFilled := w.fillWindow(cursor+1, cursor+w.cfg.NearWindow, total)
		busy := nearFilled > 0

		if !busy {
			// Far window, a few frames per iteration so a seek that
			// moves the near window is picked up quickly
			farFilled := w.fillWindow(cursor+w.cfg.NearWindow+1, cursor+w.cfg.FarWindow, total)
			busy = farFilled > 0
		}

		w.cache.EvictBelow(cursor - w.cfg.BackBuffer)

		if !busy {
			select {
			case <-w.stopChan:
				return
			case <-time.After(w.cfg.IdleDelay):
			}
		}
	}
}

// farBatchLimit bounds far-window work per iteration to keep the loop
// responsive to cursor movement
const farBatchLimit = 4

// fillWindow decodes missing frames in [lo, hi], clamped to the stream.
// Returns the number of frames actually added to the cache: failed
// decodes are skipped and do not count, so a window where only broken
// frames remain reports no progress and the loop takes its idle sleep
// instead of hot-retrying them
func (w *Worker) fillWindow(lo, hi, total int) int {
	if lo < 0 {
		lo = 0
	}
	if hi > total-1 {
		hi = total - 1
	}

	filled := 0
	for index := lo; index <= hi; index++ {
		select {
		case <-w.stopChan:
			return filled
		default:
		}
		if w.cache.Contains(index) {
			continue
		}
		if w.decodeInto(index) {
			filled++
		}
		if filled >= farBatchLimit && lo > int(w.cursor.Load())+w.cfg.NearWindow {
			break
		}
	}
	return filled
}

// decodeInto reads one frame on the worker's handle, preferring sequential
// reads: when the decoder already sits at index, a Seek (keyframe hunt in
// real codecs) is skipped entirely. Reports whether the frame landed in
// the cache
func (w *Worker) decodeInto(index int) bool {
	if w.dec.Position() != index {
		if err := w.dec.Seek(index); err != nil {
			w.logger("prefetch: seek to frame %d failed: %v", index, err)
			return false
		}
	}

	buf, err := w.dec.ReadNext()
	if err != nil {
		if errors.Is(err, media.ErrEndOfStream) {
			return false
		}
		// Skip the slot; playback falls back to synchronous decode if it
		// ever needs this frame. One bad frame never kills the worker
		w.logger("prefetch: %v", media.WrapDecode(index, err))
		return false
	}
	w.cache.Put(index, buf)
	return true
}

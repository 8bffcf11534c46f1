package pipeline

import (
	"log"

	"github.com/lixenwraith/replay/cache"
	"github.com/lixenwraith/replay/core"
	"github.com/lixenwraith/replay/display"
	"github.com/lixenwraith/replay/media"
	"github.com/lixenwraith/replay/overlay"
	"github.com/lixenwraith/replay/parameter"
	"github.com/lixenwraith/replay/playback"
	"github.com/lixenwraith/replay/prefetch"
)

// Player assembles the full stack around a media source: two decoder
// handles (UI fallback + prefetcher), both caches, pacing clock and
// scheduler, compositor and optional overlay worker, pushing frames into
// a display sink.
type Player struct {
	Clock *playback.Clock
	Pipe  *Pipeline

	sched     *playback.Scheduler
	prefetch  *prefetch.Worker
	overlayW  *overlay.Worker
	uiDec     media.Decoder
	prefetDec media.Decoder
	sink      display.Sink
	logger    Logger
}

// Options tunes player construction
type Options struct {
	FrameCacheCapacity    int
	RenderedCacheCapacity int
	Prefetch              prefetch.Config
	AsyncOverlay          bool // run the full composite pass on a worker
	Settings              overlay.RenderSettings
	TimeProvider          playback.TimeProvider
	Logger                Logger
}

// DefaultOptions returns the tuned defaults
func DefaultOptions() Options {
	return Options{
		FrameCacheCapacity:    parameter.FrameCacheCapacity,
		RenderedCacheCapacity: parameter.RenderedCacheCapacity,
		Prefetch:              prefetch.DefaultConfig(),
		Settings:              overlay.DefaultSettings(),
	}
}

// NewPlayer opens two independent decoder handles on the source and wires
// the pipeline. The sink receives every displayed frame
func NewPlayer(source media.Source, provider core.EntityProvider, sink display.Sink, opts Options) (*Player, error) {
	if opts.Logger == nil {
		opts.Logger = log.Printf
	}
	if opts.TimeProvider == nil {
		opts.TimeProvider = playback.NewMonotonicTimeProvider()
	}
	if opts.FrameCacheCapacity < 1 {
		opts.FrameCacheCapacity = parameter.FrameCacheCapacity
	}
	if opts.RenderedCacheCapacity < 1 {
		opts.RenderedCacheCapacity = parameter.RenderedCacheCapacity
	}

	uiDec, err := source.OpenHandle()
	if err != nil {
		return nil, err
	}
	prefetDec, err := source.OpenHandle()
	if err != nil {
		uiDec.Close()
		return nil, err
	}

	frames := cache.NewFrameCache(opts.FrameCacheCapacity)
	rendered := cache.NewRenderedFrameCache(opts.RenderedCacheCapacity)
	compositor := overlay.NewCompositor(source.FPS(), overlay.Logger(opts.Logger))

	var overlayW *overlay.Worker
	if opts.AsyncOverlay {
		overlayW = overlay.NewWorker(compositor, parameter.OverlayStaleness)
	}

	pipe := New(frames, rendered, compositor, overlayW, uiDec, provider, opts.Settings, opts.Logger)
	clock := playback.NewClock(opts.TimeProvider, source.FPS(), uiDec.TotalFrames())
	pf := prefetch.NewWorker(frames, prefetDec, opts.Prefetch, prefetch.Logger(opts.Logger))

	p := &Player{
		Clock:     clock,
		Pipe:      pipe,
		prefetch:  pf,
		overlayW:  overlayW,
		uiDec:     uiDec,
		prefetDec: prefetDec,
		sink:      sink,
		logger:    opts.Logger,
	}
	p.sched = playback.NewScheduler(clock, p.onAdvance)
	return p, nil
}

// Start launches the background workers and scheduler
func (p *Player) Start() {
	p.prefetch.Start()
	if p.overlayW != nil {
		p.overlayW.Start()
	}
	p.sched.Start()
}

// Stop tears everything down in dependency order
func (p *Player) Stop() {
	p.sched.Stop()
	if p.overlayW != nil {
		p.overlayW.Stop()
	}
	p.prefetch.Stop()
	p.uiDec.Close()
	p.prefetDec.Close()
}

// Play starts playback from the current frame
func (p *Player) Play() {
	p.Clock.Play()
	p.sched.Poke()
}

// Pause halts playback; no tick lands after this returns
func (p *Player) Pause() {
	p.Clock.Pause()
	p.sched.Poke()
}

// Seek jumps to the frame and immediately displays it, playing or paused
func (p *Player) Seek(index int) {
	p.Clock.Seek(index)
	p.sched.Poke()
	p.ShowFrame(p.Clock.Frame())
}

// SetSpeed changes the playback rate without pausing
func (p *Player) SetSpeed(speed float64) {
	p.Clock.SetSpeed(speed)
	p.sched.Poke()
}

// SetSettings swaps the render settings; the next displayed frame uses
// them
func (p *Player) SetSettings(s overlay.RenderSettings) {
	p.Pipe.SetSettings(s)
}

// ShowFrame renders and presents one frame outside the pacing loop
// (initial display, post-seek refresh, settings change while paused)
func (p *Player) ShowFrame(index int) {
	p.prefetch.SetCursor(index)
	buf, err := p.Pipe.FrameForDisplay(index)
	if err != nil {
		p.logger("display frame %d: %v", index, err)
		return
	}
	p.sink.Present(index, buf)
}

// onAdvance runs on the scheduler goroutine after each committed advance
func (p *Player) onAdvance(frame int) {
	p.ShowFrame(frame)
}

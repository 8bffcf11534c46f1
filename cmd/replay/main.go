// Command replay is a terminal review player: synthetic footage with a
// demo tracking provider, rendered as half-block cells. Settings load
// from an optional TOML file and hot-reload while the player runs.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/replay/config"
	"github.com/lixenwraith/replay/core"
	"github.com/lixenwraith/replay/display"
	"github.com/lixenwraith/replay/media"
	"github.com/lixenwraith/replay/overlay"
	"github.com/lixenwraith/replay/pipeline"
)

const (
	seekStep     = 1
	seekStepBig  = 30
	speedFactor  = 2.0
	hudRows      = 1
	demoEntities = 3
	trailLen     = 14
)

// Viewer owns the terminal and receives frames from the player's sink
type Viewer struct {
	screen tcell.Screen
	player *pipeline.Player
	base   overlay.RenderSettings

	mu        sync.Mutex
	lastFrame *core.PixelBuffer
	lastIndex int
	total     int
	speed     float64

	frameCh chan struct{}
}

// demoProvider simulates tracked players orbiting the frame center with
// slightly different periods, plus a faster "ball"
type demoProvider struct {
	w, h int
}

func (p *demoProvider) PositionsForFrame(index int) []core.Entity {
	cx := float64(p.w) / 2
	cy := float64(p.h) / 2
	out := make([]core.Entity, 0, demoEntities)

	colors := []core.RGB{
		{R: 80, G: 180, B: 255},
		{R: 255, G: 120, B: 80},
		{R: 120, G: 255, B: 140},
	}
	teams := []string{"home", "home", "away"}

	for i := 0; i < demoEntities; i++ {
		// the last entity orbits tighter and faster
		radius := math.Min(cx, cy) * (0.55 - 0.12*float64(i))
		period := 90.0 + 25.0*float64(i)
		if i == demoEntities-1 {
			radius *= 0.6
			period = 45.0
		}
		phase := float64(i) * 2.1

		pos := func(f int) core.Point {
			a := 2*math.Pi*float64(f)/period + phase
			return core.Point{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
		}

		cur := pos(index)
		prev := pos(index - 1)

		trail := make([]core.Point, 0, trailLen)
		for t := trailLen - 1; t >= 0; t-- {
			trail = append(trail, pos(index-t))
		}

		out = append(out, core.Entity{
			ID:          i + 1,
			X:           cur.X,
			Y:           cur.Y,
			Color:       colors[i%len(colors)],
			Team:        teams[i%len(teams)],
			Label:       fmt.Sprintf("%d", i+1),
			VX:          cur.X - prev.X,
			VY:          cur.Y - prev.Y,
			HasVelocity: true,
			Trail:       trail,
		})
	}
	return out
}

// Present implements display.Sink from the scheduler goroutine; drawing
// stays on the event loop
func (v *Viewer) Present(frameIndex int, buf *core.PixelBuffer) {
	v.mu.Lock()
	v.lastFrame = buf
	v.lastIndex = frameIndex
	v.mu.Unlock()

	select {
	case v.frameCh <- struct{}{}:
	default: // a redraw is already pending
	}
}

// draw scales the latest frame to the viewport and paints half-block
// cells, one terminal row covering two pixel rows
func (v *Viewer) draw() {
	v.mu.Lock()
	buf := v.lastFrame
	index := v.lastIndex
	v.mu.Unlock()
	if buf == nil {
		return
	}

	cols, rows := v.screen.Size()
	pixRows := (rows - hudRows) * 2
	if cols < 2 || pixRows < 2 {
		return
	}

	w, h := display.FitViewport(buf, cols, pixRows)
	if h%2 == 1 {
		h--
	}
	scaled := display.Scale(buf, w, h, display.FilterBilinear)

	v.screen.Clear()
	offX := (cols - w) / 2
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := scaled.At(x, y)
			bot := scaled.At(x, y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			v.screen.SetContent(offX+x, y/2, '▀', nil, style)
		}
	}

	v.drawHUD(index, rows-1)
	v.screen.Show()
}

func (v *Viewer) drawHUD(index, row int) {
	state := v.player.Clock.State()
	mark := "⏸"
	if state.Playing {
		mark = "▶"
	}
	hud := fmt.Sprintf(" %s  frame %d/%d  speed %.3gx  [space] play/pause  [←→] step  [↑↓] jump  [+-] speed  [q] quit",
		mark, index, v.total-1, state.Speed)

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkBlue)
	cols, _ := v.screen.Size()
	col := 0
	for _, r := range hud {
		if col >= cols {
			break
		}
		v.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < cols; col++ {
		v.screen.SetContent(col, row, ' ', nil, style)
	}
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	state := v.player.Clock.State()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.player.Seek(state.Frame - seekStep)
	case tcell.KeyRight:
		v.player.Seek(state.Frame + seekStep)
	case tcell.KeyDown:
		v.player.Seek(state.Frame - seekStepBig)
	case tcell.KeyUp:
		v.player.Seek(state.Frame + seekStepBig)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			if state.Playing {
				v.player.Pause()
			} else {
				v.player.Play()
			}
		case '+', '=':
			v.player.SetSpeed(state.Speed * speedFactor)
		case '-', '_':
			v.player.SetSpeed(state.Speed / speedFactor)
		case 'g':
			v.player.Seek(0)
		case 'G':
			v.player.Seek(v.total - 1)
		}
	}
	return true
}

// watchConfig re-applies overlay settings whenever the file changes.
// Editors replace files on save, so Create counts as a change too
func watchConfig(path string, apply func(config.Config)) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	// watch the directory: the file itself may not exist yet, and
	// rename-replace saves would drop a direct file watch
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(path))
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := config.Load(path)
				if err != nil {
					continue // keep the last good settings
				}
				apply(cfg)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return watcher, nil
}

func run() error {
	configPath := flag.String("config", "replay.toml", "TOML settings file, hot-reloaded on change")
	frames := flag.Int("frames", 900, "clip length in frames")
	width := flag.Int("width", 320, "frame width in pixels")
	height := flag.Int("height", 180, "frame height in pixels")
	fps := flag.Float64("fps", 30, "clip frame rate")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "open screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	defer screen.Fini()

	source := &media.SyntheticSource{W: *width, H: *height, Frames: *frames, Rate: *fps}
	provider := &demoProvider{w: *width, h: *height}

	viewer := &Viewer{
		screen:  screen,
		base:    overlay.DefaultSettings(),
		total:   *frames,
		frameCh: make(chan struct{}, 1),
	}

	opts := pipeline.DefaultOptions()
	opts.Settings = cfg.Settings(viewer.base)
	opts.Prefetch = cfg.PrefetchConfig()
	opts.AsyncOverlay = cfg.Playback.AsyncOverlay
	if cfg.Cache.FrameCapacity > 0 {
		opts.FrameCacheCapacity = cfg.Cache.FrameCapacity
	}
	if cfg.Cache.RenderedCapacity > 0 {
		opts.RenderedCacheCapacity = cfg.Cache.RenderedCapacity
	}
	opts.Logger = func(format string, args ...any) {} // terminal owns stdout

	player, err := pipeline.NewPlayer(source, provider, viewer, opts)
	if err != nil {
		return errors.Wrap(err, "build player")
	}
	viewer.player = player

	watcher, err := watchConfig(*configPath, func(c config.Config) {
		player.SetSettings(c.Settings(viewer.base))
		player.ShowFrame(player.Clock.Frame())
	})
	if err == nil {
		defer watcher.Close()
	}

	player.Start()
	defer player.Stop()
	if cfg.Playback.Speed > 0 {
		player.SetSpeed(cfg.Playback.Speed)
	}
	player.ShowFrame(0)
	player.Play()

	eventCh := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventCh <- ev
		}
	}()

	for {
		select {
		case <-viewer.frameCh:
			viewer.draw()
		case ev := <-eventCh:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !viewer.handleKey(ev) {
					return nil
				}
				viewer.draw()
			case *tcell.EventResize:
				screen.Sync()
				viewer.draw()
			}
		}
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
}

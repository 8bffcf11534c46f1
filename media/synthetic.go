package media

import (
	"math"
	"sync"

	"github.com/lixenwraith/replay/core"
)

// SyntheticSource procedurally generates frames, standing in for a real
// container/codec backend in the demo viewer and in tests. Handles are
// independent by construction, matching the concurrency contract real
// backends must provide.
type SyntheticSource struct {
	W, H   int
	Frames int
	Rate   float64
}

// FPS returns the nominal frame rate
func (s *SyntheticSource) FPS() float64 {
	if s.Rate <= 0 {
		return 30.0
	}
	return s.Rate
}

// OpenHandle returns a fresh, independently positioned decoder
func (s *SyntheticSource) OpenHandle() (Decoder, error) {
	return &syntheticDecoder{src: s}, nil
}

type syntheticDecoder struct {
	mu  sync.Mutex
	src *SyntheticSource
	pos int
}

func (d *syntheticDecoder) ReadNext() (*core.PixelBuffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pos >= d.src.Frames {
		return nil, ErrEndOfStream
	}
	buf := renderSynthetic(d.src.W, d.src.H, d.pos)
	d.pos++
	return buf, nil
}

func (d *syntheticDecoder) Seek(index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 {
		index = 0
	}
	if index > d.src.Frames {
		index = d.src.Frames
	}
	d.pos = index
	return nil
}

func (d *syntheticDecoder) Position() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pos
}

func (d *syntheticDecoder) TotalFrames() int {
	return d.src.Frames
}

func (d *syntheticDecoder) Close() error {
	return nil
}

// renderSynthetic draws a slowly shifting gradient with a sweeping bright
// band, distinct per frame so pacing and cache bugs are visible on screen
func renderSynthetic(w, h, frame int) *core.PixelBuffer {
	buf := core.NewPixelBuffer(w, h)
	phase := float64(frame) * 0.05
	bandX := (math.Sin(phase) + 1) / 2 * float64(w-1)

	for y := 0; y < h; y++ {
		fy := float64(y) / float64(max(h-1, 1))
		for x := 0; x < w; x++ {
			fx := float64(x) / float64(max(w-1, 1))
			r := 0.15 + 0.25*fx
			g := 0.25 + 0.30*fy
			b := 0.35 + 0.10*math.Sin(phase+fx*3)

			dist := math.Abs(float64(x) - bandX)
			if dist < 6 {
				boost := (6 - dist) / 6 * 0.5
				r += boost
				g += boost
				b += boost
			}
			buf.Set(x, y, core.FromFloats(r, g, b))
		}
	}
	return buf
}

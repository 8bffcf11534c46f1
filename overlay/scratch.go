package overlay

import (
	"math"

	"github.com/lixenwraith/replay/core"
	"github.com/lixenwraith/replay/vmath"
)

// scratchMask is a per-pixel intensity plane effects draw into before
// blurring and blending. Keeping intensity separate from color lets one
// drawn silhouette serve glow (additive, colored) and shadow (multiply,
// black) with the same machinery.
type scratchMask struct {
	w, h int
	v    []float64
}

func newScratchMask(w, h int) *scratchMask {
	return &scratchMask{w: w, h: h, v: make([]float64, w*h)}
}

func (m *scratchMask) reset() {
	for i := range m.v {
		m.v[i] = 0
	}
}

// add accumulates intensity at (x, y), saturating at 1
func (m *scratchMask) add(x, y int, intensity float64) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h || intensity <= 0 {
		return
	}
	i := y*m.w + x
	m.v[i] = math.Min(1, m.v[i]+intensity)
}

// addDisc stamps a filled disc with edge falloff
func (m *scratchMask) addDisc(cx, cy, radius, intensity float64) {
	r := int(math.Ceil(radius)) + 1
	x0, y0 := int(cx), int(cy)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			fx := float64(x0+dx) - cx
			fy := float64(y0+dy) - cy
			cov := edgeFalloff(radius - math.Sqrt(fx*fx+fy*fy))
			if cov > 0 {
				m.add(x0+dx, y0+dy, intensity*cov)
			}
		}
	}
}

// blurred returns a Gaussian-blurred copy at the given radius, two
// separable 1D passes
func (m *scratchMask) blurred(radius int) *scratchMask {
	kernel := vmath.GaussianKernel(radius)
	tmp := newScratchMask(m.w, m.h)
	out := newScratchMask(m.w, m.h)

	// Horizontal
	for y := 0; y < m.h; y++ {
		row := y * m.w
		for x := 0; x < m.w; x++ {
			sum := 0.0
			for k, w := range kernel {
				sx := x + k - radius
				if sx < 0 || sx >= m.w {
					continue
				}
				sum += m.v[row+sx] * w
			}
			tmp.v[row+x] = sum
		}
	}

	// Vertical
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			sum := 0.0
			for k, w := range kernel {
				sy := y + k - radius
				if sy < 0 || sy >= m.h {
					continue
				}
				sum += tmp.v[sy*m.w+x] * w
			}
			out.v[y*m.w+x] = sum
		}
	}
	return out
}

// blendInto composites the mask into the frame as color through the blend
// engine, scaling per-pixel intensity by weight
func (m *scratchMask) blendInto(buf *core.PixelBuffer, mode BlendMode, color core.RGB, weight float64) {
	if weight <= 0 {
		return
	}
	for y := 0; y < m.h; y++ {
		row := y * m.w
		for x := 0; x < m.w; x++ {
			if a := m.v[row+x] * weight; a > 0.003 {
				BlendAt(buf, x, y, mode, color, a)
			}
		}
	}
}

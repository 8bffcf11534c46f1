package overlay

import (
	"math"

	"github.com/lixenwraith/replay/core"
	"github.com/lixenwraith/replay/vmath"
)

// BlendMode defines compositing operations as a closed enum dispatched by
// switch. The per-mode formulas are the standard digital-compositing
// definitions over channels in [0,1], clamped before 8-bit conversion.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendAdditive
	BlendScreen
	BlendMultiply
	BlendOverlay
	BlendSoftLight
	BlendHardLight
	BlendColorDodge
	BlendColorBurn
	BlendLinearDodge
	BlendLinearBurn
	BlendVividLight
	BlendPinLight
	BlendDifference
	BlendExclusion
)

// String names the mode for config files and diagnostics
func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "normal"
	case BlendAdditive:
		return "additive"
	case BlendScreen:
		return "screen"
	case BlendMultiply:
		return "multiply"
	case BlendOverlay:
		return "overlay"
	case BlendSoftLight:
		return "soft-light"
	case BlendHardLight:
		return "hard-light"
	case BlendColorDodge:
		return "color-dodge"
	case BlendColorBurn:
		return "color-burn"
	case BlendLinearDodge:
		return "linear-dodge"
	case BlendLinearBurn:
		return "linear-burn"
	case BlendVividLight:
		return "vivid-light"
	case BlendPinLight:
		return "pin-light"
	case BlendDifference:
		return "difference"
	case BlendExclusion:
		return "exclusion"
	}
	return "unknown"
}

// ParseBlendMode maps a config name to its mode
func ParseBlendMode(name string) (BlendMode, bool) {
	for m := BlendNormal; m <= BlendExclusion; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return BlendNormal, false
}

// blendChannel applies the mode formula to one channel pair in [0,1]
func blendChannel(mode BlendMode, b, o float64) float64 {
	switch mode {
	case BlendNormal:
		return o
	case BlendAdditive, BlendLinearDodge:
		return b + o
	case BlendScreen:
		return 1 - (1-b)*(1-o)
	case BlendMultiply:
		return b * o
	case BlendOverlay:
		if b < 0.5 {
			return 2 * b * o
		}
		return 1 - 2*(1-b)*(1-o)
	case BlendSoftLight:
		// Perez formulation, matches the W3C compositing spec
		if o <= 0.5 {
			return b - (1-2*o)*b*(1-b)
		}
		var g float64
		if b <= 0.25 {
			g = ((16*b-12)*b + 4) * b
		} else {
			g = math.Sqrt(b)
		}
		return b + (2*o-1)*(g-b)
	case BlendHardLight:
		if o < 0.5 {
			return 2 * b * o
		}
		return 1 - 2*(1-b)*(1-o)
	case BlendColorDodge:
		// W3C order: a black base stays black even under a white overlay
		if b <= 0 {
			return 0
		}
		if o >= 1 {
			return 1
		}
		return math.Min(1, b/(1-o))
	case BlendColorBurn:
		// W3C order: a white base stays white even under a black overlay
		if b >= 1 {
			return 1
		}
		if o <= 0 {
			return 0
		}
		return 1 - math.Min(1, (1-b)/o)
	case BlendLinearBurn:
		return b + o - 1
	case BlendVividLight:
		if o < 0.5 {
			if o <= 0 {
				return 0
			}
			return 1 - math.Min(1, (1-b)/(2*o))
		}
		if o >= 1 {
			return 1
		}
		return math.Min(1, b/(2*(1-o)))
	case BlendPinLight:
		if o < 0.5 {
			return math.Min(b, 2*o)
		}
		return math.Max(b, 2*o-1)
	case BlendDifference:
		return math.Abs(b - o)
	case BlendExclusion:
		return b + o - 2*b*o
	}
	return o
}

// BlendPixel composites overlay color o onto base color b with the given
// mode and alpha. alpha 0 is a no-op; alpha 1 is the full mode formula;
// in between the result interpolates toward the formula output
func BlendPixel(mode BlendMode, base, over core.RGB, alpha float64) core.RGB {
	if alpha <= 0 {
		return base
	}
	alpha = vmath.Clamp01(alpha)

	br, bg, bb := base.Floats()
	or, og, ob := over.Floats()

	r := vmath.Clamp01(blendChannel(mode, br, or))
	g := vmath.Clamp01(blendChannel(mode, bg, og))
	b := vmath.Clamp01(blendChannel(mode, bb, ob))

	if alpha < 1 {
		r = br + (r-br)*alpha
		g = bg + (g-bg)*alpha
		b = bb + (b-bb)*alpha
	}
	return core.FromFloats(r, g, b)
}

// BlendAt composites a single color into the buffer at (x, y)
func BlendAt(buf *core.PixelBuffer, x, y int, mode BlendMode, over core.RGB, alpha float64) {
	if x < 0 || y < 0 || x >= buf.W || y >= buf.H || alpha <= 0 {
		return
	}
	buf.Set(x, y, BlendPixel(mode, buf.At(x, y), over, alpha))
}

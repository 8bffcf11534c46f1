package overlay

import (
	"testing"

	"github.com/lixenwraith/replay/core"
)

var allModes = []BlendMode{
	BlendNormal, BlendAdditive, BlendScreen, BlendMultiply, BlendOverlay,
	BlendSoftLight, BlendHardLight, BlendColorDodge, BlendColorBurn,
	BlendLinearDodge, BlendLinearBurn, BlendVividLight, BlendPinLight,
	BlendDifference, BlendExclusion,
}

func TestAlphaZeroIsNoOp(t *testing.T) {
	bases := []core.RGB{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}, {R: 17, G: 130, B: 201}}
	overs := []core.RGB{{R: 255, G: 0, B: 0}, {R: 0, G: 255, B: 128}, {R: 255, G: 255, B: 255}}

	for _, mode := range allModes {
		for _, base := range bases {
			for _, over := range overs {
				if got := BlendPixel(mode, base, over, 0); got != base {
					t.Errorf("%v at alpha=0 changed pixel: base=%v over=%v got=%v", mode, base, over, got)
				}
			}
		}
	}
}

func TestAdditiveWhiteSaturates(t *testing.T) {
	white := core.RGBWhite
	for _, base := range []core.RGB{{R: 0, G: 0, B: 0}, {R: 1, G: 2, B: 3}, {R: 200, G: 100, B: 255}} {
		if got := BlendPixel(BlendAdditive, base, white, 1); got != white {
			t.Errorf("additive white over %v should saturate to white, got %v", base, got)
		}
	}
}

func TestMultiplyBlackYieldsBlack(t *testing.T) {
	black := core.RGBBlack
	for _, base := range []core.RGB{{R: 255, G: 255, B: 255}, {R: 17, G: 130, B: 201}, {R: 0, G: 0, B: 0}} {
		if got := BlendPixel(BlendMultiply, base, black, 1); got != black {
			t.Errorf("multiply black over %v should be black, got %v", base, got)
		}
	}
}

func TestBlendOutputsClamped(t *testing.T) {
	// Extreme pairs through every mode must stay inside 8-bit range:
	// conversion clamps, so the check is that nothing wraps or reorders
	pairs := []struct{ base, over core.RGB }{
		{core.RGBBlack, core.RGBBlack},
		{core.RGBBlack, core.RGBWhite},
		{core.RGBWhite, core.RGBBlack},
		{core.RGBWhite, core.RGBWhite},
		{core.RGB{R: 128, G: 128, B: 128}, core.RGB{R: 128, G: 128, B: 128}},
	}
	for _, mode := range allModes {
		for _, p := range pairs {
			got := BlendPixel(mode, p.base, p.over, 1)
			_ = got // the conversion itself clamps; absence of panic is the property
		}
	}
}

func TestCanonicalFormulaSpotChecks(t *testing.T) {
	mid := core.RGB{R: 128, G: 128, B: 128}

	// Screen of mid over mid: 1-(1-x)^2 with x=128/255 -> ~0.7518 -> 192
	got := BlendPixel(BlendScreen, mid, mid, 1)
	if got.R < 191 || got.R > 193 {
		t.Errorf("screen(mid,mid) expected ~192, got %d", got.R)
	}

	// Multiply of mid over mid: x^2 -> ~0.2520 -> 64
	got = BlendPixel(BlendMultiply, mid, mid, 1)
	if got.R < 63 || got.R > 65 {
		t.Errorf("multiply(mid,mid) expected ~64, got %d", got.R)
	}

	// Difference is symmetric and zero on equal inputs
	if got = BlendPixel(BlendDifference, mid, mid, 1); got.R != 0 {
		t.Errorf("difference(x,x) should be 0, got %d", got.R)
	}
	a, b := core.RGB{R: 200, G: 50, B: 10}, core.RGB{R: 30, G: 120, B: 250}
	if BlendPixel(BlendDifference, a, b, 1) != BlendPixel(BlendDifference, b, a, 1) {
		t.Error("difference should be symmetric")
	}

	// Exclusion of white over white is black; of black over x is x
	if got = BlendPixel(BlendExclusion, core.RGBWhite, core.RGBWhite, 1); got != core.RGBBlack {
		t.Errorf("exclusion(white,white) should be black, got %v", got)
	}
	if got = BlendPixel(BlendExclusion, a, core.RGBBlack, 1); got != a {
		t.Errorf("exclusion(x,black) should be x, got %v", got)
	}

	// Color dodge of anything by white saturates
	if got = BlendPixel(BlendColorDodge, core.RGB{R: 10, G: 10, B: 10}, core.RGBWhite, 1); got != core.RGBWhite {
		t.Errorf("color-dodge by white should saturate, got %v", got)
	}

	// Linear burn: b + o - 1, mid+mid -> ~0.0039 -> 1
	got = BlendPixel(BlendLinearBurn, mid, mid, 1)
	if got.R > 2 {
		t.Errorf("linear-burn(mid,mid) expected ~1, got %d", got.R)
	}
}

func TestHalfAlphaInterpolates(t *testing.T) {
	base := core.RGB{R: 0, G: 0, B: 0}
	over := core.RGB{R: 255, G: 255, B: 255}

	got := BlendPixel(BlendNormal, base, over, 0.5)
	if got.R < 127 || got.R > 129 {
		t.Errorf("normal at alpha=0.5 expected mid gray, got %v", got)
	}
}

func TestBlendModeNamesRoundTrip(t *testing.T) {
	for _, mode := range allModes {
		name := mode.String()
		if name == "unknown" {
			t.Errorf("mode %d has no name", mode)
			continue
		}
		back, ok := ParseBlendMode(name)
		if !ok || back != mode {
			t.Errorf("name %q did not round trip: got %v ok=%v", name, back, ok)
		}
	}
	if _, ok := ParseBlendMode("no-such-mode"); ok {
		t.Error("parsing a bogus name should fail")
	}
}

func TestDodgeBurnExtremes(t *testing.T) {
	black := core.RGBBlack
	white := core.RGBWhite

	// W3C color-dodge: a black base stays black under any overlay,
	// including white; color-burn mirrors it with a white base
	if got := BlendPixel(BlendColorDodge, black, white, 1); got != black {
		t.Errorf("dodge of black base under white overlay = %v, want black", got)
	}
	if got := BlendPixel(BlendColorBurn, white, black, 1); got != white {
		t.Errorf("burn of white base under black overlay = %v, want white", got)
	}

	// The non-corner behavior is unchanged: dodge brightens, burn darkens
	mid := core.RGB{R: 128, G: 128, B: 128}
	if got := BlendPixel(BlendColorDodge, mid, mid, 1); got.R <= mid.R {
		t.Errorf("dodge of mid over mid should brighten, got %v", got)
	}
	if got := BlendPixel(BlendColorBurn, mid, mid, 1); got.R >= mid.R {
		t.Errorf("burn of mid over mid should darken, got %v", got)
	}
}

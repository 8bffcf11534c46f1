package overlay

import (
	"math"

	"github.com/lixenwraith/replay/core"
)

// MarkerStyle selects the entity marker shape, a closed enum dispatched by
// switch so a new shape fails compilation anywhere it is not handled
type MarkerStyle uint8

const (
	MarkerCircle MarkerStyle = iota
	MarkerRing
	MarkerDiamond
	MarkerStar
	MarkerSquare
	MarkerCross
)

// String names the style for config files and diagnostics
func (m MarkerStyle) String() string {
	switch m {
	case MarkerCircle:
		return "circle"
	case MarkerRing:
		return "ring"
	case MarkerDiamond:
		return "diamond"
	case MarkerStar:
		return "star"
	case MarkerSquare:
		return "square"
	case MarkerCross:
		return "cross"
	}
	return "unknown"
}

// ParseMarkerStyle maps a config name to its style
func ParseMarkerStyle(name string) (MarkerStyle, bool) {
	for m := MarkerCircle; m <= MarkerCross; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return MarkerCircle, false
}

// drawMarker renders one marker centered at (cx, cy) with the given radius.
// Coverage tapers over the outer half-pixel for cheap edge smoothing
func drawMarker(buf *core.PixelBuffer, style MarkerStyle, cx, cy, radius float64, mode BlendMode, color core.RGB, alpha float64) {
	if alpha <= 0 || radius <= 0 {
		return
	}

	r := int(math.Ceil(radius)) + 1
	x0 := int(cx)
	y0 := int(cy)

	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			fx := float64(x0+dx) - cx
			fy := float64(y0+dy) - cy
			cov := markerCoverage(style, fx, fy, radius)
			if cov > 0 {
				BlendAt(buf, x0+dx, y0+dy, mode, color, alpha*cov)
			}
		}
	}
}

// markerCoverage returns [0,1] coverage of the shape at offset (fx, fy)
// from the marker center
func markerCoverage(style MarkerStyle, fx, fy, radius float64) float64 {
	switch style {
	case MarkerCircle:
		return edgeFalloff(radius - math.Sqrt(fx*fx+fy*fy))
	case MarkerRing:
		dist := math.Sqrt(fx*fx + fy*fy)
		ring := radius * 0.25
		return edgeFalloff(ring - math.Abs(dist-radius*0.85))
	case MarkerDiamond:
		return edgeFalloff(radius - (math.Abs(fx) + math.Abs(fy)))
	case MarkerStar:
		return starCoverage(fx, fy, radius)
	case MarkerSquare:
		return edgeFalloff(radius - math.Max(math.Abs(fx), math.Abs(fy)))
	case MarkerCross:
		arm := math.Max(radius*0.3, 1)
		if math.Abs(fx) <= radius && math.Abs(fy) <= arm {
			return edgeFalloff(arm - math.Abs(fy))
		}
		if math.Abs(fy) <= radius && math.Abs(fx) <= arm {
			return edgeFalloff(arm - math.Abs(fx))
		}
		return 0
	}
	return 0
}

// starCoverage tests a 5-point star by modulating the radius with the
// angular position between spikes
func starCoverage(fx, fy, radius float64) float64 {
	dist := math.Sqrt(fx*fx + fy*fy)
	if dist > radius {
		return 0
	}
	angle := math.Atan2(fy, fx)
	// 5 spikes; inner radius is 40% of outer
	spike := math.Abs(math.Mod(angle*5/(2*math.Pi)+2.5, 1.0) - 0.5) * 2
	limit := radius * (0.4 + 0.6*spike)
	return edgeFalloff(limit - dist)
}

// edgeFalloff converts signed distance inside the shape to coverage,
// ramping over one pixel
func edgeFalloff(inside float64) float64 {
	if inside <= 0 {
		return 0
	}
	if inside >= 1 {
		return 1
	}
	return inside
}

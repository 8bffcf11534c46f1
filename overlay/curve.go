package overlay

import (
	"github.com/lixenwraith/replay/core"
	"github.com/lixenwraith/replay/parameter"
	"github.com/lixenwraith/replay/vmath"
)

// CurveStyle selects the trajectory smoothing strategy
type CurveStyle uint8

const (
	CurveLinear CurveStyle = iota
	CurveBezier
	CurveCatmullRom
)

// String names the style for config files and diagnostics
func (s CurveStyle) String() string {
	switch s {
	case CurveLinear:
		return "linear"
	case CurveBezier:
		return "bezier"
	case CurveCatmullRom:
		return "catmull-rom"
	}
	return "unknown"
}

// ParseCurveStyle maps a config name to its style
func ParseCurveStyle(name string) (CurveStyle, bool) {
	for s := CurveLinear; s <= CurveCatmullRom; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return CurveLinear, false
}

// Interpolate expands a polyline according to the style. Both spline
// strategies pass exactly through the input endpoints; fewer than 3 points
// always falls back to straight segments.
func Interpolate(style CurveStyle, pts []core.Point) []core.Point {
	if len(pts) < 3 || style == CurveLinear {
		out := make([]core.Point, len(pts))
		copy(out, pts)
		return out
	}
	switch style {
	case CurveBezier:
		return interpolateBezier(pts)
	case CurveCatmullRom:
		return interpolateCatmullRom(pts)
	}
	out := make([]core.Point, len(pts))
	copy(out, pts)
	return out
}

// interpolateBezier builds a cubic segment between each consecutive pair,
// with control points synthesized from the chord to the next-but-one
// neighbor scaled by the tension factor
func interpolateBezier(pts []core.Point) []core.Point {
	out := make([]core.Point, 0, len(pts)*parameter.BezierSamplesMax)
	out = append(out, pts[0])

	for i := 0; i < len(pts)-1; i++ {
		p1 := pts[i]
		p2 := pts[i+1]

		// Tangents from neighbor chords; endpoints reuse the segment chord
		prev := pts[maxInt(i-1, 0)]
		next := pts[minInt(i+2, len(pts)-1)]

		c1 := p1.Add(p2.Sub(prev).Scale(parameter.BezierTension))
		c2 := p2.Sub(next.Sub(p1).Scale(parameter.BezierTension))

		samples := sampleCount(p1.Dist(p2), parameter.BezierSamplesMin, parameter.BezierSamplesMax)
		for j := 1; j <= samples; j++ {
			t := float64(j) / float64(samples)
			out = append(out, cubicBezier(p1, c1, c2, p2, t))
		}
	}
	return out
}

// cubicBezier evaluates the curve at t. t=0 and t=1 reproduce the
// endpoints exactly, no accumulated float error
func cubicBezier(p0, c1, c2, p1 core.Point, t float64) core.Point {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return core.Point{
		X: b0*p0.X + b1*c1.X + b2*c2.X + b3*p1.X,
		Y: b0*p0.Y + b1*c1.Y + b2*c2.Y + b3*p1.Y,
	}
}

// interpolateCatmullRom runs the standard 4-point basis through every
// input point, duplicating boundary points where a neighbor is missing.
// Sample density follows the mean inter-point spacing of the polyline
func interpolateCatmullRom(pts []core.Point) []core.Point {
	total := 0.0
	for i := 0; i < len(pts)-1; i++ {
		total += pts[i].Dist(pts[i+1])
	}
	meanSpacing := total / float64(len(pts)-1)
	samples := sampleCount(meanSpacing, parameter.CatmullSamplesMin, parameter.CatmullSamplesMax)

	out := make([]core.Point, 0, len(pts)*samples)
	out = append(out, pts[0])

	for i := 0; i < len(pts)-1; i++ {
		p0 := pts[maxInt(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[minInt(i+2, len(pts)-1)]

		for j := 1; j <= samples; j++ {
			t := float64(j) / float64(samples)
			out = append(out, catmullRom(p0, p1, p2, p3, t))
		}
	}
	return out
}

// catmullRom evaluates the uniform spline at t in [0,1] between p1 and p2
func catmullRom(p0, p1, p2, p3 core.Point, t float64) core.Point {
	if t >= 1 {
		// Exact endpoint, immune to coefficient rounding
		return p2
	}
	t2 := t * t
	t3 := t2 * t
	return core.Point{
		X: 0.5 * (2*p1.X + (-p0.X+p2.X)*t + (2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 + (-p0.X+3*p1.X-3*p2.X+p3.X)*t3),
		Y: 0.5 * (2*p1.Y + (-p0.Y+p2.Y)*t + (2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 + (-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3),
	}
}

// sampleCount scales samples with distance, clamped to [lo, hi]
func sampleCount(dist float64, lo, hi int) int {
	return vmath.ClampInt(int(dist*parameter.SamplesPerPixel), lo, hi)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

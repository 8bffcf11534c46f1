package overlay

import (
	"math"

	"github.com/lixenwraith/replay/core"
	"github.com/lixenwraith/replay/parameter"
	"github.com/lixenwraith/replay/vmath"
)

// fadeAlpha returns the opacity multiplier for a point at normalized
// position t along the trail, 0 = oldest, 1 = newest
func fadeAlpha(style FadeStyle, t float64) float64 {
	switch style {
	case FadeLinear:
		return 0.15 + 0.85*t
	case FadeExponential:
		// Newest-bright decay; the exponent softens the mid-trail falloff
		return 0.1 + 0.9*math.Pow(t, parameter.FadeExponent)
	}
	return 1
}

// thicknessAt interpolates line thickness between 1x and the velocity cap
// as a function of local speed, in pixels per frame
func thicknessAt(base, speed float64) float64 {
	t := vmath.Clamp01(speed / parameter.ThicknessFullSpeed)
	return base * vmath.Lerp(1, parameter.ThicknessVelocityCap, t)
}

// drawTrajectory renders an entity trail: interpolated through the curve
// style, faded toward the oldest point, optionally thickness-scaled by
// local speed. Sample discs overlap at half-thickness spacing so the
// stroke reads as a continuous line
func drawTrajectory(buf *core.PixelBuffer, trail []core.Point, settings RenderSettings, color core.RGB) {
	if len(trail) < 2 {
		return
	}

	smooth := Interpolate(settings.TrajectoryStyle, trail)
	if len(smooth) < 2 {
		return
	}

	// Local speed per smooth sample, from consecutive spacing scaled by
	// the expansion ratio back to per-input-frame distance
	frameRatio := float64(len(trail)-1) / float64(len(smooth)-1)

	for i, p := range smooth {
		t := float64(i) / float64(len(smooth)-1)
		alpha := settings.Opacity * fadeAlpha(settings.TrajectoryFade, t)
		if alpha <= 0.01 {
			continue
		}

		thickness := settings.BaseThickness
		if settings.VelocityThickness && i > 0 {
			speed := smooth[i-1].Dist(p) / frameRatio
			thickness = thicknessAt(settings.BaseThickness, speed)
		}

		drawMarker(buf, MarkerCircle, p.X, p.Y, thickness/2, settings.Blend, color, alpha)
	}
}

package overlay

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/replay/core"
	"github.com/lixenwraith/replay/parameter"
	"github.com/lixenwraith/replay/vmath"
)

// effectPass draws one entity's silhouette into the scratch mask
func stampSilhouette(mask *scratchMask, e core.Entity, radius float64) {
	mask.addDisc(e.X, e.Y, radius, 1)
}

// applyGlow layers multiple blur radii with decreasing weights over the
// silhouette and blends them additively: tight bright core, wide halo
func applyGlow(buf *core.PixelBuffer, mask *scratchMask, color core.RGB, strength float64) {
	for i, radius := range parameter.GlowRadii {
		weight := parameter.GlowWeights[i] * strength
		mask.blurred(radius).blendInto(buf, BlendAdditive, color, weight)
	}
}

// applyShadow blurs the offset silhouette and multiplies it in: shadowed
// pixels darken toward black, untouched pixels pass through
func applyShadow(buf *core.PixelBuffer, mask *scratchMask) {
	for i, radius := range parameter.ShadowRadii {
		weight := parameter.ShadowWeights[i]
		mask.blurred(radius).blendInto(buf, BlendMultiply, core.RGBBlack, weight)
	}
}

// drawGradientTrail colors the trail by position along the path,
// interpolating in HCL space from a dimmed tail to the entity color.
// HCL keeps perceived brightness even across the ramp, where naive RGB
// lerps muddy out in the middle
func drawGradientTrail(buf *core.PixelBuffer, trail []core.Point, settings RenderSettings, color core.RGB) {
	if len(trail) < 2 {
		return
	}
	smooth := Interpolate(settings.TrajectoryStyle, trail)
	if len(smooth) < 2 {
		return
	}

	head := colorful.Color{
		R: float64(color.R) / 255.0,
		G: float64(color.G) / 255.0,
		B: float64(color.B) / 255.0,
	}
	tail := colorful.Color{
		R: head.R * 0.2,
		G: head.G * 0.2,
		B: head.B * 0.2,
	}

	radius := math.Max(settings.BaseThickness, 1.5)
	for i, p := range smooth {
		t := float64(i) / float64(len(smooth)-1)
		c := tail.BlendHcl(head, t).Clamped()
		rgb := core.FromFloats(c.R, c.G, c.B)
		alpha := settings.Opacity * (0.25 + 0.5*t)
		drawMarker(buf, MarkerCircle, p.X, p.Y, radius, BlendScreen, rgb, alpha)
	}
}

// pulseScale returns the periodic radius multiplier for frameIndex.
// Driven by the frame index, not wall time, so re-rendering a frame is
// idempotent
func pulseScale(frameIndex int, fps float64) float64 {
	phase := 2 * math.Pi * float64(frameIndex) * parameter.PulseSpeed / fps
	return 1 + parameter.PulseAmplitude*math.Sin(phase)
}

// drawPulse rings the marker with a radius/opacity modulated halo
func drawPulse(buf *core.PixelBuffer, e core.Entity, settings RenderSettings, color core.RGB, frameIndex int, fps float64) {
	scale := pulseScale(frameIndex, fps)
	radius := float64(settings.MarkerRadius) * scale * 1.4
	// Opacity swings opposite to radius: largest ring is faintest
	alpha := settings.Opacity * 0.5 * (2 - scale)
	drawMarker(buf, MarkerRing, e.X, e.Y, radius, settings.Blend, color, vmath.Clamp01(alpha))
}

// drawParticles scatters deterministic additive dots around the entity.
// The generator is seeded by frame index and entity ID: repeated renders
// of the same frame are bit-identical, which the rendered-frame cache
// requires
func drawParticles(buf *core.PixelBuffer, e core.Entity, settings RenderSettings, color core.RGB, frameIndex int) {
	seed := uint64(frameIndex)*0x1000193 ^ uint64(uint32(e.ID))
	rng := vmath.NewRand(seed)

	spread := float64(settings.MarkerRadius) * parameter.ParticleSpread
	for i := 0; i < parameter.ParticleCount; i++ {
		angle := rng.Range(0, 2*math.Pi)
		dist := spread * math.Sqrt(rng.Float64())
		px := e.X + math.Cos(angle)*dist
		py := e.Y + math.Sin(angle)*dist

		size := rng.Range(0.5, 1.5)
		alpha := settings.Opacity * rng.Range(0.2, 0.7) * (1 - dist/(spread+1))
		drawMarker(buf, MarkerCircle, px, py, size, BlendAdditive, color, alpha)
	}
}

package overlay

import (
	"log"
	"math"
	"time"

	"github.com/lixenwraith/replay/core"
	"github.com/lixenwraith/replay/parameter"
)

// Logger receives degraded-path reports. Nothing in the compositor treats
// a failure as fatal; the logger is how failures stay visible
type Logger func(format string, args ...any)

// Compositor turns a raw frame plus entity positions into a composited
// frame. The input buffer is never mutated: every call clones it and draws
// into the clone, preserving the cached original for other settings hashes.
type Compositor struct {
	fps    float64
	logger Logger
}

// NewCompositor creates a compositor. fps drives the pulse period; logger
// may be nil for stdlib log
func NewCompositor(fps float64, logger Logger) *Compositor {
	if logger == nil {
		logger = log.Printf
	}
	return &Compositor{fps: fps, logger: logger}
}

// Composite renders the active overlays for frameIndex. Always returns a
// usable frame: a pass that fails is skipped and at worst the unmodified
// clone comes back. Identical arguments produce byte-identical output
// (all effect randomness is seeded by frameIndex)
func (c *Compositor) Composite(frame *core.PixelBuffer, entities []core.Entity, settings RenderSettings, frameIndex int) (result *core.PixelBuffer) {
	out := frame.Clone()
	result = out
	if settings.Opacity <= 0 {
		return result
	}
	start := time.Now()

	// The named result already holds the clone, so a panicking pass
	// degrades to however far drawing got, never to a nil frame
	defer func() {
		if r := recover(); r != nil {
			c.logger("composite frame %d: pass panicked: %v", frameIndex, r)
		}
	}()

	var mask *scratchMask
	if settings.ShowShadow || settings.ShowGlow {
		mask = newScratchMask(out.W, out.H)
	}

	// Shadow first: it darkens under everything drawn afterwards
	if settings.ShowShadow {
		for _, e := range entities {
			if !validEntity(e) {
				continue
			}
			mask.addDisc(e.X+parameter.ShadowOffsetX, e.Y+parameter.ShadowOffsetY, float64(settings.MarkerRadius), 1)
		}
		applyShadow(out, mask)
	}

	for _, e := range entities {
		if !validEntity(e) {
			c.logger("composite frame %d: entity %d has malformed coordinates, skipped", frameIndex, e.ID)
			continue
		}
		color := settings.EntityColor(e)

		if settings.ShowGradient {
			drawGradientTrail(out, e.Trail, settings, color)
		}
		if settings.ShowTrajectory {
			drawTrajectory(out, e.Trail, settings, color)
		}
		if settings.ShowMarkers {
			drawMarker(out, settings.MarkerStyle, e.X, e.Y, float64(settings.MarkerRadius), settings.Blend, color, settings.MarkerOpacity*settings.Opacity)
		}
		if settings.ShowPulse {
			drawPulse(out, e, settings, color, frameIndex, c.fps)
		}
		if settings.ShowParticles {
			drawParticles(out, e, settings, color, frameIndex)
		}
		if settings.ShowLabels && e.Label != "" {
			ly := int(e.Y) - settings.MarkerRadius - digitH - 2
			drawLabel(out, e.Label, int(e.X), ly, settings.LabelColor, settings.Opacity)
		}
	}

	// Glow last so it lifts the finished markers and trails
	if settings.ShowGlow {
		mask.reset()
		for _, e := range entities {
			if !validEntity(e) {
				continue
			}
			stampSilhouette(mask, e, float64(settings.MarkerRadius))
			glowColor := settings.EntityColor(e)
			applyGlow(out, mask, glowColor, settings.GlowStrength*settings.Opacity)
			mask.reset()
		}
	}

	if settings.DebugTiming {
		c.logger("composite frame %d: %d entities in %v", frameIndex, len(entities), time.Since(start))
	}
	return result
}

// validEntity rejects coordinates that would poison float math downstream
func validEntity(e core.Entity) bool {
	return !math.IsNaN(e.X) && !math.IsNaN(e.Y) && !math.IsInf(e.X, 0) && !math.IsInf(e.Y, 0)
}

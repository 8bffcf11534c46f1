package overlay

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"

	"github.com/lixenwraith/replay/core"
)

// FadeStyle selects how trajectory opacity decays toward older points
type FadeStyle uint8

const (
	FadeNone FadeStyle = iota
	FadeLinear
	FadeExponential
)

// RenderSettings is an immutable snapshot of every parameter that drives
// the compositor. The UI layer builds a new value on each change; the core
// never reads ambient state.
//
// Hash covers exactly the pixel-affecting fields. Two settings with equal
// hash must render pixel-identically, so any new field that reaches a draw
// call must be added to Hash.
type RenderSettings struct {
	// Markers
	ShowMarkers   bool
	MarkerStyle   MarkerStyle
	MarkerRadius  int
	MarkerOpacity float64

	// Jersey/ID labels
	ShowLabels bool
	LabelColor core.RGB

	// Trajectories
	ShowTrajectory    bool
	TrajectoryStyle   CurveStyle
	TrajectoryFade    FadeStyle
	VelocityThickness bool
	BaseThickness     float64

	// Layered effects
	ShowGlow      bool
	GlowStrength  float64
	ShowShadow    bool
	ShowGradient  bool
	ShowPulse     bool
	ShowParticles bool

	// Global overlay opacity and layer blend mode
	Opacity float64
	Blend   BlendMode

	// Per-entity color overrides; nil means entity-supplied colors
	CustomColors map[int]core.RGB

	// DebugTiming logs per-frame composite timing. It draws nothing and
	// is deliberately excluded from Hash
	DebugTiming bool
}

// DefaultSettings returns the viewer's initial configuration
func DefaultSettings() RenderSettings {
	return RenderSettings{
		ShowMarkers:       true,
		MarkerStyle:       MarkerCircle,
		MarkerRadius:      7,
		MarkerOpacity:     0.9,
		ShowLabels:        true,
		LabelColor:        core.RGBWhite,
		ShowTrajectory:    true,
		TrajectoryStyle:   CurveCatmullRom,
		TrajectoryFade:    FadeExponential,
		VelocityThickness: true,
		BaseThickness:     1.5,
		ShowGlow:          true,
		GlowStrength:      0.6,
		Opacity:           1.0,
		Blend:             BlendNormal,
	}
}

// Hash digests the pixel-affecting fields in a fixed order. FNV-1a keeps
// the digest stable across processes, which matters if rendered frames are
// ever cached beyond one run
func (s RenderSettings) Hash() uint64 {
	h := fnv.New64a()
	var scratch [8]byte

	writeBool := func(b bool) {
		if b {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(scratch[:], v)
		h.Write(scratch[:])
	}
	writeFloat := func(f float64) {
		writeU64(math.Float64bits(f))
	}
	writeColor := func(c core.RGB) {
		h.Write([]byte{c.R, c.G, c.B})
	}

	writeBool(s.ShowMarkers)
	writeU64(uint64(s.MarkerStyle))
	writeU64(uint64(s.MarkerRadius))
	writeFloat(s.MarkerOpacity)

	writeBool(s.ShowLabels)
	writeColor(s.LabelColor)

	writeBool(s.ShowTrajectory)
	writeU64(uint64(s.TrajectoryStyle))
	writeU64(uint64(s.TrajectoryFade))
	writeBool(s.VelocityThickness)
	writeFloat(s.BaseThickness)

	writeBool(s.ShowGlow)
	writeFloat(s.GlowStrength)
	writeBool(s.ShowShadow)
	writeBool(s.ShowGradient)
	writeBool(s.ShowPulse)
	writeBool(s.ShowParticles)

	writeFloat(s.Opacity)
	writeU64(uint64(s.Blend))

	// Map iteration order is randomized; hash overrides in sorted key order
	if len(s.CustomColors) > 0 {
		ids := make([]int, 0, len(s.CustomColors))
		for id := range s.CustomColors {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			writeU64(uint64(id))
			writeColor(s.CustomColors[id])
		}
	}

	return h.Sum64()
}

// EntityColor resolves the draw color for an entity, preferring overrides
func (s RenderSettings) EntityColor(e core.Entity) core.RGB {
	if c, ok := s.CustomColors[e.ID]; ok {
		return c
	}
	return e.Color
}

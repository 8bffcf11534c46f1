package core

import "math"

// Entity is one tracked object (player or ball) at a single frame.
// Produced by the external tracking provider, consumed read-only by the
// compositor for the duration of one composite call.
type Entity struct {
	ID    int
	X, Y  float64 // frame pixel coordinates
	Color RGB
	Team  string
	Label string

	// Velocity in pixels per frame; HasVelocity gates velocity-derived
	// styling (thickness scaling) so a missing measurement is not zero speed
	VX, VY      float64
	HasVelocity bool

	// Trail holds recent positions oldest-first (current position last),
	// assembled by the provider for trajectory rendering
	Trail []Point
}

// Speed returns the velocity magnitude, 0 when no velocity is attached
func (e Entity) Speed() float64 {
	if !e.HasVelocity {
		return 0
	}
	return math.Sqrt(e.VX*e.VX + e.VY*e.VY)
}

// EntityProvider supplies per-frame positions, resolving any multi-source
// conflicts before the core sees them
type EntityProvider interface {
	PositionsForFrame(index int) []Entity
}

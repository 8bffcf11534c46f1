package core

// RGB stores explicit 8-bit color channels
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// clamp converts float to uint8 with saturation
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Floats returns the channels scaled to [0,1]
func (c RGB) Floats() (r, g, b float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0
}

// FromFloats converts [0,1] channel values to 8-bit with rounding and clamping
func FromFloats(r, g, b float64) RGB {
	return RGB{
		R: clamp(r*255.0 + 0.5),
		G: clamp(g*255.0 + 0.5),
		B: clamp(b*255.0 + 0.5),
	}
}

// Lerp interpolates toward target by t in [0,1]
func (c RGB) Lerp(target RGB, t float64) RGB {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return target
	}
	return RGB{
		R: uint8(float64(c.R) + (float64(target.R)-float64(c.R))*t),
		G: uint8(float64(c.G) + (float64(target.G)-float64(c.G))*t),
		B: uint8(float64(c.B) + (float64(target.B)-float64(c.B))*t),
	}
}

// Scale multiplies all channels by s with clamping
func (c RGB) Scale(s float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * s),
		G: clamp(float64(c.G) * s),
		B: clamp(float64(c.B) * s),
	}
}

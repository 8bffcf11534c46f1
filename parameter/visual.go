package parameter

// Trajectory curves
const (
	// BezierTension scales the chord-derived control point offsets
	BezierTension = 0.3

	// BezierSamplesMin/Max bound per-segment sample density
	BezierSamplesMin = 5
	BezierSamplesMax = 15

	// CatmullSamplesMin/Max bound per-segment sample density
	CatmullSamplesMin = 5
	CatmullSamplesMax = 20

	// SamplesPerPixel converts segment length to sample count before clamping
	SamplesPerPixel = 0.25

	// FadeExponent shapes the exponential trajectory fade curve
	FadeExponent = 0.7

	// ThicknessVelocityCap is the ceiling on velocity-scaled line thickness
	// as a multiple of the base thickness
	ThicknessVelocityCap = 2.0

	// ThicknessFullSpeed is the speed (pixels/frame) at which thickness
	// reaches the cap
	ThicknessFullSpeed = 24.0
)

// Layered effects
var (
	// GlowRadii are the blur radii layered into a soft glow, paired with
	// GlowWeights (decreasing: tight core, wide halo)
	GlowRadii   = []int{2, 4, 8}
	GlowWeights = []float64{0.6, 0.3, 0.15}

	// ShadowRadii and ShadowWeights shape the drop shadow penumbra
	ShadowRadii   = []int{3, 6}
	ShadowWeights = []float64{0.5, 0.25}
)

const (
	// ShadowOffsetX/Y displace the shadow pass from its source
	ShadowOffsetX = 3
	ShadowOffsetY = 3

	// PulseSpeed is the pulse modulation frequency in cycles per second
	PulseSpeed = 1.5

	// PulseAmplitude is the fraction of marker radius the pulse adds
	PulseAmplitude = 0.35

	// ParticleCount is the number of scatter particles per entity
	ParticleCount = 12

	// ParticleSpread is the scatter radius in multiples of marker radius
	ParticleSpread = 2.5
)

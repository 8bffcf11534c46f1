package vmath

// Rand is a splitmix64 generator. It exists so that effects seeded by a
// frame index reproduce bit-identical output on every render of that frame,
// which the rendered-frame cache depends on. math/rand sources make no
// cross-version stability promise, splitmix64 is a fixed algorithm.
type Rand struct {
	state uint64
}

// NewRand seeds a generator. Equal seeds yield equal sequences forever
func NewRand(seed uint64) *Rand {
	return &Rand{state: seed}
}

// Uint64 returns the next value in the sequence
func (r *Rand) Uint64() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float64 returns a value in [0, 1)
func (r *Rand) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Range returns a value in [lo, hi)
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// IntN returns a value in [0, n). n must be positive
func (r *Rand) IntN(n int) int {
	return int(r.Uint64() % uint64(n))
}

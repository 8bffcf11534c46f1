package vmath

import "math"

// GaussianKernel returns a normalized 1D kernel for the given radius.
// Sigma is derived as radius/2 which keeps the tails within the kernel
// without wasting taps on near-zero weights
func GaussianKernel(radius int) []float64 {
	if radius < 1 {
		return []float64{1}
	}
	sigma := float64(radius) / 2.0
	twoSigmaSq := 2.0 * sigma * sigma

	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		w := math.Exp(-float64(i*i) / twoSigmaSq)
		kernel[i+radius] = w
		sum += w
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

package filter

import (
	"math"

	"github.com/gogpu/imgedit/internal/cache"
)

// GaussianKernel returns a normalized 1D Gaussian with sigma = radius,
// truncated at 3 sigma: KernelSize(radius) taps, summing to 1.
//
// For radius <= 0 it returns the identity kernel [1].
func GaussianKernel(radius float64) []float32 {
	size := KernelSize(radius)
	if size == 1 {
		return []float32{1}
	}
	half := size / 2

	kernel := make([]float32, size)
	twoSigmaSq := 2 * radius * radius
	var sum float64
	for i := range kernel {
		x := float64(i - half)
		w := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(w)
		sum += w
	}
	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// kernels is keyed by the exact radius bits, so every cached kernel is
// the one GaussianKernel computes for its key.
var kernels = cache.New[uint64, []float32](64)

// CachedGaussianKernel returns a shared Gaussian kernel for radius.
// Callers must not modify the returned slice.
func CachedGaussianKernel(radius float64) []float32 {
	if radius <= 0 {
		radius = 0
	}
	return kernels.GetOrCreate(math.Float64bits(radius), func() []float32 {
		return GaussianKernel(radius)
	})
}

// KernelSize returns the number of taps GaussianKernel produces for radius.
func KernelSize(radius float64) int {
	if !(radius > 0) {
		return 1
	}
	return int(math.Ceil(radius*3))*2 + 1
}

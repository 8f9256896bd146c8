package filter

import "sync"

// Blur applies a separable Gaussian blur to a tightly packed RGBA8 buffer
// of the given dimensions and returns the blurred buffer. src is not
// modified. Edges are extended by clamping.
//
// Radius <= 0 returns a copy of src.
func Blur(src []byte, width, height int, radius float64) []byte {
	dst := make([]byte, len(src))
	if radius <= 0 || width <= 0 || height <= 0 {
		copy(dst, src)
		return dst
	}

	kernel := CachedGaussianKernel(radius)

	temp := getTempBuffer(width * height * 4)
	defer putTempBuffer(temp)

	blurHorizontal(src, temp, width, height, kernel)
	blurVertical(temp, dst, width, height, kernel)
	return dst
}

// blurHorizontal convolves each row of src into temp.
func blurHorizontal(src []byte, temp []float32, width, height int, kernel []float32) {
	half := len(kernel) / 2

	for y := 0; y < height; y++ {
		row := y * width * 4
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				kx := clampInt(x+k-half, 0, width-1)
				i := row + kx*4
				r += float32(src[i+0]) * weight
				g += float32(src[i+1]) * weight
				b += float32(src[i+2]) * weight
				a += float32(src[i+3]) * weight
			}
			o := row + x*4
			temp[o+0] = r
			temp[o+1] = g
			temp[o+2] = b
			temp[o+3] = a
		}
	}
}

// blurVertical convolves each column of temp into dst.
func blurVertical(temp []float32, dst []byte, width, height int, kernel []float32) {
	half := len(kernel) / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				ky := clampInt(y+k-half, 0, height-1)
				i := (ky*width + x) * 4
				r += temp[i+0] * weight
				g += temp[i+1] * weight
				b += temp[i+2] * weight
				a += temp[i+3] * weight
			}
			o := (y*width + x) * 4
			dst[o+0] = clampUint8(r)
			dst[o+1] = clampUint8(g)
			dst[o+2] = clampUint8(b)
			dst[o+3] = clampUint8(a)
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{}
	},
}

// getTempBuffer returns a float buffer with at least size elements.
// Every element is overwritten by blurHorizontal, so it is not cleared.
func getTempBuffer(size int) []float32 {
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if cap(wrapper.data) < size {
		return make([]float32, size)
	}
	return wrapper.data[:size]
}

func putTempBuffer(buf []float32) {
	// 64MB max
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampUint8 clamps a float32 to [0, 255] and rounds to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

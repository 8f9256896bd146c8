package imgedit

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	icolor "github.com/gogpu/imgedit/internal/color"
)

// ResizeFilter selects the resampling kernel used by Resize.
type ResizeFilter uint8

const (
	FilterBox ResizeFilter = iota
	FilterBilinear
	FilterHamming
	FilterCatmullRom
	FilterMitchell
	FilterLanczos3
)

var filterNames = [...]string{"box", "bilinear", "hamming", "catmull-rom", "mitchell", "lanczos3"}

// String returns the filter name, e.g. "lanczos3".
func (f ResizeFilter) String() string {
	if int(f) < len(filterNames) {
		return filterNames[f]
	}
	return fmt.Sprintf("ResizeFilter(%d)", f)
}

// MarshalText implements encoding.TextMarshaler.
func (f ResizeFilter) MarshalText() ([]byte, error) {
	if int(f) >= len(filterNames) {
		return nil, fmt.Errorf("imgedit: unknown resize filter %d", f)
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *ResizeFilter) UnmarshalText(text []byte) error {
	for i, name := range filterNames {
		if name == string(text) {
			*f = ResizeFilter(i)
			return nil
		}
	}
	return fmt.Errorf("imgedit: unknown resize filter %q", text)
}

// Kernels. Support is the radius in source pixels at scale 1.
var (
	boxKernel = &draw.Kernel{Support: 0.51, At: func(t float64) float64 {
		if t <= 0.5 {
			return 1
		}
		return 0
	}}

	hammingKernel = &draw.Kernel{Support: 1, At: func(t float64) float64 {
		return sinc(t) * (0.54 + 0.46*math.Cos(math.Pi*t))
	}}

	mitchellKernel = &draw.Kernel{Support: 2, At: func(t float64) float64 {
		const b, c = 1.0 / 3, 1.0 / 3
		if t < 1 {
			return ((12-9*b-6*c)*t*t*t + (-18+12*b+6*c)*t*t + (6 - 2*b)) / 6
		}
		return ((-b-6*c)*t*t*t + (6*b+30*c)*t*t + (-12*b-48*c)*t + (8*b + 24*c)) / 6
	}}

	lanczos3Kernel = &draw.Kernel{Support: 3, At: func(t float64) float64 {
		return sinc(t) * sinc(t/3)
	}}
)

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x *= math.Pi
	return math.Sin(x) / x
}

func (f ResizeFilter) kernel() *draw.Kernel {
	switch f {
	case FilterBilinear:
		return draw.BiLinear
	case FilterHamming:
		return hammingKernel
	case FilterCatmullRom:
		return draw.CatmullRom
	case FilterMitchell:
		return mitchellKernel
	case FilterLanczos3:
		return lanczos3Kernel
	default:
		return boxKernel
	}
}

// Resize target limits. A target must fit both: the working buffer holds
// 8 bytes per pixel, so MaxPixels keeps it near 256 MiB.
const (
	MaxDimension = 1 << 15
	MaxPixels    = 1 << 25
)

// Resize resamples the image to Width x Height in linear light.
// Dimensions below 1 are raised to 1.
//
// AspectLock records that the two dimensions were derived from each other;
// use WithWidth and WithHeight to keep them in proportion.
type Resize struct {
	Width      int
	Height     int
	AspectLock bool
	Filter     ResizeFilter
}

func (Resize) Kind() string { return "resize" }
func (Resize) isOperation() {}

// WithWidth returns r with the width set to w. With AspectLock, the height
// follows the srcW x srcH aspect ratio.
func (r Resize) WithWidth(w, srcW, srcH int) Resize {
	r.Width = max(w, 1)
	if r.AspectLock && srcW > 0 {
		r.Height = max(1, int(math.Round(float64(r.Width)*float64(srcH)/float64(srcW))))
	}
	return r
}

// WithHeight returns r with the height set to h. With AspectLock, the
// width follows the srcW x srcH aspect ratio.
func (r Resize) WithHeight(h, srcW, srcH int) Resize {
	r.Height = max(h, 1)
	if r.AspectLock && srcH > 0 {
		r.Width = max(1, int(math.Round(float64(r.Height)*float64(srcW)/float64(srcH))))
	}
	return r
}

// ApplyImage resamples pm. Targets beyond MaxDimension or MaxPixels fail
// with ErrInvalidDimensions and leave pm untouched.
func (o Resize) ApplyImage(pm *Pixmap) error {
	if pm.Empty() {
		return ErrEmptyImage
	}
	w, h := max(o.Width, 1), max(o.Height, 1)
	if w > MaxDimension || h > MaxDimension || int64(w)*int64(h) > MaxPixels {
		return fmt.Errorf("%w: resize to %dx%d", ErrInvalidDimensions, w, h)
	}
	if w == pm.Width() && h == pm.Height() {
		return nil
	}

	src := toLinear(pm)
	dst := image.NewRGBA64(image.Rect(0, 0, w, h))
	o.Filter.kernel().Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	pm.replace(fromLinear(dst))
	return nil
}

// toLinear converts straight sRGB8 to premultiplied 16-bit linear light.
func toLinear(pm *Pixmap) *image.RGBA64 {
	img := image.NewRGBA64(pm.Bounds())
	src := pm.Data()
	dst := img.Pix
	for i, j := 0, 0; i < len(src); i, j = i+4, j+8 {
		a := uint32(src[i+3]) * 0x101
		for c := range 3 {
			v := uint32(icolor.SRGBToLinear16(src[i+c])) * a / 0xffff
			dst[j+2*c] = uint8(v >> 8)
			dst[j+2*c+1] = uint8(v)
		}
		dst[j+6] = uint8(a >> 8)
		dst[j+7] = uint8(a)
	}
	return img
}

// fromLinear reverses toLinear.
func fromLinear(img *image.RGBA64) *Pixmap {
	b := img.Bounds()
	pm := NewPixmap(b.Dx(), b.Dy())
	src := img.Pix
	dst := pm.Data()
	for i, j := 0, 0; j < len(dst); i, j = i+8, j+4 {
		a := uint32(src[i+6])<<8 | uint32(src[i+7])
		if a == 0 {
			continue
		}
		for c := range 3 {
			v := uint32(src[i+2*c])<<8 | uint32(src[i+2*c+1])
			v = min(v*0xffff/a, 0xffff)
			dst[j+c] = icolor.Linear16ToSRGB(uint16(v))
		}
		dst[j+3] = uint8((a + 0x80) / 0x101)
	}
	return pm
}

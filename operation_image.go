package imgedit

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/imgedit/internal/filter"
)

// MaxBlurRadius bounds Blur.Radius. The kernel spans 6*Radius+1 pixels.
const MaxBlurRadius = 1000

// Blur applies a Gaussian blur with standard deviation Radius pixels.
// A radius of 0 is a no-op.
type Blur struct {
	Radius float64
}

// Rotate turns the image clockwise by Degrees. Only multiples of 90 are
// defined (-90 is 270); any other angle is a no-op.
type Rotate struct {
	Degrees int
}

// Flip mirrors the image about its vertical axis (Horizontal) and/or its
// horizontal axis (Vertical).
type Flip struct {
	Horizontal bool
	Vertical   bool
}

// ChromaticAberration shifts the red channel radially away from the
// image center. A pixel at the edge samples red from Amount/10 pixels
// further out; green, blue and alpha are untouched.
type ChromaticAberration struct {
	Amount float64
}

// Kind returns the name each operation is stored under in a sidecar.
func (Blur) Kind() string                { return "blur" }
func (Rotate) Kind() string              { return "rotate" }
func (Flip) Kind() string                { return "flip" }
func (ChromaticAberration) Kind() string { return "chromatic_aberration" }

func (Blur) isOperation()                {}
func (Rotate) isOperation()              {}
func (Flip) isOperation()                {}
func (ChromaticAberration) isOperation() {}

// ApplyImage blurs pm. A radius above MaxBlurRadius, or one that is not
// a finite number, fails with ErrOutOfRange.
func (o Blur) ApplyImage(pm *Pixmap) error {
	if math.IsNaN(o.Radius) || o.Radius > MaxBlurRadius {
		return fmt.Errorf("%w: blur radius %v", ErrOutOfRange, o.Radius)
	}
	if o.Radius <= 0 || pm.Empty() {
		return nil
	}
	pm.data = filter.Blur(pm.data, pm.width, pm.height, o.Radius)
	return nil
}

// ApplyImage turns pm in place. A quarter turn swaps width and height.
func (o Rotate) ApplyImage(pm *Pixmap) error {
	if pm.Empty() {
		return nil
	}
	switch ((o.Degrees % 360) + 360) % 360 {
	case 90:
		pm.replace(rotate(pm, true))
	case 180:
		rotate180(pm)
	case 270:
		pm.replace(rotate(pm, false))
	}
	return nil
}

// rotate returns pm turned by a quarter, clockwise or counter-clockwise.
func rotate(pm *Pixmap, clockwise bool) *Pixmap {
	w, h := pm.width, pm.height
	out := NewPixmap(h, w)
	for y := range h {
		for x := range w {
			nx, ny := h-1-y, x
			if !clockwise {
				nx, ny = y, w-1-x
			}
			copy(out.data[(ny*h+nx)*4:][:4], pm.data[(y*w+x)*4:][:4])
		}
	}
	return out
}

func rotate180(pm *Pixmap) {
	n := pm.width * pm.height
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swapPixel(pm.data, i, j)
	}
}

func swapPixel(data []uint8, i, j int) {
	a, b := data[i*4:i*4+4], data[j*4:j*4+4]
	for c := range 4 {
		a[c], b[c] = b[c], a[c]
	}
}

func (o Flip) ApplyImage(pm *Pixmap) error {
	w, h := pm.width, pm.height
	if o.Horizontal {
		for y := range h {
			row := y * w
			for x := range w / 2 {
				swapPixel(pm.data, row+x, row+w-1-x)
			}
		}
	}
	if o.Vertical {
		for y := range h / 2 {
			for x := range w {
				swapPixel(pm.data, y*w+x, (h-1-y)*w+x)
			}
		}
	}
	return nil
}

// ApplyImage resamples red from a point pushed away from the center in
// proportion to its distance. Samples that fall outside the image keep
// the original red.
func (o ChromaticAberration) ApplyImage(pm *Pixmap) error {
	if o.Amount == 0 || pm.Empty() {
		return nil
	}
	w, h := pm.width, pm.height
	src := pm.Clone().data

	cx, cy := float32(w)/2, float32(h)/2
	k := float32(o.Amount) / 10
	for y := range h {
		for x := range w {
			dx := (float32(x) - cx) / cx * k
			dy := (float32(y) - cy) / cy * k
			sx := int(math32.Round(float32(x) + dx))
			sy := int(math32.Round(float32(y) + dy))
			if sx < 0 || sx >= w || sy < 0 || sy >= h {
				continue
			}
			pm.data[(y*w+x)*4] = src[(sy*w+sx)*4]
		}
	}
	return nil
}

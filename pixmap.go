package imgedit

import (
	"image"
	"image/color"
)

// Pixmap is a rectangular RGBA8 pixel buffer with straight
// (non-premultiplied) alpha, 4 bytes per pixel, rows tightly packed.
//
// A Pixmap with zero width or height is valid and empty.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a transparent pixmap with the given dimensions.
// Negative dimensions are treated as zero.
func NewPixmap(width, height int) *Pixmap {
	width = max(width, 0)
	height = max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// NewPixmapFromRGBA wraps an existing RGBA8 buffer without copying.
// It returns ErrInvalidDimensions if the buffer size does not match.
func NewPixmapFromRGBA(width, height int, data []uint8) (*Pixmap, error) {
	if width < 0 || height < 0 || len(data) != width*height*4 {
		return nil, ErrInvalidDimensions
	}
	return &Pixmap{width: width, height: height, data: data}, nil
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Empty reports whether the pixmap has no pixels.
func (p *Pixmap) Empty() bool {
	return p == nil || p.width == 0 || p.height == 0
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	data := make([]uint8, len(p.data))
	copy(data, p.data)
	return &Pixmap{width: p.width, height: p.height, data: data}
}

// replace swaps the contents of p for those of q. Geometry operations use
// it to change the buffer shape while keeping the caller's pointer valid.
func (p *Pixmap) replace(q *Pixmap) {
	p.width, p.height, p.data = q.width, q.height, q.data
}

// offset returns the byte offset of (x, y), or -1 when out of bounds.
func (p *Pixmap) offset(x, y int) int {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return -1
	}
	return (y*p.width + x) * 4
}

// SetRGBA8 sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (p *Pixmap) SetRGBA8(x, y int, c color.NRGBA) {
	if i := p.offset(x, y); i >= 0 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// RGBA8 returns the pixel at (x, y), or transparent black when out of
// bounds.
func (p *Pixmap) RGBA8(x, y int) color.NRGBA {
	i := p.offset(x, y)
	if i < 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Fill sets every pixel to c.
func (p *Pixmap) Fill(c color.NRGBA) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// SubImage returns a copy of the rectangle r, clipped to the pixmap.
func (p *Pixmap) SubImage(r image.Rectangle) *Pixmap {
	r = r.Intersect(image.Rect(0, 0, p.width, p.height))
	out := NewPixmap(r.Dx(), r.Dy())
	rowBytes := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		src := ((r.Min.Y+y)*p.width + r.Min.X) * 4
		copy(out.data[y*rowBytes:(y+1)*rowBytes], p.data[src:src+rowBytes])
	}
	return out
}

// ToImage converts the pixmap to an image.NRGBA sharing no memory.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from any image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())

	if src, ok := img.(*image.NRGBA); ok {
		rowBytes := bounds.Dx() * 4
		for y := 0; y < bounds.Dy(); y++ {
			start := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(pm.data[y*rowBytes:(y+1)*rowBytes], src.Pix[start:start+rowBytes])
		}
		return pm
	}

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			pm.SetRGBA8(x, y, c)
		}
	}
	return pm
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.RGBA8(x, y)
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

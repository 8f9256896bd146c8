package imgedit

import (
	"github.com/chewxy/math32"

	icolor "github.com/gogpu/imgedit/internal/color"
)

// Brightness adds Amount/255 to R, G and B. Amount is in [-255, 255].
type Brightness struct {
	Amount int
}

// Contrast scales R, G and B around the midpoint. Amount is in
// [-255, 255]; 0 leaves the image unchanged.
type Contrast struct {
	Amount int
}

// Exposure multiplies R, G and B by 2^(Amount/25). Amount is in
// [-100, 100], a range of ±4 EV.
type Exposure struct {
	Amount int
}

// Desaturate blends each channel toward luma by Amount percent.
type Desaturate struct {
	Amount int
}

// Posterize quantizes each channel to Levels steps. Zero levels is a
// no-op.
type Posterize struct {
	Levels int
}

// Equalize linearly remaps R, G and B from [Dark/255, Bright/255] to
// [0, 1]. Values outside the range are extrapolated.
type Equalize struct {
	Dark   int
	Bright int
}

// Invert replaces R, G and B with 1 - value.
type Invert struct{}

// HSV shifts hue by Hue degrees and scales saturation and lightness by
// percent. HSV{Saturation: 100, Lightness: 100} is the identity and
// leaves the pixel untouched; any other setting clamps R, G and B to
// [0,1], since HSL is only defined on the unit cube.
type HSV struct {
	Hue        int
	Saturation int
	Lightness  int
}

// ChannelSwap copies the Source channel into the Target channel. The
// Source channel is left as is.
type ChannelSwap struct {
	Target Channel
	Source Channel
}

// Mult multiplies R, G and B by RGB/255.
type Mult struct {
	RGB [3]uint8
}

// Add adds RGB/255 to R, G and B.
type Add struct {
	RGB [3]uint8
}

// Fill blends R, G and B toward the fill color by the fill alpha. The
// pixel's own alpha is kept.
type Fill struct {
	RGBA [4]uint8
}

// MultiplyByAlpha premultiplies R, G and B by alpha.
type MultiplyByAlpha struct{}

// DivideByAlpha reverses MultiplyByAlpha. Fully transparent pixels are
// left unchanged.
type DivideByAlpha struct{}

// Noise blends each channel toward a pseudo-random value by Amount
// percent. With Mono set, one draw is shared by R, G and B.
//
// The random value is a hash of the pixel position, so the same image
// always receives the same noise.
type Noise struct {
	Amount int
	Mono   bool
}

// Kind returns the name each operation is stored under in a sidecar.
func (Brightness) Kind() string      { return "brightness" }
func (Contrast) Kind() string        { return "contrast" }
func (Exposure) Kind() string        { return "exposure" }
func (Desaturate) Kind() string      { return "desaturate" }
func (Posterize) Kind() string       { return "posterize" }
func (Equalize) Kind() string        { return "equalize" }
func (Invert) Kind() string          { return "invert" }
func (HSV) Kind() string             { return "hsv" }
func (ChannelSwap) Kind() string     { return "channel_swap" }
func (Mult) Kind() string            { return "mult" }
func (Add) Kind() string             { return "add" }
func (Fill) Kind() string            { return "fill" }
func (MultiplyByAlpha) Kind() string { return "multiply_by_alpha" }
func (DivideByAlpha) Kind() string   { return "divide_by_alpha" }
func (Noise) Kind() string           { return "noise" }

func (Brightness) isOperation()      {}
func (Contrast) isOperation()        {}
func (Exposure) isOperation()        {}
func (Desaturate) isOperation()      {}
func (Posterize) isOperation()       {}
func (Equalize) isOperation()        {}
func (Invert) isOperation()          {}
func (HSV) isOperation()             {}
func (ChannelSwap) isOperation()     {}
func (Mult) isOperation()            {}
func (Add) isOperation()             {}
func (Fill) isOperation()            {}
func (MultiplyByAlpha) isOperation() {}
func (DivideByAlpha) isOperation()   {}
func (Noise) isOperation()           {}

// ApplyPixel adds Amount/255 to R, G and B.
func (o Brightness) ApplyPixel(px *Pixel, _ int) {
	d := float32(o.Amount) / 255
	px[0] += d
	px[1] += d
	px[2] += d
}

// ApplyPixel stretches R, G and B away from 0.5 by the classic
// 259/255 contrast curve, expressed on unit values.
func (o Contrast) ApplyPixel(px *Pixel, _ int) {
	v := float32(o.Amount) / 255
	factor := (1.0156 * (v + 1)) / (1.0156 - v)
	for i := range 3 {
		px[i] = factor*(px[i]-0.5) + 0.5
	}
}

// ApplyPixel multiplies R, G and B by 2^(Amount/25).
func (o Exposure) ApplyPixel(px *Pixel, _ int) {
	f := math32.Exp2(float32(o.Amount) / 25)
	px[0] *= f
	px[1] *= f
	px[2] *= f
}

// ApplyPixel blends each channel toward the pixel's luma.
func (o Desaturate) ApplyPixel(px *Pixel, _ int) {
	t := float32(o.Amount) / 100
	l := icolor.Luma(px[0], px[1], px[2])
	for i := range 3 {
		px[i] += (l - px[i]) * t
	}
}

// ApplyPixel rounds each channel to the nearest multiple of 1/Levels.
func (o Posterize) ApplyPixel(px *Pixel, _ int) {
	if o.Levels <= 0 {
		return
	}
	n := float32(o.Levels)
	for i := range 3 {
		px[i] = math32.Round(px[i]*n) / n
	}
}

// ApplyPixel maps Dark to 0 and Bright to 1. Values outside the range
// extrapolate and are clamped only on conversion back to 8 bits.
func (o Equalize) ApplyPixel(px *Pixel, _ int) {
	if o.Dark == o.Bright {
		return
	}
	lo := float32(o.Dark) / 255
	span := float32(o.Bright-o.Dark) / 255
	for i := range 3 {
		px[i] = (px[i] - lo) / span
	}
}

func (Invert) ApplyPixel(px *Pixel, _ int) {
	px[0] = 1 - px[0]
	px[1] = 1 - px[1]
	px[2] = 1 - px[2]
}

func (o HSV) isIdentity() bool {
	return o.Hue%360 == 0 && o.Saturation == 100 && o.Lightness == 100
}

// ApplyPixel round-trips the pixel through HSL unless o is the identity.
func (o HSV) ApplyPixel(px *Pixel, _ int) {
	if o.isIdentity() {
		return
	}
	h, s, l := icolor.RGBToHSL(px[0], px[1], px[2])
	h += float32(o.Hue)
	s *= float32(o.Saturation) / 100
	l *= float32(o.Lightness) / 100
	px[0], px[1], px[2] = icolor.HSLToRGB(h, s, l)
}

// ApplyPixel is a no-op when either channel is invalid.
func (o ChannelSwap) ApplyPixel(px *Pixel, _ int) {
	if !o.Target.Valid() || !o.Source.Valid() {
		return
	}
	px[o.Target] = px[o.Source]
}

func (o Mult) ApplyPixel(px *Pixel, _ int) {
	for i := range 3 {
		px[i] *= float32(o.RGB[i]) / 255
	}
}

func (o Add) ApplyPixel(px *Pixel, _ int) {
	for i := range 3 {
		px[i] += float32(o.RGB[i]) / 255
	}
}

// ApplyPixel blends R, G and B toward the fill color by its alpha.
// The pixel's own alpha is never changed, so a transparent fill is a
// no-op.
func (o Fill) ApplyPixel(px *Pixel, _ int) {
	t := float32(o.RGBA[3]) / 255
	for i := range 3 {
		c := float32(o.RGBA[i]) / 255
		px[i] += (c - px[i]) * t
	}
}

func (MultiplyByAlpha) ApplyPixel(px *Pixel, _ int) {
	px[0] *= px[3]
	px[1] *= px[3]
	px[2] *= px[3]
}

// ApplyPixel leaves fully transparent pixels unchanged.
func (DivideByAlpha) ApplyPixel(px *Pixel, _ int) {
	a := px[3]
	if a == 0 {
		return
	}
	px[0] /= a
	px[1] /= a
	px[2] /= a
}

// ApplyPixel blends each channel toward a value drawn from the pixel
// index pos, so the same image always gets the same noise. Mono draws
// one value for all three channels.
func (o Noise) ApplyPixel(px *Pixel, pos int) {
	t := float32(o.Amount) / 100
	if t == 0 {
		return
	}
	seed := uint64(pos) * 3
	for i := range 3 {
		if !o.Mono {
			seed = uint64(pos)*3 + uint64(i)
		}
		r := unitNoise(seed)
		px[i] += (r - px[i]) * t
	}
}

// unitNoise maps seed to a uniform value in [0, 1) using the splitmix64
// finalizer.
func unitNoise(seed uint64) float32 {
	z := seed + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return float32(z>>40) / (1 << 24)
}

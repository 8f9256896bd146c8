package color

import "math"

// Luma weights used by Desaturate, GradientMap and histogram equalization.
const (
	LumaR = 0.3
	LumaG = 0.59
	LumaB = 0.11
)

// Luma returns the weighted luminance 0.3R + 0.59G + 0.11B.
func Luma(r, g, b float32) float32 {
	return LumaR*r + LumaG*g + LumaB*b
}

// RGBToHSL converts RGB in [0,1] to hue in degrees [0,360) and
// saturation/lightness in [0,1].
func RGBToHSL(r, g, b float32) (h, s, l float32) {
	hi := max(r, g, b)
	lo := min(r, g, b)
	l = (hi + lo) / 2

	d := hi - lo
	if d == 0 {
		return 0, 0, l
	}

	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}

	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h * 60, s, l
}

// HSLToRGB converts hue in degrees and saturation/lightness in [0,1] back
// to RGB. Hue wraps; saturation and lightness are clamped to [0,1].
func HSLToRGB(h, s, l float32) (r, g, b float32) {
	s = clamp01(s)
	l = clamp01(l)
	if s == 0 {
		return l, l, l
	}

	h = WrapHue(h) / 360

	var q float32
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return hueToChannel(p, q, h+1.0/3), hueToChannel(p, q, h), hueToChannel(p, q, h-1.0/3)
}

// WrapHue maps any angle in degrees to [0,360).
func WrapHue(h float32) float32 {
	h = float32(math.Mod(float64(h), 360))
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

func hueToChannel(p, q, t float32) float32 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

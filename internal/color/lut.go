// Package color provides the color math shared by the edit pipeline:
// the sRGB transfer function used for gamma-correct resampling, RGB/HSL
// conversion and luma weights.
//
// Resize converts the whole buffer to linear light and back, so both
// directions are table lookups.
package color

import "math"

// linearBits is the precision of the linear-to-sRGB table index.
const linearBits = 12

var (
	// decode16 maps an sRGB byte to linear light scaled to [0,65535].
	decode16 [256]uint16

	// encode maps linear light quantized to linearBits to an sRGB byte.
	encode [1 << linearBits]uint8
)

func init() {
	for i := range decode16 {
		decode16[i] = uint16(math.Round(decodeSRGB(float64(i)/255) * 0xffff))
	}
	const top = 1<<linearBits - 1
	for i := range encode {
		encode[i] = uint8(math.Round(encodeSRGB(float64(i)/top) * 255))
	}
}

// decodeSRGB is the sRGB electro-optical transfer function on [0,1].
func decodeSRGB(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// encodeSRGB is the inverse of decodeSRGB on [0,1].
func encodeSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

// SRGBToLinear16 converts an sRGB byte to 16-bit linear light.
// 8 bits are not enough to hold dark linear values without banding.
func SRGBToLinear16(s uint8) uint16 {
	return decode16[s]
}

// Linear16ToSRGB converts 16-bit linear light to an sRGB byte.
func Linear16ToSRGB(l uint16) uint8 {
	const top = 1<<linearBits - 1
	return encode[(uint32(l)*top+0x7fff)/0xffff]
}

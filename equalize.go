package imgedit

import icolor "github.com/gogpu/imgedit/internal/color"

// EqualizeFromHistogram derives an Equalize that stretches the luma range
// of pm to [0, 1]. clip is the fraction of pixels, in [0, 0.5), allowed to
// fall outside the range at each end.
//
// Fully transparent pixels are ignored. An image without visible pixels
// yields Equalize{Dark: 0, Bright: 255}.
func EqualizeFromHistogram(pm *Pixmap, clip float64) Equalize {
	var hist [256]int
	total := 0
	data := pm.Data()
	for i := 0; i < len(data); i += 4 {
		if data[i+3] == 0 {
			continue
		}
		px := pixelFromRGBA8(data[i : i+4])
		hist[icolor.ToByte(icolor.Luma(px[0], px[1], px[2]))]++
		total++
	}
	if total == 0 {
		return Equalize{Dark: 0, Bright: 255}
	}

	clip = min(max(clip, 0), 0.499)
	limit := int(clip * float64(total))

	dark, seen := 0, 0
	for ; dark < 255; dark++ {
		seen += hist[dark]
		if seen > limit {
			break
		}
	}
	bright, seen := 255, 0
	for ; bright > 0; bright-- {
		seen += hist[bright]
		if seen > limit {
			break
		}
	}
	if bright < dark {
		bright = dark
	}
	return Equalize{Dark: dark, Bright: bright}
}

// Package blend provides the compositing used when stroke stamps are
// painted onto a buffer. Colors are straight (non-premultiplied) alpha,
// which is what the edit pipeline stores.
package blend

// sourceOver blends source over destination using alpha compositing.
func sourceOver(src, dst [4]float32) [4]float32 {
	srcA := src[3]
	dstA := dst[3]
	invSrcA := 1 - srcA

	outA := srcA + dstA*invSrcA
	if outA <= 0 {
		return [4]float32{}
	}

	return [4]float32{
		(src[0]*srcA + dst[0]*dstA*invSrcA) / outA,
		(src[1]*srcA + dst[1]*dstA*invSrcA) / outA,
		(src[2]*srcA + dst[2]*dstA*invSrcA) / outA,
		outA,
	}
}

// SourceOverRGBA8 composites a straight-alpha source color in [0,1] over
// the 4-byte RGBA8 pixel px, in place.
func SourceOverRGBA8(px []byte, src [4]float32) {
	if src[3] <= 0 {
		return
	}
	dst := [4]float32{
		float32(px[0]) / 255,
		float32(px[1]) / 255,
		float32(px[2]) / 255,
		float32(px[3]) / 255,
	}
	out := sourceOver(src, dst)
	for i := range 4 {
		px[i] = toByte(out[i])
	}
}

func toByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}

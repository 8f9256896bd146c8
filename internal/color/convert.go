package color

// ToByte clamps v to [0,1] and maps it to [0,255] with rounding. NaN maps
// to 0.
func ToByte(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}

package imgedit

import "image"

// CropScale is the fixed-point denominator of crop insets: an inset of
// CropScale removes the whole dimension.
const CropScale = 10000

// Crop removes margins from each edge. Insets are left, top, right and
// bottom, each a fraction of the image width or height times CropScale.
//
// Crop{} is a no-op and is skipped by the engine.
type Crop struct {
	Insets [4]uint32
}

func (Crop) Kind() string { return "crop" }
func (Crop) isOperation() {}

// IsZero reports whether the crop removes nothing.
func (o Crop) IsZero() bool {
	return o.Insets == [4]uint32{}
}

// ApplyImage crops pm to CroppedRange. A crop that would leave nothing
// keeps the image as is.
func (o Crop) ApplyImage(pm *Pixmap) error {
	if o.IsZero() {
		return nil
	}
	r := CroppedRange(o.Insets, pm.Width(), pm.Height())
	if r.Empty() {
		// Nothing would be left; keep the image rather than produce 0x0.
		return nil
	}
	pm.replace(pm.SubImage(r))
	return nil
}

// CroppedRange converts crop insets into the absolute window they leave
// inside a width x height image. The result always lies within the image
// and may be empty when opposite insets overlap.
func CroppedRange(insets [4]uint32, width, height int) image.Rectangle {
	l, t, r, b := insetFrac(insets[0]), insetFrac(insets[1]), insetFrac(insets[2]), insetFrac(insets[3])

	left := scaleInset(l, width)
	top := scaleInset(t, height)
	w := scaleInset(max(0, CropScale-l-r), width)
	h := scaleInset(max(0, CropScale-t-b), height)

	return image.Rect(left, top, left+w, top+h)
}

func insetFrac(v uint32) int64 {
	return int64(min(v, CropScale))
}

func scaleInset(frac int64, dim int) int {
	return int(frac * int64(max(dim, 0)) / CropScale)
}

package imgedit

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Operation is one non-destructive edit. It is pure parameter data; the
// engine interprets it with [ApplyPixel] or [ApplyImage].
//
// The set of operations is closed: every Operation is either a
// [PixelOperation] or an [ImageOperation], never both, and that
// classification decides which stack the operation lives on.
type Operation interface {
	// Kind returns the stable tag used for persistence, e.g. "brightness".
	Kind() string

	isOperation()
}

// PixelOperation is an operation whose output for one pixel depends only
// on that pixel. The engine evaluates these in parallel across pixels.
type PixelOperation interface {
	Operation

	// ApplyPixel mutates px in place. pos is the pixel's index in the
	// buffer (y*width + x) and is only used for deterministic noise.
	ApplyPixel(px *Pixel, pos int)
}

// ImageOperation is an operation that needs the whole buffer: it reads
// neighbors or changes the buffer dimensions.
type ImageOperation interface {
	Operation

	// ApplyImage transforms pm in place, possibly changing its size.
	ApplyImage(pm *Pixmap) error
}

// IsPerPixel reports whether op belongs on the pixel stack.
func IsPerPixel(op Operation) bool {
	_, ok := op.(PixelOperation)
	return ok
}

// ApplyPixel applies op to px. Image operations and nil leave px
// unchanged.
func ApplyPixel(op Operation, px *Pixel, pos int) {
	if p, ok := op.(PixelOperation); ok {
		p.ApplyPixel(px, pos)
	}
}

// ApplyImage applies op to pm. Pixel operations are applied to every
// pixel sequentially; the engine runs them in parallel instead.
func ApplyImage(op Operation, pm *Pixmap) error {
	switch o := op.(type) {
	case ImageOperation:
		return o.ApplyImage(pm)
	case PixelOperation:
		data := pm.Data()
		for i := 0; i < len(data); i += 4 {
			px := pixelFromRGBA8(data[i : i+4])
			o.ApplyPixel(&px, i/4)
			px.store(data[i : i+4])
		}
		return nil
	default:
		return ErrUnknownOperation
	}
}

var labelOverrides = map[string]string{
	"hsv":               "HSV",
	"multiply_by_alpha": "Multiply by Alpha",
	"divide_by_alpha":   "Divide by Alpha",
}

// Label returns a human-readable name for op, e.g. "Gradient Map".
func Label(op Operation) string {
	if op == nil {
		return ""
	}
	kind := op.Kind()
	if l, ok := labelOverrides[kind]; ok {
		return l
	}
	// cases.Caser is stateful; build one per call.
	return cases.Title(language.English).String(strings.ReplaceAll(kind, "_", " "))
}

package imgedit

// Option configures an Engine during creation.
//
// Example:
//
//	e := imgedit.NewEngine(
//	    imgedit.WithWorkers(4),
//	    imgedit.WithPaintMode(imgedit.NonDestructive),
//	)
type Option func(*engineOptions)

// DefaultChunkPixels is the number of pixels per parallel work item.
const DefaultChunkPixels = 16 * 1024

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	workers     int
	chunkPixels int
	paintMode   PaintMode
	brushes     *BrushSet
	onWarning   func(error)
}

func defaultOptions() engineOptions {
	return engineOptions{
		workers:     0, // GOMAXPROCS
		chunkPixels: DefaultChunkPixels,
		paintMode:   Destructive,
	}
}

// WithWorkers sets the number of goroutines used by the pixel stage.
// 0 or less uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// WithChunkPixels sets how many pixels one parallel work item covers.
// Values below 1 keep the default.
func WithChunkPixels(n int) Option {
	return func(o *engineOptions) {
		if n > 0 {
			o.chunkPixels = n
		}
	}
}

// WithPaintMode selects destructive or non-destructive painting.
func WithPaintMode(m PaintMode) Option {
	return func(o *engineOptions) {
		o.paintMode = m
	}
}

// WithBrushes sets the brush set strokes are rendered with. Several
// engines may share one set.
func WithBrushes(b *BrushSet) Option {
	return func(o *engineOptions) {
		o.brushes = b
	}
}

// WithWarningHandler registers a callback for image operations that fail
// during a recompute. The callback receives a *GeometryError and runs
// with the engine lock held; it must not call back into the engine.
func WithWarningHandler(fn func(error)) Option {
	return func(o *engineOptions) {
		o.onWarning = fn
	}
}

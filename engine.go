package imgedit

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/imgedit/internal/parallel"
)

// StackKind names one of the engine's two operation stacks.
type StackKind uint8

const (
	// GeometryStack holds image operations. It is replayed from the
	// source on every change.
	GeometryStack StackKind = iota

	// PixelStack holds pixel operations. It is replayed, in parallel,
	// on top of the geometry result.
	PixelStack
)

// String returns "geometry" or "pixel".
func (k StackKind) String() string {
	if k == PixelStack {
		return "pixel"
	}
	return "geometry"
}

// KindOf returns the stack op belongs on.
func KindOf(op Operation) StackKind {
	if IsPerPixel(op) {
		return PixelStack
	}
	return GeometryStack
}

// Engine applies two operation stacks and a list of paint strokes to a
// source image without modifying it.
//
// Results are computed lazily by Result in three stages, each cached:
//
//	source -> geometry stack -> geometry result
//	       -> pixel stack (parallel) -> pixel result
//	       -> uncommitted strokes -> final image
//
// A change invalidates its own stage and everything after it.
//
// Engine is safe for concurrent use. One lock serializes edits and
// recomputes, so at most one recompute is in flight.
type Engine struct {
	mu    sync.Mutex
	opts  engineOptions
	pool  *parallel.WorkerPool
	paint *PaintEngine

	source   *Pixmap
	geometry OperationStack
	pixel    OperationStack

	geoResult *Pixmap
	pixResult *Pixmap
	final     *Pixmap

	geoDirty     bool
	pixDirty     bool
	strokesDirty bool

	warnings []error
}

// NewEngine creates an engine with no source image.
// Call Close to release its worker goroutines.
func NewEngine(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		opts:  o,
		pool:  parallel.NewWorkerPool(o.workers),
		paint: NewPaintEngine(o.paintMode, o.brushes),
	}
}

// Close stops the worker pool. Result keeps working after Close but runs
// the pixel stage on the calling goroutine.
func (e *Engine) Close() {
	e.pool.Close()
}

// Load sets a new source image. The engine keeps its own copy. The stacks
// and strokes are kept; every cached result is discarded. A nil src
// unloads the source.
func (e *Engine) Load(src *Pixmap) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.discardResults()
	if src == nil {
		e.source = nil
		return
	}
	e.source = src.Clone()
	Logger().Info("imgedit: source loaded",
		"width", src.Width(), "height", src.Height(),
		"geometry_ops", e.geometry.Len(), "pixel_ops", e.pixel.Len())
}

// Source returns the source image. It must not be modified.
func (e *Engine) Source() *Pixmap {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source
}

// Push appends op to the stack it belongs on and returns that stack.
func (e *Engine) Push(op Operation) (StackKind, error) {
	if op == nil {
		return 0, ErrUnknownOperation
	}
	kind := KindOf(op)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stack(kind).Push(op)
	e.invalidate(kind)
	Logger().Debug("imgedit: push", "stack", kind, "op", op.Kind())
	return kind, nil
}

// Remove deletes entry i of the given stack.
func (e *Engine) Remove(kind StackKind, i int) bool {
	return e.edit(kind, "remove", func(s *OperationStack) bool { return s.Remove(i) })
}

// Swap exchanges entries i and j of the given stack.
func (e *Engine) Swap(kind StackKind, i, j int) bool {
	return e.edit(kind, "swap", func(s *OperationStack) bool { return s.Swap(i, j) })
}

// MoveUp moves entry i one place earlier in the given stack.
func (e *Engine) MoveUp(kind StackKind, i int) bool {
	return e.edit(kind, "move up", func(s *OperationStack) bool { return s.MoveUp(i) })
}

// MoveDown moves entry i one place later in the given stack.
func (e *Engine) MoveDown(kind StackKind, i int) bool {
	return e.edit(kind, "move down", func(s *OperationStack) bool { return s.MoveDown(i) })
}

// SetActive enables or disables entry i of the given stack.
func (e *Engine) SetActive(kind StackKind, i int, active bool) bool {
	return e.edit(kind, "set active", func(s *OperationStack) bool { return s.SetActive(i, active) })
}

// Replace swaps the operation at entry i for op. op must belong on the
// same stack.
func (e *Engine) Replace(kind StackKind, i int, op Operation) bool {
	if op == nil || KindOf(op) != kind {
		return false
	}
	return e.edit(kind, "replace", func(s *OperationStack) bool { return s.Replace(i, op) })
}

func (e *Engine) edit(kind StackKind, name string, fn func(*OperationStack) bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !fn(e.stack(kind)) {
		return false
	}
	e.invalidate(kind)
	Logger().Debug("imgedit: "+name, "stack", kind)
	return true
}

// Entries returns a copy of the given stack.
func (e *Engine) Entries(kind StackKind) []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stack(kind).Entries()
}

// ClearAll removes every operation and stroke and discards the cached
// results. The source image is kept.
func (e *Engine) ClearAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.geometry.Clear()
	e.pixel.Clear()
	e.paint.Clear()
	e.discardResults()
	Logger().Debug("imgedit: cleared all edits")
}

// ApplyAll makes the current final image, strokes included, the new
// source, and clears both stacks and all strokes.
func (e *Engine) ApplyAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	final, _ := e.result()
	if final == nil {
		return
	}
	e.source = final.Clone()
	e.geometry.Clear()
	e.pixel.Clear()
	e.paint.Clear()
	e.discardResults()
	Logger().Info("imgedit: edits applied", "width", e.source.Width(), "height", e.source.Height())
}

// Result returns the edited image, recomputing whatever is stale.
// changed reports whether the image differs from the one returned by the
// previous call. The image is owned by the engine: it must not be
// modified and is only valid until the next call that edits the engine.
//
// Result returns nil before a source is loaded.
func (e *Engine) Result() (img *Pixmap, changed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result()
}

// Warnings returns the image operations that failed during the latest
// geometry recompute, as *GeometryError values.
func (e *Engine) Warnings() []error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.warnings)
}

func (e *Engine) result() (*Pixmap, bool) {
	if e.source == nil {
		return nil, false
	}
	changed := false

	if e.geoDirty || e.geoResult == nil {
		e.recomputeGeometry()
		e.geoDirty = false
		e.pixDirty = true
	}

	if n := e.paint.Commit(e.geoResult); n > 0 {
		Logger().Debug("imgedit: strokes committed", "count", n)
		e.pixDirty = true
	}

	if e.pixDirty || e.pixResult == nil {
		e.recomputePixels()
		e.pixDirty = false
		e.strokesDirty = true
	}

	if e.strokesDirty || e.final == nil {
		if e.paint.hasPending() {
			e.final = e.pixResult.Clone()
			e.paint.Composite(e.final)
		} else {
			e.final = e.pixResult
		}
		e.strokesDirty = false
		changed = true
	}
	return e.final, changed
}

func (e *Engine) recomputeGeometry() {
	start := time.Now()
	pm := e.source.Clone()
	e.warnings = e.warnings[:0]

	for i, entry := range e.geometry.entries {
		if !entry.Active {
			continue
		}
		if err := applyGeometry(entry.Op, pm); err != nil {
			gerr := &GeometryError{Index: i, Op: entry.Op, Err: err}
			e.warnings = append(e.warnings, gerr)
			Logger().Warn("imgedit: geometry operation skipped",
				"index", i, "op", entry.Op.Kind(), "err", err)
			if e.opts.onWarning != nil {
				e.opts.onWarning(gerr)
			}
		}
	}
	e.paint.RenderCommitted(pm)
	e.geoResult = pm

	Logger().Debug("imgedit: geometry recomputed",
		"ops", e.geometry.Len(), "width", pm.Width(), "height", pm.Height(),
		"elapsed", time.Since(start))
}

// applyGeometry runs one image operation on a scratch copy and keeps the
// result only on success, so a failing operation leaves pm untouched.
func applyGeometry(op Operation, pm *Pixmap) (err error) {
	img, ok := op.(ImageOperation)
	if !ok {
		return fmt.Errorf("%w: %T on the geometry stack", ErrUnknownOperation, op)
	}
	if c, ok := op.(Crop); ok && c.IsZero() {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("imgedit: %s panicked: %v", op.Kind(), r)
		}
	}()

	scratch := pm.Clone()
	if err := img.ApplyImage(scratch); err != nil {
		return err
	}
	pm.replace(scratch)
	return nil
}

func (e *Engine) recomputePixels() {
	start := time.Now()
	out := e.geoResult.Clone()

	ops := e.pixel.active()
	fns := make([]func(*Pixel, int), 0, len(ops))
	for _, op := range ops {
		if fn := pixelFunc(op); fn != nil {
			fns = append(fns, fn)
		}
	}

	if len(fns) > 0 {
		data := out.Data()
		e.pool.ForEachChunk(len(data)/4, e.opts.chunkPixels, func(lo, hi int) {
			for p := lo; p < hi; p++ {
				b := data[p*4 : p*4+4]
				px := pixelFromRGBA8(b)
				for _, fn := range fns {
					fn(&px, p)
				}
				px.store(b)
			}
		})
	}
	e.pixResult = out

	Logger().Debug("imgedit: pixels recomputed",
		"ops", len(fns), "pixels", out.Width()*out.Height(), "elapsed", time.Since(start))
}

// pixelFunc returns the per-pixel function of op, or nil if op is not a
// pixel operation.
func pixelFunc(op Operation) func(*Pixel, int) {
	switch o := op.(type) {
	case Expression:
		return o.bind()
	case PixelOperation:
		return o.ApplyPixel
	}
	return nil
}

func (e *Engine) stack(kind StackKind) *OperationStack {
	if kind == PixelStack {
		return &e.pixel
	}
	return &e.geometry
}

func (e *Engine) invalidate(kind StackKind) {
	if kind == GeometryStack {
		e.geoDirty = true
	}
	e.pixDirty = true
}

func (e *Engine) discardResults() {
	e.geoResult, e.pixResult, e.final = nil, nil, nil
	e.geoDirty, e.pixDirty, e.strokesDirty = true, true, true
	e.warnings = nil
}

// Paint strokes.

// PaintMode returns the paint mode.
func (e *Engine) PaintMode() PaintMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paint.Mode()
}

// SetPaintMode switches between destructive and non-destructive painting.
func (e *Engine) SetPaintMode(m PaintMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paint.SetMode(m)
	e.strokesDirty = true
}

// Brushes returns the brush set strokes are rendered with.
func (e *Engine) Brushes() *BrushSet {
	return e.paint.Brushes()
}

// StrokeStyle returns the style of new strokes.
func (e *Engine) StrokeStyle() StrokeStyle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paint.Style()
}

// SetStrokeStyle sets the style of new strokes.
func (e *Engine) SetStrokeStyle(s StrokeStyle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paint.SetStyle(s)
	e.strokesDirty = true
}

// AddPoint extends the stroke in progress with a point in normalized
// image coordinates.
func (e *Engine) AddPoint(p Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paint.AddPoint(p)
	e.strokesDirty = true
}

// ReleaseStroke finishes the stroke in progress.
func (e *Engine) ReleaseStroke() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paint.Release()
}

// Strokes returns a copy of the stroke list.
func (e *Engine) Strokes() []PaintStroke {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paint.Strokes()
}

// SetStrokeHighlight toggles display highlighting of stroke i.
func (e *Engine) SetStrokeHighlight(i int, on bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.paint.SetHighlight(i, on) {
		return false
	}
	e.strokesDirty = true
	return true
}

// RemoveStroke deletes stroke i. Removing a committed stroke rebuilds the
// geometry result.
func (e *Engine) RemoveStroke(i int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.paint.RemoveStroke(i)
	if !ok {
		return false
	}
	if s.Committed {
		e.geoDirty = true
	}
	e.strokesDirty = true
	return true
}

// ClearStrokes removes every stroke.
func (e *Engine) ClearStrokes() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.paint.Clear() {
		e.geoDirty = true
	}
	e.strokesDirty = true
}

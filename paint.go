package imgedit

import (
	"fmt"
	"slices"

	"github.com/chewxy/math32"

	"github.com/gogpu/imgedit/internal/blend"
)

// PaintMode selects how finished strokes are kept.
type PaintMode uint8

const (
	// Destructive bakes every stroke but the newest into the base image,
	// so each frame only replays one stroke.
	Destructive PaintMode = iota

	// NonDestructive keeps every stroke separate and replays all of them
	// on top of the edited image.
	NonDestructive
)

// String returns "destructive" or "non-destructive".
func (m PaintMode) String() string {
	switch m {
	case Destructive:
		return "destructive"
	case NonDestructive:
		return "non-destructive"
	}
	return fmt.Sprintf("PaintMode(%d)", m)
}

// MarshalText implements encoding.TextMarshaler.
func (m PaintMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *PaintMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "destructive", "":
		*m = Destructive
	case "non-destructive", "nondestructive":
		*m = NonDestructive
	default:
		return fmt.Errorf("imgedit: unknown paint mode %q", text)
	}
	return nil
}

// Point is a stroke position in normalized image space: (0, 0) is the
// top-left corner and (1, 1) the bottom-right.
type Point struct {
	U float32 `yaml:"u"`
	V float32 `yaml:"v"`
}

// StrokeStyle is the part of a stroke a new stroke inherits.
type StrokeStyle struct {
	// Color is straight-alpha RGBA in [0, 1].
	Color [4]float32 `yaml:"color"`

	// Width is the brush diameter as a fraction of the smaller image
	// dimension.
	Width float32 `yaml:"width"`

	// Brush indexes the engine's BrushSet.
	Brush int `yaml:"brush"`

	// Fade makes later stamps of the stroke more transparent.
	Fade bool `yaml:"fade"`

	// Flip mirrors stamps pseudo-randomly, seeded by stamp position.
	Flip bool `yaml:"flip"`
}

// DefaultStrokeStyle is opaque black with the soft round brush at 2% of the
// smaller image dimension.
var DefaultStrokeStyle = StrokeStyle{
	Color: [4]float32{0, 0, 0, 1},
	Width: 0.02,
	Brush: BrushSoftRound,
}

// PaintStroke is one freehand stroke.
type PaintStroke struct {
	StrokeStyle `yaml:",inline"`

	Points []Point `yaml:"points"`

	// Committed strokes have been baked into the base image.
	Committed bool `yaml:"committed"`

	// Highlight brightens the stroke for display. It is not persisted.
	Highlight bool `yaml:"-"`
}

// PaintEngine keeps the stroke list. The last stroke is the one receiving
// points; releasing it starts a new empty stroke with the same style.
//
// PaintEngine is not safe for concurrent use; the Engine serializes
// access.
type PaintEngine struct {
	mode    PaintMode
	style   StrokeStyle
	strokes []PaintStroke
	brushes *BrushSet
	open    bool
}

// NewPaintEngine creates a paint engine. A nil brushes uses NewBrushSet(0).
func NewPaintEngine(mode PaintMode, brushes *BrushSet) *PaintEngine {
	if brushes == nil {
		brushes = NewBrushSet(0)
	}
	return &PaintEngine{mode: mode, style: DefaultStrokeStyle, brushes: brushes}
}

// Mode returns the paint mode.
func (pe *PaintEngine) Mode() PaintMode { return pe.mode }

// SetMode changes the paint mode. Already committed strokes stay baked.
func (pe *PaintEngine) SetMode(m PaintMode) { pe.mode = m }

// Brushes returns the engine's brush set.
func (pe *PaintEngine) Brushes() *BrushSet { return pe.brushes }

// Style returns the style new strokes receive.
func (pe *PaintEngine) Style() StrokeStyle { return pe.style }

// SetStyle changes the style of new strokes. A stroke that has no points
// yet adopts it immediately.
func (pe *PaintEngine) SetStyle(s StrokeStyle) {
	pe.style = s
	if n := len(pe.strokes); n > 0 && len(pe.strokes[n-1].Points) == 0 {
		pe.strokes[n-1].StrokeStyle = s
	}
}

// AddPoint appends p to the stroke in progress, starting one if needed.
func (pe *PaintEngine) AddPoint(p Point) {
	if n := len(pe.strokes); n == 0 || !pe.open && len(pe.strokes[n-1].Points) > 0 {
		pe.strokes = append(pe.strokes, PaintStroke{StrokeStyle: pe.style})
	}
	pe.open = true
	last := &pe.strokes[len(pe.strokes)-1]
	last.Points = append(last.Points, p)
}

// Release ends the stroke in progress and starts an empty one that
// inherits its style. It reports whether a stroke was ended.
func (pe *PaintEngine) Release() bool {
	n := len(pe.strokes)
	if !pe.open || n == 0 {
		return false
	}
	pe.open = false
	pe.strokes = append(pe.strokes, PaintStroke{StrokeStyle: pe.strokes[n-1].StrokeStyle})
	return true
}

// Strokes returns a copy of the stroke list.
func (pe *PaintEngine) Strokes() []PaintStroke {
	out := slices.Clone(pe.strokes)
	for i := range out {
		out[i].Points = slices.Clone(out[i].Points)
	}
	return out
}

// SetHighlight toggles display highlighting of stroke i.
func (pe *PaintEngine) SetHighlight(i int, on bool) bool {
	if i < 0 || i >= len(pe.strokes) || pe.strokes[i].Highlight == on {
		return false
	}
	pe.strokes[i].Highlight = on
	return true
}

// RemoveStroke deletes stroke i. The caller must rebuild the base image
// if the stroke was committed.
func (pe *PaintEngine) RemoveStroke(i int) (PaintStroke, bool) {
	if i < 0 || i >= len(pe.strokes) {
		return PaintStroke{}, false
	}
	s := pe.strokes[i]
	pe.strokes = slices.Delete(pe.strokes, i, i+1)
	if i == len(pe.strokes) {
		pe.open = false
	}
	return s, true
}

// Clear removes every stroke and reports whether any was committed.
func (pe *PaintEngine) Clear() (hadCommitted bool) {
	for _, s := range pe.strokes {
		hadCommitted = hadCommitted || s.Committed
	}
	pe.strokes = nil
	pe.open = false
	return hadCommitted
}

// restore replaces the stroke list, closing any stroke in progress.
func (pe *PaintEngine) restore(strokes []PaintStroke) {
	pe.strokes = slices.Clone(strokes)
	pe.open = false
}

// hasPending reports whether any uncommitted stroke has points.
func (pe *PaintEngine) hasPending() bool {
	for _, s := range pe.strokes {
		if !s.Committed && len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// Commit bakes every uncommitted stroke except the newest into base and
// reports how many were baked. It does nothing in NonDestructive mode.
func (pe *PaintEngine) Commit(base *Pixmap) int {
	if pe.mode != Destructive || len(pe.strokes) < 2 {
		return 0
	}
	n := 0
	for i := range pe.strokes[:len(pe.strokes)-1] {
		s := &pe.strokes[i]
		if s.Committed {
			continue
		}
		pe.Render(*s, base)
		s.Committed = true
		n++
	}
	return n
}

// RenderCommitted replays committed strokes onto base, in order. Used
// after the base image was rebuilt from the source.
func (pe *PaintEngine) RenderCommitted(base *Pixmap) {
	for _, s := range pe.strokes {
		if s.Committed {
			pe.Render(s, base)
		}
	}
}

// Composite renders every uncommitted stroke onto dst, in order.
func (pe *PaintEngine) Composite(dst *Pixmap) {
	for _, s := range pe.strokes {
		if !s.Committed {
			pe.Render(s, dst)
		}
	}
}

// Render stamps one stroke onto dst.
func (pe *PaintEngine) Render(s PaintStroke, dst *Pixmap) {
	if len(s.Points) == 0 || dst.Empty() {
		return
	}
	w, h := float32(dst.Width()), float32(dst.Height())
	diameter := max(1, int(math32.Round(s.Width*min(w, h))))
	brush := pe.brushes.Scaled(s.Brush, diameter)

	spacing := max(float32(diameter)/4, 1.5)
	stamps := stampPositions(s.Points, w, h, spacing)

	half := float32(diameter) / 2
	for i, p := range stamps {
		c := s.Color
		if s.Fade {
			c[3] *= 1 - float32(i)/float32(len(stamps))
		}
		if s.Highlight {
			for k := range c {
				c[k] *= 2.5
			}
		}
		x0 := int(math32.Round(p.U - half))
		y0 := int(math32.Round(p.V - half))
		var flipH, flipV bool
		if s.Flip {
			flipH, flipV = stampFlips(int(math32.Round(p.U)), int(math32.Round(p.V)))
		}
		stamp(dst, brush, x0, y0, c, flipH, flipV)
	}
}

// stampPositions resamples a stroke path into pixel positions spaced
// evenly along its length, starting at the first point.
func stampPositions(points []Point, w, h, spacing float32) []Point {
	abs := func(p Point) Point { return Point{p.U * w, p.V * h} }

	prev := abs(points[0])
	out := []Point{prev}
	// carry is the path length walked since the last stamp.
	var carry float32
	for _, q := range points[1:] {
		next := abs(q)
		dx, dy := next.U-prev.U, next.V-prev.V
		seg := math32.Sqrt(dx*dx + dy*dy)
		if seg == 0 {
			continue
		}
		t := spacing - carry
		for t <= seg {
			out = append(out, Point{prev.U + dx*t/seg, prev.V + dy*t/seg})
			t += spacing
		}
		carry = seg - (t - spacing)
		prev = next
	}
	return out
}

// stampFlips derives the flips of a stamp from its rounded position, so a
// stroke renders identically every time.
func stampFlips(x, y int) (h, v bool) {
	r := unitNoise(uint64(uint32(x))<<32 | uint64(uint32(y)))
	bits := int(r * 4)
	return bits&1 != 0, bits&2 != 0
}

// stamp composites brush at (x0, y0) onto dst, tinted by c. Brush pixels
// outside dst are skipped.
func stamp(dst, brush *Pixmap, x0, y0 int, c [4]float32, flipH, flipV bool) {
	bw, bh := brush.Width(), brush.Height()
	dw, dh := dst.Width(), dst.Height()
	bdata, ddata := brush.Data(), dst.Data()

	for by := range bh {
		y := y0 + by
		if y < 0 || y >= dh {
			continue
		}
		sy := by
		if flipV {
			sy = bh - 1 - by
		}
		for bx := range bw {
			x := x0 + bx
			if x < 0 || x >= dw {
				continue
			}
			sx := bx
			if flipH {
				sx = bw - 1 - bx
			}
			b := bdata[(sy*bw+sx)*4:][:4]
			if b[3] == 0 {
				continue
			}
			src := [4]float32{
				clampUnit(c[0] * float32(b[0]) / 255),
				clampUnit(c[1] * float32(b[1]) / 255),
				clampUnit(c[2] * float32(b[2]) / 255),
				clampUnit(c[3] * float32(b[3]) / 255),
			}
			blend.SourceOverRGBA8(ddata[(y*dw+x)*4:][:4], src)
		}
	}
}

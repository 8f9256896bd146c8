package imgedit

import (
	"slices"

	icolor "github.com/gogpu/imgedit/internal/color"
)

// GradientStop anchors a color at a luma position in [0, 255].
// ID identifies the stop across edits; it carries no meaning for
// rendering.
type GradientStop struct {
	ID       int
	Position uint8
	Color    [3]uint8
}

// GradientMap maps each pixel's luma through a piecewise-linear color
// ramp. Stops are kept sorted by position; equal positions produce a hard
// step. A map needs at least two stops to be edited through RemoveStop.
type GradientMap struct {
	Stops []GradientStop
}

// NewGradientMap returns a map over the given stops, sorted by position.
// Stops with a zero ID are numbered after the largest ID present.
func NewGradientMap(stops ...GradientStop) GradientMap {
	g := GradientMap{Stops: slices.Clone(stops)}
	next := g.nextID()
	for i := range g.Stops {
		if g.Stops[i].ID == 0 {
			g.Stops[i].ID = next
			next++
		}
	}
	g.sort()
	return g
}

func (GradientMap) Kind() string { return "gradient_map" }
func (GradientMap) isOperation() {}

// ApplyPixel replaces R, G and B with the gradient sampled at the
// pixel's luma. Alpha is kept.
func (g GradientMap) ApplyPixel(px *Pixel, _ int) {
	if len(g.Stops) == 0 {
		return
	}
	l := icolor.Luma(px[0], px[1], px[2])
	c := g.sample(l * 255)
	px[0], px[1], px[2] = c[0], c[1], c[2]
}

// sample returns the ramp color at position t in [0, 255].
func (g GradientMap) sample(t float32) [3]float32 {
	stops := g.Stops
	first, last := stops[0], stops[len(stops)-1]
	if t <= float32(first.Position) {
		return stopColor(first)
	}
	if t >= float32(last.Position) {
		return stopColor(last)
	}

	// hi is the first stop strictly past t, so hi.Position > lo.Position.
	hi := 1
	for float32(stops[hi].Position) <= t {
		hi++
	}
	lo := stops[hi-1]
	up := stops[hi]
	f := (t - float32(lo.Position)) / float32(up.Position-lo.Position)

	a, b := stopColor(lo), stopColor(up)
	return [3]float32{
		a[0] + (b[0]-a[0])*f,
		a[1] + (b[1]-a[1])*f,
		a[2] + (b[2]-a[2])*f,
	}
}

func stopColor(s GradientStop) [3]float32 {
	return [3]float32{
		float32(s.Color[0]) / 255,
		float32(s.Color[1]) / 255,
		float32(s.Color[2]) / 255,
	}
}

// AddStop inserts a stop and returns its ID.
func (g *GradientMap) AddStop(position uint8, color [3]uint8) int {
	id := g.nextID()
	g.Stops = append(slices.Clone(g.Stops), GradientStop{ID: id, Position: position, Color: color})
	g.sort()
	return id
}

// RemoveStop deletes the stop with the given ID. It refuses to leave
// fewer than two stops and reports whether a stop was removed.
func (g *GradientMap) RemoveStop(id int) bool {
	if len(g.Stops) <= 2 {
		return false
	}
	i := g.index(id)
	if i < 0 {
		return false
	}
	g.Stops = slices.Delete(slices.Clone(g.Stops), i, i+1)
	return true
}

// MoveStop changes the position of the stop with the given ID.
func (g *GradientMap) MoveStop(id int, position uint8) bool {
	i := g.index(id)
	if i < 0 {
		return false
	}
	g.Stops = slices.Clone(g.Stops)
	g.Stops[i].Position = position
	g.sort()
	return true
}

// SetStopColor recolors the stop with the given ID.
func (g *GradientMap) SetStopColor(id int, color [3]uint8) bool {
	i := g.index(id)
	if i < 0 {
		return false
	}
	g.Stops = slices.Clone(g.Stops)
	g.Stops[i].Color = color
	return true
}

func (g *GradientMap) index(id int) int {
	return slices.IndexFunc(g.Stops, func(s GradientStop) bool { return s.ID == id })
}

func (g *GradientMap) nextID() int {
	next := 1
	for _, s := range g.Stops {
		next = max(next, s.ID+1)
	}
	return next
}

func (g *GradientMap) sort() {
	slices.SortStableFunc(g.Stops, func(a, b GradientStop) int {
		return int(a.Position) - int(b.Position)
	})
}

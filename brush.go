package imgedit

import (
	"image"
	"sync"

	"github.com/chewxy/math32"
	"github.com/nfnt/resize"

	"github.com/gogpu/imgedit/internal/cache"
	icolor "github.com/gogpu/imgedit/internal/color"
)

// Brush is a named square raster stamped along paint strokes. Its alpha
// is the coverage mask and its RGB tints the stroke color.
type Brush struct {
	Name  string
	Image *Pixmap
}

// Built-in brush indices in a set created by NewBrushSet.
const (
	BrushSoftRound = iota
	BrushHardRound
	BrushSquare
	BrushSpeckle
)

// brushResolution is the edge length of the built-in brush rasters.
const brushResolution = 128

// DefaultBrushCacheSize is the number of scaled brush rasters kept.
const DefaultBrushCacheSize = 32

type scaledKey struct {
	index    int
	diameter int
}

// BrushSet holds the brushes a PaintEngine can stamp with, and caches
// their rasters scaled to the sizes strokes ask for.
//
// BrushSet is safe for concurrent use.
type BrushSet struct {
	mu      sync.RWMutex
	brushes []Brush
	scaled  *cache.Cache[scaledKey, *Pixmap]
}

// NewBrushSet returns a set holding the built-in brushes. cacheSize bounds
// the scaled-raster cache; 0 selects DefaultBrushCacheSize.
func NewBrushSet(cacheSize int) *BrushSet {
	if cacheSize <= 0 {
		cacheSize = DefaultBrushCacheSize
	}
	return &BrushSet{
		brushes: []Brush{
			{Name: "soft round", Image: proceduralBrush(softRound)},
			{Name: "hard round", Image: proceduralBrush(hardRound)},
			{Name: "square", Image: proceduralBrush(square)},
			{Name: "speckle", Image: proceduralBrush(speckle)},
		},
		scaled: cache.New[scaledKey, *Pixmap](cacheSize),
	}
}

// Add registers a brush from any image and returns its index.
func (s *BrushSet) Add(name string, img image.Image) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brushes = append(s.brushes, Brush{Name: name, Image: FromImage(img)})
	return len(s.brushes) - 1
}

// Len returns the number of brushes.
func (s *BrushSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.brushes)
}

// Name returns the name of brush i, or "" if there is none.
func (s *BrushSet) Name(i int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.brushes) {
		return ""
	}
	return s.brushes[i].Name
}

// Scaled returns brush i resized to diameter x diameter. Unknown indices
// fall back to the soft round brush. The result is shared and must not be
// modified.
func (s *BrushSet) Scaled(i, diameter int) *Pixmap {
	diameter = max(diameter, 1)

	s.mu.RLock()
	if i < 0 || i >= len(s.brushes) {
		i = 0
	}
	src := s.brushes[i].Image
	s.mu.RUnlock()

	return s.scaled.GetOrCreate(scaledKey{i, diameter}, func() *Pixmap {
		if src.Width() == diameter && src.Height() == diameter {
			return src
		}
		out := resize.Resize(uint(diameter), uint(diameter), src.ToImage(), resize.Lanczos3)
		return FromImage(out)
	})
}

// proceduralBrush renders a white brush whose alpha is shape(dx, dy), with
// dx and dy in [-1, 1] across the raster.
func proceduralBrush(shape func(dx, dy float32, i int) float32) *Pixmap {
	const n = brushResolution
	pm := NewPixmap(n, n)
	data := pm.Data()
	for y := range n {
		for x := range n {
			i := y*n + x
			dx := (float32(x)+0.5)/n*2 - 1
			dy := (float32(y)+0.5)/n*2 - 1
			a := shape(dx, dy, i)
			px := data[i*4 : i*4+4]
			px[0], px[1], px[2] = 255, 255, 255
			px[3] = icolor.ToByte(a)
		}
	}
	return pm
}

func softRound(dx, dy float32, _ int) float32 {
	d := math32.Sqrt(dx*dx + dy*dy)
	if d >= 1 {
		return 0
	}
	// smoothstep falloff from the center
	t := 1 - d
	return t * t * (3 - 2*t)
}

func hardRound(dx, dy float32, _ int) float32 {
	d := math32.Sqrt(dx*dx + dy*dy)
	// one raster pixel of antialiasing at the rim
	const edge = 2.0 / brushResolution
	return clampUnit((1 - d) / edge)
}

func square(float32, float32, int) float32 {
	return 1
}

func speckle(dx, dy float32, i int) float32 {
	if dx*dx+dy*dy >= 1 || unitNoise(uint64(i)^0x5eed) < 0.85 {
		return 0
	}
	return 1
}

func clampUnit(v float32) float32 {
	return min(max(v, 0), 1)
}

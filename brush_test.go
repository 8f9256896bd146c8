package imgedit

import (
	"image"
	"image/color"
	"testing"
)

func TestBuiltinBrushes(t *testing.T) {
	bs := NewBrushSet(0)
	want := []string{"soft round", "hard round", "square", "speckle"}
	if bs.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", bs.Len(), len(want))
	}
	for i, name := range want {
		if got := bs.Name(i); got != name {
			t.Errorf("Name(%d) = %q, want %q", i, got, name)
		}
	}
	if got := bs.Name(len(want)); got != "" {
		t.Errorf("Name(out of range) = %q, want empty", got)
	}
}

func TestBrushShapes(t *testing.T) {
	bs := NewBrushSet(0)
	const n = brushResolution

	tests := []struct {
		brush          int
		center, corner uint8
	}{
		{BrushSoftRound, 255, 0},
		{BrushHardRound, 255, 0},
		{BrushSquare, 255, 255},
	}
	for _, tt := range tests {
		t.Run(bs.Name(tt.brush), func(t *testing.T) {
			pm := bs.Scaled(tt.brush, n)
			if pm.Width() != n || pm.Height() != n {
				t.Fatalf("size = %dx%d, want %dx%d", pm.Width(), pm.Height(), n, n)
			}
			if got := pm.RGBA8(n/2, n/2).A; absDiff(got, tt.center) > 2 {
				t.Errorf("center alpha = %d, want %d", got, tt.center)
			}
			if got := pm.RGBA8(0, 0).A; got != tt.corner {
				t.Errorf("corner alpha = %d, want %d", got, tt.corner)
			}
		})
	}
}

func TestSpeckleIsSparse(t *testing.T) {
	pm := NewBrushSet(0).Scaled(BrushSpeckle, brushResolution)
	covered := 0
	for y := range pm.Height() {
		for x := range pm.Width() {
			if pm.RGBA8(x, y).A > 0 {
				covered++
			}
		}
	}
	total := pm.Width() * pm.Height()
	if covered == 0 || covered > total/4 {
		t.Errorf("speckle covers %d of %d pixels", covered, total)
	}
}

func TestBrushScaledCache(t *testing.T) {
	bs := NewBrushSet(4)
	a := bs.Scaled(BrushSoftRound, 16)
	if a.Width() != 16 || a.Height() != 16 {
		t.Fatalf("size = %dx%d, want 16x16", a.Width(), a.Height())
	}
	if b := bs.Scaled(BrushSoftRound, 16); b != a {
		t.Error("second Scaled call should hit the cache")
	}
	if c := bs.Scaled(BrushSoftRound, 17); c == a {
		t.Error("different diameter must not share a raster")
	}
	if got := bs.Scaled(BrushSquare, 0); got.Width() != 1 {
		t.Errorf("diameter 0 width = %d, want 1", got.Width())
	}
}

func TestBrushUnknownIndexFallsBack(t *testing.T) {
	bs := NewBrushSet(0)
	want := bs.Scaled(BrushSoftRound, 12)
	for _, i := range []int{-1, 99} {
		if got := bs.Scaled(i, 12); got != want {
			t.Errorf("Scaled(%d) should fall back to the soft round brush", i)
		}
	}
}

func TestBrushAdd(t *testing.T) {
	bs := NewBrushSet(0)
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 200, B: 30, A: 255})
		}
	}
	idx := bs.Add("leaf", img)
	if idx != 4 || bs.Len() != 5 || bs.Name(idx) != "leaf" {
		t.Fatalf("Add = %d, Len = %d, Name = %q", idx, bs.Len(), bs.Name(idx))
	}
	if got := bs.Scaled(idx, 8).RGBA8(3, 3); got != (color.NRGBA{R: 10, G: 200, B: 30, A: 255}) {
		t.Errorf("native-size brush pixel = %v", got)
	}
	if got := bs.Scaled(idx, 4).RGBA8(1, 1); got.A != 255 || absDiff(got.G, 200) > 2 {
		t.Errorf("downscaled brush pixel = %v", got)
	}
}

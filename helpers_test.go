package imgedit

import (
	"image/color"
	"testing"
)

// solidPixmap returns a w x h pixmap filled with c.
func solidPixmap(w, h int, c color.NRGBA) *Pixmap {
	pm := NewPixmap(w, h)
	pm.Fill(c)
	return pm
}

// patternPixmap returns a w x h pixmap whose pixels all differ, so
// geometry bugs show up as mismatches.
func patternPixmap(w, h int) *Pixmap {
	pm := NewPixmap(w, h)
	for y := range h {
		for x := range w {
			pm.SetRGBA8(x, y, color.NRGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: uint8((x*7 + y*13) % 256),
				A: 255,
			})
		}
	}
	return pm
}

func assertSamePixmap(t *testing.T, got, want *Pixmap) {
	t.Helper()
	if got.Width() != want.Width() || got.Height() != want.Height() {
		t.Fatalf("size = %dx%d, want %dx%d", got.Width(), got.Height(), want.Width(), want.Height())
	}
	g, w := got.Data(), want.Data()
	for i := range g {
		if g[i] != w[i] {
			t.Fatalf("byte %d (pixel %d, channel %d) = %d, want %d", i, i/4, i%4, g[i], w[i])
		}
	}
}

func near(a, b, eps float32) bool {
	d := a - b
	return d <= eps && d >= -eps
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

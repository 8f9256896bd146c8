package imgedit

import (
	"runtime"
	"testing"
)

func TestEngineDefaultOptions(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	if e.opts.chunkPixels != DefaultChunkPixels {
		t.Errorf("chunkPixels = %d, want %d", e.opts.chunkPixels, DefaultChunkPixels)
	}
	if e.PaintMode() != Destructive {
		t.Errorf("PaintMode() = %v, want destructive", e.PaintMode())
	}
	if got, want := e.pool.Workers(), runtime.GOMAXPROCS(0); got != want {
		t.Errorf("workers = %d, want %d", got, want)
	}
	if e.Brushes() == nil || e.Brushes().Len() != 4 {
		t.Error("engine should start with the built-in brushes")
	}
}

func TestEngineOptions(t *testing.T) {
	brushes := NewBrushSet(0)
	var warned bool
	e := NewEngine(
		WithWorkers(3),
		WithChunkPixels(512),
		WithPaintMode(NonDestructive),
		WithBrushes(brushes),
		WithWarningHandler(func(error) { warned = true }),
	)
	defer e.Close()

	if e.pool.Workers() != 3 {
		t.Errorf("workers = %d, want 3", e.pool.Workers())
	}
	if e.opts.chunkPixels != 512 {
		t.Errorf("chunkPixels = %d, want 512", e.opts.chunkPixels)
	}
	if e.PaintMode() != NonDestructive {
		t.Errorf("PaintMode() = %v, want non-destructive", e.PaintMode())
	}
	if e.Brushes() != brushes {
		t.Error("WithBrushes should share the given set")
	}
	e.opts.onWarning(nil)
	if !warned {
		t.Error("warning handler not installed")
	}
}

func TestWithChunkPixelsIgnoresNonPositive(t *testing.T) {
	for _, n := range []int{0, -5} {
		e := NewEngine(WithChunkPixels(n))
		if e.opts.chunkPixels != DefaultChunkPixels {
			t.Errorf("WithChunkPixels(%d): chunkPixels = %d, want default", n, e.opts.chunkPixels)
		}
		e.Close()
	}
}

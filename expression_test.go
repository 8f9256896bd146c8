package imgedit

import (
	"sync"
	"testing"
)

func TestExpression(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		in      Pixel
		want    Pixel
	}{
		{"assign constant", "r = 1", Pixel{0, 0.5, 0.5, 1}, Pixel{1, 0.5, 0.5, 1}},
		{"gray", "r = (r + g + b) / 3; g = r; b = r", Pixel{0.3, 0.6, 0.9, 1}, Pixel{0.6, 0.6, 0.6, 1}},
		{"swap via temp channel", "a = r; r = b; b = a; a = 1", Pixel{0.1, 0.2, 0.3, 0.4}, Pixel{0.3, 0.2, 0.1, 1}},
		{"bare expression is ignored", "r * 2", Pixel{0.1, 0.2, 0.3, 0.4}, Pixel{0.1, 0.2, 0.3, 0.4}},
		{"comparison is not assignment", "r == g", Pixel{0.1, 0.2, 0.3, 0.4}, Pixel{0.1, 0.2, 0.3, 0.4}},
		{"conditional", "g = r > 0.5 ? 1 : 0", Pixel{0.7, 0.2, 0.3, 1}, Pixel{0.7, 1, 0.3, 1}},
		{"trailing separator", "b = 0;", Pixel{0.1, 0.2, 0.3, 0.4}, Pixel{0.1, 0.2, 0, 0.4}},
		{"syntax error", "r = (", Pixel{0.1, 0.2, 0.3, 0.4}, Pixel{0.1, 0.2, 0.3, 0.4}},
		{"unknown variable", "r = x", Pixel{0.1, 0.2, 0.3, 0.4}, Pixel{0.1, 0.2, 0.3, 0.4}},
		{"non-numeric result", `r = "red"`, Pixel{0.1, 0.2, 0.3, 0.4}, Pixel{0.1, 0.2, 0.3, 0.4}},
		{"empty", "", Pixel{0.1, 0.2, 0.3, 0.4}, Pixel{0.1, 0.2, 0.3, 0.4}},
		{"failure discards earlier statements", `g = 0; r = "x"`, Pixel{0.1, 0.2, 0.3, 0.4}, Pixel{0.1, 0.2, 0.3, 0.4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px := tt.in
			Expression{Formula: tt.formula}.ApplyPixel(&px, 0)
			for c := range 4 {
				if !near(px[c], tt.want[c], 1e-6) {
					t.Fatalf("%q on %v = %v, want %v", tt.formula, tt.in, px, tt.want)
				}
			}
		})
	}
}

func TestExpressionValid(t *testing.T) {
	if !(Expression{Formula: "r = 1 - r"}).Valid() {
		t.Error("valid formula reported invalid")
	}
	if (Expression{Formula: "r = "}).Valid() {
		t.Error("broken formula reported valid")
	}
}

func TestExpressionBindMatchesApply(t *testing.T) {
	op := Expression{Formula: "r = 1 - r; b = g * 0.5"}
	fn := op.bind()
	a, b := Pixel{0.2, 0.4, 0.6, 1}, Pixel{0.2, 0.4, 0.6, 1}
	op.ApplyPixel(&a, 3)
	fn(&b, 3)
	if a != b {
		t.Errorf("bind = %v, ApplyPixel = %v", b, a)
	}

	broken := Expression{Formula: "r = ("}.bind()
	px := Pixel{0.2, 0.4, 0.6, 1}
	broken(&px, 0)
	if px != (Pixel{0.2, 0.4, 0.6, 1}) {
		t.Errorf("broken bind changed the pixel to %v", px)
	}
}

func TestExpressionConcurrent(t *testing.T) {
	fn := Expression{Formula: "r = g + b"}.bind()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				px := Pixel{0, float32(i) / 20, 0.1, 1}
				fn(&px, 0)
				if !near(px[0], float32(i)/20+0.1, 1e-6) {
					t.Errorf("r = %v, want %v", px[0], float32(i)/20+0.1)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestSplitAssignment(t *testing.T) {
	tests := []struct {
		in, target, rhs string
	}{
		{"r = g", "r", "g"},
		{" a=1 ", "a", "1"},
		{"r == g", "", "r == g"},
		{"r != g", "", "r != g"},
		{"r <= g", "", "r <= g"},
		{"x = 1", "", "x = 1"},
		{"r", "", "r"},
	}
	for _, tt := range tests {
		target, rhs := splitAssignment(tt.in)
		if target != tt.target || rhs != tt.rhs {
			t.Errorf("splitAssignment(%q) = %q, %q; want %q, %q", tt.in, target, rhs, tt.target, tt.rhs)
		}
	}
}

package imgedit

import (
	"testing"
)

func testGradient() GradientMap {
	return NewGradientMap(
		GradientStop{Position: 200, Color: [3]uint8{255, 255, 255}},
		GradientStop{Position: 50, Color: [3]uint8{255, 0, 0}},
		GradientStop{Position: 100, Color: [3]uint8{0, 0, 255}},
	)
}

func TestNewGradientMapSortsAndNumbers(t *testing.T) {
	g := testGradient()
	positions := []uint8{50, 100, 200}
	for i, s := range g.Stops {
		if s.Position != positions[i] {
			t.Fatalf("stop %d at %d, want %d", i, s.Position, positions[i])
		}
	}
	seen := map[int]bool{}
	for _, s := range g.Stops {
		if s.ID == 0 || seen[s.ID] {
			t.Fatalf("stop IDs not unique and non-zero: %+v", g.Stops)
		}
		seen[s.ID] = true
	}
}

func TestGradientSample(t *testing.T) {
	g := testGradient()
	tests := []struct {
		name string
		t    float32
		want [3]float32
	}{
		{"below first", 0, [3]float32{1, 0, 0}},
		{"exact first", 50, [3]float32{1, 0, 0}},
		{"exact middle", 100, [3]float32{0, 0, 1}},
		{"halfway", 75, [3]float32{0.5, 0, 0.5}},
		{"exact last", 200, [3]float32{1, 1, 1}},
		{"beyond last", 255, [3]float32{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.sample(tt.t)
			for c := range 3 {
				if !near(got[c], tt.want[c], 1e-6) {
					t.Fatalf("sample(%v) = %v, want %v", tt.t, got, tt.want)
				}
			}
		})
	}
}

func TestGradientHardStep(t *testing.T) {
	g := NewGradientMap(
		GradientStop{Position: 0, Color: [3]uint8{0, 0, 0}},
		GradientStop{Position: 128, Color: [3]uint8{255, 0, 0}},
		GradientStop{Position: 128, Color: [3]uint8{0, 255, 0}},
		GradientStop{Position: 255, Color: [3]uint8{0, 0, 255}},
	)
	below := g.sample(127.999)
	above := g.sample(128.001)
	if below[0] < 0.99 || above[1] < 0.99 {
		t.Errorf("hard step at 128: below %v, above %v", below, above)
	}
}

func TestGradientMapApplyPixel(t *testing.T) {
	g := NewGradientMap(
		GradientStop{Position: 0, Color: [3]uint8{0, 0, 0}},
		GradientStop{Position: 255, Color: [3]uint8{255, 0, 0}},
	)
	px := Pixel{1, 1, 1, 0.5}
	g.ApplyPixel(&px, 0)
	if !near(px[0], 1, 1e-5) || px[1] != 0 || px[2] != 0 || px[3] != 0.5 {
		t.Errorf("white through black-red ramp = %v, want (1, 0, 0, 0.5)", px)
	}

	single := NewGradientMap(GradientStop{Position: 10, Color: [3]uint8{0, 255, 0}})
	px = Pixel{0.3, 0.3, 0.3, 1}
	single.ApplyPixel(&px, 0)
	if px != (Pixel{0, 1, 0, 1}) {
		t.Errorf("single stop = %v, want its color", px)
	}

	px = Pixel{0.3, 0.3, 0.3, 1}
	GradientMap{}.ApplyPixel(&px, 0)
	if px != (Pixel{0.3, 0.3, 0.3, 1}) {
		t.Errorf("empty map changed the pixel to %v", px)
	}
}

func TestGradientEditing(t *testing.T) {
	g := testGradient()
	orig := g.Stops

	id := g.AddStop(10, [3]uint8{1, 2, 3})
	if len(g.Stops) != 4 || g.Stops[0].ID != id {
		t.Fatalf("AddStop: stops = %+v", g.Stops)
	}
	if len(orig) != 3 {
		t.Fatal("AddStop modified the original slice")
	}

	if !g.MoveStop(id, 250) {
		t.Fatal("MoveStop returned false")
	}
	if last := g.Stops[len(g.Stops)-1]; last.ID != id {
		t.Fatalf("moved stop should be last, stops = %+v", g.Stops)
	}

	if !g.SetStopColor(id, [3]uint8{9, 9, 9}) || g.Stops[3].Color != [3]uint8{9, 9, 9} {
		t.Fatalf("SetStopColor: stops = %+v", g.Stops)
	}

	if !g.RemoveStop(id) || len(g.Stops) != 3 {
		t.Fatalf("RemoveStop: stops = %+v", g.Stops)
	}
	if g.RemoveStop(12345) || g.MoveStop(12345, 0) {
		t.Error("editing an unknown stop should fail")
	}

	g.RemoveStop(g.Stops[0].ID)
	if len(g.Stops) != 2 {
		t.Fatalf("stops = %d, want 2", len(g.Stops))
	}
	if g.RemoveStop(g.Stops[0].ID) {
		t.Error("RemoveStop must keep at least two stops")
	}
}

package imgedit

import "testing"

func kinds(s *OperationStack) []string {
	var out []string
	for _, e := range s.Entries() {
		out = append(out, e.Op.Kind())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOperationStack(t *testing.T) {
	var s OperationStack
	s.Push(Brightness{Amount: 1})
	s.Push(Invert{})
	s.Push(Posterize{Levels: 4})

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if e, ok := s.At(1); !ok || e.Op != (Invert{}) || !e.Active {
		t.Fatalf("At(1) = %+v, %v", e, ok)
	}

	if !s.Swap(0, 2) {
		t.Fatal("Swap(0, 2) = false")
	}
	if want := []string{"posterize", "invert", "brightness"}; !equalStrings(kinds(&s), want) {
		t.Fatalf("after swap: %v, want %v", kinds(&s), want)
	}

	if !s.MoveDown(0) || !equalStrings(kinds(&s), []string{"invert", "posterize", "brightness"}) {
		t.Fatalf("after MoveDown(0): %v", kinds(&s))
	}
	if !s.MoveUp(2) || !equalStrings(kinds(&s), []string{"invert", "brightness", "posterize"}) {
		t.Fatalf("after MoveUp(2): %v", kinds(&s))
	}

	if !s.Remove(1) || !equalStrings(kinds(&s), []string{"invert", "posterize"}) {
		t.Fatalf("after Remove(1): %v", kinds(&s))
	}

	if !s.Replace(0, Contrast{Amount: 5}) {
		t.Fatal("Replace(0) = false")
	}
	if e, _ := s.At(0); e.Op != (Contrast{Amount: 5}) {
		t.Fatalf("after Replace: %+v", e)
	}

	if !s.Clear() || s.Len() != 0 || s.Clear() {
		t.Fatal("Clear should empty the stack once")
	}
}

func TestOperationStackBounds(t *testing.T) {
	var s OperationStack
	s.Push(Invert{})
	s.Push(Invert{})

	tests := []struct {
		name string
		fn   func() bool
	}{
		{"remove negative", func() bool { return s.Remove(-1) }},
		{"remove past end", func() bool { return s.Remove(2) }},
		{"swap out of range", func() bool { return s.Swap(0, 5) }},
		{"swap self", func() bool { return s.Swap(1, 1) }},
		{"move last down", func() bool { return s.MoveDown(1) }},
		{"move first up", func() bool { return s.MoveUp(0) }},
		{"set active out of range", func() bool { return s.SetActive(3, false) }},
		{"set active unchanged", func() bool { return s.SetActive(0, true) }},
		{"replace out of range", func() bool { return s.Replace(2, Invert{}) }},
		{"replace nil", func() bool { return s.Replace(0, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.fn() {
				t.Error("want false")
			}
			if s.Len() != 2 {
				t.Errorf("Len() = %d after a rejected edit", s.Len())
			}
		})
	}
	if _, ok := s.At(2); ok {
		t.Error("At(2) should fail")
	}
}

func TestOperationStackActive(t *testing.T) {
	var s OperationStack
	s.Push(Brightness{Amount: 1})
	s.Push(Invert{})
	s.Push(Contrast{Amount: 2})

	if !s.SetActive(1, false) {
		t.Fatal("SetActive(1, false) = false")
	}
	ops := s.active()
	if len(ops) != 2 || ops[0].Kind() != "brightness" || ops[1].Kind() != "contrast" {
		t.Fatalf("active() = %v", ops)
	}

	entries := s.Entries()
	entries[0].Active = false
	if e, _ := s.At(0); !e.Active {
		t.Error("Entries must return a copy")
	}
}

package filter

import "testing"

// solid returns a w*h RGBA8 buffer filled with one color.
func solid(w, h int, r, g, b, a byte) []byte {
	buf := make([]byte, w*h*4)
	for i := 0; i < len(buf); i += 4 {
		buf[i], buf[i+1], buf[i+2], buf[i+3] = r, g, b, a
	}
	return buf
}

func TestBlurZeroRadiusCopies(t *testing.T) {
	src := solid(4, 3, 10, 20, 30, 40)
	src[5] = 200

	dst := Blur(src, 4, 3, 0)
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("dst[%d] = %d, want %d", i, dst[i], src[i])
		}
	}

	dst[0] = 99
	if src[0] == 99 {
		t.Error("Blur must not alias src")
	}
}

func TestBlurSolidUnchanged(t *testing.T) {
	src := solid(16, 16, 100, 150, 200, 255)
	dst := Blur(src, 16, 16, 3)

	for i := range dst {
		if diff := int(dst[i]) - int(src[i]); diff < -1 || diff > 1 {
			t.Fatalf("solid color changed at %d: got %d, want %d", i, dst[i], src[i])
		}
	}
}

func TestBlurSpreadsImpulse(t *testing.T) {
	const w, h = 9, 9
	src := solid(w, h, 0, 0, 0, 255)
	center := (4*w + 4) * 4
	src[center] = 255

	dst := Blur(src, w, h, 1)

	if dst[center] >= 255 {
		t.Errorf("center red = %d, expected the impulse to spread", dst[center])
	}
	neighbor := (4*w + 5) * 4
	if dst[neighbor] == 0 {
		t.Error("neighbor red = 0, expected some of the impulse")
	}
	corner := 0
	if dst[corner] != 0 {
		t.Errorf("far corner red = %d, want 0", dst[corner])
	}
}

func TestBlurDoesNotModifySource(t *testing.T) {
	src := solid(5, 5, 0, 0, 0, 255)
	src[0] = 255
	before := append([]byte(nil), src...)

	_ = Blur(src, 5, 5, 2)

	for i := range src {
		if src[i] != before[i] {
			t.Fatalf("src modified at %d", i)
		}
	}
}

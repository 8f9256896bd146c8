package imgedit

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func allOperations() []Operation {
	return []Operation{
		Brightness{}, Contrast{}, Exposure{}, Desaturate{}, Posterize{}, Equalize{}, Invert{},
		HSV{}, ChannelSwap{}, Mult{}, Add{}, Fill{}, MultiplyByAlpha{}, DivideByAlpha{}, Noise{},
		Expression{}, GradientMap{},
		Blur{}, Crop{}, Resize{}, Rotate{}, Flip{}, ChromaticAberration{},
	}
}

func TestOperationClassification(t *testing.T) {
	image := map[string]bool{
		"blur": true, "crop": true, "resize": true, "rotate": true, "flip": true, "chromatic_aberration": true,
	}
	seen := map[string]bool{}
	for _, op := range allOperations() {
		k := op.Kind()
		if seen[k] {
			t.Errorf("duplicate kind %q", k)
		}
		seen[k] = true

		_, isPixel := op.(PixelOperation)
		_, isImage := op.(ImageOperation)
		if isPixel == isImage {
			t.Errorf("%s: pixel=%v image=%v, want exactly one", k, isPixel, isImage)
		}
		if IsPerPixel(op) == image[k] {
			t.Errorf("IsPerPixel(%s) = %v", k, IsPerPixel(op))
		}
		decode, ok := decoders[k]
		if !ok {
			t.Errorf("no decoder for %s", k)
			continue
		}
		if got, err := decode(&yaml.Node{}); err != nil {
			t.Errorf("decoders[%q]: %v", k, err)
		} else if got.Kind() != k {
			t.Errorf("decoders[%q] built %s", k, got.Kind())
		}
	}
	if len(seen) != len(decoders) {
		t.Errorf("%d kinds, %d decoders", len(seen), len(decoders))
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{Brightness{}, "Brightness"},
		{GradientMap{}, "Gradient Map"},
		{ChannelSwap{}, "Channel Swap"},
		{ChromaticAberration{}, "Chromatic Aberration"},
		{HSV{}, "HSV"},
		{MultiplyByAlpha{}, "Multiply by Alpha"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := Label(tt.op); got != tt.want {
			t.Errorf("Label(%T) = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestApplyDispatch(t *testing.T) {
	px := Pixel{0.25, 0.5, 0.75, 1}
	ApplyPixel(Rotate{Degrees: 90}, &px, 0)
	if px != (Pixel{0.25, 0.5, 0.75, 1}) {
		t.Errorf("ApplyPixel with an image operation changed the pixel to %v", px)
	}
	ApplyPixel(Invert{}, &px, 0)
	if px != (Pixel{0.75, 0.5, 0.25, 1}) {
		t.Errorf("ApplyPixel(Invert) = %v", px)
	}

	pm := patternPixmap(4, 2)
	orig := pm.Clone()
	if err := ApplyImage(Invert{}, pm); err != nil {
		t.Fatal(err)
	}
	if got, want := pm.RGBA8(3, 1).R, 255-orig.RGBA8(3, 1).R; got != want {
		t.Errorf("ApplyImage(Invert) red = %d, want %d", got, want)
	}
	if err := ApplyImage(nil, pm); !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("ApplyImage(nil) = %v, want ErrUnknownOperation", err)
	}
}

func TestChannelText(t *testing.T) {
	for c := Red; c <= Alpha; c++ {
		text, err := c.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Channel
		if err := back.UnmarshalText(text); err != nil || back != c {
			t.Errorf("%v round trip = %v, %v", c, back, err)
		}
	}
	if _, err := Channel(7).MarshalText(); err == nil {
		t.Error("invalid channel should not marshal")
	}
}

package imgedit

import (
	"fmt"

	icolor "github.com/gogpu/imgedit/internal/color"
)

// Pixel is a straight-alpha RGBA color with channels in [0, 1].
//
// Per-pixel operations may push channels outside [0, 1]; values are
// clamped only when the pixel is written back to a Pixmap.
type Pixel [4]float32

// Channel indexes a Pixel.
type Channel uint8

const (
	Red Channel = iota
	Green
	Blue
	Alpha
)

var channelNames = [...]string{"red", "green", "blue", "alpha"}

// String returns the lower-case channel name.
func (c Channel) String() string {
	if int(c) < len(channelNames) {
		return channelNames[c]
	}
	return "unknown"
}

// Valid reports whether c names one of the four channels.
func (c Channel) Valid() bool {
	return c <= Alpha
}

// pixelFromRGBA8 reads the 4 bytes at px into a Pixel.
func pixelFromRGBA8(px []uint8) Pixel {
	return Pixel{
		float32(px[0]) / 255,
		float32(px[1]) / 255,
		float32(px[2]) / 255,
		float32(px[3]) / 255,
	}
}

// store clamps p and writes it to the 4 bytes at px.
func (p Pixel) store(px []uint8) {
	px[0] = icolor.ToByte(p[0])
	px[1] = icolor.ToByte(p[1])
	px[2] = icolor.ToByte(p[2])
	px[3] = icolor.ToByte(p[3])
}

// MarshalText implements encoding.TextMarshaler.
func (c Channel) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("imgedit: invalid channel %d", c)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Channel) UnmarshalText(text []byte) error {
	for i, name := range channelNames {
		if name == string(text) {
			*c = Channel(i)
			return nil
		}
	}
	return fmt.Errorf("imgedit: unknown channel %q", text)
}

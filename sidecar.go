package imgedit

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// StateVersion is the version written by State.
const StateVersion = 1

// SidecarExt is appended to an image path to name its edit sidecar.
const SidecarExt = ".edits.yaml"

// EditState is the persistent form of an engine's edits: both stacks and
// every stroke. It holds plain data only and is tied to a source image by
// the caller, usually through SidecarPath.
type EditState struct {
	Version  int           `yaml:"version"`
	Geometry []Entry       `yaml:"geometry,omitempty"`
	Pixel    []Entry       `yaml:"pixel,omitempty"`
	Strokes  []PaintStroke `yaml:"strokes,omitempty"`
}

// SidecarPath returns the sidecar file name for an image file.
func SidecarPath(imagePath string) string {
	return imagePath + SidecarExt
}

// State snapshots the engine's edits.
func (e *Engine) State() EditState {
	e.mu.Lock()
	defer e.mu.Unlock()

	strokes := e.paint.Strokes()
	// Drop the empty stroke waiting for input.
	strokes = slices.DeleteFunc(strokes, func(s PaintStroke) bool { return len(s.Points) == 0 })

	return EditState{
		Version:  StateVersion,
		Geometry: e.geometry.Entries(),
		Pixel:    e.pixel.Entries(),
		Strokes:  strokes,
	}
}

// Restore replaces the engine's edits with st. Every entry must sit on
// the stack its operation belongs on. On error the engine is unchanged.
func (e *Engine) Restore(st EditState) error {
	if st.Version < 1 || st.Version > StateVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, st.Version)
	}
	if err := checkEntries(st.Geometry, GeometryStack); err != nil {
		return err
	}
	if err := checkEntries(st.Pixel, PixelStack); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.geometry.entries = slices.Clone(st.Geometry)
	e.pixel.entries = slices.Clone(st.Pixel)
	e.paint.restore(st.Strokes)
	e.discardResults()

	Logger().Info("imgedit: edits restored",
		"geometry_ops", len(st.Geometry), "pixel_ops", len(st.Pixel), "strokes", len(st.Strokes))
	return nil
}

func checkEntries(entries []Entry, kind StackKind) error {
	for i, entry := range entries {
		if entry.Op == nil {
			return fmt.Errorf("%w: %s entry %d is empty", ErrUnknownOperation, kind, i)
		}
		if KindOf(entry.Op) != kind {
			return fmt.Errorf("imgedit: %s entry %d: %s belongs on the %s stack",
				kind, i, entry.Op.Kind(), KindOf(entry.Op))
		}
	}
	return nil
}

// MarshalState encodes st as YAML.
func MarshalState(st EditState) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(st); err != nil {
		return nil, fmt.Errorf("imgedit: encode edit state: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("imgedit: encode edit state: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalState decodes YAML produced by MarshalState.
func UnmarshalState(data []byte) (EditState, error) {
	var st EditState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return EditState{}, fmt.Errorf("imgedit: decode edit state: %w", err)
	}
	if st.Version < 1 || st.Version > StateVersion {
		return EditState{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, st.Version)
	}
	return st, nil
}

// SaveSidecar writes st to path.
func SaveSidecar(path string, st EditState) error {
	data, err := MarshalState(st)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("imgedit: save sidecar: %w", err)
	}
	return nil
}

// LoadSidecar reads a sidecar written by SaveSidecar.
func LoadSidecar(path string) (EditState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EditState{}, fmt.Errorf("imgedit: load sidecar: %w", err)
	}
	return UnmarshalState(data)
}

// entryDoc is the YAML shape of an Entry.
type entryDoc struct {
	Kind   string    `yaml:"kind"`
	Active bool      `yaml:"active"`
	Params yaml.Node `yaml:"params"`
}

// MarshalYAML implements yaml.Marshaler.
func (e Entry) MarshalYAML() (any, error) {
	if e.Op == nil {
		return nil, fmt.Errorf("%w: nil operation", ErrUnknownOperation)
	}
	doc := entryDoc{Kind: e.Op.Kind(), Active: e.Active}
	if err := doc.Params.Encode(e.Op); err != nil {
		return nil, err
	}
	return doc, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	var doc entryDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	decode, ok := decoders[doc.Kind]
	if !ok {
		return fmt.Errorf("%w: %q (line %d)", ErrUnknownOperation, doc.Kind, node.Line)
	}
	op, err := decode(&doc.Params)
	if err != nil {
		return fmt.Errorf("imgedit: %s params: %w", doc.Kind, err)
	}
	*e = Entry{Op: op, Active: doc.Active}
	return nil
}

// decoders maps an operation kind to its parameter decoder.
var decoders = map[string]func(*yaml.Node) (Operation, error){
	"brightness":           decodeAs[Brightness],
	"contrast":             decodeAs[Contrast],
	"exposure":             decodeAs[Exposure],
	"desaturate":           decodeAs[Desaturate],
	"posterize":            decodeAs[Posterize],
	"equalize":             decodeAs[Equalize],
	"invert":               decodeAs[Invert],
	"hsv":                  decodeAs[HSV],
	"channel_swap":         decodeAs[ChannelSwap],
	"mult":                 decodeAs[Mult],
	"add":                  decodeAs[Add],
	"fill":                 decodeAs[Fill],
	"multiply_by_alpha":    decodeAs[MultiplyByAlpha],
	"divide_by_alpha":      decodeAs[DivideByAlpha],
	"noise":                decodeAs[Noise],
	"expression":           decodeAs[Expression],
	"gradient_map":         decodeGradientMap,
	"blur":                 decodeAs[Blur],
	"crop":                 decodeAs[Crop],
	"resize":               decodeAs[Resize],
	"rotate":               decodeAs[Rotate],
	"flip":                 decodeAs[Flip],
	"chromatic_aberration": decodeAs[ChromaticAberration],
}

func decodeAs[T Operation](node *yaml.Node) (Operation, error) {
	var op T
	if node.Kind != 0 {
		if err := node.Decode(&op); err != nil {
			return nil, err
		}
	}
	return op, nil
}

// decodeGradientMap restores the sorted-stops invariant of hand-edited
// sidecars.
func decodeGradientMap(node *yaml.Node) (Operation, error) {
	var g GradientMap
	if node.Kind != 0 {
		if err := node.Decode(&g); err != nil {
			return nil, err
		}
	}
	return NewGradientMap(g.Stops...), nil
}

// Command imgedit applies a saved edit stack to an image file.
//
// Usage:
//
//	imgedit -in photo.jpg -out photo.png
//	imgedit -in photo.jpg -op 'brightness {amount: 20}' -op 'rotate {degrees: 90}' -save
//	imgedit -in photo.jpg -list
//
// Edits are read from the image's sidecar (photo.jpg.edits.yaml) when it
// exists. Each -op appends one operation to the stack it belongs on.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/imgedit"
)

type opList []string

func (l *opList) String() string     { return strings.Join(*l, "; ") }
func (l *opList) Set(v string) error { *l = append(*l, v); return nil }

func main() {
	var (
		in     = flag.String("in", "", "input image (png, jpeg, gif, bmp, tiff, webp)")
		out    = flag.String("out", "", "output PNG (default <in>.edited.png)")
		edits  = flag.String("edits", "", "edit sidecar (default <in>"+imgedit.SidecarExt+")")
		config = flag.String("config", "", "TOML engine config")
		save   = flag.Bool("save", false, "write the edits back to the sidecar")
		list   = flag.Bool("list", false, "print the edit stacks and exit")
		debug  = flag.Bool("debug", false, "debug logging")
		ops    opList
	)
	flag.Var(&ops, "op", "append an operation: 'kind {params}' (repeatable)")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(*in, *out, *edits, *config, ops, *save, *list, *debug); err != nil {
		slog.Error("imgedit failed", "err", err)
		os.Exit(1)
	}
}

func run(in, out, edits, configPath string, ops []string, save, list, debug bool) error {
	cfg := imgedit.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = imgedit.LoadConfig(configPath); err != nil {
			return err
		}
	}
	level := cfg.Level()
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	imgedit.SetLogger(logger)

	e := imgedit.NewEngine(append(cfg.Options(), imgedit.WithWarningHandler(func(err error) {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}))...)
	defer e.Close()

	if edits == "" {
		edits = imgedit.SidecarPath(in)
	}
	st, err := imgedit.LoadSidecar(edits)
	switch {
	case err == nil:
		if err := e.Restore(st); err != nil {
			return fmt.Errorf("%s: %w", edits, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("no sidecar", "path", edits)
	default:
		return err
	}

	for _, spec := range ops {
		op, err := parseOp(spec)
		if err != nil {
			return err
		}
		if _, err := e.Push(op); err != nil {
			return err
		}
	}

	if list {
		printStacks(e)
		return nil
	}

	src, err := readImage(in)
	if err != nil {
		return err
	}
	e.Load(imgedit.FromImage(src))

	result, _ := e.Result()
	if out == "" {
		out = in + ".edited.png"
	}
	if err := writePNG(out, result); err != nil {
		return err
	}
	slog.Info("image written", "path", out, "width", result.Width(), "height", result.Height())

	if save {
		if err := imgedit.SaveSidecar(edits, e.State()); err != nil {
			return err
		}
		slog.Info("edits saved", "path", edits)
	}
	return nil
}

// parseOp decodes "kind {params}" into an operation, reusing the sidecar
// format for the parameters.
func parseOp(spec string) (imgedit.Operation, error) {
	kind, params, _ := strings.Cut(strings.TrimSpace(spec), " ")
	doc := fmt.Sprintf("{kind: %q, active: true}", kind)
	if params = strings.TrimSpace(params); params != "" {
		doc = fmt.Sprintf("{kind: %q, active: true, params: %s}", kind, params)
	}
	var entry imgedit.Entry
	if err := yaml.Unmarshal([]byte(doc), &entry); err != nil {
		return nil, fmt.Errorf("-op %q: %w", spec, err)
	}
	return entry.Op, nil
}

func printStacks(e *imgedit.Engine) {
	for _, kind := range []imgedit.StackKind{imgedit.GeometryStack, imgedit.PixelStack} {
		fmt.Printf("%s:\n", kind)
		for i, entry := range e.Entries(kind) {
			mark := " "
			if !entry.Active {
				mark = "-"
			}
			fmt.Printf("  %s %d. %s %+v\n", mark, i, imgedit.Label(entry.Op), entry.Op)
		}
	}
	fmt.Printf("strokes: %d\n", len(e.State().Strokes))
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	slog.Debug("image decoded", "path", path, "format", format, "bounds", img.Bounds())
	return img, nil
}

func writePNG(path string, pm *imgedit.Pixmap) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, pm.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Package imgedit is a non-destructive raster image edit pipeline.
//
// # Overview
//
// An Engine holds a source image and two ordered lists of operations. The
// source is never modified; every Result is recomputed from it.
//
//	e := imgedit.NewEngine()
//	defer e.Close()
//
//	e.Load(imgedit.FromImage(img))
//	e.Push(imgedit.Resize{Width: 800, Height: 600, Filter: imgedit.FilterLanczos3})
//	e.Push(imgedit.Brightness{Amount: 20})
//	e.Push(imgedit.Invert{})
//
//	out, changed := e.Result()
//
// # Operations
//
// Operations are plain parameter structs. Pixel operations (Brightness,
// Contrast, HSV, GradientMap, Expression and so on) look at one pixel at a
// time and go on the pixel stack. Image operations (Resize, Crop, Rotate,
// Flip, Blur, ChromaticAberration) need the whole buffer and go on the
// geometry stack. Push picks the stack; IsPerPixel tells them apart.
//
// # Recomputation
//
// A change to the geometry stack replays it in full from the source. A
// change to the pixel stack replays only the pixel stack, in parallel
// chunks, on top of the cached geometry result. Order within each stack is
// significant. Disabling an entry is the same as removing it.
//
// Image operations that fail are skipped and reported by Engine.Warnings.
// Pixel operations never fail: a broken Expression leaves pixels as they
// are.
//
// # Painting
//
// Freehand strokes are drawn on top of the edited image. In Destructive
// mode every stroke but the newest is baked into the geometry result; in
// NonDestructive mode all strokes are replayed on each change.
//
// # Persistence
//
// Engine.State and Engine.Restore convert the edits to plain data, and
// SaveSidecar / LoadSidecar store them as YAML next to the image.
package imgedit

package imgedit

import (
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/gogpu/imgedit/internal/cache"
)

// Expression evaluates a formula per pixel over the variables r, g, b
// and a (float64, [0, 1]).
//
// The formula is a ';'-separated list of statements. A statement of the
// form "name = expr" assigns to one of the four channels; any other
// statement is evaluated and discarded. For example:
//
//	r = (r + g + b) / 3; g = r; b = r
//
// A formula that fails to compile or run leaves the pixel unchanged.
// Errors are never reported, so a formula can be edited live without
// breaking the pipeline.
type Expression struct {
	Formula string
}

func (Expression) Kind() string { return "expression" }
func (Expression) isOperation() {}

// ApplyPixel evaluates the compiled formula. A formula that does not
// compile leaves the pixel unchanged.
func (o Expression) ApplyPixel(px *Pixel, _ int) {
	if f := compileFormula(o.Formula); f != nil {
		f.apply(px)
	}
}

// bind compiles the formula once so a batch of pixels skips the cache
// lookup. A broken formula binds to a no-op.
func (o Expression) bind() func(px *Pixel, pos int) {
	f := compileFormula(o.Formula)
	if f == nil {
		return func(*Pixel, int) {}
	}
	return func(px *Pixel, _ int) { f.apply(px) }
}

// Valid reports whether the formula compiles.
func (o Expression) Valid() bool {
	return compileFormula(o.Formula) != nil
}

type exprEnv struct {
	R float64 `expr:"r"`
	G float64 `expr:"g"`
	B float64 `expr:"b"`
	A float64 `expr:"a"`
}

func (e *exprEnv) set(name string, v float64) {
	switch name {
	case "r":
		e.R = v
	case "g":
		e.G = v
	case "b":
		e.B = v
	case "a":
		e.A = v
	}
}

type statement struct {
	target  string
	program *vm.Program
}

type formula struct {
	statements []statement
}

func (f *formula) apply(px *Pixel) {
	machine := vmPool.Get().(*vm.VM)
	defer vmPool.Put(machine)

	env := exprEnv{R: float64(px[0]), G: float64(px[1]), B: float64(px[2]), A: float64(px[3])}
	for _, st := range f.statements {
		out, err := machine.Run(st.program, env)
		if err != nil {
			return
		}
		if st.target == "" {
			continue
		}
		v, ok := toFloat(out)
		if !ok {
			return
		}
		env.set(st.target, v)
	}

	px[0], px[1], px[2], px[3] = float32(env.R), float32(env.G), float32(env.B), float32(env.A)
}

var (
	// formulas caches compiled formulas by source text. Failed compiles
	// are cached as nil so a broken formula is not recompiled per pixel.
	formulas = cache.New[string, *formula](256)

	vmPool = sync.Pool{New: func() any { return &vm.VM{} }}
)

func compileFormula(src string) *formula {
	return formulas.GetOrCreate(src, func() *formula {
		f, ok := parseFormula(src)
		if !ok {
			return nil
		}
		return f
	})
}

func parseFormula(src string) (*formula, bool) {
	f := &formula{}
	for part := range strings.SplitSeq(src, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		target, rhs := splitAssignment(part)
		prog, err := expr.Compile(rhs, expr.Env(exprEnv{}))
		if err != nil {
			return nil, false
		}
		f.statements = append(f.statements, statement{target: target, program: prog})
	}
	return f, len(f.statements) > 0
}

// splitAssignment splits "name = rhs" when name is a channel variable.
// Comparisons such as "r == g" are not assignments.
func splitAssignment(s string) (target, rhs string) {
	i := strings.IndexByte(s, '=')
	if i <= 0 || i+1 < len(s) && s[i+1] == '=' {
		return "", s
	}
	if c := s[i-1]; c == '!' || c == '<' || c == '>' || c == '=' {
		return "", s
	}
	name := strings.TrimSpace(s[:i])
	switch name {
	case "r", "g", "b", "a":
		return name, strings.TrimSpace(s[i+1:])
	}
	return "", s
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

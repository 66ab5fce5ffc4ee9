package script

import (
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Bindings are the per-cell inputs of a script.
type Bindings struct {
	T float64 // seconds since the script started
	I float64 // y*width + x
	X float64
	Y float64
	V float64 // volume
	A float64 // previous value of this cell
}

// env is the static environment scripts are type-checked against.
type env struct {
	T float64 `expr:"t"`
	I float64 `expr:"i"`
	X float64 `expr:"x"`
	Y float64 `expr:"y"`
	V float64 `expr:"v"`
	A float64 `expr:"a"`

	PI  float64 `expr:"PI"`
	TAU float64 `expr:"TAU"`
	E   float64 `expr:"E"`
	PHI float64 `expr:"PHI"`
}

// Program is a compiled script. It is never mutated after Compile.
type Program struct {
	source  string
	program *vm.Program
	machine vm.VM
}

// Compile parses and type-checks source. Unknown names, wrong arity and
// non-numeric results are all reported here rather than at evaluation time.
func Compile(source string) (*Program, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &CompileError{Source: source, Wrapped: fmt.Errorf("empty script")}
	}
	prog, err := expr.Compile(source, options()...)
	if err != nil {
		return nil, &CompileError{Source: source, Wrapped: err}
	}
	return &Program{source: source, program: prog}, nil
}

// MustCompile is Compile for scripts known to be valid, like the built-in
// patterns. It panics on error.
func MustCompile(source string) *Program {
	p, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Program) Source() string { return p.source }

// Eval runs the program for one cell.
func (p *Program) Eval(b Bindings) (float64, error) {
	out, err := p.machine.Run(p.program, env{
		T: b.T, I: b.I, X: b.X, Y: b.Y, V: b.V, A: b.A,
		PI:  math.Pi,
		TAU: 2 * math.Pi,
		E:   math.E,
		PHI: Phi,
	})
	if err != nil {
		return 0, &EvalError{Bindings: b, Wrapped: err}
	}
	val, ok := out.(float64)
	if !ok {
		return 0, &EvalError{Bindings: b, Wrapped: fmt.Errorf("result %v (%T) is not a number", out, out)}
	}
	return val, nil
}

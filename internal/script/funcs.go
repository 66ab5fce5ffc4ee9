package script

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/expr-lang/expr"
)

// Phi is the golden ratio.
const Phi = 1.618033988749895

// Function describes one entry of the script function table.
type Function struct {
	Name  string
	Arity int
	Doc   string
}

type mathFunc struct {
	Function
	fn  func(params ...any) (any, error)
	typ any
}

var funcTable = []mathFunc{
	binary("atan2", "angle of (x, y) given as atan2(y, x)", math.Atan2),
	binary("min", "smaller of two values", math.Min),
	binary("max", "larger of two values", math.Max),
	{
		Function: Function{Name: "clamp", Arity: 3, Doc: "x limited to [lo, hi]"},
		fn: func(p ...any) (any, error) {
			return clamp(toFloat(p[0]), toFloat(p[1]), toFloat(p[2])), nil
		},
		typ: new(func(float64, float64, float64) float64),
	},
	{
		Function: Function{Name: "rand", Arity: 0, Doc: "uniform random number in [0, 1)"},
		fn: func(...any) (any, error) {
			return rand.Float64(), nil
		},
		typ: new(func() float64),
	},
	binary("pow", "x raised to y", math.Pow),
	binary("hypot", "sqrt(x*x + y*y)", math.Hypot),
	unary("sin", "sine", math.Sin),
	unary("cos", "cosine", math.Cos),
	unary("tan", "tangent", math.Tan),
	unary("asin", "arcsine", math.Asin),
	unary("acos", "arccosine", math.Acos),
	unary("atan", "arctangent", math.Atan),
	unary("sinh", "hyperbolic sine", math.Sinh),
	unary("cosh", "hyperbolic cosine", math.Cosh),
	unary("tanh", "hyperbolic tangent", math.Tanh),
	unary("sqrt", "square root", math.Sqrt),
	unary("exp", "e raised to x", math.Exp),
	unary("ln", "natural logarithm", math.Log),
	unary("log", "base 10 logarithm", math.Log10),
	unary("log2", "base 2 logarithm", math.Log2),
	unary("log10", "base 10 logarithm", math.Log10),
	unary("sign", "-1, 0 or 1", sign),
	unary("fract", "fractional part", fract),
}

// Functions lists the script function table in declaration order.
func Functions() []Function {
	out := make([]Function, len(funcTable))
	for i, f := range funcTable {
		out[i] = f.Function
	}
	return out
}

func unary(name, doc string, f func(float64) float64) mathFunc {
	return mathFunc{
		Function: Function{Name: name, Arity: 1, Doc: doc},
		fn: func(p ...any) (any, error) {
			return f(toFloat(p[0])), nil
		},
		typ: new(func(float64) float64),
	}
}

func binary(name, doc string, f func(float64, float64) float64) mathFunc {
	return mathFunc{
		Function: Function{Name: name, Arity: 2, Doc: doc},
		fn: func(p ...any) (any, error) {
			return f(toFloat(p[0]), toFloat(p[1])), nil
		},
		typ: new(func(float64, float64) float64),
	}
}

// options builds the expr compile options shared by every script.
func options() []expr.Option {
	opts := []expr.Option{
		expr.Env(env{}),
		expr.AsFloat64(),
		// replaced by the two-argument float versions below
		expr.DisableBuiltin("min"),
		expr.DisableBuiltin("max"),
	}
	for _, f := range funcTable {
		opts = append(opts, expr.Function(f.Name, f.fn, f.typ))
	}
	return opts
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	}
	panic(fmt.Sprintf("script: not a number: %v (%T)", v, v))
}

func clamp(x, lo, hi float64) float64 {
	if x <= lo {
		return lo
	}
	if x >= hi {
		return hi
	}
	return x
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}

// Package script compiles and evaluates the per-cell expressions that drive
// the canvas.
//
// Scripts are written in the expr language (github.com/expr-lang/expr). A
// script is compiled once against a static environment and then evaluated
// for every cell of every frame:
//
//   - [Compile]: parse and type-check source text into a [Program]
//   - [Program.Eval]: evaluate a program with a set of [Bindings]
//
// # Environment
//
// Every evaluation sees six bindings and four constants:
//
//	t      seconds since the script started running
//	i      linear cell index, y*width + x
//	x, y   cell column and row
//	v      current microphone volume
//	a      this cell's value from the previous frame
//	PI TAU E PHI
//
// Besides expr's own operators (including ** for powers, ?: and let
// statements) and its abs/floor/ceil/round builtins, the function table
// provides atan2, min, max, clamp, rand and the usual math functions, see
// [Functions].
//
// # Example
//
//	prog, err := script.Compile("let r = hypot(x-16, y-16); sin(r - t*4)")
//	if err != nil {
//		return err
//	}
//	val, err := prog.Eval(script.Bindings{T: 1.5, X: 3, Y: 4, I: 131})
//
// # Thread Safety
//
// A Program reuses a single VM and is NOT safe for concurrent use.
package script

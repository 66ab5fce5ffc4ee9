package script

import (
	"errors"
	"fmt"
)

var (
	// ErrCompile indicates the source text could not be parsed or type-checked.
	ErrCompile = errors.New("script: compile failed")

	// ErrEval indicates a compiled script failed while evaluating a cell.
	ErrEval = errors.New("script: evaluation failed")
)

// CompileError carries the rejected source and the parser diagnostic.
type CompileError struct {
	Source  string
	Wrapped error
}

func (e *CompileError) Error() string {
	return e.Wrapped.Error()
}

func (e *CompileError) Is(target error) bool {
	return target == ErrCompile
}

func (e *CompileError) Unwrap() error {
	return e.Wrapped
}

// EvalError records the bindings of the cell that failed.
type EvalError struct {
	Bindings Bindings
	Wrapped  error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("cell x=%g y=%g (i=%g): %v", e.Bindings.X, e.Bindings.Y, e.Bindings.I, e.Wrapped)
}

func (e *EvalError) Is(target error) bool {
	return target == ErrEval
}

func (e *EvalError) Unwrap() error {
	return e.Wrapped
}

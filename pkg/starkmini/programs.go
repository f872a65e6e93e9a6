package starkmini

import (
	"io"

	"github.com/starkmini/starkmini/internal/starkmini/programs"
)

// FibonacciTrace builds the single-column trace of the recurrence
// f(n+2) = f(n+1) + f(n) starting from 1, 1. Eight steps over the default
// field give 1 1 2 3 5 8 13 21.
func FibonacciTrace(field *Field, steps int) (*Trace, error) {
	trace, err := programs.FibonacciTrace(field, steps)
	if err != nil {
		return nil, &PipelineError{Code: ErrInvalidTrace, Message: "failed to build Fibonacci trace", Cause: err}
	}
	return trace, nil
}

// FibonacciConstraint is the transition rule of FibonacciTrace
func FibonacciConstraint() Constraint {
	return programs.FibonacciConstraint()
}

// SquareFibonacciTrace builds the single-column trace of the squared
// recurrence f(n+2) = f(n+1)^2 + f(n)^2 starting from 1, 3.
func SquareFibonacciTrace(field *Field, steps int) (*Trace, error) {
	trace, err := programs.SquareFibonacciTrace(field, steps)
	if err != nil {
		return nil, &PipelineError{Code: ErrInvalidTrace, Message: "failed to build square-Fibonacci trace", Cause: err}
	}
	return trace, nil
}

// SquareFibonacciConstraint is the transition rule of SquareFibonacciTrace
func SquareFibonacciConstraint() Constraint {
	return programs.SquareFibonacciConstraint()
}

// RenderTrace writes the step-by-step table of a trace
func RenderTrace(w io.Writer, trace *Trace) error {
	return programs.RenderTrace(w, trace)
}

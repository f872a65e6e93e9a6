package protocols

import (
	"errors"
	"fmt"

	"github.com/starkmini/starkmini/internal/starkmini/core"
)

// ErrConstraintArity is returned when a constraint needs a larger window
// than the trace provides, or declares a non-positive window size.
var ErrConstraintArity = errors.New("constraint arity out of range")

// Constraint is a single algebraic transition rule over a trace. The
// residual of a window of consecutive rows must be the zero element
// whenever the rows were produced by an honest execution.
//
// The pipeline never inspects the rule itself; it only evaluates residuals
// at every step where the window fits, so any arity and any arithmetic
// inside the rule work unchanged.
type Constraint interface {
	// Arity is the number of consecutive trace rows the rule reads
	Arity() int

	// Residual evaluates the rule on a window of Arity() consecutive rows.
	// window[i][c] is the value of column c at the i-th row of the window.
	Residual(window [][]*core.FieldElement) *core.FieldElement
}

// ResidualFunc is the function form of a transition rule
type ResidualFunc func(window [][]*core.FieldElement) *core.FieldElement

type funcConstraint struct {
	arity int
	fn    ResidualFunc
}

// NewConstraint wraps a residual function and its window size into a
// Constraint.
func NewConstraint(arity int, fn ResidualFunc) Constraint {
	return &funcConstraint{arity: arity, fn: fn}
}

func (c *funcConstraint) Arity() int {
	return c.arity
}

func (c *funcConstraint) Residual(window [][]*core.FieldElement) *core.FieldElement {
	return c.fn(window)
}

// ValidSteps returns the number of trace steps at which an arity-sized
// window fits: steps 0 through traceLength-arity.
func ValidSteps(traceLength, arity int) int {
	return traceLength - arity + 1
}

// EvaluateResiduals computes the constraint residual at every valid step
// of the trace. For an honest trace every residual is zero.
func EvaluateResiduals(trace *core.Trace, constraint Constraint) ([]*core.FieldElement, error) {
	arity := constraint.Arity()
	if arity < 1 {
		return nil, fmt.Errorf("%w: arity must be positive, got %d", ErrConstraintArity, arity)
	}
	if arity > trace.Length() {
		return nil, fmt.Errorf("%w: arity %d exceeds trace length %d", ErrConstraintArity, arity, trace.Length())
	}

	steps := ValidSteps(trace.Length(), arity)
	residuals := make([]*core.FieldElement, steps)
	for step := 0; step < steps; step++ {
		residuals[step] = constraint.Residual(trace.Window(step, arity))
	}
	return residuals, nil
}

package programs

import (
	"fmt"

	"github.com/starkmini/starkmini/internal/starkmini/core"
	"github.com/starkmini/starkmini/internal/starkmini/protocols"
)

// SquareFibonacciTrace builds the single-column trace of the squared
// recurrence f(n+2) = f(n+1)^2 + f(n)^2 starting from 1, 3. Eight steps
// over F_97 give 1 3 10 12 50 25 21 96.
func SquareFibonacciTrace(field *core.Field, steps int) (*core.Trace, error) {
	if steps < 1 {
		return nil, fmt.Errorf("trace needs at least one step, got %d", steps)
	}
	rows := make([][]*core.FieldElement, steps)
	a, b := field.One(), field.NewElement(3)
	for i := range rows {
		rows[i] = []*core.FieldElement{a}
		a, b = b, a.Square().Add(b.Square())
	}
	return core.NewTrace(field, rows)
}

// SquareFibonacciConstraint is the three-row window rule
// f(n+2) - f(n+1)^2 - f(n)^2 == 0. The residual is quadratic in the trace
// values, which the pipeline handles unchanged: constraints are opaque
// functions of a row window.
func SquareFibonacciConstraint() protocols.Constraint {
	return protocols.NewConstraint(3, func(window [][]*core.FieldElement) *core.FieldElement {
		return window[2][0].Sub(window[1][0].Square()).Sub(window[0][0].Square())
	})
}

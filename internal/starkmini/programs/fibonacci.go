// Package programs bundles the example AIRs the pipeline ships with:
// trace generators paired with the transition constraint each trace
// satisfies. The pipeline never references a concrete program; these are
// the collaborators the CLI and the examples feed into it.
package programs

import (
	"fmt"

	"github.com/starkmini/starkmini/internal/starkmini/core"
	"github.com/starkmini/starkmini/internal/starkmini/protocols"
)

// FibonacciTrace builds the single-column trace of the recurrence
// f(n+2) = f(n+1) + f(n) starting from 1, 1, with every value reduced
// into the field. Eight steps over F_97 give 1 1 2 3 5 8 13 21.
func FibonacciTrace(field *core.Field, steps int) (*core.Trace, error) {
	if steps < 1 {
		return nil, fmt.Errorf("trace needs at least one step, got %d", steps)
	}
	rows := make([][]*core.FieldElement, steps)
	a, b := field.One(), field.One()
	for i := range rows {
		rows[i] = []*core.FieldElement{a}
		a, b = b, a.Add(b)
	}
	return core.NewTrace(field, rows)
}

// FibonacciConstraint is the three-row window rule
// f(n+2) - f(n+1) - f(n) == 0.
func FibonacciConstraint() protocols.Constraint {
	return protocols.NewConstraint(3, func(window [][]*core.FieldElement) *core.FieldElement {
		return window[2][0].Sub(window[1][0]).Sub(window[0][0])
	})
}

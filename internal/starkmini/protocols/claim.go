package protocols

import (
	"fmt"

	"github.com/starkmini/starkmini/internal/starkmini/utils"
)

// Claim is the public statement a proof is checked against: how long the
// execution trace is and how large the composition polynomial's degree may
// legitimately be. Verification trusts nothing the proof echoes that the
// claim also states.
type Claim struct {
	// TraceLength is the claimed number of trace steps
	TraceLength int

	// ConstraintDegree bounds the composition polynomial's degree. The
	// honest composition is identically zero, degree -1, so the bound is
	// an upper limit rather than an exact value.
	ConstraintDegree int

	// Columns is the claimed trace width
	Columns int
}

// NewClaim creates a claim for a single-column trace
func NewClaim(traceLength, constraintDegree int) *Claim {
	return &Claim{
		TraceLength:      traceLength,
		ConstraintDegree: constraintDegree,
		Columns:          1,
	}
}

// WithColumns sets the claimed trace width
func (c *Claim) WithColumns(columns int) *Claim {
	c.Columns = columns
	return c
}

// Validate checks that the claim is internally consistent
func (c *Claim) Validate() error {
	if c.TraceLength < 1 {
		return fmt.Errorf("%w: claimed trace length must be positive, got %d", utils.ErrInvalidConfig, c.TraceLength)
	}
	if c.ConstraintDegree < -1 {
		return fmt.Errorf("%w: claimed constraint degree must be at least -1, got %d", utils.ErrInvalidConfig, c.ConstraintDegree)
	}
	if c.Columns < 1 {
		return fmt.Errorf("%w: claimed column count must be positive, got %d", utils.ErrInvalidConfig, c.Columns)
	}
	return nil
}

// String renders the claim for logs
func (c *Claim) String() string {
	return fmt.Sprintf("Claim{trace: %dx%d, degree <= %d}", c.TraceLength, c.Columns, c.ConstraintDegree)
}

package protocols

import (
	"fmt"

	"github.com/starkmini/starkmini/internal/starkmini/core"
)

// Composition bundles the constraint side of a proof: the composition
// polynomial C interpolated from the residuals, its quotient by the
// vanishing polynomial of the valid steps, and C's committed evaluations
// over the LDE domain.
type Composition struct {
	// Poly is C, the interpolation of (trace-domain point, residual) pairs.
	// Identically zero for an honest trace.
	Poly *core.Polynomial

	// Vanishing is Z, the monic polynomial with the valid trace-domain
	// points as roots
	Vanishing *core.Polynomial

	// Quotient is Q = C / Z (exact for honest traces, where C is zero)
	Quotient *core.Polynomial

	// Evaluations is C evaluated at every LDE domain point
	Evaluations []*core.FieldElement

	// Tree commits to Evaluations row by row
	Tree *core.MerkleTree
}

// Degree returns the degree of the composition polynomial (-1 when zero)
func (c *Composition) Degree() int {
	return c.Poly.Degree()
}

// Root returns the commitment root of the LDE evaluations
func (c *Composition) Root() []byte {
	return c.Tree.Root()
}

// BuildComposition evaluates the constraint residuals over the trace,
// interpolates them into the composition polynomial, divides by the
// vanishing polynomial of the valid steps, and commits the polynomial's
// LDE evaluations. The commitment uses the same leaf encoding as the
// trace commitment, one evaluation per row.
func BuildComposition(
	trace *core.Trace,
	constraint Constraint,
	traceDomain *Domain,
	ldeDomain *Domain,
	hasher core.Hasher,
) (*Composition, error) {
	residuals, err := EvaluateResiduals(trace, constraint)
	if err != nil {
		return nil, err
	}

	points := make([]core.Point, len(residuals))
	validPoints := make([]*core.FieldElement, len(residuals))
	for step := range residuals {
		x := traceDomain.Element(step)
		validPoints[step] = x
		points[step] = core.NewPoint(x, residuals[step])
	}

	poly, err := core.LagrangeInterpolation(points, trace.Field())
	if err != nil {
		return nil, fmt.Errorf("failed to interpolate composition polynomial: %w", err)
	}

	vanishing, err := core.Vanishing(trace.Field(), validPoints)
	if err != nil {
		return nil, fmt.Errorf("failed to build vanishing polynomial: %w", err)
	}

	// The remainder is dropped: it is zero exactly when C vanishes on the
	// valid points, which is the claim the verifier's identity check
	// C(s) == Q(s)*Z(s) probes at the sampled points.
	quotient, _, err := poly.Div(vanishing)
	if err != nil {
		return nil, fmt.Errorf("failed to divide by vanishing polynomial: %w", err)
	}

	evaluations := ldeDomain.EvaluatePolynomial(poly)
	rows := make([][]byte, len(evaluations))
	for i, value := range evaluations {
		rows[i] = value.Bytes()
	}
	tree, err := core.NewMerkleTree(hasher, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to commit composition evaluations: %w", err)
	}

	return &Composition{
		Poly:        poly,
		Vanishing:   vanishing,
		Quotient:    quotient,
		Evaluations: evaluations,
		Tree:        tree,
	}, nil
}

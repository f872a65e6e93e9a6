package protocols

import (
	"errors"
	"fmt"

	"github.com/starkmini/starkmini/internal/starkmini/core"
	"github.com/starkmini/starkmini/internal/starkmini/utils"
)

// ErrNoSubgroupOfOrder is returned when the multiplicative group of the
// field has no subgroup of the requested order.
var ErrNoSubgroupOfOrder = errors.New("no subgroup of requested order")

// Domain is a multiplicative subgroup {g^0, g^1, ..., g^(m-1)} of the
// field, ordered by exponent. The trace domain and the LDE domain are both
// instances; deriving their generators from the same primitive root keeps
// the trace domain a subgroup of the LDE domain.
type Domain struct {
	field     *core.Field
	generator *core.FieldElement
	length    int
}

// NewDomain creates the subgroup of the given order. The order must divide
// p-1, otherwise no such subgroup exists and ErrNoSubgroupOfOrder is
// returned.
func NewDomain(field *core.Field, length int) (*Domain, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: order must be positive, got %d", ErrNoSubgroupOfOrder, length)
	}
	groupOrder := field.Modulus() - 1
	if groupOrder%uint64(length) != 0 {
		return nil, fmt.Errorf("%w: %d does not divide %d", ErrNoSubgroupOfOrder, length, groupOrder)
	}

	generator := primitiveRoot(field).Exp(groupOrder / uint64(length))
	if err := checkOrder(generator, uint64(length)); err != nil {
		return nil, err
	}

	return &Domain{
		field:     field,
		generator: generator,
		length:    length,
	}, nil
}

// primitiveRoot finds the smallest generator of the full multiplicative
// group F_p^*. Deterministic by construction: candidates are tried in
// ascending order, and g generates the group iff g^((p-1)/q) != 1 for
// every prime factor q of p-1.
func primitiveRoot(field *core.Field) *core.FieldElement {
	order := field.Modulus() - 1
	factors := utils.PrimeFactors(order)

	for g := uint64(2); g < field.Modulus(); g++ {
		candidate := field.NewElement(g)
		isGenerator := true
		for _, q := range factors {
			if candidate.Exp(order / q).IsOne() {
				isGenerator = false
				break
			}
		}
		if isGenerator {
			return candidate
		}
	}

	// p = 2: the multiplicative group is trivial.
	return field.One()
}

// checkOrder verifies the element has multiplicative order exactly n.
func checkOrder(element *core.FieldElement, n uint64) error {
	if !element.Exp(n).IsOne() {
		return fmt.Errorf("%w: generator order does not divide %d", ErrNoSubgroupOfOrder, n)
	}
	for _, q := range utils.PrimeFactors(n) {
		if element.Exp(n / q).IsOne() {
			return fmt.Errorf("%w: generator order is a proper divisor of %d", ErrNoSubgroupOfOrder, n)
		}
	}
	return nil
}

// Field returns the field the domain lives in
func (d *Domain) Field() *core.Field {
	return d.field
}

// Length returns the number of elements in the domain
func (d *Domain) Length() int {
	return d.length
}

// Generator returns the subgroup generator
func (d *Domain) Generator() *core.FieldElement {
	return d.generator
}

// Element returns the i-th domain point g^i. Indices wrap around the
// cyclic group, so Element(i) == Element(i mod length).
func (d *Domain) Element(i int) *core.FieldElement {
	if i < 0 {
		panic("domain index must be non-negative")
	}
	return d.generator.Exp(uint64(i % d.length))
}

// Elements returns all domain points in order: {g^0, g^1, ..., g^(m-1)}
func (d *Domain) Elements() []*core.FieldElement {
	elements := make([]*core.FieldElement, d.length)
	current := d.field.One()
	for i := 0; i < d.length; i++ {
		elements[i] = current
		current = current.Mul(d.generator)
	}
	return elements
}

// Halve returns the domain of half the order, generated by the square of
// this domain's generator. Folding one FRI layer moves evaluations onto
// the halved domain.
func (d *Domain) Halve() (*Domain, error) {
	if d.length < 2 {
		return nil, fmt.Errorf("cannot halve domain of length %d", d.length)
	}
	return &Domain{
		field:     d.field,
		generator: d.generator.Square(),
		length:    d.length / 2,
	}, nil
}

// Interpolate computes the unique polynomial of degree < length that takes
// the given values on the domain points, in order.
func (d *Domain) Interpolate(values []*core.FieldElement) (*core.Polynomial, error) {
	if len(values) != d.length {
		return nil, fmt.Errorf("expected %d values, got %d", d.length, len(values))
	}
	points := make([]core.Point, d.length)
	for i, x := range d.Elements() {
		points[i] = core.NewPoint(x, values[i])
	}
	return core.LagrangeInterpolation(points, d.field)
}

// EvaluatePolynomial evaluates a polynomial at every domain point
func (d *Domain) EvaluatePolynomial(poly *core.Polynomial) []*core.FieldElement {
	elements := d.Elements()
	values := make([]*core.FieldElement, len(elements))
	for i, x := range elements {
		values[i] = poly.Eval(x)
	}
	return values
}

// String returns a human-readable representation
func (d *Domain) String() string {
	return fmt.Sprintf("Domain{length: %d, generator: %s}", d.length, d.generator)
}

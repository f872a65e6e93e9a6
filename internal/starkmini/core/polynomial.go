package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicatePoint is returned when interpolation points share an x-coordinate.
var ErrDuplicatePoint = errors.New("duplicate interpolation point")

// Polynomial represents a polynomial with coefficients in a finite field.
// Coefficient i belongs to x^i. Trailing zero coefficients are trimmed, and
// the empty coefficient slice represents the zero polynomial.
type Polynomial struct {
	coefficients []*FieldElement
	field        *Field
}

// NewPolynomial creates a new polynomial from field elements
func NewPolynomial(field *Field, coefficients []*FieldElement) (*Polynomial, error) {
	for i, coeff := range coefficients {
		if !coeff.Field().Equals(field) {
			return nil, fmt.Errorf("coefficient %d is from a different field", i)
		}
	}

	end := len(coefficients)
	for end > 0 && coefficients[end-1].IsZero() {
		end--
	}

	trimmed := make([]*FieldElement, end)
	copy(trimmed, coefficients[:end])

	return &Polynomial{coefficients: trimmed, field: field}, nil
}

// NewPolynomialFromInt64 creates a polynomial from int64 coefficients
func NewPolynomialFromInt64(field *Field, coefficients []int64) (*Polynomial, error) {
	fieldCoeffs := make([]*FieldElement, len(coefficients))
	for i, coeff := range coefficients {
		fieldCoeffs[i] = field.NewElementFromInt64(coeff)
	}
	return NewPolynomial(field, fieldCoeffs)
}

// ZeroPolynomial returns the zero polynomial over the given field
func ZeroPolynomial(field *Field) *Polynomial {
	return &Polynomial{coefficients: nil, field: field}
}

// Degree returns the degree of the polynomial, -1 for the zero polynomial
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Field returns the field the polynomial is defined over
func (p *Polynomial) Field() *Field {
	return p.field
}

// IsZero checks if this is the zero polynomial
func (p *Polynomial) IsZero() bool {
	return len(p.coefficients) == 0
}

// Coefficient returns the coefficient of the given degree
func (p *Polynomial) Coefficient(degree int) *FieldElement {
	if degree < 0 || degree >= len(p.coefficients) {
		return p.field.Zero()
	}
	return p.coefficients[degree]
}

// LeadingCoefficient returns the coefficient of the highest degree term
func (p *Polynomial) LeadingCoefficient() *FieldElement {
	if p.IsZero() {
		return p.field.Zero()
	}
	return p.coefficients[len(p.coefficients)-1]
}

// Coefficients returns a copy of the polynomial coefficients
func (p *Polynomial) Coefficients() []*FieldElement {
	coeffs := make([]*FieldElement, len(p.coefficients))
	copy(coeffs, p.coefficients)
	return coeffs
}

// Point represents a point for polynomial interpolation
type Point struct {
	X *FieldElement
	Y *FieldElement
}

// NewPoint creates a new point
func NewPoint(x, y *FieldElement) Point {
	return Point{X: x, Y: y}
}

// Eval evaluates the polynomial at the given point using Horner's method
func (p *Polynomial) Eval(point *FieldElement) *FieldElement {
	if !point.Field().Equals(p.field) {
		panic("cannot evaluate polynomial at point from different field")
	}

	result := p.field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(point).Add(p.coefficients[i])
	}
	return result
}

// Add adds two polynomials
func (p *Polynomial) Add(other *Polynomial) (*Polynomial, error) {
	if !p.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot add polynomials from different fields")
	}

	maxLen := len(p.coefficients)
	if len(other.coefficients) > maxLen {
		maxLen = len(other.coefficients)
	}

	coefficients := make([]*FieldElement, maxLen)
	for i := 0; i < maxLen; i++ {
		coefficients[i] = p.Coefficient(i).Add(other.Coefficient(i))
	}

	return NewPolynomial(p.field, coefficients)
}

// Sub subtracts two polynomials
func (p *Polynomial) Sub(other *Polynomial) (*Polynomial, error) {
	if !p.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot subtract polynomials from different fields")
	}

	maxLen := len(p.coefficients)
	if len(other.coefficients) > maxLen {
		maxLen = len(other.coefficients)
	}

	coefficients := make([]*FieldElement, maxLen)
	for i := 0; i < maxLen; i++ {
		coefficients[i] = p.Coefficient(i).Sub(other.Coefficient(i))
	}

	return NewPolynomial(p.field, coefficients)
}

// Mul multiplies two polynomials by coefficient convolution
func (p *Polynomial) Mul(other *Polynomial) (*Polynomial, error) {
	if !p.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot multiply polynomials from different fields")
	}

	if p.IsZero() || other.IsZero() {
		return ZeroPolynomial(p.field), nil
	}

	coefficients := make([]*FieldElement, p.Degree()+other.Degree()+1)
	for i := range coefficients {
		coefficients[i] = p.field.Zero()
	}

	for i, coeff1 := range p.coefficients {
		for j, coeff2 := range other.coefficients {
			coefficients[i+j] = coefficients[i+j].Add(coeff1.Mul(coeff2))
		}
	}

	return NewPolynomial(p.field, coefficients)
}

// MulScalar multiplies the polynomial by a scalar
func (p *Polynomial) MulScalar(scalar *FieldElement) (*Polynomial, error) {
	if !scalar.Field().Equals(p.field) {
		return nil, fmt.Errorf("cannot multiply by scalar from different field")
	}

	coefficients := make([]*FieldElement, len(p.coefficients))
	for i, coeff := range p.coefficients {
		coefficients[i] = coeff.Mul(scalar)
	}

	return NewPolynomial(p.field, coefficients)
}

// Div divides this polynomial by another using long division, returning
// quotient and remainder. Division by the zero polynomial fails.
func (p *Polynomial) Div(other *Polynomial) (*Polynomial, *Polynomial, error) {
	if !p.field.Equals(other.field) {
		return nil, nil, fmt.Errorf("cannot divide polynomials from different fields")
	}
	if other.IsZero() {
		return nil, nil, fmt.Errorf("polynomial division: %w", ErrDivisionByZero)
	}

	if p.Degree() < other.Degree() {
		return ZeroPolynomial(p.field), p, nil
	}

	invLead, err := other.LeadingCoefficient().Inv()
	if err != nil {
		return nil, nil, fmt.Errorf("division failed: %w", err)
	}

	remainder := make([]*FieldElement, len(p.coefficients))
	copy(remainder, p.coefficients)

	quotient := make([]*FieldElement, p.Degree()-other.Degree()+1)
	for i := range quotient {
		quotient[i] = p.field.Zero()
	}

	for i := len(remainder) - 1; i >= other.Degree(); i-- {
		if remainder[i].IsZero() {
			continue
		}
		shift := i - other.Degree()
		factor := remainder[i].Mul(invLead)
		quotient[shift] = factor
		for j := 0; j <= other.Degree(); j++ {
			remainder[shift+j] = remainder[shift+j].Sub(factor.Mul(other.coefficients[j]))
		}
	}

	quotientPoly, err := NewPolynomial(p.field, quotient)
	if err != nil {
		return nil, nil, err
	}
	remainderPoly, err := NewPolynomial(p.field, remainder)
	if err != nil {
		return nil, nil, err
	}
	return quotientPoly, remainderPoly, nil
}

// Vanishing returns the monic polynomial that is zero at every given point,
// the product of (x - p_i) over all points.
func Vanishing(field *Field, points []*FieldElement) (*Polynomial, error) {
	result, err := NewPolynomial(field, []*FieldElement{field.One()})
	if err != nil {
		return nil, err
	}

	for _, pt := range points {
		factor, err := NewPolynomial(field, []*FieldElement{pt.Neg(), field.One()})
		if err != nil {
			return nil, err
		}
		result, err = result.Mul(factor)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// LagrangeInterpolation computes the unique polynomial of degree < len(points)
// passing through every given point. The x-coordinates must be pairwise
// distinct.
func LagrangeInterpolation(points []Point, field *Field) (*Polynomial, error) {
	for i, point := range points {
		if !point.X.Field().Equals(field) || !point.Y.Field().Equals(field) {
			return nil, fmt.Errorf("point %d is from a different field", i)
		}
		for j := i + 1; j < len(points); j++ {
			if point.X.Equal(points[j].X) {
				return nil, fmt.Errorf("points %d and %d share x = %s: %w", i, j, point.X, ErrDuplicatePoint)
			}
		}
	}

	result := ZeroPolynomial(field)

	for i, point := range points {
		// Build the Lagrange basis polynomial L_i(x), the scaled product
		// of (x - x_j) / (x_i - x_j) over all j != i.
		basis, err := NewPolynomial(field, []*FieldElement{field.One()})
		if err != nil {
			return nil, err
		}

		for j, otherPoint := range points {
			if i == j {
				continue
			}

			factor, err := NewPolynomial(field, []*FieldElement{otherPoint.X.Neg(), field.One()})
			if err != nil {
				return nil, err
			}

			invDenominator, err := point.X.Sub(otherPoint.X).Inv()
			if err != nil {
				return nil, fmt.Errorf("interpolation failed: %w", err)
			}

			factor, err = factor.MulScalar(invDenominator)
			if err != nil {
				return nil, err
			}

			basis, err = basis.Mul(factor)
			if err != nil {
				return nil, err
			}
		}

		term, err := basis.MulScalar(point.Y)
		if err != nil {
			return nil, err
		}

		result, err = result.Add(term)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// String returns a human-readable rendering of the polynomial
func (p *Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}

	var terms []string
	for i := p.Degree(); i >= 0; i-- {
		coeff := p.Coefficient(i)
		if coeff.IsZero() {
			continue
		}

		var term string
		switch {
		case i == 0:
			term = coeff.String()
		case i == 1 && coeff.IsOne():
			term = "x"
		case i == 1:
			term = coeff.String() + "x"
		case coeff.IsOne():
			term = fmt.Sprintf("x^%d", i)
		default:
			term = fmt.Sprintf("%sx^%d", coeff.String(), i)
		}

		terms = append(terms, term)
	}

	return strings.Join(terms, " + ")
}

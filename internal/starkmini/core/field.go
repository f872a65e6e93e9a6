package core

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
)

// ElementByteLen is the fixed width of the big-endian byte encoding of a
// field element. Prover and verifier must hash identical bytes, so the
// encoding never varies with the value.
const ElementByteLen = 8

// MaxModulus bounds the field modulus so that a product of two reduced
// elements always fits in a uint64.
const MaxModulus = 1<<32 - 1

// ErrDivisionByZero is returned when inverting or dividing by the zero element.
var ErrDivisionByZero = errors.New("division by zero")

// Field represents a prime field with modular arithmetic operations
type Field struct {
	modulus uint64
}

// FieldElement represents an element in the finite field
type FieldElement struct {
	field *Field
	value uint64
}

// NewField creates a new prime field with the given modulus
func NewField(modulus uint64) (*Field, error) {
	if modulus < 2 {
		return nil, fmt.Errorf("modulus must be at least 2, got %d", modulus)
	}
	if modulus > MaxModulus {
		return nil, fmt.Errorf("modulus %d exceeds the %d-bit limit", modulus, 32)
	}
	if !isPrime(modulus) {
		return nil, fmt.Errorf("modulus %d is not prime", modulus)
	}
	return &Field{modulus: modulus}, nil
}

// isPrime runs trial division; moduli are capped at 32 bits so this stays cheap.
func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := uint64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// Modulus returns the field modulus
func (f *Field) Modulus() uint64 {
	return f.modulus
}

// NewElement creates a new field element, reducing the value mod the modulus
func (f *Field) NewElement(value uint64) *FieldElement {
	return &FieldElement{field: f, value: value % f.modulus}
}

// NewElementFromInt64 creates a new field element from a possibly negative int64
func (f *Field) NewElementFromInt64(value int64) *FieldElement {
	m := int64(f.modulus)
	v := value % m
	if v < 0 {
		v += m
	}
	return &FieldElement{field: f, value: uint64(v)}
}

// Zero returns the additive identity
func (f *Field) Zero() *FieldElement {
	return &FieldElement{field: f, value: 0}
}

// One returns the multiplicative identity
func (f *Field) One() *FieldElement {
	return &FieldElement{field: f, value: 1 % f.modulus}
}

// Equals reports whether two fields have the same modulus
func (f *Field) Equals(other *Field) bool {
	return f.modulus == other.modulus
}

// Uint64 returns the reduced value of the field element
func (fe *FieldElement) Uint64() uint64 {
	return fe.value
}

// Field returns the field this element belongs to
func (fe *FieldElement) Field() *Field {
	return fe.field
}

// Add performs field addition
func (fe *FieldElement) Add(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot add elements from different fields")
	}
	return &FieldElement{field: fe.field, value: (fe.value + other.value) % fe.field.modulus}
}

// Sub performs field subtraction
func (fe *FieldElement) Sub(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot subtract elements from different fields")
	}
	return &FieldElement{field: fe.field, value: (fe.value + fe.field.modulus - other.value) % fe.field.modulus}
}

// Neg returns the additive inverse (negation) of the field element
func (fe *FieldElement) Neg() *FieldElement {
	return &FieldElement{field: fe.field, value: (fe.field.modulus - fe.value) % fe.field.modulus}
}

// Mul performs field multiplication
func (fe *FieldElement) Mul(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot multiply elements from different fields")
	}
	return &FieldElement{field: fe.field, value: (fe.value * other.value) % fe.field.modulus}
}

// Div performs field division (multiplication by inverse)
func (fe *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	if !fe.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot divide elements from different fields")
	}
	inv, err := other.Inv()
	if err != nil {
		return nil, fmt.Errorf("division failed: %w", err)
	}
	return fe.Mul(inv), nil
}

// Inv computes the multiplicative inverse via the extended Euclidean algorithm
func (fe *FieldElement) Inv() (*FieldElement, error) {
	if fe.value == 0 {
		return nil, ErrDivisionByZero
	}

	t, newT := int64(0), int64(1)
	r, newR := int64(fe.field.modulus), int64(fe.value)
	for newR != 0 {
		q := r / newR
		t, newT = newT, t-q*newT
		r, newR = newR, r-q*newR
	}
	if r != 1 {
		return nil, fmt.Errorf("no inverse for %d modulo %d", fe.value, fe.field.modulus)
	}
	if t < 0 {
		t += int64(fe.field.modulus)
	}
	return &FieldElement{field: fe.field, value: uint64(t)}, nil
}

// Exp performs field exponentiation by binary square-and-multiply
func (fe *FieldElement) Exp(exponent uint64) *FieldElement {
	result := fe.field.One()
	base := fe
	for e := exponent; e > 0; e >>= 1 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Square()
	}
	return result
}

// Square computes the square of the field element
func (fe *FieldElement) Square() *FieldElement {
	return fe.Mul(fe)
}

// Equal checks if two field elements are equal
func (fe *FieldElement) Equal(other *FieldElement) bool {
	if !fe.field.Equals(other.field) {
		return false
	}
	return fe.value == other.value
}

// IsZero checks if the element is zero
func (fe *FieldElement) IsZero() bool {
	return fe.value == 0
}

// IsOne checks if the element is one
func (fe *FieldElement) IsOne() bool {
	return fe.value == 1%fe.field.modulus
}

// String returns a string representation of the field element
func (fe *FieldElement) String() string {
	return strconv.FormatUint(fe.value, 10)
}

// Bytes returns the fixed-width big-endian encoding of the field element
func (fe *FieldElement) Bytes() []byte {
	var buf [ElementByteLen]byte
	binary.BigEndian.PutUint64(buf[:], fe.value)
	return buf[:]
}

// Default field for the examples and tests
var (
	// DefaultModulus is small enough to follow every value by hand while
	// still carrying the subgroup orders the pipeline needs (96 = 2^5 * 3).
	DefaultModulus uint64 = 97
	// DefaultField is the field of integers modulo DefaultModulus
	DefaultField, _ = NewField(DefaultModulus)
)

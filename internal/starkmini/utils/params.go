package utils

import (
	"errors"
	"fmt"

	"github.com/starkmini/starkmini/internal/starkmini/core"
)

// ErrInvalidConfig wraps every parameter-validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Params collects the construction-time parameters of the pipeline. All of
// them are fixed when a prover or verifier is built; none are runtime
// toggles. Prover and verifier must agree on every field to agree on a
// proof.
type Params struct {
	// Modulus of the prime field all arithmetic happens in
	Modulus uint64

	// TraceLength is the number of steps in the trace (power of two)
	TraceLength int

	// Blowup is the LDE expansion factor (power of two, at least 2)
	Blowup int

	// Queries is the number of sampled indices
	Queries int

	// HashFunction names the hasher shared by commitments and transcript
	HashFunction string
}

// DefaultParams returns the parameters of the hand-checkable Fibonacci
// example: eight steps over F_97 with a doubled evaluation domain.
func DefaultParams() *Params {
	return &Params{
		Modulus:      core.DefaultModulus,
		TraceLength:  8,
		Blowup:       2,
		Queries:      5,
		HashFunction: "sha3-256",
	}
}

// Validate checks the structural constraints on the parameters. Number
// theoretic requirements (the subgroup orders existing in the field) are
// checked by the domain builder.
func (p *Params) Validate() error {
	if _, err := core.NewField(p.Modulus); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !IsPowerOfTwo(p.TraceLength) {
		return fmt.Errorf("%w: trace length %d is not a power of two", ErrInvalidConfig, p.TraceLength)
	}
	if p.Blowup < 2 {
		return fmt.Errorf("%w: blowup factor must be at least 2, got %d", ErrInvalidConfig, p.Blowup)
	}
	if !IsPowerOfTwo(p.Blowup) {
		return fmt.Errorf("%w: blowup factor %d is not a power of two", ErrInvalidConfig, p.Blowup)
	}
	if p.Queries < 1 {
		return fmt.Errorf("%w: query count must be positive, got %d", ErrInvalidConfig, p.Queries)
	}
	if _, err := core.NewHasher(p.HashFunction); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LDESize returns the size of the extended evaluation domain
func (p *Params) LDESize() int {
	return p.TraceLength * p.Blowup
}

// FriRounds returns the number of folds needed to shrink the LDE-sized
// evaluation vector to a single value.
func (p *Params) FriRounds() int {
	return Log2(p.LDESize())
}

// WithModulus sets the field modulus
func (p *Params) WithModulus(modulus uint64) *Params {
	p.Modulus = modulus
	return p
}

// WithTraceLength sets the trace length
func (p *Params) WithTraceLength(length int) *Params {
	p.TraceLength = length
	return p
}

// WithBlowup sets the LDE expansion factor
func (p *Params) WithBlowup(blowup int) *Params {
	p.Blowup = blowup
	return p
}

// WithQueries sets the number of sampled indices
func (p *Params) WithQueries(queries int) *Params {
	p.Queries = queries
	return p
}

// WithHashFunction sets the hash function
func (p *Params) WithHashFunction(name string) *Params {
	p.HashFunction = name
	return p
}

// Clone creates a copy of the parameters
func (p *Params) Clone() *Params {
	clone := *p
	return &clone
}

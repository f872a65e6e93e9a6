package utils

import (
	"math/big"

	"github.com/starkmini/starkmini/internal/starkmini/core"
)

// Transcript is the Fiat-Shamir channel: a running hash digest from which
// prover and verifier derive identical challenge sequences without
// communicating. Every draw first advances the digest, then extracts a value
// from the new digest, so draws can never repeat and their order matters.
type Transcript struct {
	state  []byte
	hasher core.Hasher
}

// NewTranscript creates a transcript seeded with the given bytes, normally
// a commitment root. The initial state is the hash of the seed.
func NewTranscript(hasher core.Hasher, seed []byte) *Transcript {
	return &Transcript{
		state:  hasher.Sum(seed),
		hasher: hasher,
	}
}

// Absorb binds data into the transcript so later draws depend on it
func (t *Transcript) Absorb(data []byte) {
	combined := make([]byte, 0, len(t.state)+len(data))
	combined = append(combined, t.state...)
	combined = append(combined, data...)
	t.state = t.hasher.Sum(combined)
}

// DrawIndex advances the digest and returns it reduced modulo bound
func (t *Transcript) DrawIndex(bound int) int {
	if bound <= 0 {
		panic("transcript: draw bound must be positive")
	}

	t.state = t.hasher.Sum(t.state)
	value := new(big.Int).SetBytes(t.state)
	return int(value.Mod(value, big.NewInt(int64(bound))).Int64())
}

// DrawFieldElement advances the digest and returns it reduced into the field
func (t *Transcript) DrawFieldElement(field *core.Field) *core.FieldElement {
	t.state = t.hasher.Sum(t.state)
	value := new(big.Int).SetBytes(t.state)
	modulus := new(big.Int).SetUint64(field.Modulus())
	return field.NewElement(value.Mod(value, modulus).Uint64())
}

// State returns a copy of the current digest
func (t *Transcript) State() []byte {
	return append([]byte(nil), t.state...)
}

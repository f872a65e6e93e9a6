package starkmini

import (
	"github.com/starkmini/starkmini/internal/starkmini/core"
	"github.com/starkmini/starkmini/internal/starkmini/protocols"
	"github.com/starkmini/starkmini/internal/starkmini/utils"
)

// FieldElement represents an element of the prime field all pipeline
// arithmetic happens in.
type FieldElement = core.FieldElement

// Field represents a prime field
type Field = core.Field

// Trace is the execution trace being attested: a rectangular matrix of
// field elements, rows indexed by step.
type Trace = core.Trace

// Proof is a complete STARK proof: commitment roots, recorded challenges,
// and openings at the sampled indices.
type Proof = protocols.Proof

// Claim is the public statement a proof is verified against
type Claim = protocols.Claim

// Params collects the construction-time parameters of the pipeline
type Params = utils.Params

// Constraint is a pluggable transition rule: an arity and a residual
// function over a window of consecutive trace rows.
type Constraint = protocols.Constraint

// ResidualFunc is the function form of a transition rule
type ResidualFunc = protocols.ResidualFunc

// Result is the outcome of verifying a proof
type Result = protocols.Result

// Rejection explains the first failed verifier check
type Rejection = protocols.Rejection

// RejectionReason identifies which verifier check a proof failed
type RejectionReason = protocols.RejectionReason

// Rejection reasons, re-exported for switch statements on Result
const (
	ReasonMerkleProofInvalid = protocols.ReasonMerkleProofInvalid
	ReasonCompositionNonZero = protocols.ReasonCompositionNonZero
	ReasonFriLayerMismatch   = protocols.ReasonFriLayerMismatch
	ReasonChallengeMismatch  = protocols.ReasonChallengeMismatch
	ReasonMalformedProof     = protocols.ReasonMalformedProof
)

// DefaultField is the field of integers modulo 97
var DefaultField = core.DefaultField

// DefaultParams returns the hand-checkable defaults: eight steps over
// F_97, blowup 2, five queries, SHA3-256.
func DefaultParams() *Params {
	return utils.DefaultParams()
}

// NewField creates a prime field with the given modulus
func NewField(modulus uint64) (*Field, error) {
	field, err := core.NewField(modulus)
	if err != nil {
		return nil, &PipelineError{Code: ErrFieldCreation, Message: "failed to create field", Cause: err}
	}
	return field, nil
}

// NewTrace creates a trace from the given rows. The matrix must be
// rectangular and every element must belong to the given field.
func NewTrace(field *Field, rows [][]*FieldElement) (*Trace, error) {
	trace, err := core.NewTrace(field, rows)
	if err != nil {
		return nil, &PipelineError{Code: ErrInvalidTrace, Message: "failed to build trace", Cause: err}
	}
	return trace, nil
}

// NewClaim creates a claim for a single-column trace of the given length
// whose composition polynomial's degree is bounded by constraintDegree.
func NewClaim(traceLength, constraintDegree int) *Claim {
	return protocols.NewClaim(traceLength, constraintDegree)
}

// NewConstraint wraps a residual function and its window size into a
// Constraint usable with Prove.
func NewConstraint(arity int, fn ResidualFunc) Constraint {
	return protocols.NewConstraint(arity, fn)
}

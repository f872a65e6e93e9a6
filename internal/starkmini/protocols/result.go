package protocols

import (
	"fmt"

	"github.com/starkmini/starkmini/internal/starkmini/core"
)

// RejectionReason identifies which verifier check a proof failed
type RejectionReason int

const (
	// ReasonMerkleProofInvalid means an opening did not authenticate
	// against its committed root
	ReasonMerkleProofInvalid RejectionReason = iota + 1

	// ReasonCompositionNonZero means the composition polynomial evaluated
	// non-zero at a sampled point, or failed the quotient identity there
	ReasonCompositionNonZero

	// ReasonFriLayerMismatch means a folded value did not match the fold
	// equation at a sampled position
	ReasonFriLayerMismatch

	// ReasonChallengeMismatch means a recomputed challenge differs from
	// the one recorded in the proof
	ReasonChallengeMismatch

	// ReasonMalformedProof means the proof is structurally deficient:
	// wrong counts, wrong lengths, or parameters that contradict the claim
	ReasonMalformedProof
)

// String returns the reason name
func (r RejectionReason) String() string {
	switch r {
	case ReasonMerkleProofInvalid:
		return "merkle proof invalid"
	case ReasonCompositionNonZero:
		return "composition non-zero"
	case ReasonFriLayerMismatch:
		return "fri layer mismatch"
	case ReasonChallengeMismatch:
		return "challenge mismatch"
	case ReasonMalformedProof:
		return "malformed proof"
	default:
		return fmt.Sprintf("unknown reason %d", int(r))
	}
}

// Rejection is the structured explanation of a failed verification. It is
// a value, not a Go error: rejecting a proof is an expected outcome of
// Verify, never a fault in the verifier.
type Rejection struct {
	Reason RejectionReason

	// Index is the sampled index at which the check failed, where one
	// applies (-1 otherwise)
	Index int

	// Round is the FRI round at which the check failed (-1 otherwise)
	Round int

	// Value carries the offending evaluation for composition failures
	Value *core.FieldElement

	// Detail describes structural deficiencies for malformed proofs
	Detail string
}

// MerkleProofInvalid reports an opening that failed authentication at the
// given sampled index.
func MerkleProofInvalid(index int) *Rejection {
	return &Rejection{Reason: ReasonMerkleProofInvalid, Index: index, Round: -1}
}

// CompositionNonZero reports a sampled composition evaluation that was not
// zero, or that contradicted the quotient identity.
func CompositionNonZero(index int, value *core.FieldElement) *Rejection {
	return &Rejection{Reason: ReasonCompositionNonZero, Index: index, Round: -1, Value: value}
}

// FriLayerMismatch reports a fold equation failure at the given round and
// sampled index.
func FriLayerMismatch(round, index int) *Rejection {
	return &Rejection{Reason: ReasonFriLayerMismatch, Index: index, Round: round}
}

// ChallengeMismatch reports that the recomputed challenge sequence
// diverged from the proof's recorded challenges.
func ChallengeMismatch() *Rejection {
	return &Rejection{Reason: ReasonChallengeMismatch, Index: -1, Round: -1}
}

// MalformedProof reports a structurally deficient proof.
func MalformedProof(detail string) *Rejection {
	return &Rejection{Reason: ReasonMalformedProof, Index: -1, Round: -1, Detail: detail}
}

// String renders the rejection with its location details
func (r *Rejection) String() string {
	switch r.Reason {
	case ReasonMerkleProofInvalid:
		return fmt.Sprintf("merkle proof invalid at index %d", r.Index)
	case ReasonCompositionNonZero:
		return fmt.Sprintf("composition non-zero at index %d: %s", r.Index, r.Value)
	case ReasonFriLayerMismatch:
		return fmt.Sprintf("fri layer mismatch at round %d, index %d", r.Round, r.Index)
	case ReasonChallengeMismatch:
		return "challenge mismatch"
	case ReasonMalformedProof:
		return fmt.Sprintf("malformed proof: %s", r.Detail)
	default:
		return r.Reason.String()
	}
}

// Result is the outcome of verifying a proof: accepted, or rejected with
// the first failing check's reason.
type Result struct {
	Accepted  bool
	Rejection *Rejection
}

// Accept returns the accepting result
func Accept() Result {
	return Result{Accepted: true}
}

// Reject returns a rejecting result with the given reason
func Reject(rejection *Rejection) Result {
	return Result{Accepted: false, Rejection: rejection}
}

// String renders the outcome
func (r Result) String() string {
	if r.Accepted {
		return "accepted"
	}
	if r.Rejection == nil {
		return "rejected"
	}
	return fmt.Sprintf("rejected: %s", r.Rejection)
}

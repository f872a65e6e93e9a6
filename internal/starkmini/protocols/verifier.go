package protocols

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/starkmini/starkmini/internal/starkmini/core"
	"github.com/starkmini/starkmini/internal/starkmini/utils"
	"github.com/starkmini/starkmini/logger"
)

// Verifier checks proofs without ever seeing the trace. It recomputes the
// transcript from the committed roots, so a proof whose challenges were
// not derived in the prescribed order cannot pass.
//
// The workflow:
//  1. Structural checks on the claim and the proof shape
//  2. Recompute the query indices from the trace root
//  3. Check the trace openings against the trace root
//  4. Check the composition openings: authenticated, zero, and equal to
//     the quotient times the vanishing polynomial at the sampled point
//  5. Replay the FRI rounds: re-derive each beta, check both openings of
//     every fold, and match each folded value against the next layer
//  6. Accept only if every check passed
//
// Any failure is terminal and reported as the first failing check. A
// malformed proof is a rejection like any other, never a panic or an
// error: the verifier cannot be crashed by hostile input.
type Verifier struct {
	params *utils.Params
	field  *core.Field
	hasher core.Hasher
	log    zerolog.Logger
}

// NewVerifier creates a verifier with the given parameters
func NewVerifier(params *utils.Params) (*Verifier, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: parameters cannot be nil", utils.ErrInvalidConfig)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	field, err := core.NewField(params.Modulus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidConfig, err)
	}
	hasher, err := core.NewHasher(params.HashFunction)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidConfig, err)
	}

	log := logger.Logger().With().
		Str("component", "verifier").
		Uint64("modulus", params.Modulus).
		Logger()

	return &Verifier{
		params: params.Clone(),
		field:  field,
		hasher: hasher,
		log:    log,
	}, nil
}

// Params returns a copy of the verifier's parameters
func (v *Verifier) Params() *utils.Params {
	return v.params.Clone()
}

// Verify checks every claim in the proof and returns Accept or the first
// failing check.
func (v *Verifier) Verify(claim *Claim, proof *Proof) Result {
	// Step 1: Structural checks. Everything the later steps index into is
	// validated here, so they can assume a well-shaped proof.
	if rejection := v.checkShape(claim, proof); rejection != nil {
		v.log.Debug().Str("detail", rejection.Detail).Msg("proof malformed")
		return Reject(rejection)
	}

	traceDomain, err := NewDomain(v.field, v.params.TraceLength)
	if err != nil {
		return Reject(MalformedProof(fmt.Sprintf("trace domain: %v", err)))
	}
	ldeDomain, err := NewDomain(v.field, v.params.LDESize())
	if err != nil {
		return Reject(MalformedProof(fmt.Sprintf("evaluation domain: %v", err)))
	}

	// Step 2: Recompute the query indices from the trace root. The
	// transcript is seeded exactly as the prover seeded it.
	transcript := utils.NewTranscript(v.hasher, proof.TraceRoot)
	for q, idx := range proof.Indices {
		if idx != transcript.DrawIndex(ldeDomain.Length()) {
			v.log.Debug().Int("query", q).Msg("sampled index disagrees with transcript")
			return Reject(ChallengeMismatch())
		}
	}

	// Step 3: Check the trace openings against the trace root
	for q, idx := range proof.Indices {
		opening := proof.TraceOpenings[q]
		if !core.VerifyProof(v.hasher, proof.TraceRoot, core.RowBytes(opening.Row), opening.Path, idx) {
			return Reject(MerkleProofInvalid(idx))
		}
	}

	// Step 4: Check the composition openings. Each opened value must
	// authenticate against the composition root, vanish, and match the
	// quotient-vanishing identity C(s) = Q(s)*Z(s).
	quotient, err := core.NewPolynomial(v.field, proof.QuotientCoefficients)
	if err != nil {
		return Reject(MalformedProof(fmt.Sprintf("quotient polynomial: %v", err)))
	}
	vanishing, err := v.vanishingPolynomial(traceDomain, proof.ConstraintArity)
	if err != nil {
		return Reject(MalformedProof(fmt.Sprintf("vanishing polynomial: %v", err)))
	}
	for q, idx := range proof.Indices {
		opening := proof.CompositionOpenings[q]
		if !core.VerifyProof(v.hasher, proof.CompositionRoot, opening.Value.Bytes(), opening.Path, idx) {
			return Reject(MerkleProofInvalid(idx))
		}
		if !opening.Value.IsZero() {
			return Reject(CompositionNonZero(idx, opening.Value))
		}
		s := ldeDomain.Element(idx)
		identity := quotient.Eval(s).Mul(vanishing.Eval(s))
		if !identity.Equal(opening.Value) {
			return Reject(CompositionNonZero(idx, identity))
		}
	}

	// Step 5: Replay the FRI rounds. Betas are re-derived in commit order:
	// the composition root first, then each folded layer's root after the
	// beta that produced it.
	transcript.Absorb(proof.CompositionRoot)
	rounds := v.params.FriRounds()
	size := v.params.LDESize()
	for r := 0; r < rounds; r++ {
		beta := transcript.DrawFieldElement(v.field)
		if !beta.Equal(proof.Betas[r]) {
			v.log.Debug().Int("round", r).Msg("folding challenge disagrees with transcript")
			return Reject(ChallengeMismatch())
		}

		root := proof.CompositionRoot
		if r > 0 {
			root = proof.FriRoots[r-1]
		}

		half := size / 2
		for q, idx := range proof.Indices {
			pair := proof.FriQueries[r][q]
			j := idx % half
			if !core.VerifyProof(v.hasher, root, pair.Low.Value.Bytes(), pair.Low.Path, j) {
				return Reject(MerkleProofInvalid(idx))
			}
			if !core.VerifyProof(v.hasher, root, pair.High.Value.Bytes(), pair.High.Path, j+half) {
				return Reject(MerkleProofInvalid(idx))
			}

			folded := pair.Low.Value.Add(beta.Mul(pair.High.Value))
			if r == rounds-1 {
				if !folded.Equal(proof.FinalValue) {
					return Reject(FriLayerMismatch(r, idx))
				}
				continue
			}

			// The folded value lands at position j of the next layer; the
			// next round's opening pair always covers that position.
			nextHalf := half / 2
			next := proof.FriQueries[r+1][q]
			nextValue := next.Low.Value
			if j >= nextHalf {
				nextValue = next.High.Value
			}
			if !folded.Equal(nextValue) {
				return Reject(FriLayerMismatch(r, idx))
			}
		}

		if r < rounds-1 {
			transcript.Absorb(proof.FriRoots[r])
		}
		size = half
	}

	// Step 6: Every check passed
	v.log.Info().Int("queries", len(proof.Indices)).Int("rounds", rounds).Msg("proof accepted")
	return Accept()
}

// checkShape validates every count, range, and field membership the later
// steps rely on. Arithmetic on unchecked elements could panic, so nothing
// downstream touches a value this function has not seen.
func (v *Verifier) checkShape(claim *Claim, proof *Proof) *Rejection {
	if proof == nil {
		return MalformedProof("proof is nil")
	}
	if claim == nil {
		return MalformedProof("claim is nil")
	}
	if err := claim.Validate(); err != nil {
		return MalformedProof(fmt.Sprintf("invalid claim: %v", err))
	}

	// The parameter echo must agree with the verifier's own parameters
	// and with the claim; nothing in the echo is trusted on its own.
	if proof.Modulus != v.params.Modulus {
		return MalformedProof(fmt.Sprintf("proof modulus %d, verifier uses %d", proof.Modulus, v.params.Modulus))
	}
	if proof.TraceLength != v.params.TraceLength {
		return MalformedProof(fmt.Sprintf("proof trace length %d, verifier uses %d", proof.TraceLength, v.params.TraceLength))
	}
	if proof.Blowup != v.params.Blowup {
		return MalformedProof(fmt.Sprintf("proof blowup %d, verifier uses %d", proof.Blowup, v.params.Blowup))
	}
	if proof.Queries != v.params.Queries {
		return MalformedProof(fmt.Sprintf("proof query count %d, verifier uses %d", proof.Queries, v.params.Queries))
	}
	if proof.HashFunction != v.hasher.Name() {
		return MalformedProof(fmt.Sprintf("proof hash %q, verifier uses %q", proof.HashFunction, v.hasher.Name()))
	}
	if claim.TraceLength != v.params.TraceLength {
		return MalformedProof(fmt.Sprintf("claimed trace length %d, verifier uses %d", claim.TraceLength, v.params.TraceLength))
	}
	if proof.Columns != claim.Columns {
		return MalformedProof(fmt.Sprintf("proof has %d columns, claim has %d", proof.Columns, claim.Columns))
	}
	if proof.ConstraintArity < 1 || proof.ConstraintArity > proof.TraceLength {
		return MalformedProof(fmt.Sprintf("constraint arity %d out of range", proof.ConstraintArity))
	}
	if proof.CompositionDegree < -1 {
		return MalformedProof(fmt.Sprintf("composition degree %d out of range", proof.CompositionDegree))
	}
	if proof.CompositionDegree > claim.ConstraintDegree {
		return MalformedProof(fmt.Sprintf("composition degree %d exceeds claimed bound %d",
			proof.CompositionDegree, claim.ConstraintDegree))
	}

	size := v.params.LDESize()
	rounds := v.params.FriRounds()
	digest := v.hasher.Size()

	if len(proof.TraceRoot) != digest {
		return MalformedProof("trace root has wrong length")
	}
	if len(proof.CompositionRoot) != digest {
		return MalformedProof("composition root has wrong length")
	}
	if len(proof.Indices) != v.params.Queries {
		return MalformedProof(fmt.Sprintf("%d indices for %d queries", len(proof.Indices), v.params.Queries))
	}
	for _, idx := range proof.Indices {
		if idx < 0 || idx >= size {
			return MalformedProof(fmt.Sprintf("index %d outside evaluation domain", idx))
		}
	}

	if len(proof.TraceOpenings) != v.params.Queries {
		return MalformedProof(fmt.Sprintf("%d trace openings for %d queries", len(proof.TraceOpenings), v.params.Queries))
	}
	for i, opening := range proof.TraceOpenings {
		if len(opening.Row) != proof.Columns {
			return MalformedProof(fmt.Sprintf("trace opening %d has %d columns", i, len(opening.Row)))
		}
		if rejection := v.checkElements(opening.Row); rejection != nil {
			return rejection
		}
	}

	if len(proof.QuotientCoefficients) > size {
		return MalformedProof(fmt.Sprintf("quotient has %d coefficients", len(proof.QuotientCoefficients)))
	}
	if rejection := v.checkElements(proof.QuotientCoefficients); rejection != nil {
		return rejection
	}
	if len(proof.CompositionOpenings) != v.params.Queries {
		return MalformedProof(fmt.Sprintf("%d composition openings for %d queries", len(proof.CompositionOpenings), v.params.Queries))
	}
	for _, opening := range proof.CompositionOpenings {
		if rejection := v.checkElement(opening.Value); rejection != nil {
			return rejection
		}
	}

	if len(proof.Betas) != rounds {
		return MalformedProof(fmt.Sprintf("%d betas for %d rounds", len(proof.Betas), rounds))
	}
	if rejection := v.checkElements(proof.Betas); rejection != nil {
		return rejection
	}
	if len(proof.FriRoots) != rounds-1 {
		return MalformedProof(fmt.Sprintf("%d layer roots for %d rounds", len(proof.FriRoots), rounds))
	}
	for _, root := range proof.FriRoots {
		if len(root) != digest {
			return MalformedProof("layer root has wrong length")
		}
	}
	if len(proof.FriQueries) != rounds {
		return MalformedProof(fmt.Sprintf("%d query rounds for %d folds", len(proof.FriQueries), rounds))
	}
	for r, round := range proof.FriQueries {
		if len(round) != v.params.Queries {
			return MalformedProof(fmt.Sprintf("round %d has %d query openings", r, len(round)))
		}
		for _, pair := range round {
			if rejection := v.checkElement(pair.Low.Value); rejection != nil {
				return rejection
			}
			if rejection := v.checkElement(pair.High.Value); rejection != nil {
				return rejection
			}
		}
	}
	return v.checkElement(proof.FinalValue)
}

func (v *Verifier) checkElement(element *core.FieldElement) *Rejection {
	if element == nil {
		return MalformedProof("missing field element")
	}
	if !element.Field().Equals(v.field) {
		return MalformedProof("field element from a different field")
	}
	return nil
}

func (v *Verifier) checkElements(elements []*core.FieldElement) *Rejection {
	for _, element := range elements {
		if rejection := v.checkElement(element); rejection != nil {
			return rejection
		}
	}
	return nil
}

// vanishingPolynomial builds Z over the trace-domain points the constraint
// window covers, the same points the prover interpolated residuals on.
func (v *Verifier) vanishingPolynomial(traceDomain *Domain, arity int) (*core.Polynomial, error) {
	steps := ValidSteps(traceDomain.Length(), arity)
	points := make([]*core.FieldElement, steps)
	for i := range points {
		points[i] = traceDomain.Element(i)
	}
	return core.Vanishing(v.field, points)
}

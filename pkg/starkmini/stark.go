package starkmini

import (
	"github.com/starkmini/starkmini/internal/starkmini/protocols"
	"github.com/starkmini/starkmini/internal/starkmini/utils"
)

// Prove generates a proof that the trace satisfies the constraint at every
// step where the constraint's window fits. Proving is deterministic: the
// same trace under the same parameters yields a byte-identical proof.
func Prove(params *Params, trace *Trace, constraint Constraint) (*Proof, error) {
	prover, err := protocols.NewProver(params)
	if err != nil {
		return nil, pipelineError("failed to create prover", err)
	}
	proof, err := prover.Prove(trace, constraint)
	if err != nil {
		return nil, pipelineError("proof generation failed", err)
	}
	return proof, nil
}

// Verify checks a proof against the claimed trace length and the claimed
// bound on the composition polynomial's degree. Domain parameters are
// taken from the proof itself, so the caller needs no out-of-band setup
// beyond the claim; anything inconsistent inside the proof surfaces as a
// rejection. Verification never returns an error: a hostile or broken
// proof is a rejection, not a fault.
func Verify(proof *Proof, traceLength, constraintDegree int) Result {
	if proof == nil {
		return protocols.Reject(protocols.MalformedProof("proof is nil"))
	}
	params := &utils.Params{
		Modulus:      proof.Modulus,
		TraceLength:  proof.TraceLength,
		Blowup:       proof.Blowup,
		Queries:      proof.Queries,
		HashFunction: proof.HashFunction,
	}
	return VerifyWithParams(params, NewClaim(traceLength, constraintDegree), proof)
}

// VerifyWithParams checks a proof against explicitly agreed parameters
// and claim, trusting nothing the proof echoes.
func VerifyWithParams(params *Params, claim *Claim, proof *Proof) Result {
	verifier, err := protocols.NewVerifier(params)
	if err != nil {
		return protocols.Reject(protocols.MalformedProof(err.Error()))
	}
	return verifier.Verify(claim, proof)
}

// DecodeProof parses the canonical byte encoding produced by Proof.Bytes.
// Decoding never panics; any structural defect returns ErrMalformedProof.
func DecodeProof(data []byte) (*Proof, error) {
	proof, err := protocols.DecodeProof(data)
	if err != nil {
		return nil, pipelineError("failed to decode proof", err)
	}
	return proof, nil
}

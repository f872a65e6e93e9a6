// Package starkmini provides a from-scratch STARK proof pipeline over a
// small prime field, built for studying the protocol rather than for
// production security.
//
// Every stage of a real STARK is present and none is mocked: trace
// interpolation, low-degree extension, Merkle commitments, a Fiat-Shamir
// transcript, a composition polynomial with its vanishing-quotient
// identity, and FRI folding. The default field is F_97, small enough to
// follow every intermediate value by hand.
//
// # Quick Start
//
// Proving that a Fibonacci trace satisfies its recurrence:
//
//	params := starkmini.DefaultParams()
//	trace, err := starkmini.FibonacciTrace(starkmini.DefaultField, params.TraceLength)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	proof, err := starkmini.Prove(params, trace, starkmini.FibonacciConstraint())
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Verifying needs only the proof and the public claim:
//
//	result := starkmini.Verify(proof, 8, 5)
//	if result.Accepted {
//		fmt.Println("proof accepted")
//	} else {
//		fmt.Println(result.Rejection)
//	}
//
// Custom transition rules plug in as an arity and a residual function:
//
//	rule := starkmini.NewConstraint(2, func(window [][]*starkmini.FieldElement) *starkmini.FieldElement {
//		return window[1][0].Sub(window[0][0].Square())
//	})
//
// # Architecture
//
// The repository uses a hybrid public/private layout:
//
// - pkg/starkmini/: public API (this package)
// - internal/starkmini/: private implementation (not importable)
//
// The public API provides stable entry points for proving, verifying,
// proof encoding, and the bundled example programs. Implementation details
// in internal/ can be refactored without breaking the public API.
//
// # Scope
//
// The pipeline is honest about what it is not: proofs carry no
// zero-knowledge property, the FRI verifier checks fold consistency rather
// than true low-degreeness, and the 32-bit modulus cap rules out
// cryptographic soundness. What remains is the protocol's actual
// machinery, deterministic end to end: proving the same trace twice under
// the same parameters yields byte-identical proofs.
//
// # References
//
// - STARK paper: https://eprint.iacr.org/2018/046
// - FRI paper: https://eccc.weizmann.ac.il/report/2017/134/
package starkmini

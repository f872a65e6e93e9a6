package integration_test

import (
	"bytes"
	"testing"

	"github.com/starkmini/starkmini/pkg/starkmini"
)

// Test01_FibonacciTraceToProof tests the most basic flow:
// 1. Build the Fibonacci trace
// 2. Generate a proof
// 3. Round-trip the proof through its byte encoding
// 4. Verify the proof
//
// Related example: examples/01_fibonacci_proof/main.go (user-facing demonstration)
func Test01_FibonacciTraceToProof(t *testing.T) {
	t.Log("=== Test 01: Fibonacci Trace -> STARK Proof ===")

	// Step 1: Build the trace
	t.Log("Step 1: Building Fibonacci trace...")
	params := starkmini.DefaultParams()
	trace, err := starkmini.FibonacciTrace(starkmini.DefaultField, params.TraceLength)
	if err != nil {
		t.Fatalf("Failed to build trace: %v", err)
	}
	t.Logf("  Trace: %d steps, %d column(s) over F_%d", trace.Length(), trace.Columns(), trace.Field().Modulus())

	want := []uint64{1, 1, 2, 3, 5, 8, 13, 21}
	for i, v := range want {
		if got := trace.At(i, 0); !got.Equal(starkmini.DefaultField.NewElement(v)) {
			t.Fatalf("trace step %d = %v, want %d", i, got, v)
		}
	}

	// Step 2: Generate the proof
	t.Log("Step 2: Generating proof...")
	constraint := starkmini.FibonacciConstraint()
	proof, err := starkmini.Prove(params, trace, constraint)
	if err != nil {
		t.Fatalf("Failed to generate proof: %v", err)
	}
	encoded := proof.Bytes()
	t.Logf("  Proof: %d bytes, %d queries, %d FRI rounds", len(encoded), proof.Queries, proof.Rounds())

	// Step 3: Round-trip the encoding
	t.Log("Step 3: Round-tripping the byte encoding...")
	decoded, err := starkmini.DecodeProof(encoded)
	if err != nil {
		t.Fatalf("Failed to decode proof: %v", err)
	}
	if !bytes.Equal(decoded.Bytes(), encoded) {
		t.Fatal("re-encoded proof differs from the original bytes")
	}

	// Step 4: Verify
	t.Log("Step 4: Verifying proof...")
	degree := params.TraceLength - constraint.Arity()
	result := starkmini.Verify(decoded, params.TraceLength, degree)
	if !result.Accepted {
		t.Fatalf("Proof rejected: %s", result.Rejection)
	}
	t.Log("  Proof accepted")

	// Proving again must give byte-identical output
	again, err := starkmini.Prove(params, trace, constraint)
	if err != nil {
		t.Fatalf("Failed to regenerate proof: %v", err)
	}
	if !bytes.Equal(again.Bytes(), encoded) {
		t.Fatal("proving the same trace twice produced different bytes")
	}
}

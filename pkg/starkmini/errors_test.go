package starkmini

import (
	"errors"
	"fmt"
	"testing"

	"github.com/starkmini/starkmini/internal/starkmini/core"
	"github.com/starkmini/starkmini/internal/starkmini/protocols"
	"github.com/starkmini/starkmini/internal/starkmini/utils"
)

func TestPipelineError(t *testing.T) {
	t.Run("MessageWithoutCause", func(t *testing.T) {
		err := &PipelineError{Code: ErrInvalidConfig, Message: "blowup must be a power of two"}
		want := fmt.Sprintf("starkmini error [%d]: blowup must be a power of two", ErrInvalidConfig)
		if err.Error() != want {
			t.Fatalf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("MessageWithCause", func(t *testing.T) {
		cause := errors.New("boom")
		err := &PipelineError{Code: ErrProofGeneration, Message: "proof generation failed", Cause: cause}
		want := fmt.Sprintf("starkmini error [%d]: proof generation failed (caused by: boom)", ErrProofGeneration)
		if err.Error() != want {
			t.Fatalf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("Unwrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := &PipelineError{Code: ErrUnknown, Message: "wrapper", Cause: cause}
		if !errors.Is(err, cause) {
			t.Fatal("errors.Is does not reach the cause")
		}
	})

	t.Run("IsMatchesByCode", func(t *testing.T) {
		err := &PipelineError{Code: ErrMalformedProof, Message: "bad bytes"}
		if !errors.Is(err, &PipelineError{Code: ErrMalformedProof}) {
			t.Fatal("errors.Is rejects a matching code")
		}
		if errors.Is(err, &PipelineError{Code: ErrInvalidConfig}) {
			t.Fatal("errors.Is accepts a different code")
		}
		if errors.Is(err, errors.New("bad bytes")) {
			t.Fatal("errors.Is accepts a foreign error type")
		}
	})
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"InvalidConfig", utils.ErrInvalidConfig, ErrInvalidConfig},
		{"WrappedInvalidConfig", fmt.Errorf("prover: %w", utils.ErrInvalidConfig), ErrInvalidConfig},
		{"NoSubgroupOfOrder", protocols.ErrNoSubgroupOfOrder, ErrNoSubgroupOfOrder},
		{"InvalidTraceLength", protocols.ErrInvalidTraceLength, ErrInvalidTraceLength},
		{"ConstraintArity", protocols.ErrConstraintArity, ErrConstraintArity},
		{"DuplicatePoint", core.ErrDuplicatePoint, ErrDuplicatePoint},
		{"DivisionByZero", core.ErrDivisionByZero, ErrDivisionByZero},
		{"MalformedProof", protocols.ErrMalformedProof, ErrMalformedProof},
		{"Unclassified", errors.New("boom"), ErrProofGeneration},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := classify(tc.err); got != tc.want {
				t.Fatalf("classify(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestPipelineErrorFromProve(t *testing.T) {
	trace, err := FibonacciTrace(DefaultField, 8)
	if err != nil {
		t.Fatalf("FibonacciTrace failed: %v", err)
	}

	_, err = Prove(DefaultParams().WithQueries(0), trace, FibonacciConstraint())
	if err == nil {
		t.Fatal("expected an error for zero queries")
	}
	if !errors.Is(err, &PipelineError{Code: ErrInvalidConfig}) {
		t.Fatalf("err = %v, want an invalid configuration code", err)
	}
	if !errors.Is(err, utils.ErrInvalidConfig) {
		t.Fatal("the underlying sentinel is not preserved")
	}
}

package protocols

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/starkmini/starkmini/internal/starkmini/core"
	"github.com/starkmini/starkmini/internal/starkmini/utils"
)

var elementComparer = cmp.Comparer(func(a, b *core.FieldElement) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
})

// TestProofRoundTrip tests that decoding an encoding reproduces the proof
// exactly, field by field.
func TestProofRoundTrip(t *testing.T) {
	proof := proveFibonacci(t, utils.DefaultParams())

	decoded, err := DecodeProof(proof.Bytes())
	if err != nil {
		t.Fatalf("DecodeProof failed: %v", err)
	}
	if diff := cmp.Diff(proof, decoded, elementComparer); diff != "" {
		t.Errorf("decoded proof differs (-want +got):\n%s", diff)
	}
	if !bytes.Equal(proof.Bytes(), decoded.Bytes()) {
		t.Error("re-encoding a decoded proof should reproduce the bytes")
	}
}

// TestProofBytesDeterminism tests that encoding is a pure function
func TestProofBytesDeterminism(t *testing.T) {
	proof := proveFibonacci(t, utils.DefaultParams())
	if !bytes.Equal(proof.Bytes(), proof.Bytes()) {
		t.Error("encoding the same proof twice should give identical bytes")
	}
}

// TestProofAccessors tests the derived shape accessors
func TestProofAccessors(t *testing.T) {
	proof := proveFibonacci(t, utils.DefaultParams())

	if proof.LDESize() != 16 {
		t.Errorf("LDESize() = %d, want 16", proof.LDESize())
	}
	if proof.Rounds() != 4 {
		t.Errorf("Rounds() = %d, want 4", proof.Rounds())
	}
	if got := proof.String(); !strings.Contains(got, "trace: 8") || !strings.Contains(got, "lde: 16") {
		t.Errorf("String() = %q, should name the trace and LDE sizes", got)
	}
}

// TestDecodeProofErrors tests that structurally broken encodings are
// rejected with ErrMalformedProof.
func TestDecodeProofErrors(t *testing.T) {
	valid := proveFibonacci(t, utils.DefaultParams()).Bytes()

	compositeModulus := append([]byte("smp1"), make([]byte, 8)...)
	binary.BigEndian.PutUint64(compositeModulus[4:], 96)

	unreducedFinal := append([]byte(nil), valid...)
	for i := len(unreducedFinal) - core.ElementByteLen; i < len(unreducedFinal); i++ {
		unreducedFinal[i] = 0xff
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", []byte("nope")},
		{"magic only", []byte("smp1")},
		{"composite modulus", compositeModulus},
		{"truncated", valid[:len(valid)/2]},
		{"trailing byte", append(append([]byte(nil), valid...), 0)},
		{"unreduced final value", unreducedFinal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeProof(tt.data); !errors.Is(err, ErrMalformedProof) {
				t.Errorf("expected ErrMalformedProof, got %v", err)
			}
		})
	}
}

// TestDecodeProofNeverPanics checks on random single-byte corruptions that
// decoding always returns a proof or an error, and that whatever decodes
// also re-encodes.
func TestDecodeProofNeverPanics(t *testing.T) {
	valid := proveFibonacci(t, utils.DefaultParams()).Bytes()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("decode tolerates any single-byte corruption", prop.ForAll(
		func(pos int, mask uint8) bool {
			corrupted := append([]byte(nil), valid...)
			corrupted[pos] ^= mask

			proof, err := DecodeProof(corrupted)
			if err != nil {
				return errors.Is(err, ErrMalformedProof)
			}
			return len(proof.Bytes()) > 0
		}, gen.IntRange(0, len(valid)-1), gen.UInt8Range(1, 255),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

package utils

import (
	"bytes"
	"testing"

	"github.com/starkmini/starkmini/internal/starkmini/core"
)

// TestTranscriptDeterminism tests that equal seeds yield equal challenge sequences
func TestTranscriptDeterminism(t *testing.T) {
	hasher := core.DefaultHasher()
	seed := []byte("commitment root")

	t1 := NewTranscript(hasher, seed)
	t2 := NewTranscript(hasher, seed)

	for i := 0; i < 10; i++ {
		a := t1.DrawIndex(1000)
		b := t2.DrawIndex(1000)
		if a != b {
			t.Fatalf("draw %d diverged: %d vs %d", i, a, b)
		}
	}

	e1 := t1.DrawFieldElement(core.DefaultField)
	e2 := t2.DrawFieldElement(core.DefaultField)
	if !e1.Equal(e2) {
		t.Errorf("field draws diverged: %s vs %s", e1, e2)
	}
}

// TestTranscriptSeedSensitivity tests that different seeds diverge immediately
func TestTranscriptSeedSensitivity(t *testing.T) {
	hasher := core.DefaultHasher()

	t1 := NewTranscript(hasher, []byte{1, 2, 3})
	t2 := NewTranscript(hasher, []byte{1, 2, 4})

	if bytes.Equal(t1.State(), t2.State()) {
		t.Error("different seeds produced identical initial states")
	}
}

// TestTranscriptAbsorb tests that absorbed data changes later draws
func TestTranscriptAbsorb(t *testing.T) {
	hasher := core.DefaultHasher()
	seed := []byte("root")

	t1 := NewTranscript(hasher, seed)
	t2 := NewTranscript(hasher, seed)

	// Same first draw on both.
	if t1.DrawIndex(1 << 30) != t2.DrawIndex(1<<30) {
		t.Fatal("identical transcripts diverged before absorbing")
	}

	t1.Absorb([]byte("layer root A"))
	t2.Absorb([]byte("layer root B"))

	a := t1.DrawIndex(1 << 30)
	b := t2.DrawIndex(1 << 30)
	if a == b {
		t.Error("draws after absorbing different data should differ")
	}
}

// TestTranscriptOrderMatters tests that the draw sequence is order-sensitive
func TestTranscriptOrderMatters(t *testing.T) {
	hasher := core.DefaultHasher()
	seed := []byte("root")

	t1 := NewTranscript(hasher, seed)
	t1.Absorb([]byte("a"))
	t1.Absorb([]byte("b"))

	t2 := NewTranscript(hasher, seed)
	t2.Absorb([]byte("b"))
	t2.Absorb([]byte("a"))

	if bytes.Equal(t1.State(), t2.State()) {
		t.Error("absorb order did not affect the state")
	}
}

// TestDrawIndexRange tests that indices land in [0, bound)
func TestDrawIndexRange(t *testing.T) {
	hasher := core.DefaultHasher()
	tr := NewTranscript(hasher, []byte("seed"))

	bounds := []int{1, 2, 3, 16, 97, 1000}
	for _, bound := range bounds {
		for i := 0; i < 50; i++ {
			idx := tr.DrawIndex(bound)
			if idx < 0 || idx >= bound {
				t.Fatalf("DrawIndex(%d) = %d, out of range", bound, idx)
			}
		}
	}
}

// TestDrawFieldElementRange tests that drawn elements are reduced
func TestDrawFieldElementRange(t *testing.T) {
	hasher := core.DefaultHasher()
	tr := NewTranscript(hasher, []byte("seed"))
	f := core.DefaultField

	for i := 0; i < 100; i++ {
		e := tr.DrawFieldElement(f)
		if e.Uint64() >= f.Modulus() {
			t.Fatalf("draw %d produced unreduced element %d", i, e.Uint64())
		}
	}
}

// TestDrawAdvancesState tests that every draw moves the digest forward
func TestDrawAdvancesState(t *testing.T) {
	hasher := core.DefaultHasher()
	tr := NewTranscript(hasher, []byte("seed"))

	seen := map[string]bool{string(tr.State()): true}
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			tr.DrawIndex(7)
		} else {
			tr.DrawFieldElement(core.DefaultField)
		}
		s := string(tr.State())
		if seen[s] {
			t.Fatalf("state repeated after draw %d", i)
		}
		seen[s] = true
	}
}

// TestStateReturnsCopy tests that the exposed state cannot mutate the transcript
func TestStateReturnsCopy(t *testing.T) {
	hasher := core.DefaultHasher()
	tr := NewTranscript(hasher, []byte("seed"))

	s := tr.State()
	s[0] ^= 0xFF
	if bytes.Equal(s, tr.State()) {
		t.Error("mutating the returned state changed the transcript")
	}
}

// TestDrawIndexInvalidBound tests that a non-positive bound panics
func TestDrawIndexInvalidBound(t *testing.T) {
	hasher := core.DefaultHasher()
	tr := NewTranscript(hasher, []byte("seed"))

	defer func() {
		if recover() == nil {
			t.Error("DrawIndex(0) did not panic")
		}
	}()
	tr.DrawIndex(0)
}

// BenchmarkDrawIndex benchmarks challenge derivation
func BenchmarkDrawIndex(b *testing.B) {
	tr := NewTranscript(core.DefaultHasher(), []byte("seed"))
	for i := 0; i < b.N; i++ {
		tr.DrawIndex(1 << 16)
	}
}

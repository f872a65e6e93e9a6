package protocols

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/starkmini/starkmini/internal/starkmini/core"
	"github.com/starkmini/starkmini/internal/starkmini/utils"
)

func layerFromUint64(field *core.Field, values []uint64) []*core.FieldElement {
	out := make([]*core.FieldElement, len(values))
	for i, v := range values {
		out[i] = field.NewElement(v)
	}
	return out
}

// TestFoldOnce tests a single fold against hand-computed values
func TestFoldOnce(t *testing.T) {
	field := core.DefaultField

	// [1, 2, 3, 4] with beta = 2: [1 + 2*3, 2 + 2*4] = [7, 10]
	next, err := FoldOnce(layerFromUint64(field, []uint64{1, 2, 3, 4}), field.NewElement(2))
	if err != nil {
		t.Fatalf("FoldOnce failed: %v", err)
	}
	if len(next) != 2 {
		t.Fatalf("got %d values, want 2", len(next))
	}
	if next[0].Uint64() != 7 || next[1].Uint64() != 10 {
		t.Errorf("got [%s, %s], want [7, 10]", next[0], next[1])
	}

	t.Run("PairFoldsToOne", func(t *testing.T) {
		// [5, 6] with beta = 3: [5 + 3*6] = [23]
		next, err := FoldOnce(layerFromUint64(field, []uint64{5, 6}), field.NewElement(3))
		if err != nil {
			t.Fatalf("FoldOnce failed: %v", err)
		}
		if len(next) != 1 || next[0].Uint64() != 23 {
			t.Errorf("got %v, want [23]", next)
		}
	})

	t.Run("InvalidLengths", func(t *testing.T) {
		beta := field.NewElement(2)
		for _, n := range []int{0, 1, 3, 5} {
			values := make([]*core.FieldElement, n)
			for i := range values {
				values[i] = field.NewElement(uint64(i))
			}
			if _, err := FoldOnce(values, beta); err == nil {
				t.Errorf("FoldOnce accepted %d values", n)
			}
		}
	})
}

// TestFoldOnceLinearity checks that folding commutes with pointwise
// addition on random vectors, a consequence of the fold rule being linear.
func TestFoldOnceLinearity(t *testing.T) {
	field := core.DefaultField

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	vector := gen.SliceOfN(8, gen.UInt64Range(0, field.Modulus()-1))

	properties.Property("fold(a + b) == fold(a) + fold(b)", prop.ForAll(
		func(aRaw, bRaw []uint64, betaRaw uint64) bool {
			a := layerFromUint64(field, aRaw)
			b := layerFromUint64(field, bRaw)
			beta := field.NewElement(betaRaw)

			sum := make([]*core.FieldElement, len(a))
			for i := range sum {
				sum[i] = a[i].Add(b[i])
			}

			foldedSum, err := FoldOnce(sum, beta)
			if err != nil {
				return false
			}
			foldedA, err := FoldOnce(a, beta)
			if err != nil {
				return false
			}
			foldedB, err := FoldOnce(b, beta)
			if err != nil {
				return false
			}
			for i := range foldedSum {
				if !foldedSum[i].Equal(foldedA[i].Add(foldedB[i])) {
					return false
				}
			}
			return true
		}, vector, vector, gen.UInt64Range(0, field.Modulus()-1),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestFold tests the full folding cascade from sixteen values down to one
func TestFold(t *testing.T) {
	field := core.DefaultField
	domain := mustDomain(t, field, 16)
	hasher := core.DefaultHasher()

	values := make([]*core.FieldElement, 16)
	for i := range values {
		values[i] = field.NewElement(uint64(i*i + 1))
	}

	folder := NewFriFolder(hasher)
	result, err := folder.Fold(values, domain, utils.NewTranscript(hasher, []byte("fold test")))
	if err != nil {
		t.Fatalf("Fold failed: %v", err)
	}

	if result.Rounds() != 4 {
		t.Errorf("Rounds() = %d, want 4", result.Rounds())
	}
	if len(result.Layers) != 5 {
		t.Fatalf("got %d layers, want 5", len(result.Layers))
	}
	for r, want := range []int{16, 8, 4, 2, 1} {
		if len(result.Layers[r].Values) != want {
			t.Errorf("layer %d has %d values, want %d", r, len(result.Layers[r].Values), want)
		}
		if result.Layers[r].Domain.Length() != want {
			t.Errorf("layer %d domain has length %d, want %d", r, result.Layers[r].Domain.Length(), want)
		}
	}

	// The input layer and the single-value layer carry no tree; every
	// intermediate layer is committed and its root recorded in order.
	if result.Layers[0].Tree != nil {
		t.Error("input layer should not be committed by Fold")
	}
	if result.Layers[4].Tree != nil {
		t.Error("final layer should not be committed")
	}
	if len(result.Roots) != 3 {
		t.Fatalf("got %d roots, want 3", len(result.Roots))
	}
	for r := 1; r <= 3; r++ {
		if result.Layers[r].Tree == nil {
			t.Fatalf("layer %d is missing its tree", r)
		}
		if !bytes.Equal(result.Layers[r].Tree.Root(), result.Roots[r-1]) {
			t.Errorf("root %d does not match layer %d's tree", r-1, r)
		}
	}

	// Every layer obeys the fold equation against the recorded beta.
	for r := 0; r < result.Rounds(); r++ {
		cur := result.Layers[r].Values
		next := result.Layers[r+1].Values
		beta := result.Betas[r]
		half := len(cur) / 2
		for j := 0; j < half; j++ {
			want := cur[j].Add(beta.Mul(cur[j+half]))
			if !next[j].Equal(want) {
				t.Errorf("round %d position %d: got %s, want %s", r, j, next[j], want)
			}
		}
	}

	if !result.FinalValue.Equal(result.Layers[4].Values[0]) {
		t.Error("FinalValue should be the single value of the last layer")
	}
}

// TestFoldZeroVector tests that the zero vector folds to zero regardless
// of the challenges.
func TestFoldZeroVector(t *testing.T) {
	field := core.DefaultField
	domain := mustDomain(t, field, 16)
	hasher := core.DefaultHasher()

	values := make([]*core.FieldElement, 16)
	for i := range values {
		values[i] = field.Zero()
	}

	result, err := NewFriFolder(hasher).Fold(values, domain, utils.NewTranscript(hasher, []byte("zero")))
	if err != nil {
		t.Fatalf("Fold failed: %v", err)
	}
	for r, layer := range result.Layers {
		for j, value := range layer.Values {
			if !value.IsZero() {
				t.Errorf("layer %d position %d = %s, want 0", r, j, value)
			}
		}
	}
	if !result.FinalValue.IsZero() {
		t.Errorf("FinalValue = %s, want 0", result.FinalValue)
	}
}

// TestFoldSingleValue tests the degenerate one-element input
func TestFoldSingleValue(t *testing.T) {
	field := core.DefaultField
	domain := mustDomain(t, field, 1)
	hasher := core.DefaultHasher()

	result, err := NewFriFolder(hasher).Fold(
		[]*core.FieldElement{field.NewElement(42)}, domain, utils.NewTranscript(hasher, []byte("one")))
	if err != nil {
		t.Fatalf("Fold failed: %v", err)
	}
	if result.Rounds() != 0 {
		t.Errorf("Rounds() = %d, want 0", result.Rounds())
	}
	if len(result.Roots) != 0 {
		t.Errorf("got %d roots, want 0", len(result.Roots))
	}
	if result.FinalValue.Uint64() != 42 {
		t.Errorf("FinalValue = %s, want 42", result.FinalValue)
	}
}

// TestFoldDeterminism tests that folding is a pure function of the values
// and the transcript seed.
func TestFoldDeterminism(t *testing.T) {
	field := core.DefaultField
	domain := mustDomain(t, field, 16)
	hasher := core.DefaultHasher()

	values := make([]*core.FieldElement, 16)
	for i := range values {
		values[i] = field.NewElement(uint64(3*i + 7))
	}

	fold := func(seed string) *FriResult {
		result, err := NewFriFolder(hasher).Fold(values, domain, utils.NewTranscript(hasher, []byte(seed)))
		if err != nil {
			t.Fatalf("Fold failed: %v", err)
		}
		return result
	}

	a, b := fold("seed"), fold("seed")
	for r := range a.Betas {
		if !a.Betas[r].Equal(b.Betas[r]) {
			t.Errorf("beta %d differs between identical folds", r)
		}
	}
	for r := range a.Roots {
		if !bytes.Equal(a.Roots[r], b.Roots[r]) {
			t.Errorf("root %d differs between identical folds", r)
		}
	}
	if !a.FinalValue.Equal(b.FinalValue) {
		t.Error("FinalValue differs between identical folds")
	}

	// A different seed changes the challenge sequence.
	c := fold("another seed")
	same := true
	for r := range a.Betas {
		if !a.Betas[r].Equal(c.Betas[r]) {
			same = false
		}
	}
	if same {
		t.Error("different seeds should draw different challenges")
	}
}

// TestFoldErrors tests the input validation of Fold
func TestFoldErrors(t *testing.T) {
	field := core.DefaultField
	hasher := core.DefaultHasher()

	t.Run("LengthMismatch", func(t *testing.T) {
		domain := mustDomain(t, field, 16)
		values := layerFromUint64(field, []uint64{1, 2, 3, 4})
		if _, err := NewFriFolder(hasher).Fold(values, domain, utils.NewTranscript(hasher, []byte("x"))); err == nil {
			t.Error("expected an error for a value count below the domain length")
		}
	})

	t.Run("NotPowerOfTwo", func(t *testing.T) {
		domain := mustDomain(t, field, 3)
		values := layerFromUint64(field, []uint64{1, 2, 3})
		if _, err := NewFriFolder(hasher).Fold(values, domain, utils.NewTranscript(hasher, []byte("x"))); err == nil {
			t.Error("expected an error for a layer length that is not a power of two")
		}
	})
}

// BenchmarkFold benchmarks the folding cascade over sixteen values
func BenchmarkFold(b *testing.B) {
	field := core.DefaultField
	domain, err := NewDomain(field, 16)
	if err != nil {
		b.Fatal(err)
	}
	hasher := core.DefaultHasher()
	values := make([]*core.FieldElement, 16)
	for i := range values {
		values[i] = field.NewElement(uint64(i*i + 1))
	}
	folder := NewFriFolder(hasher)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := folder.Fold(values, domain, utils.NewTranscript(hasher, []byte("bench"))); err != nil {
			b.Fatal(err)
		}
	}
}

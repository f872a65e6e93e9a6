package protocols

import (
	"fmt"

	"github.com/starkmini/starkmini/internal/starkmini/core"
	"github.com/starkmini/starkmini/internal/starkmini/utils"
)

// FriFolder runs the folding rounds of the FRI protocol: an evaluation
// vector of length N is repeatedly halved as next[j] = cur[j] +
// beta*cur[j+N/2], where each beta comes from the transcript, until a
// single value remains. Every folded layer with more than one value is
// Merkle-committed and its root absorbed into the transcript before the
// next beta is drawn, binding each challenge to all prior layers.
type FriFolder struct {
	hasher core.Hasher
}

// NewFriFolder creates a folder committing layers with the given hasher
func NewFriFolder(hasher core.Hasher) *FriFolder {
	return &FriFolder{hasher: hasher}
}

// FriLayer is one evaluation vector together with the domain it lives on.
// Tree is nil for the input layer (committed by the caller before folding
// starts) and for the final single-value layer (carried in the proof
// directly).
type FriLayer struct {
	Values []*core.FieldElement
	Domain *Domain
	Tree   *core.MerkleTree
}

// FriResult is the output of the folding rounds
type FriResult struct {
	// Layers[0] is the input vector; each subsequent layer halves the
	// previous one. The last layer has exactly one value.
	Layers []FriLayer

	// Betas holds the folding challenge of each round, in order
	Betas []*core.FieldElement

	// Roots holds the commitment roots of the folded layers that have
	// more than one value, in fold order
	Roots [][]byte

	// FinalValue is the single value of the last layer
	FinalValue *core.FieldElement
}

// Rounds returns the number of folds performed
func (r *FriResult) Rounds() int {
	return len(r.Betas)
}

// FoldOnce halves an evaluation vector with the given challenge:
// next[j] = cur[j] + beta*cur[j+N/2] for j in [0, N/2).
func FoldOnce(values []*core.FieldElement, beta *core.FieldElement) ([]*core.FieldElement, error) {
	n := len(values)
	if n < 2 || n%2 != 0 {
		return nil, fmt.Errorf("cannot fold %d values", n)
	}
	half := n / 2
	next := make([]*core.FieldElement, half)
	for j := 0; j < half; j++ {
		next[j] = values[j].Add(beta.Mul(values[j+half]))
	}
	return next, nil
}

// Fold runs all folding rounds down to a single value. The input vector
// must already be committed and its root absorbed (or used as seed) by the
// caller; Fold only commits and absorbs the layers it produces.
func (f *FriFolder) Fold(values []*core.FieldElement, domain *Domain, transcript *utils.Transcript) (*FriResult, error) {
	if len(values) != domain.Length() {
		return nil, fmt.Errorf("evaluation count %d does not match domain length %d", len(values), domain.Length())
	}
	if !utils.IsPowerOfTwo(len(values)) {
		return nil, fmt.Errorf("layer length %d is not a power of two", len(values))
	}

	result := &FriResult{
		Layers: []FriLayer{{Values: values, Domain: domain}},
	}

	current := values
	currentDomain := domain
	for len(current) > 1 {
		beta := transcript.DrawFieldElement(domain.Field())
		result.Betas = append(result.Betas, beta)

		next, err := FoldOnce(current, beta)
		if err != nil {
			return nil, err
		}
		nextDomain, err := currentDomain.Halve()
		if err != nil {
			return nil, err
		}

		layer := FriLayer{Values: next, Domain: nextDomain}
		if len(next) > 1 {
			tree, err := core.NewMerkleTree(f.hasher, layerRows(next))
			if err != nil {
				return nil, fmt.Errorf("failed to commit layer of %d values: %w", len(next), err)
			}
			layer.Tree = tree
			result.Roots = append(result.Roots, tree.Root())
			transcript.Absorb(tree.Root())
		}
		result.Layers = append(result.Layers, layer)

		current = next
		currentDomain = nextDomain
	}

	result.FinalValue = current[0]
	return result, nil
}

// layerRows encodes layer values as Merkle rows, one value per row
func layerRows(values []*core.FieldElement) [][]byte {
	rows := make([][]byte, len(values))
	for i, value := range values {
		rows[i] = value.Bytes()
	}
	return rows
}

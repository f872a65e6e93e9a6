package protocols

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/starkmini/starkmini/internal/starkmini/core"
	"github.com/starkmini/starkmini/internal/starkmini/utils"
	"github.com/starkmini/starkmini/logger"
)

// ErrInvalidTraceLength is returned when a trace's length disagrees with
// the prover's parameters.
var ErrInvalidTraceLength = errors.New("invalid trace length")

// Prover generates proofs that an execution trace satisfies a transition
// constraint.
//
// The workflow:
//  1. Validate the trace against the parameters
//  2. Build the trace domain and the extended evaluation domain
//  3. Low-degree extend the trace and commit to its rows
//  4. Seed the transcript with the trace root and draw the query indices
//  5. Open the extended trace at the sampled indices
//  6. Build, commit, and open the composition polynomial
//  7. Fold the composition evaluations through FRI, committing each layer
//  8. Open every folding step at the sampled indices
//  9. Assemble the proof
//
// Challenges are drawn from the transcript only after the data they bind
// has been committed, so the order of these steps cannot change. Proving
// is fully deterministic: the same trace under the same parameters yields
// byte-identical proofs. There is no zero-knowledge blinding.
type Prover struct {
	params *utils.Params
	field  *core.Field
	hasher core.Hasher
	log    zerolog.Logger
}

// NewProver creates a prover with the given parameters
func NewProver(params *utils.Params) (*Prover, error) {
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
		Str("component", "prover").
		Uint64("modulus", params.Modulus).
		Logger()

	return &Prover{
		params: params.Clone(),
		field:  field,
		hasher: hasher,
		log:    log,
	}, nil
}

// Params returns a copy of the prover's parameters
func (p *Prover) Params() *utils.Params {
	return p.params.Clone()
}

// Field returns the field the prover works over
func (p *Prover) Field() *core.Field {
	return p.field
}

// Prove generates a proof that the trace satisfies the constraint at every
// step where the constraint's window fits.
func (p *Prover) Prove(trace *core.Trace, constraint Constraint) (*Proof, error) {
	// Step 1: Validate the trace against the parameters
	if trace == nil {
		return nil, fmt.Errorf("trace cannot be nil")
	}
	if constraint == nil {
		return nil, fmt.Errorf("constraint cannot be nil")
	}
	if !trace.Field().Equals(p.field) {
		return nil, fmt.Errorf("trace is defined over a different field")
	}
	if trace.Length() != p.params.TraceLength {
		return nil, fmt.Errorf("%w: trace has %d steps, parameters expect %d",
			ErrInvalidTraceLength, trace.Length(), p.params.TraceLength)
	}
	arity := constraint.Arity()
	if arity < 1 || arity > trace.Length() {
		return nil, fmt.Errorf("%w: window of %d rows against %d trace steps",
			ErrConstraintArity, arity, trace.Length())
	}
	p.log.Debug().
		Int("steps", trace.Length()).
		Int("columns", trace.Columns()).
		Msg("trace validated")

	// Step 2: Build the trace domain and the extended evaluation domain
	traceDomain, err := NewDomain(p.field, p.params.TraceLength)
	if err != nil {
		return nil, fmt.Errorf("failed to build trace domain: %w", err)
	}
	ldeDomain, err := NewDomain(p.field, p.params.LDESize())
	if err != nil {
		return nil, fmt.Errorf("failed to build evaluation domain: %w", err)
	}

	// Step 3: Low-degree extend the trace and commit to its rows
	extended, err := p.extendTrace(trace, traceDomain, ldeDomain)
	if err != nil {
		return nil, fmt.Errorf("failed to extend trace: %w", err)
	}
	traceTree, err := p.commitRows(extended)
	if err != nil {
		return nil, fmt.Errorf("failed to commit to trace: %w", err)
	}
	traceRoot := traceTree.Root()
	p.log.Debug().Hex("root", traceRoot).Msg("trace committed")

	// Step 4: Seed the transcript with the trace root
	transcript := utils.NewTranscript(p.hasher, traceRoot)

	// Step 5: Draw the query indices
	indices := make([]int, p.params.Queries)
	for q := range indices {
		indices[q] = transcript.DrawIndex(ldeDomain.Length())
	}
	p.log.Debug().Ints("indices", indices).Msg("queries sampled")

	// Step 6: Open the extended trace at the sampled indices
	traceOpenings := make([]RowOpening, len(indices))
	for q, idx := range indices {
		path, err := traceTree.Proof(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace row %d: %w", idx, err)
		}
		traceOpenings[q] = RowOpening{Row: extended[idx], Path: path}
	}

	// Step 7: Build, commit, and open the composition polynomial
	comp, err := BuildComposition(trace, constraint, traceDomain, ldeDomain, p.hasher)
	if err != nil {
		return nil, fmt.Errorf("failed to build composition: %w", err)
	}
	compOpenings := make([]ValueOpening, len(indices))
	for q, idx := range indices {
		path, err := comp.Tree.Proof(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to open composition value %d: %w", idx, err)
		}
		compOpenings[q] = ValueOpening{Value: comp.Evaluations[idx], Path: path}
	}
	p.log.Debug().
		Int("degree", comp.Degree()).
		Hex("root", comp.Root()).
		Msg("composition committed")

	// Step 8: Fold the composition evaluations through FRI. The composition
	// root is absorbed first so every beta depends on it.
	transcript.Absorb(comp.Root())
	folder := NewFriFolder(p.hasher)
	fri, err := folder.Fold(comp.Evaluations, ldeDomain, transcript)
	if err != nil {
		return nil, fmt.Errorf("FRI folding failed: %w", err)
	}
	p.log.Debug().
		Int("rounds", fri.Rounds()).
		Str("final", fri.FinalValue.String()).
		Msg("layers folded")

	// Step 9: Open every folding step at the sampled indices
	friQueries, err := p.openFriLayers(fri, comp.Tree, indices)
	if err != nil {
		return nil, fmt.Errorf("failed to open FRI layers: %w", err)
	}

	// Step 10: Assemble the proof
	proof := &Proof{
		Modulus:         p.params.Modulus,
		TraceLength:     p.params.TraceLength,
		Blowup:          p.params.Blowup,
		Queries:         p.params.Queries,
		HashFunction:    p.hasher.Name(),
		ConstraintArity: arity,
		Columns:         trace.Columns(),

		TraceRoot:     traceRoot,
		Indices:       indices,
		TraceOpenings: traceOpenings,

		CompositionRoot:      comp.Root(),
		CompositionDegree:    comp.Degree(),
		QuotientCoefficients: comp.Quotient.Coefficients(),
		CompositionOpenings:  compOpenings,

		Betas:      fri.Betas,
		FriRoots:   fri.Roots,
		FriQueries: friQueries,
		FinalValue: fri.FinalValue,
	}
	p.log.Info().
		Int("queries", len(indices)).
		Int("rounds", fri.Rounds()).
		Msg("proof generated")
	return proof, nil
}

// extendTrace interpolates every trace column over the trace domain and
// re-evaluates it over the extended domain, returning the extended rows.
func (p *Prover) extendTrace(trace *core.Trace, traceDomain, ldeDomain *Domain) ([][]*core.FieldElement, error) {
	columns := make([][]*core.FieldElement, trace.Columns())
	for c := range columns {
		poly, err := traceDomain.Interpolate(trace.Column(c))
		if err != nil {
			return nil, fmt.Errorf("failed to interpolate column %d: %w", c, err)
		}
		columns[c] = ldeDomain.EvaluatePolynomial(poly)
	}

	rows := make([][]*core.FieldElement, ldeDomain.Length())
	for i := range rows {
		row := make([]*core.FieldElement, len(columns))
		for c := range columns {
			row[c] = columns[c][i]
		}
		rows[i] = row
	}
	return rows, nil
}

// commitRows builds a Merkle tree over the fixed-width row encodings
func (p *Prover) commitRows(rows [][]*core.FieldElement) (*core.MerkleTree, error) {
	encoded := make([][]byte, len(rows))
	for i, row := range rows {
		encoded[i] = core.RowBytes(row)
	}
	return core.NewMerkleTree(p.hasher, encoded)
}

// openFriLayers opens, for every round and every sampled index, the value
// pair the fold consumed: positions j and j+N/2 of the layer being folded,
// j = index mod N/2. Round 0 reads the composition commitment; later
// rounds read the committed folded layers.
func (p *Prover) openFriLayers(fri *FriResult, compositionTree *core.MerkleTree, indices []int) ([][]FriQueryOpening, error) {
	rounds := fri.Rounds()
	queries := make([][]FriQueryOpening, rounds)
	for r := 0; r < rounds; r++ {
		layer := fri.Layers[r]
		tree := layer.Tree
		if r == 0 {
			tree = compositionTree
		}

		half := len(layer.Values) / 2
		round := make([]FriQueryOpening, len(indices))
		for q, idx := range indices {
			j := idx % half
			low, err := openValue(tree, layer.Values, j)
			if err != nil {
				return nil, fmt.Errorf("round %d: %w", r, err)
			}
			high, err := openValue(tree, layer.Values, j+half)
			if err != nil {
				return nil, fmt.Errorf("round %d: %w", r, err)
			}
			round[q] = FriQueryOpening{Low: low, High: high}
		}
		queries[r] = round
	}
	return queries, nil
}

func openValue(tree *core.MerkleTree, values []*core.FieldElement, position int) (ValueOpening, error) {
	path, err := tree.Proof(position)
	if err != nil {
		return ValueOpening{}, fmt.Errorf("failed to open position %d: %w", position, err)
	}
	return ValueOpening{Value: values[position], Path: path}, nil
}

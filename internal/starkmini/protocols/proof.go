package protocols

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/starkmini/starkmini/internal/starkmini/core"
	"github.com/starkmini/starkmini/internal/starkmini/utils"
)

// ErrMalformedProof is returned when decoding bytes that do not hold a
// well-formed proof encoding.
var ErrMalformedProof = errors.New("malformed proof encoding")

// proofMagic prefixes every encoded proof
var proofMagic = [4]byte{'s', 'm', 'p', '1'}

// RowOpening authenticates one extended-trace row against the trace root
type RowOpening struct {
	Row  []*core.FieldElement
	Path []core.ProofNode
}

// ValueOpening authenticates one committed evaluation
type ValueOpening struct {
	Value *core.FieldElement
	Path  []core.ProofNode
}

// FriQueryOpening authenticates the pair of values one fold consumes:
// positions j and j+N/2 of the layer being folded, where j is the sampled
// index reduced mod N/2.
type FriQueryOpening struct {
	Low  ValueOpening
	High ValueOpening
}

// Proof is everything the verifier needs: the commitment roots, the
// recorded challenges, and the openings at the sampled indices. The
// parameters the proof was generated under are echoed so a verifier can
// reconstruct domains and transcript without out-of-band agreement beyond
// the claim.
//
// A proof is plain data. It carries no secrets (the pipeline has no
// zero-knowledge property) and is deterministic: proving the same trace
// under the same parameters yields byte-identical encodings.
type Proof struct {
	Modulus         uint64
	TraceLength     int
	Blowup          int
	Queries         int
	HashFunction    string
	ConstraintArity int
	Columns         int

	// TraceRoot commits to the extended trace, row by row
	TraceRoot []byte

	// Indices are the sampled LDE positions, in draw order
	Indices []int

	// TraceOpenings authenticate the extended-trace row at each sampled
	// index
	TraceOpenings []RowOpening

	// CompositionRoot commits to the composition polynomial's LDE values
	CompositionRoot []byte

	// CompositionDegree is the degree of the composition polynomial,
	// -1 when it is identically zero (the honest case)
	CompositionDegree int

	// QuotientCoefficients are the coefficients of Q = C / Z
	QuotientCoefficients []*core.FieldElement

	// CompositionOpenings authenticate the composition evaluation at each
	// sampled index
	CompositionOpenings []ValueOpening

	// Betas are the FRI folding challenges, one per round
	Betas []*core.FieldElement

	// FriRoots are the roots of the folded layers that still hold more
	// than one value, in fold order
	FriRoots [][]byte

	// FriQueries holds, per round and per sampled index, the opening pair
	// of the layer being folded. Round 0 openings authenticate against
	// CompositionRoot, round r>0 against FriRoots[r-1].
	FriQueries [][]FriQueryOpening

	// FinalValue is the single value left after the last fold
	FinalValue *core.FieldElement
}

// LDESize returns the extended domain size the proof claims
func (p *Proof) LDESize() int {
	return p.TraceLength * p.Blowup
}

// Rounds returns the number of FRI folds the claimed LDE size implies,
// or -1 when the size is not a power of two.
func (p *Proof) Rounds() int {
	return utils.Log2(p.LDESize())
}

// String summarizes the proof shape
func (p *Proof) String() string {
	return fmt.Sprintf("Proof{trace: %d, lde: %d, queries: %d, rounds: %d}",
		p.TraceLength, p.LDESize(), len(p.Indices), len(p.Betas))
}

// Bytes encodes the proof canonically. The layout is fixed-width
// big-endian integers with length-prefixed byte strings, so identical
// proofs encode to identical bytes.
func (p *Proof) Bytes() []byte {
	w := &proofWriter{}
	w.raw(proofMagic[:])
	w.u64(p.Modulus)
	w.u32(uint32(p.TraceLength))
	w.u32(uint32(p.Blowup))
	w.u32(uint32(p.Queries))
	w.u32(uint32(p.ConstraintArity))
	w.u32(uint32(p.Columns))
	w.chunk([]byte(p.HashFunction))

	w.chunk(p.TraceRoot)
	w.u32(uint32(len(p.Indices)))
	for _, idx := range p.Indices {
		w.u32(uint32(idx))
	}
	w.u32(uint32(len(p.TraceOpenings)))
	for _, op := range p.TraceOpenings {
		w.elements(op.Row)
		w.path(op.Path)
	}

	w.chunk(p.CompositionRoot)
	w.u32(uint32(int32(p.CompositionDegree)))
	w.elements(p.QuotientCoefficients)
	w.u32(uint32(len(p.CompositionOpenings)))
	for _, op := range p.CompositionOpenings {
		w.valueOpening(op)
	}

	w.elements(p.Betas)
	w.u32(uint32(len(p.FriRoots)))
	for _, root := range p.FriRoots {
		w.chunk(root)
	}
	w.u32(uint32(len(p.FriQueries)))
	for _, round := range p.FriQueries {
		w.u32(uint32(len(round)))
		for _, q := range round {
			w.valueOpening(q.Low)
			w.valueOpening(q.High)
		}
	}
	w.element(p.FinalValue)
	return w.buf.Bytes()
}

// DecodeProof parses a canonical proof encoding. Any structural defect
// returns an error wrapping ErrMalformedProof; decoding never panics.
func DecodeProof(data []byte) (*Proof, error) {
	r := &proofReader{data: data}

	magic := r.take(len(proofMagic))
	if r.err == nil && !bytes.Equal(magic, proofMagic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrMalformedProof)
	}

	modulus := r.u64()
	if r.err != nil {
		return nil, r.err
	}
	field, err := core.NewField(modulus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProof, err)
	}
	r.field = field

	p := &Proof{Modulus: modulus}
	p.TraceLength = int(r.u32())
	p.Blowup = int(r.u32())
	p.Queries = int(r.u32())
	p.ConstraintArity = int(r.u32())
	p.Columns = int(r.u32())
	p.HashFunction = string(r.chunk())

	p.TraceRoot = r.chunk()
	indexCount := r.count(4)
	p.Indices = make([]int, indexCount)
	for i := 0; i < indexCount; i++ {
		p.Indices[i] = int(r.u32())
	}
	openingCount := r.count(8)
	p.TraceOpenings = make([]RowOpening, openingCount)
	for i := 0; i < openingCount; i++ {
		p.TraceOpenings[i] = RowOpening{Row: r.elements(), Path: r.path()}
	}

	p.CompositionRoot = r.chunk()
	p.CompositionDegree = int(int32(r.u32()))
	p.QuotientCoefficients = r.elements()
	compOpenings := r.count(8)
	p.CompositionOpenings = make([]ValueOpening, compOpenings)
	for i := 0; i < compOpenings; i++ {
		p.CompositionOpenings[i] = r.valueOpening()
	}

	p.Betas = r.elements()
	rootCount := r.count(4)
	p.FriRoots = make([][]byte, rootCount)
	for i := 0; i < rootCount; i++ {
		p.FriRoots[i] = r.chunk()
	}
	roundCount := r.count(4)
	p.FriQueries = make([][]FriQueryOpening, roundCount)
	for i := 0; i < roundCount; i++ {
		queryCount := r.count(16)
		round := make([]FriQueryOpening, queryCount)
		for j := 0; j < queryCount; j++ {
			round[j] = FriQueryOpening{Low: r.valueOpening(), High: r.valueOpening()}
		}
		p.FriQueries[i] = round
	}
	p.FinalValue = r.element()

	if r.err != nil {
		return nil, r.err
	}
	if r.off != len(r.data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedProof, len(r.data)-r.off)
	}
	return p, nil
}

// proofWriter accumulates the canonical encoding
type proofWriter struct {
	buf bytes.Buffer
}

func (w *proofWriter) raw(b []byte) {
	w.buf.Write(b)
}

func (w *proofWriter) u8(v byte) {
	w.buf.WriteByte(v)
}

func (w *proofWriter) u32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *proofWriter) u64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *proofWriter) chunk(b []byte) {
	w.u32(uint32(len(b)))
	w.buf.Write(b)
}

func (w *proofWriter) element(e *core.FieldElement) {
	w.raw(e.Bytes())
}

func (w *proofWriter) elements(es []*core.FieldElement) {
	w.u32(uint32(len(es)))
	for _, e := range es {
		w.element(e)
	}
}

func (w *proofWriter) path(nodes []core.ProofNode) {
	w.u32(uint32(len(nodes)))
	for _, node := range nodes {
		w.chunk(node.Hash)
		if node.IsRight {
			w.u8(1)
		} else {
			w.u8(0)
		}
	}
}

func (w *proofWriter) valueOpening(op ValueOpening) {
	w.element(op.Value)
	w.path(op.Path)
}

// proofReader parses the canonical encoding with a sticky error, so the
// decode loop stays linear and fails exactly once.
type proofReader struct {
	data  []byte
	off   int
	err   error
	field *core.Field
}

func (r *proofReader) fail(detail string) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s at offset %d", ErrMalformedProof, detail, r.off)
	}
}

func (r *proofReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.data) {
		r.fail("truncated")
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *proofReader) u8() byte {
	b := r.take(1)
	if r.err != nil {
		return 0
	}
	return b[0]
}

func (r *proofReader) u32() uint32 {
	b := r.take(4)
	if r.err != nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *proofReader) u64() uint64 {
	b := r.take(8)
	if r.err != nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// count reads an item count and bounds it by the bytes each item needs at
// minimum, so hostile encodings cannot force oversized allocations.
func (r *proofReader) count(minItemBytes int) int {
	n := int(r.u32())
	if r.err != nil {
		return 0
	}
	if n > (len(r.data)-r.off)/minItemBytes {
		r.fail("count exceeds remaining data")
		return 0
	}
	return n
}

func (r *proofReader) chunk() []byte {
	n := r.count(1)
	b := r.take(n)
	if r.err != nil {
		return nil
	}
	return append([]byte(nil), b...)
}

func (r *proofReader) element() *core.FieldElement {
	b := r.take(core.ElementByteLen)
	if r.err != nil {
		return nil
	}
	value := binary.BigEndian.Uint64(b)
	if value >= r.field.Modulus() {
		r.fail("unreduced field element")
		return nil
	}
	return r.field.NewElement(value)
}

func (r *proofReader) elements() []*core.FieldElement {
	n := r.count(core.ElementByteLen)
	out := make([]*core.FieldElement, n)
	for i := 0; i < n; i++ {
		out[i] = r.element()
	}
	return out
}

func (r *proofReader) path() []core.ProofNode {
	n := r.count(5)
	nodes := make([]core.ProofNode, n)
	for i := 0; i < n; i++ {
		hash := r.chunk()
		flag := r.u8()
		if r.err == nil && flag > 1 {
			r.fail("invalid sibling flag")
		}
		nodes[i] = core.ProofNode{Hash: hash, IsRight: flag == 1}
	}
	return nodes
}

func (r *proofReader) valueOpening() ValueOpening {
	return ValueOpening{Value: r.element(), Path: r.path()}
}

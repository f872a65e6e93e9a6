package core

import (
	"bytes"
	"fmt"
)

// Domain-separation prefixes keep leaf hashes and internal-node hashes from
// colliding with each other.
const (
	leafPrefix byte = 0x00
	nodePrefix byte = 0x01
)

// MerkleTree commits to an ordered list of rows. The leaf list is padded to
// the next power of two with a fixed sentinel leaf, so every level pairs
// cleanly.
type MerkleTree struct {
	hasher Hasher
	root   []byte
	levels [][][]byte
	width  int
}

// ProofNode represents one level of a Merkle opening
type ProofNode struct {
	Hash    []byte
	IsRight bool // true if the sibling is the right child at this level
}

// NewMerkleTree creates a Merkle tree over the given rows. Each row is an
// opaque byte string; callers serialize field elements with their
// fixed-width encoding before committing.
func NewMerkleTree(hasher Hasher, rows [][]byte) (*MerkleTree, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("cannot create Merkle tree with no rows")
	}

	size := nextPowerOfTwo(len(rows))
	leaves := make([][]byte, size)
	for i, row := range rows {
		leaves[i] = hashLeaf(hasher, row)
	}
	sentinel := hashLeaf(hasher, nil)
	for i := len(rows); i < size; i++ {
		leaves[i] = sentinel
	}

	levels := [][][]byte{leaves}
	currentLevel := leaves
	for len(currentLevel) > 1 {
		nextLevel := make([][]byte, len(currentLevel)/2)
		for i := 0; i < len(currentLevel); i += 2 {
			nextLevel[i/2] = hashNodes(hasher, currentLevel[i], currentLevel[i+1])
		}
		levels = append(levels, nextLevel)
		currentLevel = nextLevel
	}

	return &MerkleTree{
		hasher: hasher,
		root:   currentLevel[0],
		levels: levels,
		width:  len(rows),
	}, nil
}

// Root returns the Merkle root
func (mt *MerkleTree) Root() []byte {
	return append([]byte(nil), mt.root...)
}

// Width returns the number of committed rows, excluding sentinel padding
func (mt *MerkleTree) Width() int {
	return mt.width
}

// Proof generates a Merkle opening for the row at the given index
func (mt *MerkleTree) Proof(index int) ([]ProofNode, error) {
	if index < 0 || index >= mt.width {
		return nil, fmt.Errorf("index %d out of range [0, %d)", index, mt.width)
	}

	proof := make([]ProofNode, 0, len(mt.levels)-1)
	currentIndex := index

	for level := 0; level < len(mt.levels)-1; level++ {
		currentLevel := mt.levels[level]

		var siblingIndex int
		var isRight bool
		if currentIndex%2 == 0 {
			siblingIndex = currentIndex + 1
			isRight = true
		} else {
			siblingIndex = currentIndex - 1
			isRight = false
		}

		proof = append(proof, ProofNode{
			Hash:    append([]byte(nil), currentLevel[siblingIndex]...),
			IsRight: isRight,
		})
		currentIndex /= 2
	}

	return proof, nil
}

// VerifyProof checks a Merkle opening: it recomputes the leaf hash from the
// raw row bytes, walks the sibling path, and compares against the root. Any
// mismatch, including a sibling flag inconsistent with the index, reports
// false; verification never panics.
func VerifyProof(hasher Hasher, root []byte, row []byte, proof []ProofNode, index int) bool {
	if index < 0 {
		return false
	}

	hash := hashLeaf(hasher, row)
	currentIndex := index

	for _, node := range proof {
		if node.IsRight != (currentIndex%2 == 0) {
			return false
		}
		if node.IsRight {
			hash = hashNodes(hasher, hash, node.Hash)
		} else {
			hash = hashNodes(hasher, node.Hash, hash)
		}
		currentIndex /= 2
	}

	return bytes.Equal(hash, root)
}

// MerkleRoot computes just the root of the given rows (convenience function)
func MerkleRoot(hasher Hasher, rows [][]byte) ([]byte, error) {
	tree, err := NewMerkleTree(hasher, rows)
	if err != nil {
		return nil, err
	}
	return tree.Root(), nil
}

func hashLeaf(hasher Hasher, row []byte) []byte {
	data := make([]byte, 0, 1+len(row))
	data = append(data, leafPrefix)
	data = append(data, row...)
	return hasher.Sum(data)
}

func hashNodes(hasher Hasher, left, right []byte) []byte {
	data := make([]byte, 0, 1+len(left)+len(right))
	data = append(data, nodePrefix)
	data = append(data, left...)
	data = append(data, right...)
	return hasher.Sum(data)
}

func nextPowerOfTwo(n int) int {
	result := 1
	for result < n {
		result <<= 1
	}
	return result
}

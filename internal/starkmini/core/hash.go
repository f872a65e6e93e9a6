package core

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Hasher is the single hashing primitive shared by Merkle commitments and
// the Fiat-Shamir transcript. Prover and verifier must be constructed with
// the same hasher to agree on challenges.
type Hasher interface {
	// Sum returns the digest of data.
	Sum(data []byte) []byte
	// Size returns the digest length in bytes.
	Size() int
	// Name returns the canonical name the hasher was constructed with.
	Name() string
}

// NewHasher creates a hasher by name. The empty name selects sha3-256.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "", "sha3", "sha3-256":
		return sha3Hasher{}, nil
	case "sha256", "sha-256":
		return sha256Hasher{}, nil
	default:
		return nil, fmt.Errorf("unsupported hash function %q", name)
	}
}

// DefaultHasher returns the pipeline's default hash function, SHA3-256.
func DefaultHasher() Hasher {
	return sha3Hasher{}
}

type sha3Hasher struct{}

func (sha3Hasher) Sum(data []byte) []byte {
	h := sha3.Sum256(data)
	return h[:]
}

func (sha3Hasher) Size() int { return 32 }

func (sha3Hasher) Name() string { return "sha3-256" }

type sha256Hasher struct{}

func (sha256Hasher) Sum(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

func (sha256Hasher) Size() int { return 32 }

func (sha256Hasher) Name() string { return "sha256" }

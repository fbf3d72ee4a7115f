// Copyright (c) 2022 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package sigil

import (
	"bytes"
	"encoding/binary"
)

// DoubleHash returns Sum256(Sum256(data)). Block and transaction
// identifiers are built this way.
func DoubleHash(data []byte) Digest {
	h := Sum256(data)
	return Sum256(h[:])
}

// HashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the hash of their concatenation. The smaller node is
// always placed first so that a proof verifies without knowing which side
// a sibling was on.
func HashMerkleBranches(left []byte, right []byte) Digest {
	return DefaultParams.HashMerkleBranches(left, right)
}

// HashMerkleBranches is HashMerkleBranches under this variant.
func (p Params) HashMerkleBranches(left []byte, right []byte) Digest {
	if bytes.Compare(left, right) > 0 {
		left, right = right, left
	}
	h := make([]byte, 0, len(left)+len(right))
	h = append(h, left...)
	h = append(h, right...)
	return p.Sum256(h)
}

// MerkleRoot returns the root of the tree built over leaves with
// HashMerkleBranches. An odd node at any level is paired with itself.
// The root of an empty tree is the zero digest.
func MerkleRoot(leaves []Digest) Digest {
	return DefaultParams.MerkleRoot(leaves)
}

// MerkleRoot is MerkleRoot under this variant.
func (p Params) MerkleRoot(leaves []Digest) Digest {
	if len(leaves) == 0 {
		return Digest{}
	}
	level := make([]Digest, len(leaves))
	copy(level, leaves)
	for len(level) > 1 {
		next := make([]Digest, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			right := level[i]
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, p.HashMerkleBranches(level[i][:], right[:]))
		}
		level = next
	}
	return level[0]
}

// VerifyMerkleBranch recomputes a root from a leaf and its sibling hashes,
// ordered from the bottom of the tree up.
func VerifyMerkleBranch(leaf Digest, siblings []Digest, root Digest) bool {
	h := leaf
	for _, s := range siblings {
		h = HashMerkleBranches(h[:], s[:])
	}
	return h.Equal(root)
}

// Commitment returns Sum256(value || nonce).
func Commitment(value, nonce []byte) Digest {
	return DefaultParams.Commitment(value, nonce)
}

// Commitment returns the digest of value || nonce under this variant.
func (p Params) Commitment(value, nonce []byte) Digest {
	d := make([]byte, 0, len(value)+len(nonce))
	d = append(d, value...)
	d = append(d, nonce...)
	return p.Sum256(d)
}

// HashWithIndex prepends the index to data before hashing.
func HashWithIndex(data []byte, index uint64) Digest {
	d := make([]byte, len(data)+8)
	binary.BigEndian.PutUint64(d[:8], index)
	copy(d[8:], data)
	return Sum256(d)
}

// CatAndHash concatenates all the elements in the slice together
// and then hashes.
func CatAndHash(data [][]byte) Digest {
	combined := make([]byte, 0, Size*len(data))
	for _, part := range data {
		combined = append(combined, part...)
	}
	return Sum256(combined)
}

// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package sigil

import "math/bits"

// OpCounts is the operation mix of a single round.
type OpCounts struct {
	Ch  int
	Maj int
	Add int
	Mul int
	Xor int
	Rot int
}

var roundOps = OpCounts{
	Ch:  2,
	Maj: 2,
	Add: 18,
	Mul: 4,
	Xor: 16,
	Rot: 12,
}

// RoundOps returns the operation mix of the round function.
func RoundOps() OpCounts {
	return roundOps
}

// Total is the number of operations per round.
func (o OpCounts) Total() int {
	return o.Ch + o.Maj + o.Add + o.Mul + o.Xor + o.Rot
}

// Irreversible counts the algebraic mixes: the selectors, modular
// additions and multiplications.
func (o OpCounts) Irreversible() int {
	return o.Ch + o.Maj + o.Add + o.Mul
}

// Invertible counts the bit permutations: XOR and rotation.
func (o OpCounts) Invertible() int {
	return o.Xor + o.Rot
}

// MixRatio is Irreversible / Total.
func (o OpCounts) MixRatio() float64 {
	if o.Total() == 0 {
		return 0
	}
	return float64(o.Irreversible()) / float64(o.Total())
}

// BitMatrix is a StateBits x StateBits matrix over GF(2). Row i holds the
// input bits that output bit i depends on. Bit i of the state is bit i%32
// of word i/32.
type BitMatrix [StateBits][StateWords]uint32

// Get reports whether entry (i, j) is set.
func (m *BitMatrix) Get(i, j int) bool {
	return m[i][j/32]&(1<<(j%32)) != 0
}

func (m *BitMatrix) set(i, j int) {
	m[i][j/32] |= 1 << (j % 32)
}

// RowWeight returns the number of input bits that output bit i depends on.
func (m *BitMatrix) RowWeight(i int) int {
	n := 0
	for _, w := range m[i] {
		n += bits.OnesCount32(w)
	}
	return n
}

// MinRowWeight returns the smallest row weight and the row it occurs in.
func (m *BitMatrix) MinRowWeight() (weight, row int) {
	weight = StateBits + 1
	for i := range m {
		if w := m.RowWeight(i); w < weight {
			weight, row = w, i
		}
	}
	return weight, row
}

// linearRound is the linear component of round with the schedule word and
// round constant removed: modular additions become XOR, Ch and Maj become
// the XOR of their operands and multiplication by an odd constant is
// treated as the identity.
func linearRound(s *[StateWords]uint32) {
	t := s[4] ^ s[5] ^ s[6] ^ s[0] ^ s[1] ^ s[2]
	for c := 0; c < columns; c++ {
		a, b, e, d := 4*c, 4*c+1, 4*c+2, 4*c+3

		t = bits.RotateLeft32(t, rotT[c])
		s[a] ^= t
		s[b] ^= bits.RotateLeft32(t, rotB[c]) ^ s[a]
		if c == 1 || c == 3 {
			s[e] ^= s[a] ^ s[b] ^ s[d]
		} else {
			s[e] ^= s[a]
		}
		s[d] ^= bits.RotateLeft32(s[e], rotD[c])
		t ^= s[b]
		t ^= s[d]
		if c != columns-1 {
			t ^= s[e]
		}
	}

	var tmp [StateWords]uint32
	for i := range tmp {
		tmp[i] = s[(i+stateRotation)%StateWords]
	}
	*s = tmp
}

// LinearRoundMatrix returns the XOR-cancellation matrix of one round: the
// GF(2) matrix of its linear component. A low row weight means a single
// output bit difference can be cancelled by controlling few input bits.
func LinearRoundMatrix() *BitMatrix {
	m := new(BitMatrix)
	for j := 0; j < StateBits; j++ {
		var s [StateWords]uint32
		s[j/32] = 1 << (j % 32)
		linearRound(&s)
		for i := 0; i < StateBits; i++ {
			if s[i/32]&(1<<(i%32)) != 0 {
				m.set(i, j)
			}
		}
	}
	return m
}

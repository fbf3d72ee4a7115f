// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package sigil

import "math/bits"

func ch(x, y, z uint32) uint32 {
	return (x & y) ^ (^x & z)
}

func maj(x, y, z uint32) uint32 {
	return (x & y) ^ (x & z) ^ (y & z)
}

// round applies one round to the state and returns the word it absorbed.
//
// The schedule word is keyed with the round constant and two boolean
// selectors over the state, then carried through the four columns of the
// state. Each column multiplies the carry, folds it into all four of its
// words and picks the column's words back up into the carry, so a
// difference in w reaches all sixteen words within the round.
func round(s *[StateWords]uint32, w, k uint32) uint32 {
	t := w + k
	t += ch(s[4], s[5], s[6])
	t += maj(s[0], s[1], s[2])
	injected := t

	for c := 0; c < columns; c++ {
		a, b, e, d := 4*c, 4*c+1, 4*c+2, 4*c+3

		t = bits.RotateLeft32(t, rotT[c]) * roundMul[c]
		s[a] += t
		s[b] ^= bits.RotateLeft32(t, rotB[c]) ^ s[a]
		switch c {
		case 1:
			s[e] += ch(s[a], s[b], s[d])
		case 3:
			s[e] += maj(s[a], s[b], s[d])
		default:
			s[e] += s[a]
		}
		s[d] ^= bits.RotateLeft32(s[e], rotD[c])
		t += s[b]
		t ^= s[d]
		if c != columns-1 {
			t += s[e]
		}
	}

	var tmp [StateWords]uint32
	for i := range tmp {
		tmp[i] = s[(i+stateRotation)%StateWords]
	}
	*s = tmp
	return injected
}

// blockGeneric compresses as many full blocks of p as it holds into h.
func blockGeneric(h *[StateWords]uint32, p []byte, rounds int, noMul bool) {
	var w [ScheduleWords]uint32
	for len(p) >= BlockSize {
		expand(&w, p, noMul)

		s := *h
		for i := 0; i < rounds; i++ {
			round(&s, w[i], _K[i])
		}

		// Davies–Meyer feed-forward.
		for i := range h {
			h[i] += s[i]
		}
		p = p[BlockSize:]
	}
}

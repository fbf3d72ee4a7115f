// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package sigil

import (
	"encoding/binary"
	"math/bits"
)

func sigma0(x uint32) uint32 {
	return bits.RotateLeft32(x, -7) ^ bits.RotateLeft32(x, -18) ^ (x >> 3)
}

func sigma1(x uint32) uint32 {
	return bits.RotateLeft32(x, -17) ^ bits.RotateLeft32(x, -19) ^ (x >> 10)
}

// expand builds the working schedule for one block. The first sixteen
// words are the block itself. Each derived word mixes two earlier words
// through the sigma functions and multiplies the result by an odd
// constant, which keeps the map a bijection per word while breaking
// linearity over GF(2). With noMul set the multiplication is skipped and
// the schedule is purely linear.
func expand(w *[ScheduleWords]uint32, p []byte, noMul bool) {
	for i := 0; i < blockWords; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for i := blockWords; i < ScheduleWords; i++ {
		x := sigma1(w[i-2]) ^ sigma0(w[i-15])
		if !noMul {
			x *= scheduleMul[i-blockWords]
		}
		w[i] = x ^ w[i-16]
	}
}

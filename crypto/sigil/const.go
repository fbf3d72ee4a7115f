// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package sigil

const (
	// Size is the size of a Sigil-256 digest in bytes.
	Size = 32

	// BlockSize is the block size of Sigil-256 in bytes.
	BlockSize = 64

	// Rounds is the number of compression rounds in the certified
	// configuration.
	Rounds = 24

	// StateWords is the number of 32-bit words in the chaining state.
	StateWords = 16

	// ScheduleWords is the number of words the message scheduler
	// produces per block. One is consumed per round.
	ScheduleWords = 24

	// StateBits is the width of the chaining state.
	StateBits = StateWords * 32

	blockWords   = BlockSize / 4
	derivedWords = ScheduleWords - blockWords
	columns      = StateWords / 4

	// stateRotation is how far the state words are rotated left at the
	// end of every round so that each word passes through every column.
	stateRotation = 5
)

// iv holds H0..H15: the first 32 bits of the fractional parts of the
// square roots of the first 16 primes (2..53). H0..H7 are the SHA-256
// initial values and H8..H15 the high words of the SHA-384 initial values.
var iv = [StateWords]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
	0xcbbb9d5d, 0x629a292a, 0x9159015a, 0x152fecd8,
	0x67332667, 0x8eb44a87, 0xdb0c2e0d, 0x47b5481d,
}

// _K holds K0..K23: the first 32 bits of the fractional parts of the cube
// roots of the first 24 primes (2..89).
var _K = [Rounds]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5,
	0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3,
	0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc,
	0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
}

// scheduleMul holds the multipliers for schedule words 16..23: fractional
// cube roots of primes 97..131 with the low bit forced to one so every
// multiplication is a bijection mod 2^32.
var scheduleMul = [derivedWords]uint32{
	0x983e5153, 0xa831c66d, 0xb00327c9, 0xbf597fc7,
	0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
}

// roundMul holds the per-column multipliers of the round function:
// fractional square roots of primes 59, 61, 67 and 71, forced odd.
var roundMul = [columns]uint32{
	0xae5f9157, 0xcf6c85d3, 0x2f73477d, 0x6d1826cb,
}

// Rotation amounts of the column passes. rotT spreads the carry word
// before it is multiplied, rotB and rotD feed it into the second and
// fourth word of the column.
var (
	rotT = [columns]int{16, 11, 21, 7}
	rotB = [columns]int{5, 13, 19, 27}
	rotD = [columns]int{9, 23, 3, 15}
)

// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package sigil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	var block [BlockSize]byte
	copy(block[:], countingBytes(BlockSize))

	w := DefaultParams.Expand(&block)
	assert.Equal(t, uint32(0x00010203), w[0])
	assert.Equal(t, uint32(0x3c3d3e3f), w[15])
	assert.Equal(t, []uint32{
		0xd559814b, 0x1aa971ea, 0xe2c0e44a, 0x65da5ff6,
		0x22104e0d, 0x4ee92fc7, 0x09fd0eea, 0xbd171039,
	}, w[16:])
}

func TestExpandNonLinear(t *testing.T) {
	var a, b, x [BlockSize]byte
	for i := range a {
		a[i] = byte(i*31 + 7)
		b[i] = byte(i*17 + 101)
		x[i] = a[i] ^ b[i]
	}

	count := func(p Params) int {
		ea, eb, ex := p.Expand(&a), p.Expand(&b), p.Expand(&x)
		n := 0
		for i := range ea {
			if ea[i]^eb[i] != ex[i] {
				n++
			}
		}
		return n
	}

	assert.Equal(t, derivedWords, count(DefaultParams))
	assert.Equal(t, 0, count(Params{NoScheduleMul: true}))
}

func TestRoundInputs(t *testing.T) {
	var a [BlockSize]byte
	copy(a[:], countingBytes(BlockSize))
	b := a
	b[0] ^= 0x80

	ra := DefaultParams.RoundInputs(&a)
	rb := DefaultParams.RoundInputs(&b)
	differ := 0
	for i := range ra {
		if ra[i] != rb[i] {
			differ++
		}
	}
	assert.Equal(t, ScheduleWords, differ)

	one := Params{Rounds: 1}.RoundInputs(&a)
	assert.Equal(t, ra[0], one[0])
	for _, w := range one[1:] {
		assert.Zero(t, w)
	}
}

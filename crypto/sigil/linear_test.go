// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package sigil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundOps(t *testing.T) {
	ops := RoundOps()
	assert.Equal(t, 54, ops.Total())
	assert.Equal(t, 26, ops.Irreversible())
	assert.Equal(t, 28, ops.Invertible())
	assert.InDelta(t, 0.4815, ops.MixRatio(), 0.0001)
	assert.InDelta(t, 11.56, float64(Rounds)*ops.MixRatio(), 0.01)
	assert.Zero(t, OpCounts{}.MixRatio())
}

func TestLinearRoundIsLinear(t *testing.T) {
	var a, b, x [StateWords]uint32
	for i := range a {
		a[i] = uint32(i)*0x9e3779b9 + 1
		b[i] = uint32(i)*0x85ebca6b + 3
		x[i] = a[i] ^ b[i]
	}
	linearRound(&a)
	linearRound(&b)
	linearRound(&x)
	for i := range x {
		assert.Equal(t, a[i]^b[i], x[i])
	}
}

func TestLinearRoundMatrix(t *testing.T) {
	m := LinearRoundMatrix()

	weight, row := m.MinRowWeight()
	assert.Equal(t, 7, weight)
	assert.Equal(t, weight, m.RowWeight(row))
	assert.GreaterOrEqual(t, weight, 4)

	// Column j must be the image of unit vector j.
	var s [StateWords]uint32
	s[3] = 1 << 9
	linearRound(&s)
	for i := 0; i < StateBits; i++ {
		assert.Equal(t, s[i/32]&(1<<(i%32)) != 0, m.Get(i, 3*32+9))
	}
}

// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"math"
	"math/bits"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ctxCheckInterval is how many samples an analyzer draws between
// checks of its deadline.
const ctxCheckInterval = 64

func checkContext(ctx context.Context, i int) error {
	if i%ctxCheckInterval != 0 {
		return nil
	}
	return ctx.Err()
}

func hamming(a, b [32]byte) int {
	n := 0
	for i := range a {
		n += bits.OnesCount8(a[i] ^ b[i])
	}
	return n
}

// flipBit returns a copy of msg with bit i flipped. Bits are numbered
// from the most significant bit of the first byte.
func flipBit(msg []byte, i int) []byte {
	out := make([]byte, len(msg))
	copy(out, msg)
	out[i/8] ^= 0x80 >> (i % 8)
	return out
}

// digestBit returns output bit j of d in the same numbering as flipBit.
func digestBit(d [32]byte, j int) float64 {
	return float64((d[j/8] >> (7 - j%8)) & 1)
}

// correlation is the Pearson coefficient of two bit columns. A constant
// column is reported as fully correlated so it cannot pass.
func correlation(x, y []float64) float64 {
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 1
	}
	return r
}

// chiSquareUniform returns the chi-square statistic of a histogram
// against the uniform distribution and its upper tail probability.
func chiSquareUniform(hist []int) (chi2, pValue float64) {
	total := 0
	for _, o := range hist {
		total += o
	}
	expected := float64(total) / float64(len(hist))
	for _, o := range hist {
		d := float64(o) - expected
		chi2 += d * d / expected
	}
	dist := distuv.ChiSquared{K: float64(len(hist) - 1)}
	return chi2, dist.Survival(chi2)
}

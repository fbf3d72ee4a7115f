// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"fmt"
	"math"
)

const (
	independenceMessageBytes = 32
	maxCorrelation           = 0.05
)

type bitPair struct {
	i, j int
}

// bitIndependence digests random messages and measures the Pearson
// correlation between pairs of output bits: every adjacent pair plus a
// random sample of non-adjacent pairs.
func bitIndependence(ctx context.Context, h *Harness, res *TestResult) error {
	rng := h.stream(streamIndependence)
	n := h.cfg.samples.IndependenceSamples

	digests := make([][32]byte, n)
	for i := range digests {
		if err := checkContext(ctx, i); err != nil {
			return err
		}
		digests[i] = h.target.Sum256(rng.bytes(independenceMessageBytes))
	}

	const outBits = 256
	pairs := make([]bitPair, 0, outBits-1+h.cfg.samples.IndependencePairs)
	for i := 0; i < outBits-1; i++ {
		pairs = append(pairs, bitPair{i, i + 1})
	}
	for len(pairs) < cap(pairs) {
		i, j := rng.Intn(outBits), rng.Intn(outBits)
		if i-j <= 1 && j-i <= 1 {
			continue
		}
		pairs = append(pairs, bitPair{i, j})
	}

	x := make([]float64, n)
	y := make([]float64, n)
	worst := bitPair{}
	for k, p := range pairs {
		if err := checkContext(ctx, k); err != nil {
			return err
		}
		for s, d := range digests {
			x[s] = digestBit(d, p.i)
			y[s] = digestBit(d, p.j)
		}
		r := math.Abs(correlation(x, y))
		if r > res.Metric {
			res.Metric = r
			worst = p
		}
	}

	res.Passed = res.Metric < maxCorrelation
	res.Detail = fmt.Sprintf("strongest pair (%d, %d) of %d pairs over %d digests",
		worst.i, worst.j, len(pairs), n)
	return nil
}

// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"fmt"
)

const (
	maxDifferentialLen = 128

	minDifferentialDistance = 115
	maxDifferentialDistance = 141
)

// differential hashes random messages of random length alongside a copy
// with one flipped bit and averages the Hamming distance of the digests.
func differential(ctx context.Context, h *Harness, res *TestResult) error {
	rng := h.stream(streamDifferential)
	n := h.cfg.samples.DifferentialPairs

	total, lo, hi := 0, 256, 0
	for i := 0; i < n; i++ {
		if err := checkContext(ctx, i); err != nil {
			return err
		}
		size := 1 + rng.Intn(maxDifferentialLen)
		msg := rng.bytes(size)
		bit := rng.Intn(size * 8)

		d := hamming(h.target.Sum256(msg), h.target.Sum256(flipBit(msg, bit)))
		total += d
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
		res.Metric = float64(total) / float64(i+1)
	}

	res.Passed = res.Metric >= minDifferentialDistance && res.Metric <= maxDifferentialDistance
	res.Detail = fmt.Sprintf("min %d, max %d over %d pairs", lo, hi, n)
	return nil
}

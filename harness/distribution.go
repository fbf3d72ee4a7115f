// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"fmt"
)

const (
	distributionMessageBytes = 32

	// maxChiSquare is the 0.05 critical value of the chi-square
	// distribution with 255 degrees of freedom.
	maxChiSquare = 293.2
)

// byteDistribution checks that digest bytes are uniformly distributed.
func byteDistribution(ctx context.Context, h *Harness, res *TestResult) error {
	rng := h.stream(streamDistribution)
	n := h.cfg.samples.DistributionSamples

	hist := make([]int, 256)
	for i := 0; i < n; i++ {
		if err := checkContext(ctx, i); err != nil {
			return err
		}
		d := h.target.Sum256(rng.bytes(distributionMessageBytes))
		for _, b := range d {
			hist[b]++
		}
	}

	chi2, p := chiSquareUniform(hist)
	res.Metric = chi2
	res.Passed = chi2 < maxChiSquare
	res.Detail = fmt.Sprintf("p-value %.4f over %d digests", p, n)
	return nil
}

// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"fmt"
)

const (
	nearCollisionMessageBytes = 32
	minPairDistance           = 90
)

// nearCollision finds the closest pair among digests of random
// messages. The minimum Hamming distance must stay above
// minPairDistance.
func nearCollision(ctx context.Context, h *Harness, res *TestResult) error {
	rng := h.stream(streamNearCollision)
	n := h.cfg.samples.NearCollisionSamples

	digests := make([][32]byte, n)
	for i := range digests {
		if err := checkContext(ctx, i); err != nil {
			return err
		}
		digests[i] = h.target.Sum256(rng.bytes(nearCollisionMessageBytes))
	}

	closest, a, b := 257, 0, 0
	for i := 0; i < n; i++ {
		if err := checkContext(ctx, i); err != nil {
			return err
		}
		for j := i + 1; j < n; j++ {
			if d := hamming(digests[i], digests[j]); d < closest {
				closest, a, b = d, i, j
			}
		}
	}

	res.Metric = float64(closest)
	res.Passed = closest > minPairDistance
	res.Detail = fmt.Sprintf("closest pair %d and %d of %d digests", a, b, n)
	return nil
}

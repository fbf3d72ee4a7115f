// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/project-illium/sigil/crypto/sigil"
)

// sweepRounds are the round counts measured by the reduced-round
// analyzer, limited to the target's round count.
var sweepRounds = []int{1, 2, 3, 4, 5, 8, 12, 24}

// requiredDiffusion is the minimum percentage of output bits that must
// change after the given number of rounds.
func requiredDiffusion(rounds, full int) float64 {
	need := 45.0
	switch rounds {
	case 1:
		need = 30
	case 2:
		need = 40
	}
	if rounds == full && need < 49 {
		need = 49
	}
	return need
}

type messagePair struct {
	a, b []byte
}

// reducedRound measures how quickly a one bit input difference spreads
// as rounds are added. The same message pairs are used at every round
// count.
func reducedRound(ctx context.Context, h *Harness, res *TestResult) error {
	rng := h.stream(streamReducedRound)
	pairs := make([]messagePair, h.cfg.samples.ReducedRoundPairs)
	for i := range pairs {
		msg := rng.bytes(sigil.BlockSize)
		bit := rng.Intn(32)
		pairs[i] = messagePair{a: msg, b: flipBit(msg, bit)}
	}

	full := h.target.Rounds()
	var counts []int
	for _, r := range sweepRounds {
		if r <= full {
			counts = append(counts, r)
		}
	}
	if len(counts) == 0 || counts[len(counts)-1] != full {
		counts = append(counts, full)
	}

	res.Passed = true
	var parts []string
	for _, r := range counts {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := h.target.WithRounds(r)
		if target.Rounds() != r {
			continue
		}
		total := 0
		for i, p := range pairs {
			if err := checkContext(ctx, i+1); err != nil {
				return err
			}
			total += hamming(target.Sum256(p.a), target.Sum256(p.b))
		}
		pct := float64(total) / float64(len(pairs)*sigil.Size*8) * 100
		point := RoundDiffusion{
			Rounds:   r,
			Percent:  pct,
			Required: requiredDiffusion(r, full),
		}
		point.Passed = point.Percent >= point.Required
		res.Passed = res.Passed && point.Passed
		res.Sweep = append(res.Sweep, point)
		parts = append(parts, fmt.Sprintf("%dr %.2f%%", r, pct))

		if r == full {
			res.Metric = pct
		}
	}
	res.Detail = strings.Join(parts, ", ")
	return nil
}

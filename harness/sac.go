// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"fmt"

	"github.com/project-illium/sigil/crypto/sigil"
	"gonum.org/v1/gonum/stat"
)

const (
	sacMinMean      = 0.48
	sacMaxMean      = 0.52
	sacBandLow      = 0.4
	sacBandHigh     = 0.6
	sacMinInBand    = 0.95
	sacMessageBytes = sigil.BlockSize
)

// strictAvalanche flips every input bit of a base message and records,
// for each output bit, how often it changed. Each should change with
// probability one half.
func strictAvalanche(ctx context.Context, h *Harness, res *TestResult) error {
	rng := h.stream(streamSAC)
	base := rng.bytes(sacMessageBytes)
	d0 := h.target.Sum256(base)

	const outBits = sigil.Size * 8
	inBits := len(base) * 8
	var flips [outBits]int
	for i := 0; i < inBits; i++ {
		if err := checkContext(ctx, i); err != nil {
			return err
		}
		d := h.target.Sum256(flipBit(base, i))
		for j := 0; j < outBits; j++ {
			if (d0[j/8]^d[j/8])&(0x80>>(j%8)) != 0 {
				flips[j]++
			}
		}
	}

	probs := make([]float64, outBits)
	inBand := 0
	for j, f := range flips {
		probs[j] = float64(f) / float64(inBits)
		if probs[j] >= sacBandLow && probs[j] <= sacBandHigh {
			inBand++
		}
	}
	mean, std := stat.MeanStdDev(probs, nil)
	frac := float64(inBand) / outBits

	res.Metric = mean
	res.Passed = mean >= sacMinMean && mean <= sacMaxMean && frac >= sacMinInBand
	res.Detail = fmt.Sprintf("%.1f%% of output bits in [%.1f, %.1f], stddev %.4f",
		frac*100, sacBandLow, sacBandHigh, std)
	return nil
}

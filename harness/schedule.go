// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"fmt"

	"github.com/project-illium/sigil/crypto/sigil"
)

const (
	// minNonLinearWords is how many schedule words must differ from
	// the XOR prediction for every block pair.
	minNonLinearWords = 8

	// minAbsorbedDiffusion is how many absorbed schedule words must
	// change after a single bit flip in the first block word.
	minAbsorbedDiffusion = 20
)

func countWords(a, b [sigil.ScheduleWords]uint32) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}

// scheduleNonLinearity probes the message schedule. A linear schedule
// satisfies E(a) ^ E(b) == E(a ^ b) for every word. The second probe
// flips one bit of the first block word and counts how many of the
// words absorbed by the rounds change.
func scheduleNonLinearity(ctx context.Context, h *Harness, res *TestResult) error {
	st, ok := h.target.(Structural)
	if !ok {
		return errSkipped
	}
	rng := h.stream(streamSchedule)
	trials := h.cfg.samples.ScheduleTrials

	nonLinear := sigil.ScheduleWords + 1
	for i := 0; i < trials; i++ {
		if err := checkContext(ctx, i); err != nil {
			return err
		}
		var a, b, x [sigil.BlockSize]byte
		rng.Read(a[:])
		rng.Read(b[:])
		for j := range x {
			x[j] = a[j] ^ b[j]
		}
		ea, eb, ex := st.Expand(&a), st.Expand(&b), st.Expand(&x)
		for j := range ea {
			ea[j] ^= eb[j]
		}
		if n := countWords(ea, ex); n < nonLinear {
			nonLinear = n
		}
	}

	absorbed, raw := sigil.ScheduleWords+1, sigil.ScheduleWords+1
	for i := 0; i < trials; i++ {
		if err := checkContext(ctx, i); err != nil {
			return err
		}
		var blk, flipped [sigil.BlockSize]byte
		rng.Read(blk[:])
		copy(flipped[:], flipBit(blk[:], rng.Intn(32)))

		if n := countWords(st.RoundInputs(&blk), st.RoundInputs(&flipped)); n < absorbed {
			absorbed = n
		}
		if n := countWords(st.Expand(&blk), st.Expand(&flipped)); n < raw {
			raw = n
		}
	}

	res.Metric = float64(nonLinear)
	res.Passed = nonLinear >= minNonLinearWords && absorbed >= minAbsorbedDiffusion
	res.Detail = fmt.Sprintf("absorbed round inputs changed %d/%d (need %d, applies to absorbed words), "+
		"expanded schedule words changed %d/%d (no requirement)",
		absorbed, sigil.ScheduleWords, minAbsorbedDiffusion, raw, sigil.ScheduleWords)
	return nil
}

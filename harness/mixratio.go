// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"fmt"
)

// minMixScore is the bound on rounds × irreversible / total operations.
const minMixScore = 4

func mixRatio(ctx context.Context, h *Harness, res *TestResult) error {
	st, ok := h.target.(Structural)
	if !ok {
		return errSkipped
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	ops := st.RoundOps()
	rounds := h.target.Rounds()
	score := float64(rounds) * ops.MixRatio()

	res.Metric = score
	res.Passed = score > minMixScore
	res.Detail = fmt.Sprintf("%d irreversible of %d operations per round (ratio %.4f) over %d rounds",
		ops.Irreversible(), ops.Total(), ops.MixRatio(), rounds)
	return nil
}

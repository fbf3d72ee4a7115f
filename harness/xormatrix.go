// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"fmt"

	"github.com/project-illium/sigil/crypto/sigil"
)

// minRowWeight is the smallest number of input bits every output bit of
// the linearized round must depend on.
const minRowWeight = 4

// xorCancellation checks that the linear part of a round cannot cancel
// an input difference: every output bit of the linearized round must
// depend on at least minRowWeight input bits.
func xorCancellation(ctx context.Context, h *Harness, res *TestResult) error {
	st, ok := h.target.(Structural)
	if !ok {
		return errSkipped
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m := st.LinearRoundMatrix()
	weight, row := m.MinRowWeight()

	total := 0
	for i := 0; i < sigil.StateBits; i++ {
		total += m.RowWeight(i)
	}

	res.Metric = float64(weight)
	res.Passed = weight >= minRowWeight
	res.Detail = fmt.Sprintf("weakest output bit %d (word %d), mean row weight %.2f",
		row, row/32, float64(total)/sigil.StateBits)
	return nil
}

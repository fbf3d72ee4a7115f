// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/project-illium/sigil/crypto/sigil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	h, err := New(SigilTarget(sigil.DefaultParams), BenchmarkBytes(1<<20))
	require.NoError(t, err)
	card := h.Run(context.Background())

	out, err := card.Report()
	require.NoError(t, err)
	for _, a := range analyzers {
		assert.Contains(t, out, a.name)
	}
	assert.Contains(t, out, "Reduced-round sweep")
	assert.Contains(t, out, "Grover")
	assert.Contains(t, out, "Throughput")
	assert.Contains(t, out, "CERTIFIED: 9/9 tests passed")
}

func TestScorecardJSON(t *testing.T) {
	card := runAudit(t, SigilTarget(sigil.Params{NoScheduleMul: true}), Seed(1))

	out, err := card.JSON()
	require.NoError(t, err)

	var decoded struct {
		Target    string       `json:"target"`
		Seed      uint64       `json:"seed"`
		Rounds    int          `json:"rounds"`
		PassCount int          `json:"passCount"`
		Total     int          `json:"total"`
		Certified bool         `json:"certified"`
		Results   []TestResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, card.Target, decoded.Target)
	assert.Equal(t, uint64(1), decoded.Seed)
	assert.Equal(t, sigil.Rounds, decoded.Rounds)
	assert.Equal(t, card.PassCount, decoded.PassCount)
	assert.Equal(t, 9, decoded.Total)
	assert.False(t, decoded.Certified)
	require.Len(t, decoded.Results, numAnalyzers)
	assert.Equal(t, StatusFailed, decoded.Results[TestSchedule-1].Status)
	assert.Equal(t, card.Results[TestReducedRound-1].Sweep, decoded.Results[TestReducedRound-1].Sweep)
}

func TestStatusText(t *testing.T) {
	for _, s := range []Status{StatusPassed, StatusFailed, StatusTimedOut, StatusSkipped} {
		b, err := s.MarshalText()
		require.NoError(t, err)
		var got Status
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, s, got)
	}
	var s Status
	assert.Error(t, s.UnmarshalText([]byte("maybe")))
	assert.Equal(t, "timed out", StatusTimedOut.String())
}

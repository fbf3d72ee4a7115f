// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/project-illium/sigil/crypto/sigil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAudit(t *testing.T, target Target, opts ...Option) *Scorecard {
	t.Helper()
	h, err := New(target, append([]Option{Benchmark(false)}, opts...)...)
	require.NoError(t, err)
	return h.Run(context.Background())
}

func TestCertifiedConfigurationPasses(t *testing.T) {
	card := runAudit(t, SigilTarget(sigil.DefaultParams))

	require.Len(t, card.Results, numAnalyzers)
	for i, r := range card.Results {
		assert.Equal(t, i+1, r.ID)
		assert.Equal(t, StatusPassed, r.Status, "%s: %s", r.Name, r.Detail)
	}
	assert.True(t, card.Certified)
	assert.Equal(t, 9, card.PassCount)
	assert.Equal(t, 9, card.Total)
	assert.Equal(t, DefaultSeed, card.Seed)
	assert.Equal(t, sigil.Rounds, card.Rounds)
	assert.NotNil(t, card.Quantum)
	assert.Nil(t, card.Benchmark)

	metric := func(id int) float64 {
		r, ok := card.Result(id)
		require.True(t, ok)
		return r.Metric
	}
	assert.Equal(t, 7.0, metric(TestXORCancellation))
	assert.InDelta(t, 24*26.0/54, metric(TestMixRatio), 1e-9)
	assert.InDelta(t, 49.742, metric(TestReducedRound), 0.001)
	assert.InDelta(t, 128.024, metric(TestDifferential), 1e-9)
	assert.InDelta(t, 0.50265, metric(TestSAC), 1e-5)
	assert.Less(t, metric(TestIndependence), 0.05)
	assert.InDelta(t, 227.652, metric(TestDistribution), 0.001)
	assert.Equal(t, 93.0, metric(TestNearCollision))
	assert.Equal(t, 8.0, metric(TestSchedule))
	sched, _ := card.Result(TestSchedule)
	assert.Equal(t, "absorbed round inputs changed 24/24 (need 20, applies to absorbed words), "+
		"expanded schedule words changed 5/24 (no requirement)", sched.Detail)

	r, _ := card.Result(TestReducedRound)
	require.Len(t, r.Sweep, len(sweepRounds))
	for _, p := range r.Sweep {
		assert.True(t, p.Passed, "%d rounds: %.2f%%", p.Rounds, p.Percent)
	}
	assert.Equal(t, 49.0, r.Sweep[len(r.Sweep)-1].Required)
}

func TestSingleRoundVariantFails(t *testing.T) {
	card := runAudit(t, SigilTarget(sigil.Params{Rounds: 1}))

	assert.False(t, card.Certified)
	assert.Equal(t, 1, card.Rounds)

	status := func(id int) Status {
		r, ok := card.Result(id)
		require.True(t, ok)
		return r.Status
	}
	assert.Equal(t, StatusFailed, status(TestSAC))
	assert.Equal(t, StatusFailed, status(TestSchedule))
	assert.Equal(t, StatusFailed, status(TestMixRatio))
	assert.Equal(t, StatusFailed, status(TestDifferential))

	r, _ := card.Result(TestReducedRound)
	require.Len(t, r.Sweep, 1)
	assert.Equal(t, 1, r.Sweep[0].Rounds)
}

func TestLinearScheduleFails(t *testing.T) {
	card := runAudit(t, SigilTarget(sigil.Params{NoScheduleMul: true}))

	assert.False(t, card.Certified)
	r, ok := card.Result(TestSchedule)
	require.True(t, ok)
	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, 0.0, r.Metric)

	r, _ = card.Result(TestSAC)
	assert.Equal(t, StatusPassed, r.Status)
	r, _ = card.Result(TestMixRatio)
	assert.Equal(t, StatusPassed, r.Status)
}

func TestReferenceTarget(t *testing.T) {
	card := runAudit(t, Reference())

	for _, r := range card.Results {
		switch r.ID {
		case TestXORCancellation, TestMixRatio, TestSchedule:
			assert.Equal(t, StatusSkipped, r.Status, r.Name)
		default:
			assert.Equal(t, StatusPassed, r.Status, "%s: %s", r.Name, r.Detail)
		}
	}
	assert.Equal(t, 6, card.PassCount)
	assert.False(t, card.Certified)

	r, _ := card.Result(TestReducedRound)
	require.Len(t, r.Sweep, 1)
	assert.Equal(t, 10, r.Sweep[0].Rounds)
}

func TestDeterministicAcrossWorkers(t *testing.T) {
	a := runAudit(t, SigilTarget(sigil.DefaultParams), Workers(1))
	b := runAudit(t, SigilTarget(sigil.DefaultParams), Workers(9))

	if diff := deep.Equal(a.Results, b.Results); diff != nil {
		t.Error(diff)
	}
}

func TestSeedChangesSamples(t *testing.T) {
	a := runAudit(t, SigilTarget(sigil.DefaultParams))
	b := runAudit(t, SigilTarget(sigil.DefaultParams), Seed(7))

	ra, _ := a.Result(TestDifferential)
	rb, _ := b.Result(TestDifferential)
	assert.NotEqual(t, ra.Metric, rb.Metric)
	assert.Equal(t, uint64(7), b.Seed)
}

func TestCancelledRunReportsTimeouts(t *testing.T) {
	h, err := New(SigilTarget(sigil.DefaultParams), Benchmark(false))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	card := h.Run(ctx)

	require.Len(t, card.Results, numAnalyzers)
	for _, r := range card.Results {
		assert.Equal(t, StatusTimedOut, r.Status, r.Name)
		assert.False(t, r.Passed)
	}
	assert.Equal(t, 0, card.PassCount)
	assert.False(t, card.Certified)
}

func TestTimedOutTestKeepsPartialMetric(t *testing.T) {
	s := DefaultSamples
	s.DifferentialPairs = 1 << 30
	card := runAudit(t, SigilTarget(sigil.DefaultParams),
		Workers(1),
		TestTimeout(20*time.Millisecond),
		WithSamples(s),
	)

	r, ok := card.Result(TestDifferential)
	require.True(t, ok)
	assert.Equal(t, StatusTimedOut, r.Status)
	assert.False(t, r.Passed)
	assert.Contains(t, r.Detail, "did not complete within 20ms")
	assert.Less(t, r.Elapsed, 5*time.Second)

	// The running mean over the pairs hashed before the deadline.
	assert.Greater(t, r.Metric, 64.0)
	assert.Less(t, r.Metric, 192.0)
	assert.False(t, card.Certified)
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(SigilTarget(sigil.Params{Rounds: 25}))
	assert.Error(t, err)

	_, err = New(Reference(), Workers(0))
	assert.Error(t, err)

	_, err = New(Reference(), TestTimeout(0))
	assert.Error(t, err)

	s := DefaultSamples
	s.DifferentialPairs = 10
	_, err = New(Reference(), WithSamples(s))
	assert.Error(t, err)

	_, err = New(Reference(), Logger(nil))
	assert.Error(t, err)
}

// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

// Package harness audits a 256-bit hash against a fixed battery of
// structural and statistical analyzers and produces a scorecard. A
// target is certified when it passes all nine analyzers.
//
// Every sample is drawn from a ChaCha20 keystream keyed by the seed,
// with one stream per analyzer, so a scorecard is reproducible from the
// seed alone regardless of how many analyzers run in parallel.
package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/project-illium/sigil/crypto/sigil"
	"golang.org/x/sync/errgroup"
)

// Analyzer ids, in scorecard order.
const (
	TestXORCancellation = iota + 1
	TestMixRatio
	TestReducedRound
	TestDifferential
	TestSAC
	TestIndependence
	TestDistribution
	TestNearCollision
	TestSchedule
)

const numAnalyzers = TestSchedule

// errSkipped is returned by analyzers that cannot inspect the target.
var errSkipped = errors.New("target does not expose its structure")

type analyzer struct {
	id          int
	name        string
	requirement string
	run         func(ctx context.Context, h *Harness, res *TestResult) error
}

var analyzers = []analyzer{
	{TestXORCancellation, "XOR-Cancellation-Matrix", "min row weight >= 4", xorCancellation},
	{TestMixRatio, "MIX-Ratio", "rounds x irreversible/total > 4", mixRatio},
	{TestReducedRound, "Reduced-Round Diffusion", ">= 30/40/45% by round, >= 49% at full rounds", reducedRound},
	{TestDifferential, "Differential Resistance", "mean distance in [115, 141] bits", differential},
	{TestSAC, "Strict Avalanche Criterion", "mean in [0.48, 0.52], >= 95% in [0.4, 0.6]", strictAvalanche},
	{TestIndependence, "Bit Independence", "max |r| < 0.05", bitIndependence},
	{TestDistribution, "Uniform Distribution", "chi-square < 293.2 (255 dof)", byteDistribution},
	{TestNearCollision, "Near-Collision Resistance", "min distance > 90 bits", nearCollision},
	{TestSchedule, "Schedule Non-Linearity", ">= 8 non-linear words, >= 20 absorbed words", scheduleNonLinearity},
}

// Harness runs the analyzer battery against one target.
type Harness struct {
	target Target
	cfg    config
}

// New returns a harness for target.
func New(target Target, opts ...Option) (*Harness, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if target == nil {
		return nil, AssertError("New: target cannot be nil")
	}
	if p, ok := target.(interface{ Params() sigil.Params }); ok {
		if err := p.Params().Validate(); err != nil {
			return nil, fmt.Errorf("harness: invalid target: %w", err)
		}
	}
	return &Harness{target: target, cfg: cfg}, nil
}

func (h *Harness) stream(id uint32) *drbg {
	return newDRBG(h.cfg.seed, id)
}

// Run executes every analyzer, then the supplementary analyses. It
// never stops early on a failing analyzer. Cancelling ctx reports the
// unfinished analyzers as timed out.
func (h *Harness) Run(ctx context.Context) *Scorecard {
	card := &Scorecard{
		Target:  h.target.Name(),
		Seed:    h.cfg.seed,
		Rounds:  h.target.Rounds(),
		Results: make([]TestResult, len(analyzers)),
	}
	log.Info("Starting audit", log.Args(
		"target", card.Target,
		"seed", card.Seed,
		"workers", h.cfg.workers,
	))

	g := new(errgroup.Group)
	g.SetLimit(h.cfg.workers)
	for i, a := range analyzers {
		i, a := i, a
		g.Go(func() error {
			card.Results[i] = h.runAnalyzer(ctx, a)
			return nil
		})
	}
	g.Wait()
	card.tally()

	card.Quantum = estimateQuantum(sigil.Size * 8)

	if h.cfg.benchmark {
		bctx, cancel := context.WithTimeout(ctx, h.cfg.testTimeout)
		report, warnings, err := RunBenchmark(bctx, h.target, h.cfg.seed, h.cfg.benchBytes)
		cancel()
		card.Benchmark = report
		card.Warnings = append(card.Warnings, warnings...)
		if err != nil {
			card.Warnings = append(card.Warnings, fmt.Sprintf("benchmark: incomplete: %s", err))
		}
	}

	for _, w := range card.Warnings {
		log.Warn(w)
	}
	log.Info("Audit complete", log.Args(
		"passed", card.PassCount,
		"total", card.Total,
		"certified", card.Certified,
	))
	return card
}

func (h *Harness) runAnalyzer(ctx context.Context, a analyzer) TestResult {
	res := TestResult{
		ID:          a.id,
		Name:        a.name,
		Requirement: a.requirement,
	}
	tctx, cancel := context.WithTimeout(ctx, h.cfg.testTimeout)
	defer cancel()

	start := time.Now()
	err := a.run(tctx, h, &res)
	res.Elapsed = time.Since(start)

	switch {
	case errors.Is(err, errSkipped):
		res.Passed = false
		res.Status = StatusSkipped
		res.Detail = err.Error()
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		res.Passed = false
		res.Status = StatusTimedOut
		res.Detail = fmt.Sprintf("did not complete within %s", h.cfg.testTimeout)
		log.Warn("Audit test timed out", log.Args("test", a.name))
	case err != nil:
		res.Passed = false
		res.Status = StatusFailed
		res.Detail = err.Error()
		log.WithCaller(true).Error("Audit test error", log.Args("test", a.name, "error", err))
	case res.Passed:
		res.Status = StatusPassed
	default:
		res.Status = StatusFailed
	}

	log.Debug("Audit test finished", log.Args(
		"test", a.name,
		"status", res.Status.String(),
		"metric", res.Metric,
		"elapsed", res.Elapsed,
	))
	return res
}

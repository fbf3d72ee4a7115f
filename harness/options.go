// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"fmt"
	"runtime"
	"time"

	"github.com/project-illium/logger"
)

const (
	// DefaultSeed is the seed used when none is supplied. Every
	// verdict is a pure function of the seed and the target.
	DefaultSeed uint64 = 1

	// DefaultTestTimeout bounds the wall clock of a single analyzer.
	DefaultTestTimeout = 5 * time.Minute

	// DefaultBenchmarkBytes is the number of bytes hashed per payload
	// size by the throughput benchmark.
	DefaultBenchmarkBytes = 8 << 20
)

// Samples holds the sample sizes used by the statistical analyzers.
type Samples struct {
	ReducedRoundPairs    int
	DifferentialPairs    int
	IndependenceSamples  int
	IndependencePairs    int
	DistributionSamples  int
	NearCollisionSamples int
	ScheduleTrials       int
}

// DefaultSamples are the sample sizes a certifying run uses.
var DefaultSamples = Samples{
	ReducedRoundPairs:    256,
	DifferentialPairs:    1000,
	IndependenceSamples:  20000,
	IndependencePairs:    1000,
	DistributionSamples:  8192,
	NearCollisionSamples: 500,
	ScheduleTrials:       16,
}

// minSamples are the floors below which a verdict would not be
// meaningful.
var minSamples = Samples{
	ReducedRoundPairs:    1,
	DifferentialPairs:    1000,
	IndependenceSamples:  1000,
	IndependencePairs:    1,
	DistributionSamples:  256,
	NearCollisionSamples: 500,
	ScheduleTrials:       1,
}

// AssertError identifies an error that indicates an internal code consistency
// issue and should be treated as a critical and unrecoverable error.
type AssertError string

// Error returns the assertion error as a human-readable string and satisfies
// the error interface.
func (e AssertError) Error() string {
	return "assertion failed: " + string(e)
}

// Option is configuration option function for the harness
type Option func(cfg *config) error

// Seed sets the seed of every sampling stream.
func Seed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// Workers is the maximum number of analyzers run concurrently.
// The scorecard does not depend on this value.
func Workers(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return AssertError("harness: workers must be at least one")
		}
		cfg.workers = n
		return nil
	}
}

// TestTimeout bounds the runtime of each analyzer. An analyzer
// that exceeds it is reported as timed out.
func TestTimeout(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return AssertError("harness: test timeout must be positive")
		}
		cfg.testTimeout = d
		return nil
	}
}

// WithSamples overrides the default sample sizes.
func WithSamples(s Samples) Option {
	return func(cfg *config) error {
		cfg.samples = s
		return nil
	}
}

// Benchmark toggles the throughput benchmark.
func Benchmark(enable bool) Option {
	return func(cfg *config) error {
		cfg.benchmark = enable
		return nil
	}
}

// BenchmarkBytes sets how many bytes are hashed for each payload
// size by the benchmark.
func BenchmarkBytes(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return AssertError("harness: benchmark budget must be positive")
		}
		cfg.benchBytes = n
		return nil
	}
}

// Logger sets the package logger.
func Logger(logger *logger.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return AssertError("harness: logger cannot be nil")
		}
		UseLogger(logger)
		return nil
	}
}

type config struct {
	seed        uint64
	workers     int
	testTimeout time.Duration
	samples     Samples
	benchmark   bool
	benchBytes  int
}

func defaultConfig() config {
	return config{
		seed:        DefaultSeed,
		workers:     runtime.NumCPU(),
		testTimeout: DefaultTestTimeout,
		samples:     DefaultSamples,
		benchmark:   true,
		benchBytes:  DefaultBenchmarkBytes,
	}
}

func (cfg *config) validate() error {
	if cfg == nil {
		return AssertError("New: harness config cannot be nil")
	}
	if cfg.workers < 1 {
		return AssertError("New: workers must be at least one")
	}
	s, m := cfg.samples, minSamples
	checks := []struct {
		name     string
		got, min int
	}{
		{"reduced-round pairs", s.ReducedRoundPairs, m.ReducedRoundPairs},
		{"differential pairs", s.DifferentialPairs, m.DifferentialPairs},
		{"independence samples", s.IndependenceSamples, m.IndependenceSamples},
		{"independence pairs", s.IndependencePairs, m.IndependencePairs},
		{"distribution samples", s.DistributionSamples, m.DistributionSamples},
		{"near-collision samples", s.NearCollisionSamples, m.NearCollisionSamples},
		{"schedule trials", s.ScheduleTrials, m.ScheduleTrials},
	}
	for _, c := range checks {
		if c.got < c.min {
			return AssertError(fmt.Sprintf("New: %s must be at least %d", c.name, c.min))
		}
	}
	return nil
}

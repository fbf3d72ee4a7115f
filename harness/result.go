// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"fmt"
	"time"
)

// Status is the outcome of a single analyzer.
type Status int

const (
	StatusPassed Status = iota
	StatusFailed
	StatusTimedOut
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusTimedOut:
		return "timed out"
	case StatusSkipped:
		return "skipped"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText encodes the status as its name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(b []byte) error {
	for _, st := range []Status{StatusPassed, StatusFailed, StatusTimedOut, StatusSkipped} {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(b))
}

// RoundDiffusion is one point of the reduced-round sweep.
type RoundDiffusion struct {
	Rounds   int     `json:"rounds"`
	Percent  float64 `json:"percent"`
	Required float64 `json:"required"`
	Passed   bool    `json:"passed"`
}

// TestResult is the verdict of one analyzer.
type TestResult struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Metric      float64          `json:"metric"`
	Requirement string           `json:"requirement"`
	Passed      bool             `json:"passed"`
	Status      Status           `json:"status"`
	Detail      string           `json:"detail,omitempty"`
	Sweep       []RoundDiffusion `json:"sweep,omitempty"`
	Elapsed     time.Duration    `json:"elapsedNs" deep:"-"`
}

// Scorecard is the outcome of a harness run.
type Scorecard struct {
	Target    string
	Seed      uint64
	Rounds    int
	Results   []TestResult
	PassCount int
	Total     int
	Certified bool
	Quantum   *QuantumEstimate
	Benchmark *BenchmarkReport
	Warnings  []string
}

func (s *Scorecard) tally() {
	s.Total = len(s.Results)
	s.PassCount = 0
	for _, r := range s.Results {
		if r.Passed {
			s.PassCount++
		}
	}
	s.Certified = s.Total == numAnalyzers && s.PassCount == s.Total
}

// Result returns the result of the analyzer with the given id.
func (s *Scorecard) Result(id int) (TestResult, bool) {
	for _, r := range s.Results {
		if r.ID == id {
			return r, true
		}
	}
	return TestResult{}, false
}

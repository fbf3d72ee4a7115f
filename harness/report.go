// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/tidwall/sjson"
)

func formatMetric(r TestResult) string {
	switch r.ID {
	case TestXORCancellation, TestNearCollision, TestSchedule:
		return strconv.Itoa(int(r.Metric))
	case TestReducedRound:
		return fmt.Sprintf("%.2f%%", r.Metric)
	case TestSAC, TestIndependence:
		return fmt.Sprintf("%.4f", r.Metric)
	default:
		return fmt.Sprintf("%.2f", r.Metric)
	}
}

// Report renders the scorecard as a set of tables.
func (s *Scorecard) Report() (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Audit of %s, seed %d\n\n", s.Target, s.Seed)

	data := pterm.TableData{{"#", "Test", "Metric", "Requirement", "Status"}}
	for _, r := range s.Results {
		data = append(data, []string{
			strconv.Itoa(r.ID),
			r.Name,
			formatMetric(r),
			r.Requirement,
			r.Status.String(),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	b.WriteString(table)
	b.WriteString("\n\n")

	for _, r := range s.Results {
		if r.Detail != "" {
			fmt.Fprintf(&b, "%d. %s: %s\n", r.ID, r.Name, r.Detail)
		}
	}
	b.WriteString("\n")

	if r, ok := s.Result(TestReducedRound); ok && len(r.Sweep) > 0 {
		data := pterm.TableData{{"Rounds", "Bits changed", "Required", "Status"}}
		for _, p := range r.Sweep {
			status := "passed"
			if !p.Passed {
				status = "failed"
			}
			data = append(data, []string{
				strconv.Itoa(p.Rounds),
				fmt.Sprintf("%.2f%%", p.Percent),
				fmt.Sprintf("%.0f%%", p.Required),
				status,
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return "", err
		}
		b.WriteString("Reduced-round sweep\n")
		b.WriteString(table)
		b.WriteString("\n\n")
	}

	if q := s.Quantum; q != nil {
		data := pterm.TableData{
			{"Attack", "Classical", "Quantum"},
			{"Preimage", fmt.Sprintf("2^%.0f", q.ClassicalPreimage), fmt.Sprintf("2^%.0f (Grover)", q.GroverPreimage)},
			{"Collision", fmt.Sprintf("2^%.0f", q.ClassicalCollision), fmt.Sprintf("2^%.1f (BHT)", q.BHTCollision)},
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "Generic attack cost for a %d-bit digest\n", q.DigestBits)
		b.WriteString(table)
		b.WriteString("\n\n")
	}

	if s.Benchmark != nil && len(s.Benchmark.Results) > 0 {
		data := pterm.TableData{{"Payload", "Iterations", "MB/s", "ns/op"}}
		for _, t := range s.Benchmark.Results {
			data = append(data, []string{
				strconv.Itoa(t.PayloadBytes),
				strconv.Itoa(t.Iterations),
				fmt.Sprintf("%.2f", t.MBPerSecond),
				fmt.Sprintf("%.0f", t.NsPerOp),
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return "", err
		}
		b.WriteString("Throughput\n")
		b.WriteString(table)
		b.WriteString("\n\n")
	}

	for _, w := range s.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", w)
	}

	verdict := "NOT CERTIFIED"
	if s.Certified {
		verdict = "CERTIFIED"
	}
	fmt.Fprintf(&b, "%s: %d/%d tests passed\n", verdict, s.PassCount, s.Total)
	return b.String(), nil
}

// JSON returns the machine-readable scorecard.
func (s *Scorecard) JSON() ([]byte, error) {
	out, err := json.Marshal(struct {
		Target    string           `json:"target"`
		Results   []TestResult     `json:"results"`
		Quantum   *QuantumEstimate `json:"quantum,omitempty"`
		Benchmark *BenchmarkReport `json:"benchmark,omitempty"`
		Warnings  []string         `json:"warnings,omitempty"`
	}{s.Target, s.Results, s.Quantum, s.Benchmark, s.Warnings})
	if err != nil {
		return nil, err
	}
	fields := []struct {
		path  string
		value any
	}{
		{"seed", s.Seed},
		{"rounds", s.Rounds},
		{"passCount", s.PassCount},
		{"total", s.Total},
		{"certified", s.Certified},
	}
	for _, f := range fields {
		out, err = sjson.SetBytes(out, f.path, f.value)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

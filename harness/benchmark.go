// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/nixberg/chacha-rng-go"
)

// benchmarkStream selects the payload generator's stream. Payloads
// never influence a verdict.
const benchmarkStream = 10

// BenchmarkPayloads are the payload sizes timed by the benchmark.
var BenchmarkPayloads = []int{64, 1 << 10, 64 << 10, 1 << 20}

// Throughput is the measurement for one payload size.
type Throughput struct {
	PayloadBytes int     `json:"payloadBytes"`
	Iterations   int     `json:"iterations"`
	Elapsed      int64   `json:"elapsedNs"`
	MBPerSecond  float64 `json:"mbPerSecond"`
	NsPerOp      float64 `json:"nsPerOp"`
}

// BenchmarkReport is the outcome of the throughput benchmark.
type BenchmarkReport struct {
	Results []Throughput `json:"results"`
}

type payloadReader struct {
	rng *chacha.ChaCha
}

func newPayloadReader(seed uint64) *payloadReader {
	var s [8]uint32
	s[0] = uint32(seed)
	s[1] = uint32(seed >> 32)
	return &payloadReader{rng: chacha.Seeded20(s, benchmarkStream)}
}

func (c *payloadReader) Read(p []byte) (n int, err error) {
	var word [8]byte
	for n < len(p) {
		binary.LittleEndian.PutUint64(word[:], c.rng.Uint64())
		n += copy(p[n:], word[:])
	}
	return n, nil
}

// RunBenchmark times Sum256 over each payload size, hashing about budget
// bytes per size. Readings the clock cannot resolve are returned as
// warnings.
func RunBenchmark(ctx context.Context, target Target, seed uint64, budget int) (*BenchmarkReport, []string, error) {
	payloads := newPayloadReader(seed)
	report := &BenchmarkReport{}
	var warnings []string
	for _, size := range BenchmarkPayloads {
		payload := make([]byte, size)
		payloads.Read(payload)

		iters := budget / size
		if iters < 1 {
			iters = 1
		}
		start := time.Now()
		for i := 0; i < iters; i++ {
			if err := checkContext(ctx, i); err != nil {
				return report, warnings, err
			}
			target.Sum256(payload)
		}
		elapsed := time.Since(start)

		t := Throughput{
			PayloadBytes: size,
			Iterations:   iters,
			Elapsed:      elapsed.Nanoseconds(),
		}
		if elapsed <= 0 {
			warnings = append(warnings, fmt.Sprintf("benchmark: clock did not advance while hashing %d byte payloads", size))
		} else {
			t.MBPerSecond = float64(size*iters) / elapsed.Seconds() / 1e6
			t.NsPerOp = float64(elapsed.Nanoseconds()) / float64(iters)
		}
		report.Results = append(report.Results, t)
	}
	return report, warnings, nil
}

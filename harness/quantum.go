// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

// QuantumEstimate gives generic attack costs, in bits of work, for an
// ideal hash with the target's output length. It is informational and
// has no bearing on certification.
type QuantumEstimate struct {
	DigestBits int `json:"digestBits"`

	ClassicalPreimage  float64 `json:"classicalPreimage"`
	ClassicalCollision float64 `json:"classicalCollision"`

	// GroverPreimage is the cost of a preimage search with Grover's
	// algorithm, 2^(n/2).
	GroverPreimage float64 `json:"groverPreimage"`

	// BHTCollision is the Brassard-Hoyer-Tapp collision bound,
	// 2^(n/3), which assumes 2^(n/3) qubits of quantum memory.
	BHTCollision float64 `json:"bhtCollision"`
}

func estimateQuantum(digestBits int) *QuantumEstimate {
	n := float64(digestBits)
	return &QuantumEstimate{
		DigestBits:         digestBits,
		ClassicalPreimage:  n,
		ClassicalCollision: n / 2,
		GroverPreimage:     n / 2,
		BHTCollision:       n / 3,
	}
}

// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"fmt"

	"github.com/project-illium/sigil/crypto/sigil"
	"golang.org/x/crypto/blake2s"
)

// Target is the hash under audit. The statistical analyzers only see
// it through this interface.
type Target interface {
	// Name is a human-readable description of the target.
	Name() string

	// Sum256 digests data.
	Sum256(data []byte) [32]byte

	// Rounds is the number of rounds the target runs.
	Rounds() int

	// WithRounds returns the same construction reduced to n rounds.
	// A target that cannot be reduced returns itself, and the
	// reduced-round sweep then only measures its full round count.
	WithRounds(n int) Target
}

// Structural is implemented by targets whose internals can be
// inspected. Analyzers that need it report skipped for other targets.
type Structural interface {
	Expand(block *[sigil.BlockSize]byte) [sigil.ScheduleWords]uint32
	RoundInputs(block *[sigil.BlockSize]byte) [sigil.ScheduleWords]uint32
	RoundOps() sigil.OpCounts
	LinearRoundMatrix() *sigil.BitMatrix
}

type sigilTarget struct {
	params sigil.Params
}

// SigilTarget wraps a Sigil-256 configuration. The zero value of
// Params audits the certified configuration.
func SigilTarget(params sigil.Params) Target {
	return &sigilTarget{params: params}
}

func (s *sigilTarget) Name() string {
	name := fmt.Sprintf("Sigil-256 (%d rounds)", s.params.RoundCount())
	if s.params.NoScheduleMul {
		name += ", linear schedule"
	}
	return name
}

func (s *sigilTarget) Sum256(data []byte) [32]byte {
	return s.params.Sum256(data)
}

func (s *sigilTarget) Rounds() int {
	return s.params.RoundCount()
}

func (s *sigilTarget) WithRounds(n int) Target {
	p := s.params
	p.Rounds = n
	return &sigilTarget{params: p}
}

func (s *sigilTarget) Expand(block *[sigil.BlockSize]byte) [sigil.ScheduleWords]uint32 {
	return s.params.Expand(block)
}

func (s *sigilTarget) RoundInputs(block *[sigil.BlockSize]byte) [sigil.ScheduleWords]uint32 {
	return s.params.RoundInputs(block)
}

func (s *sigilTarget) RoundOps() sigil.OpCounts {
	return sigil.RoundOps()
}

func (s *sigilTarget) LinearRoundMatrix() *sigil.BitMatrix {
	return sigil.LinearRoundMatrix()
}

// Params returns the wrapped configuration.
func (s *sigilTarget) Params() sigil.Params {
	return s.params
}

type referenceTarget struct{}

// Reference returns BLAKE2s-256 as a calibration target. A sound
// harness passes every statistical analyzer against it.
func Reference() Target {
	return referenceTarget{}
}

func (referenceTarget) Name() string {
	return "BLAKE2s-256 (reference)"
}

func (referenceTarget) Sum256(data []byte) [32]byte {
	return blake2s.Sum256(data)
}

func (referenceTarget) Rounds() int {
	return 10
}

func (r referenceTarget) WithRounds(int) Target {
	return r
}

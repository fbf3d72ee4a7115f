// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

// Package sigil implements the Sigil-256 hash function.
//
// Sigil-256 is a Merkle–Damgård construction over a 512-bit chaining state.
// Each 64-byte block is expanded into 24 schedule words which drive 24
// rounds of the compression function, after which the state is added back
// onto the chaining value (Davies–Meyer). The final 512-bit state is folded
// to 256 bits by XOR-ing its two halves.
//
// The package level functions always use the certified configuration.
// Params exposes reduced-round and weakened variants for analysis only.
package sigil

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"hash"
)

const (
	magic              = "sgl\x01"
	marshaledStateSize = len(magic) + StateWords*4 + BlockSize + 8 + 8 + 2
)

// Params selects a Sigil-256 variant. The zero value is the certified
// configuration.
type Params struct {
	// Rounds is the number of compression rounds. Zero, and any value
	// outside 1..Rounds, selects the full round count. Validate rejects
	// the out of range values.
	Rounds int

	// NoScheduleMul removes the multiplication from the message
	// scheduler, leaving it linear over GF(2).
	NoScheduleMul bool
}

// DefaultParams is the certified configuration.
var DefaultParams = Params{Rounds: Rounds}

// Validate returns an error if the round count is out of range.
func (p Params) Validate() error {
	if p.Rounds < 0 || p.Rounds > Rounds {
		return AssertError("round count must be between 0 and 24, zero selects the full round count")
	}
	return nil
}

// RoundCount returns the number of rounds this variant runs. Out of range
// values clamp to Rounds.
func (p Params) RoundCount() int {
	if p.Rounds <= 0 || p.Rounds > Rounds {
		return Rounds
	}
	return p.Rounds
}

// Certified reports whether p is the configuration the package level
// functions use.
func (p Params) Certified() bool {
	return p.RoundCount() == Rounds && !p.NoScheduleMul
}

// New returns a streaming hash.Hash for this variant.
func (p Params) New() hash.Hash {
	d := &digest{rounds: p.RoundCount(), noMul: p.NoScheduleMul}
	d.Reset()
	return d
}

// Sum256 returns the digest of data under this variant.
func (p Params) Sum256(data []byte) Digest {
	d := digest{rounds: p.RoundCount(), noMul: p.NoScheduleMul}
	d.Reset()
	d.Write(data)
	return d.checkSum()
}

// Expand returns the working schedule of a single block.
func (p Params) Expand(block *[BlockSize]byte) [ScheduleWords]uint32 {
	var w [ScheduleWords]uint32
	expand(&w, block[:], p.NoScheduleMul)
	return w
}

// RoundInputs compresses block once from the initial state and returns the
// word absorbed by each round, that is the schedule word after it has been
// keyed with the round constant and the state selectors. Entries past the
// variant's round count are zero.
func (p Params) RoundInputs(block *[BlockSize]byte) [ScheduleWords]uint32 {
	var (
		w   [ScheduleWords]uint32
		out [ScheduleWords]uint32
	)
	expand(&w, block[:], p.NoScheduleMul)
	s := iv
	for i := 0; i < p.RoundCount(); i++ {
		out[i] = round(&s, w[i], _K[i])
	}
	return out
}

// New returns a new hash.Hash computing the Sigil-256 checksum.
func New() hash.Hash {
	return DefaultParams.New()
}

// Sum256 returns the Sigil-256 digest of data. It never fails; a nil or
// empty slice hashes as the empty message.
func Sum256(data []byte) Digest {
	return DefaultParams.Sum256(data)
}

// SumHex returns the lowercase hex encoding of Sum256(data).
func SumHex(data []byte) string {
	d := Sum256(data)
	return hex.EncodeToString(d[:])
}

// digest represents the partial evaluation of a checksum.
type digest struct {
	h      [StateWords]uint32
	x      [BlockSize]byte
	nx     int
	len    uint64
	rounds int
	noMul  bool
}

func (d *digest) Reset() {
	d.h = iv
	d.nx = 0
	d.len = 0
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Write(p []byte) (nn int, err error) {
	nn = len(p)
	d.len += uint64(nn)
	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == BlockSize {
			blockGeneric(&d.h, d.x[:], d.rounds, d.noMul)
			d.nx = 0
		}
		p = p[n:]
	}
	if len(p) >= BlockSize {
		n := len(p) &^ (BlockSize - 1)
		blockGeneric(&d.h, p[:n], d.rounds, d.noMul)
		p = p[n:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
}

func (d *digest) Sum(in []byte) []byte {
	// Make a copy of d so that caller can keep writing and summing.
	d0 := *d
	sum := d0.checkSum()
	return append(in, sum[:]...)
}

func (d *digest) checkSum() Digest {
	length := d.len
	// Padding. Add a 1 bit and 0 bits until 56 bytes mod 64.
	var tmp [BlockSize + 8]byte
	tmp[0] = 0x80
	var t uint64
	if length%BlockSize < 56 {
		t = 56 - length%BlockSize
	} else {
		t = BlockSize + 56 - length%BlockSize
	}

	// Length in bits.
	length <<= 3
	padlen := tmp[:t+8]
	binary.BigEndian.PutUint64(padlen[t:], length)
	d.Write(padlen)

	if d.nx != 0 {
		panic("d.nx != 0")
	}

	var out Digest
	for j := 0; j < StateWords/2; j++ {
		binary.BigEndian.PutUint32(out[j*4:], d.h[j]^d.h[j+StateWords/2])
	}
	return out
}

func (d *digest) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, marshaledStateSize)
	b = append(b, magic...)
	for _, v := range d.h {
		b = binary.BigEndian.AppendUint32(b, v)
	}
	b = append(b, d.x[:]...)
	b = binary.BigEndian.AppendUint64(b, uint64(d.nx))
	b = binary.BigEndian.AppendUint64(b, d.len)
	b = append(b, byte(d.rounds))
	if d.noMul {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	return b, nil
}

func (d *digest) UnmarshalBinary(b []byte) error {
	if len(b) != marshaledStateSize || string(b[:len(magic)]) != magic {
		return errors.New("sigil: invalid hash state")
	}
	b = b[len(magic):]
	var h [StateWords]uint32
	for i := range h {
		h[i] = binary.BigEndian.Uint32(b)
		b = b[4:]
	}
	var x [BlockSize]byte
	copy(x[:], b[:BlockSize])
	b = b[BlockSize:]
	nx := binary.BigEndian.Uint64(b)
	if nx >= BlockSize {
		return errors.New("sigil: invalid hash state")
	}
	if b[17] > 1 {
		return errors.New("sigil: invalid hash state")
	}
	// A state only resumes under the variant that produced it.
	if int(b[16]) != d.rounds || (b[17] == 1) != d.noMul {
		return errors.New("sigil: hash state belongs to a different variant")
	}
	d.h = h
	d.x = x
	d.nx = int(nx)
	d.len = binary.BigEndian.Uint64(b[8:])
	return nil
}

// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package harness

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// Stream ids. Each analyzer samples from its own keystream so its
// draws do not depend on which other analyzers ran or in what order.
const (
	streamReducedRound  uint32 = 3
	streamDifferential  uint32 = 4
	streamSAC           uint32 = 5
	streamIndependence  uint32 = 6
	streamDistribution  uint32 = 7
	streamNearCollision uint32 = 8
	streamSchedule      uint32 = 9
)

// drbg is a deterministic byte source built on the ChaCha20 keystream.
// The seed fills the first eight key bytes and the stream id the first
// four nonce bytes, both little endian. The block counter starts at zero.
type drbg struct {
	cipher *chacha20.Cipher
	buf    [256]byte
	off    int
}

func newDRBG(seed uint64, stream uint32) *drbg {
	var (
		key   [chacha20.KeySize]byte
		nonce [chacha20.NonceSize]byte
	)
	binary.LittleEndian.PutUint64(key[:8], seed)
	binary.LittleEndian.PutUint32(nonce[:4], stream)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Key and nonce sizes are constants.
		panic(err)
	}
	r := &drbg{cipher: c}
	r.off = len(r.buf)
	return r
}

func (r *drbg) refill() {
	for i := range r.buf {
		r.buf[i] = 0
	}
	r.cipher.XORKeyStream(r.buf[:], r.buf[:])
	r.off = 0
}

// Read fills p with keystream bytes. It never fails.
func (r *drbg) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if r.off == len(r.buf) {
			r.refill()
		}
		c := copy(p[n:], r.buf[r.off:])
		r.off += c
		n += c
	}
	return n, nil
}

func (r *drbg) bytes(n int) []byte {
	b := make([]byte, n)
	r.Read(b)
	return b
}

func (r *drbg) Uint64() uint64 {
	var b [8]byte
	r.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// Intn returns Uint64 mod n. The modulo bias is below 2^-50 for every
// n the analyzers use.
func (r *drbg) Intn(n int) int {
	return int(r.Uint64() % uint64(n))
}

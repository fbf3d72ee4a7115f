// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package sigil

import (
	"bytes"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

var ErrDigestStrSize = fmt.Errorf("digest string must be %v hex characters", Size*2)

// Digest is a Sigil-256 output.
type Digest [Size]byte

// Compare returns 1 if d > target, -1 if d < target and 0 if they are
// equal, comparing bytes lexicographically.
func (d Digest) Compare(target Digest) int {
	return bytes.Compare(d[:], target[:])
}

// Equal compares two digests in constant time.
func (d Digest) Equal(target Digest) bool {
	return subtle.ConstantTimeCompare(d[:], target[:]) == 1
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) Bytes() []byte {
	return d[:]
}

func (d *Digest) SetBytes(data []byte) {
	copy(d[:], data)
}

func (d Digest) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Digest) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n, err := NewDigestFromString(s)
	if err != nil {
		return err
	}
	*d = n
	return nil
}

func NewDigestFromString(s string) (Digest, error) {
	if len(s) != Size*2 {
		return Digest{}, ErrDigestStrSize
	}
	ret, err := hex.DecodeString(s)
	if err != nil {
		return Digest{}, err
	}
	var d Digest
	d.SetBytes(ret)
	return d, nil
}

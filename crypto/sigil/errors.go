// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package sigil

import (
	"fmt"
	"io"
)

// InvalidInputError is returned by SumAny when it is handed something
// that is not a byte sequence.
type InvalidInputError struct {
	Type string
}

// Error returns the error as a human-readable string and satisfies the
// error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("sigil: invalid input of type %s: expected a byte sequence", e.Type)
}

// AssertError identifies an error that indicates an internal code consistency
// issue and should be treated as a critical and unrecoverable error.
type AssertError string

// Error returns the assertion error as a human-readable string and satisfies
// the error interface.
func (e AssertError) Error() string {
	return "assertion failed: " + string(e)
}

// SumAny hashes any byte sequence: a []byte, a string, a Digest, any value
// with a Bytes() []byte method or an io.Reader, which is consumed until EOF.
// Every other value, including nil, yields an *InvalidInputError.
func SumAny(v any) (Digest, error) {
	switch x := v.(type) {
	case []byte:
		return Sum256(x), nil
	case string:
		return Sum256([]byte(x)), nil
	case Digest:
		return Sum256(x[:]), nil
	case interface{ Bytes() []byte }:
		return Sum256(x.Bytes()), nil
	case io.Reader:
		h := New()
		if _, err := io.Copy(h, x); err != nil {
			return Digest{}, fmt.Errorf("sigil: reading input: %w", err)
		}
		var d Digest
		copy(d[:], h.Sum(nil))
		return d, nil
	default:
		return Digest{}, &InvalidInputError{Type: fmt.Sprintf("%T", v)}
	}
}

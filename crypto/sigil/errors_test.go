// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package sigil

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumAny(t *testing.T) {
	want := Sum256([]byte("abc"))

	for _, v := range []any{[]byte("abc"), "abc", bytes.NewBufferString("abc"), strings.NewReader("abc")} {
		d, err := SumAny(v)
		assert.NoError(t, err)
		assert.Equal(t, want, d)
	}

	d, err := SumAny(want)
	assert.NoError(t, err)
	assert.Equal(t, Sum256(want[:]), d)

	d, err = SumAny([]byte(nil))
	assert.NoError(t, err)
	assert.Equal(t, Sum256(nil), d)

	for _, v := range []any{nil, 42, 3.14, []int{1, 2}} {
		_, err := SumAny(v)
		var invalid *InvalidInputError
		assert.True(t, errors.As(err, &invalid), "%T", v)
	}
}

func TestDigestString(t *testing.T) {
	d := Sum256([]byte("abc"))
	parsed, err := NewDigestFromString(d.String())
	assert.NoError(t, err)
	assert.Equal(t, d, parsed)

	_, err = NewDigestFromString("abcd")
	assert.ErrorIs(t, err, ErrDigestStrSize)

	js, err := d.MarshalJSON()
	assert.NoError(t, err)
	var d2 Digest
	assert.NoError(t, d2.UnmarshalJSON(js))
	assert.Equal(t, d, d2)

	assert.Equal(t, 0, d.Compare(d2))
	assert.True(t, d.Equal(d2))
	assert.NotEqual(t, 0, d.Compare(Sum256(nil)))
}

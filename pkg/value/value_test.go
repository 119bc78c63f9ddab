// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperdag/copperdag/pkg/cuerr"
)

func TestIntegerCoercionsSignAndZeroExtend(t *testing.T) {
	v := NewI8(-1)
	i64, err := v.AsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), i64)

	u := NewU8(255)
	u64, err := u.AsUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(255), u64)
}

func TestFloatToIntCoercionIsRejected(t *testing.T) {
	v := NewF64(3.5)
	_, err := v.AsInt32()
	assert.ErrorIs(t, err, cuerr.ErrFloatToInt)
}

func TestIntToFloatCoercionIsRejected(t *testing.T) {
	v := NewI32(3)
	_, err := v.AsFloat64()
	assert.ErrorIs(t, err, cuerr.ErrFloatToInt)
}

func TestKindMismatchIsReported(t *testing.T) {
	v := NewString("hello")
	_, err := v.AsBool()
	assert.ErrorIs(t, err, cuerr.ErrKindMismatch)
}

func TestStringRendersNaturalForm(t *testing.T) {
	assert.Equal(t, "42", NewI64(42).String())
	assert.Equal(t, "true", NewBool(true).String())
	assert.Equal(t, "hello", NewString("hello").String())
	assert.Equal(t, "unit", NewUnit().String())
}

func TestStringRendersCompoundKinds(t *testing.T) {
	seq := NewSeq([]Value{NewI32(1), NewI32(2)})
	assert.Equal(t, "[1, 2]", seq.String())

	m := NewMap([]MapEntry{{Key: NewString("a"), Val: NewI32(1)}})
	assert.Equal(t, "{a: 1}", m.String())

	some := NewOption(func() *Value { v := NewI32(5); return &v }())
	assert.Equal(t, "some(5)", some.String())

	none := NewOption(nil)
	assert.Equal(t, "none", none.String())
}

func TestAsSeqAndAsMapRoundTrip(t *testing.T) {
	items := []Value{NewI32(1), NewI32(2), NewI32(3)}
	v := NewSeq(items)
	got, err := v.AsSeq()
	require.NoError(t, err)
	assert.Equal(t, items, got)

	_, err = v.AsMap()
	assert.ErrorIs(t, err, cuerr.ErrKindMismatch)
}

func TestAsBytesRoundTrip(t *testing.T) {
	b := []byte{0xde, 0xad, 0xbe, 0xef}
	v := NewBytes(b)
	got, err := v.AsBytes()
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

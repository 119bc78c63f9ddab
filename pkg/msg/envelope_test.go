// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package msg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEnvelopeStartsEmpty(t *testing.T) {
	e := NewEnvelope("int")
	assert.False(t, e.HasPayload())
	_, ok := Get[int](e)
	assert.False(t, ok)
}

func TestSetAndGetRoundTrip(t *testing.T) {
	e := NewEnvelope("int")
	Set(e, 42)
	assert.True(t, e.HasPayload())
	v, ok := Get[int](e)
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestGetWrongTypeFails(t *testing.T) {
	e := NewEnvelope("int")
	Set(e, 42)
	_, ok := Get[string](e)
	assert.False(t, ok)
}

func TestClearEmptiesTheSlot(t *testing.T) {
	e := NewEnvelope("int")
	Set(e, 42)
	e.Clear()
	assert.False(t, e.HasPayload())
}

func TestCopyFromCopiesPayloadAndMetadata(t *testing.T) {
	src := NewEnvelope("int")
	Set(src, 7)
	src.Metadata.Seq = 3

	dst := NewEnvelope("int")
	dst.CopyFrom(src)

	v, ok := Get[int](dst)
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, uint64(3), dst.Metadata.Seq)
}

func TestCopyFromClearedSourceClearsDestination(t *testing.T) {
	src := NewEnvelope("int")
	src.Clear()

	dst := NewEnvelope("int")
	Set(dst, 1)
	dst.CopyFrom(src)

	assert.False(t, dst.HasPayload())
}

func TestBatchPayloadCarriesOrderedItems(t *testing.T) {
	e := NewEnvelope("int")
	Set(e, Batch{Items: []any{1, 2, 3}})
	b, ok := Get[Batch](e)
	assert.True(t, ok)
	assert.Equal(t, []any{1, 2, 3}, b.Items)
}

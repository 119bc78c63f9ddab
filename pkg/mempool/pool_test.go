// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mempool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolExhaustion(t *testing.T) {
	p := NewPool(64, 4, 4096)

	var handles []*Handle
	for i := 0; i < 4; i++ {
		h := p.Allocate()
		require.NotNilf(t, h, "allocation %d should succeed", i)
		handles = append(handles, h)
	}

	assert.Nil(t, p.Allocate(), "fifth allocation should fail, pool is exhausted")

	handles[0].Release()
	h := p.Allocate()
	assert.NotNil(t, h, "allocation after a release should succeed")
}

func TestPoolConservation(t *testing.T) {
	const capacity = 8
	p := NewPool(32, capacity, 4096)

	var handles []*Handle
	for i := 0; i < 5; i++ {
		handles = append(handles, p.Allocate())
	}
	assert.Equal(t, capacity, p.outstanding()+len(p.free))

	handles[0].Release()
	handles[1].Release()
	assert.Equal(t, capacity, p.outstanding()+len(p.free))

	for _, h := range handles[2:] {
		h.Release()
	}
	assert.Equal(t, capacity, len(p.free))
	assert.Equal(t, 0, p.outstanding())
}

func TestHandleCloneSharesRefcount(t *testing.T) {
	p := NewPool(16, 1, 4096)
	h := p.Allocate()
	require.NotNil(t, h)

	clone := h.Clone()
	h.Release()
	assert.Nil(t, p.Allocate(), "buffer must stay checked out while clone is alive")

	clone.Release()
	assert.NotNil(t, p.Allocate(), "buffer returns to the pool once the last clone releases")
}

func TestBufferAlignment(t *testing.T) {
	p := NewPool(128, 2, 4096)
	h := p.Allocate()
	require.NotNil(t, h)
	addr := uintptrOf(h.Bytes())
	assert.Equal(t, uintptr(0), addr%4096)
	assert.Len(t, h.Bytes(), 128)
}

// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mempool implements the Host Memory Pool: a bounded pool of
// fixed-size, page-aligned byte buffers handed out as reference-counted
// handles, the substrate for zero-copy messages and driver DMA targets.
//
// Capacity is fixed at construction: Allocate never blocks and the pool
// never grows past its initial buffer count, returning nil once every
// buffer is checked out rather than allocating more.
package mempool

import "sync"

// HostBuffer is a fixed-size, page-aligned byte region owned by a Pool.
// Buffers are never reallocated or resized after pool creation; callers
// are responsible for initializing bytes they read, since a returned
// buffer is not zeroed on reuse.
type HostBuffer struct {
	Bytes []byte
}

// Pool is the HostMemoryPool: capacity is set at construction and
// allocate() returns nil when exhausted, never blocking and never
// growing.
type Pool struct {
	bufSize   int
	alignment int
	capacity  int

	mu   sync.Mutex
	free []*HostBuffer
	outs int
}

// NewPool pre-allocates capacity buffers of bufSize bytes, aligned to
// alignment (typically the host page size), and places them on the free
// list.
func NewPool(bufSize, capacity, alignment int) *Pool {
	p := &Pool{
		bufSize:   bufSize,
		alignment: alignment,
		capacity:  capacity,
		free:      make([]*HostBuffer, 0, capacity),
	}
	for i := 0; i < capacity; i++ {
		p.free = append(p.free, p.newAlignedBuffer())
	}
	return p
}

func (p *Pool) newAlignedBuffer() *HostBuffer {
	// Over-allocate by alignment so a page-aligned sub-slice can be taken
	// from within it regardless of what the Go allocator itself returns.
	raw := make([]byte, p.bufSize+p.alignment)
	off := 0
	if p.alignment > 1 {
		addr := uintptrOf(raw)
		if rem := addr % uintptr(p.alignment); rem != 0 {
			off = int(uintptr(p.alignment) - rem)
		}
	}
	return &HostBuffer{Bytes: raw[off : off+p.bufSize : off+p.bufSize]}
}

// Capacity returns the fixed number of buffers the pool was constructed
// with.
func (p *Pool) Capacity() int { return p.capacity }

// Allocate pops a free buffer and returns a reference-counted Handle, or
// nil if the pool is exhausted. It never blocks and never grows the pool.
func (p *Pool) Allocate() *Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.free)
	if n == 0 {
		return nil
	}
	buf := p.free[n-1]
	p.free = p.free[:n-1]
	p.outs++
	return &Handle{pool: p, buf: buf, refs: &refCount{count: 1}}
}

// outstanding reports the number of live handles, for the pool-conservation
// invariant check in tests: outstanding + len(free) == capacity always.
func (p *Pool) outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outs
}

func (p *Pool) release(buf *HostBuffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outs--
	p.free = append(p.free, buf)
}

// refCount is a tiny, unexported ref counter so Handle.Clone/Release don't
// need a separate allocation per handle.
type refCount struct {
	mu    sync.Mutex
	count int
}

// Handle is a reference-counted reference to a pooled HostBuffer. When the
// last handle drops, the buffer returns to the pool's free list. Handles
// make a driver's ownership of a buffer it has handed to the kernel (e.g.
// a V4L2 UserPtr) explicit: the handle's ref-count must outlive kernel
// possession.
type Handle struct {
	pool *Pool
	buf  *HostBuffer
	refs *refCount
}

// Bytes returns the handle's backing buffer.
func (h *Handle) Bytes() []byte { return h.buf.Bytes }

// Clone increments the reference count and returns a new Handle sharing
// the same buffer.
func (h *Handle) Clone() *Handle {
	h.refs.mu.Lock()
	h.refs.count++
	h.refs.mu.Unlock()
	return &Handle{pool: h.pool, buf: h.buf, refs: h.refs}
}

// Release decrements the reference count, returning the buffer to the
// pool's free list on last-drop. Calling Release more times than there are
// outstanding references is a caller bug and is ignored past zero.
func (h *Handle) Release() {
	h.refs.mu.Lock()
	if h.refs.count == 0 {
		h.refs.mu.Unlock()
		return
	}
	h.refs.count--
	last := h.refs.count == 0
	h.refs.mu.Unlock()
	if last {
		h.pool.release(h.buf)
	}
}

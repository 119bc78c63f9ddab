// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package msg implements CuMsg<P>, the typed carrier pairing an optional
// payload with provenance metadata, and the type-erased Envelope the
// scheduler stores one-per-edge.
//
// Tasks are registered dynamically by a type-string (see internal/runtime),
// so heterogeneous per-node payload types can't be expressed as a single
// generic tuple at the scheduler layer. Instead the scheduler owns plain
// *Envelope slots and task implementations use the generic Get/Set helpers
// below to recover their concrete payload type — the "array of type-erased
// handles plus a per-task decode step" variant.
package msg

import "github.com/copperdag/copperdag/pkg/clock"

// Status reports whether the producing task's process hook succeeded.
type Status int

const (
	StatusOk Status = iota
	StatusError
)

// Metadata is the provenance carried alongside every payload.
type Metadata struct {
	Tov    clock.Time
	Seq    uint64
	Status Status
}

// Envelope is the per-edge slot the scheduler allocates once at build time
// and reuses across every tick. A cleared payload (HasPayload() == false)
// is a legal sentinel meaning "no data this tick."
type Envelope struct {
	MsgType  string
	payload  any
	hasValue bool
	Metadata Metadata
}

// NewEnvelope allocates a slot typed (by convention, not by the Go type
// system) to msgType — the `msg` string from the owning Connection.
func NewEnvelope(msgType string) *Envelope {
	return &Envelope{MsgType: msgType}
}

// HasPayload reports whether the slot holds data for the current tick.
func (e *Envelope) HasPayload() bool {
	return e.hasValue
}

// Clear empties the slot. Sources must call this (directly, or via Set)
// exactly once per tick for every outgoing edge.
func (e *Envelope) Clear() {
	e.payload = nil
	e.hasValue = false
}

// Get recovers the envelope's payload as type P. ok is false both when the
// slot is empty and when the stored payload isn't a P — callers that need
// to distinguish the two cases should check HasPayload first.
func Get[P any](e *Envelope) (P, bool) {
	var zero P
	if e == nil || !e.hasValue {
		return zero, false
	}
	p, ok := e.payload.(P)
	if !ok {
		return zero, false
	}
	return p, true
}

// Set stores a typed payload into the envelope.
func Set[P any](e *Envelope, p P) {
	e.payload = p
	e.hasValue = true
}

// CopyFrom replaces e's payload and metadata with src's. Used by the
// scheduler to fan a node's single produced value out to every envelope
// allocated for that node's outgoing edges.
func (e *Envelope) CopyFrom(src *Envelope) {
	e.payload = src.payload
	e.hasValue = src.hasValue
	e.Metadata = src.Metadata
}

// Batch is the payload type of an edge declared with `batch: n`: the
// ordered window of n accumulated messages for that edge, oldest first.
// Downstream tasks reading a batched edge call Get[Batch] instead of
// Get[P] and type-assert each Items entry back to P themselves.
type Batch struct {
	Items []any
}

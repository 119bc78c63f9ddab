// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package task defines the three task shapes (source, transform, sink),
// their lifecycle hooks, and the freezability contract for state snapshots.
//
// Task shapes are a closed variant set, not an open hierarchy: the
// scheduler dispatches on them at build time via a type switch against
// these three interfaces, never through a shared polymorphic base.
package task

import (
	"github.com/copperdag/copperdag/pkg/clock"
	"github.com/copperdag/copperdag/pkg/config"
	"github.com/copperdag/copperdag/pkg/msg"
)

// Lifecycle is embedded by every task shape. Start/Stop bracket a run;
// Preprocess/Postprocess bracket every tick's Process call.
type Lifecycle interface {
	Start(clk clock.Clock) error
	Stop(clk clock.Clock) error
	Preprocess(clk clock.Clock) error
	Postprocess(clk clock.Clock) error
}

// Source has zero inputs and one output. It must either set or clear its
// output payload on every call to Process.
type Source interface {
	Lifecycle
	Process(clk clock.Clock, out *msg.Envelope) error
}

// Transform has one-or-more inputs and one output. in is ordered by
// edge-id ascending, matching the insertion-order contract of the graph.
type Transform interface {
	Lifecycle
	Process(clk clock.Clock, in []*msg.Envelope, out *msg.Envelope) error
}

// Sink has one-or-more inputs and no output.
type Sink interface {
	Lifecycle
	Process(clk clock.Clock, in []*msg.Envelope) error
}

// Freezable is implemented by tasks whose in-memory state is
// snapshot-serializable. Stateless tasks can embed StatelessFreeze to
// satisfy it trivially. The runtime may request a freeze between ticks; it
// never freezes mid-process.
type Freezable interface {
	Freeze() ([]byte, bool)
}

// StatelessFreeze is embedded by tasks with no state worth snapshotting.
type StatelessFreeze struct{}

func (StatelessFreeze) Freeze() ([]byte, bool) { return nil, true }

// Base provides no-op Lifecycle hooks so task authors only override what
// they need instead of writing boilerplate for every hook.
type Base struct{}

func (Base) Start(clock.Clock) error      { return nil }
func (Base) Stop(clock.Clock) error       { return nil }
func (Base) Preprocess(clock.Clock) error { return nil }
func (Base) Postprocess(clock.Clock) error { return nil }

// Factory constructs a task instance from its frozen ComponentConfig. It is
// the only hook allowed to fail the whole runtime build.
type Factory func(cfg *config.ComponentConfig) (any, error)

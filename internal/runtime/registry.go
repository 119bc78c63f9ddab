// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package runtime

import (
	"fmt"

	"github.com/copperdag/copperdag/pkg/config"
	"github.com/copperdag/copperdag/pkg/task"
)

// MonitorFactory constructs a Monitor from its frozen ComponentConfig,
// mirroring task.Factory.
type MonitorFactory func(cfg *config.ComponentConfig) (Monitor, error)

// Registry maps the type strings used in a graph document to the
// constructors that build task and monitor instances. A binary wires up
// its own Registry in main before building the runtime, resolving each
// type string to a concrete constructor at process start.
type Registry struct {
	tasks    map[string]task.Factory
	monitors map[string]MonitorFactory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks:    make(map[string]task.Factory),
		monitors: make(map[string]MonitorFactory),
	}
}

// RegisterTask associates a type string (the `type` field of a graph
// document's task entry) with a constructor.
func (r *Registry) RegisterTask(typ string, f task.Factory) {
	r.tasks[typ] = f
}

// RegisterMonitor associates a type string (the `type` field of the
// document's monitor singleton) with a constructor.
func (r *Registry) RegisterMonitor(typ string, f MonitorFactory) {
	r.monitors[typ] = f
}

func (r *Registry) buildTask(typ string, cfg *config.ComponentConfig) (any, error) {
	f, ok := r.tasks[typ]
	if !ok {
		return nil, fmt.Errorf("no task registered for type %q", typ)
	}
	return f(cfg)
}

func (r *Registry) buildMonitor(typ string, cfg *config.ComponentConfig) (Monitor, error) {
	f, ok := r.monitors[typ]
	if !ok {
		return nil, fmt.Errorf("no monitor registered for type %q", typ)
	}
	return f(cfg)
}

// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics exposes optional Prometheus instrumentation for the
// scheduler and memory pool. No core component requires it — the runtime
// works identically with metrics disabled, mirroring the Monitor being an
// optional top-level singleton rather than a mandatory dependency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Set bundles the collectors a Runtime reports into. Construct one with
// NewSet and register it with a prometheus.Registerer, or leave it nil to
// run without metrics.
type Set struct {
	TickDuration  prometheus.Histogram
	PoolExhausted prometheus.Counter
	TaskErrors    *prometheus.CounterVec
}

// NewSet creates a fresh, unregistered Set.
func NewSet() *Set {
	return &Set{
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "copperdag",
			Name:      "tick_duration_seconds",
			Help:      "Wall-clock duration of one scheduler tick (one sweep of the DAG).",
			Buckets:   prometheus.DefBuckets,
		}),
		PoolExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "copperdag",
			Name:      "pool_exhausted_total",
			Help:      "Number of times HostMemoryPool.Allocate returned nil.",
		}),
		TaskErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "copperdag",
			Name:      "task_errors_total",
			Help:      "Per-tick task errors routed to the Monitor, by node id and error kind.",
		}, []string{"node_id", "kind"}),
	}
}

// MustRegister registers every collector in the set against reg.
func (s *Set) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(s.TickDuration, s.PoolExhausted, s.TaskErrors)
}

// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package runtime builds a validated Graph into a runnable instance: task
// registry resolution, per-edge message slot allocation, topological
// instantiation, and the tick-sweep scheduler itself (both a direct
// run-to-completion mode and a gocron-driven cadence mode).
package runtime

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/copperdag/copperdag/internal/graph"
	"github.com/copperdag/copperdag/pkg/clock"
	"github.com/copperdag/copperdag/pkg/cuerr"
	"github.com/copperdag/copperdag/pkg/mempool"
	"github.com/copperdag/copperdag/pkg/metrics"
	"github.com/copperdag/copperdag/pkg/msg"
	"github.com/copperdag/copperdag/pkg/rlog"
	"github.com/copperdag/copperdag/pkg/task"
)

// Runtime is a built, ready-to-run instance of a Graph: every task
// constructed, every edge slot allocated, topological order fixed.
type Runtime struct {
	g       *graph.Graph
	clk     clock.Clock
	pool    *mempool.Pool
	reg     *Registry
	monitor Monitor

	order    []graph.NodeID
	tasks    []any             // index = NodeID
	outs     []*msg.Envelope   // index = NodeID; nil for sink nodes
	edges    []*msg.Envelope   // index = EdgeID
	incoming [][]*msg.Envelope // index = NodeID; precomputed at Build, ordered by edge-id ascending

	batchBuf [][]any // index = EdgeID; nil unless that edge declares batch

	byteHandles []*mempool.Handle // index = EdgeID; the pool buffer currently backing a []byte edge, if any

	logs       *logSink
	logBufSize int
	metrics    *metrics.Set

	tick uint64
	stop atomic.Bool
}

// Option configures optional Runtime features at Build time.
type Option func(*Runtime)

// WithMetrics attaches a metrics.Set the scheduler updates every tick.
func WithMetrics(set *metrics.Set) Option {
	return func(r *Runtime) { r.metrics = set }
}

// WithLogBuffer overrides the default log-sink channel capacity (256).
func WithLogBuffer(n int) Option {
	return func(r *Runtime) { r.logBufSize = n }
}

// Build performs the build phase: topologically sort the graph, allocate
// one envelope per edge, then instantiate every task's New in topological
// order. Any construction failure aborts the build — nothing has been
// Started yet, so nothing needs Stop.
func Build(g *graph.Graph, reg *Registry, clk clock.Clock, pool *mempool.Pool, opts ...Option) (*Runtime, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	r := &Runtime{g: g, clk: clk, pool: pool, reg: reg, order: order, logBufSize: 256}
	for _, opt := range opts {
		opt(r)
	}

	r.monitor = DefaultMonitor{}
	if g.Monitor != nil {
		m, err := reg.buildMonitor(g.Monitor.Type, g.Monitor.Config)
		if err != nil {
			return nil, &cuerr.TaskConstructionError{NodeID: "<monitor>", Cause: err}
		}
		r.monitor = m
	}

	r.edges = make([]*msg.Envelope, g.EdgeCount())
	r.batchBuf = make([][]any, g.EdgeCount())
	r.byteHandles = make([]*mempool.Handle, g.EdgeCount())
	for i := 0; i < g.EdgeCount(); i++ {
		c := g.Connection(graph.EdgeID(i))
		r.edges[i] = msg.NewEnvelope(c.Msg)
	}

	r.tasks = make([]any, g.NodeCount())
	r.outs = make([]*msg.Envelope, g.NodeCount())
	r.incoming = make([][]*msg.Envelope, g.NodeCount())
	for id := 0; id < g.NodeCount(); id++ {
		dstEdges := g.GetDstEdges(graph.NodeID(id))
		ins := make([]*msg.Envelope, len(dstEdges))
		for i, e := range dstEdges {
			ins[i] = r.edges[e]
		}
		r.incoming[id] = ins
	}

	for _, id := range r.order {
		n := g.Node(id)
		if n.Config != nil {
			n.Config.Freeze()
		}
		inst, err := reg.buildTask(n.Type, n.Config)
		if err != nil {
			return nil, &cuerr.TaskConstructionError{NodeID: n.DocID, Cause: err}
		}
		r.tasks[id] = inst
		if !g.IsSink(id) {
			if outType, err := g.InferOutputType(id); err == nil {
				r.outs[id] = msg.NewEnvelope(outType)
			}
		}
	}

	if g.Logging == nil || g.Logging.EnableTaskLogging {
		r.logs = newLogSink(r.logBufSize)
	}

	return r, nil
}

// Start calls Start on every task in topological order. A failure aborts
// the same way a construction failure does: no task has begun ticking, so
// there's nothing to Stop yet.
func (r *Runtime) Start() error {
	for _, id := range r.order {
		if lc, ok := r.tasks[id].(task.Lifecycle); ok {
			if err := lc.Start(r.clk); err != nil {
				return &cuerr.TaskConstructionError{NodeID: r.g.Node(id).DocID, Cause: err}
			}
		}
	}
	return nil
}

// Stop calls Stop on every task in reverse topological order and drains
// the log sink. Individual Stop failures are logged, not returned,
// except the first one, which is returned after every task has had its
// chance to shut down.
func (r *Runtime) Stop() error {
	var firstErr error
	for i := len(r.order) - 1; i >= 0; i-- {
		id := r.order[i]
		if lc, ok := r.tasks[id].(task.Lifecycle); ok {
			if err := lc.Stop(r.clk); err != nil {
				rlog.Warnf("stop failed for node %q: %v", r.g.Node(id).DocID, err)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}
	if r.logs != nil {
		r.logs.close()
	}
	return firstErr
}

// Pool returns the host memory pool this runtime was built with, so a
// collaborator outside the task registry closures (diagnostics, tests)
// can inspect outstanding allocations without threading it through
// separately.
func (r *Runtime) Pool() *mempool.Pool { return r.pool }

// FreezeAll captures a snapshot for every task implementing task.Freezable.
// Call it only between sweeps — it never interrupts an in-flight one, so
// the caller must not invoke it concurrently with Run/RunCadenced.
func (r *Runtime) FreezeAll() map[string][]byte {
	snaps := make(map[string][]byte)
	for _, id := range r.order {
		f, ok := r.tasks[id].(task.Freezable)
		if !ok {
			continue
		}
		if data, ok := f.Freeze(); ok {
			snaps[r.g.Node(id).DocID] = data
		}
	}
	return snaps
}

// RunOneIteration performs exactly one sweep of the DAG in topological
// order. A node whose error the monitor classifies Fatal stops the sweep
// immediately and marks the runtime stopped.
func (r *Runtime) RunOneIteration() {
	r.tick++
	start := r.clk.Now()

	for _, id := range r.order {
		r.stepNode(id)
		if r.stop.Load() {
			break
		}
	}

	if r.metrics != nil {
		r.metrics.TickDuration.Observe(r.clk.Now().Sub(start).Seconds())
	}
}

// Run sweeps ticks until ctx is cancelled or a fatal error stops the
// runtime. This is direct mode: one sweep per loop iteration, back to
// back, with no imposed cadence.
func (r *Runtime) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		r.RunOneIteration()
		if r.stop.Load() {
			return fmt.Errorf("runtime stopped: monitor classified an error as fatal")
		}
	}
}

// RunCadenced runs the sweep on a fixed period via gocron instead of back
// to back, for graphs whose tasks expect wall-clock-paced ticks rather
// than free-running ones.
func (r *Runtime) RunCadenced(ctx context.Context, period time.Duration) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return &cuerr.IoError{Cause: err}
	}

	stopped := make(chan error, 1)
	_, err = s.NewJob(
		gocron.DurationJob(period),
		gocron.NewTask(func() {
			r.RunOneIteration()
			if r.stop.Load() {
				select {
				case stopped <- fmt.Errorf("runtime stopped: monitor classified an error as fatal"):
				default:
				}
			}
		}),
	)
	if err != nil {
		return &cuerr.IoError{Cause: err}
	}

	s.Start()
	defer func() {
		if shutErr := s.Shutdown(); shutErr != nil {
			rlog.Warnf("gocron scheduler shutdown: %v", shutErr)
		}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-stopped:
		return err
	}
}

func (r *Runtime) stepNode(id graph.NodeID) {
	inst := r.tasks[id]
	docID := r.g.Node(id).DocID
	lc, hasLifecycle := inst.(task.Lifecycle)

	if hasLifecycle {
		if err := lc.Preprocess(r.clk); err != nil {
			r.clearOutgoing(id)
			r.handleTickError(docID, err)
			return
		}
	}

	procErr := r.safeProcess(id, inst)
	if procErr != nil {
		r.clearOutgoing(id)
	} else {
		r.stampTov(id)
		r.fanOut(id)
	}

	var postErr error
	if hasLifecycle {
		postErr = lc.Postprocess(r.clk)
	}

	if procErr != nil {
		r.handleTickError(docID, procErr)
		return
	}
	if postErr != nil {
		r.handleTickError(docID, postErr)
	}
}

// safeProcess recovers a panicking Process call and turns it into an
// ordinary per-tick error instead of taking the whole process down: a
// single misbehaving task should degrade, not crash every other node's
// sweep along with it.
func (r *Runtime) safeProcess(id graph.NodeID, inst any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("node %q panicked: %v", r.g.Node(id).DocID, rec)
		}
	}()
	return r.process(id, inst)
}

func (r *Runtime) process(id graph.NodeID, inst any) error {
	switch t := inst.(type) {
	case task.Source:
		return t.Process(r.clk, r.outs[id])
	case task.Transform:
		return t.Process(r.clk, r.gatherIncoming(id), r.outs[id])
	case task.Sink:
		return t.Process(r.clk, r.gatherIncoming(id))
	default:
		return fmt.Errorf("node %q: instance implements none of task.Source/Transform/Sink", r.g.Node(id).DocID)
	}
}

// gatherIncoming returns the node's incoming envelopes in edge-id ascending
// order. The slice itself is precomputed once at Build — only the
// envelopes it points to change from tick to tick — so a transform or sink
// costs no allocation here on the hot path.
func (r *Runtime) gatherIncoming(id graph.NodeID) []*msg.Envelope {
	return r.incoming[id]
}

// stampTov timestamps a node's freshly produced output with the tick's
// time-of-validity. Tasks set Seq themselves when they track one, but the
// clock reading belongs to the scheduler, not the task — stamping it here
// means every produced payload carries a Tov regardless of whether its
// task bothers to.
func (r *Runtime) stampTov(id graph.NodeID) {
	out := r.outs[id]
	if out != nil && out.HasPayload() {
		out.Metadata.Tov = r.clk.Now()
	}
}

// fanOut copies a node's single produced value into every outgoing edge's
// own slot (batching it first if that edge declares one), then hands
// stored edges to the log sink.
func (r *Runtime) fanOut(id graph.NodeID) {
	out := r.outs[id]
	if out == nil {
		return
	}
	for _, e := range r.g.GetSrcEdges(id) {
		conn := r.g.Connection(e)
		slot := r.edges[e]
		if conn.Batch != nil {
			r.accumulateBatch(e, *conn.Batch, out, slot)
		} else {
			slot.CopyFrom(out)
			r.poolBackBytes(e, slot)
		}
		if conn.StoreOrDefault() && r.logs != nil && slot.HasPayload() {
			r.logs.submit(e, slot.Metadata)
		}
	}
}

// accumulateBatch gathers n successive produced values for edge e before
// exposing them downstream as a single msg.Batch; short of a full window
// the edge reads as empty for that tick.
func (r *Runtime) accumulateBatch(e graph.EdgeID, n uint32, out, slot *msg.Envelope) {
	if !out.HasPayload() {
		slot.Clear()
		return
	}
	payload, _ := msg.Get[any](out)
	r.batchBuf[e] = append(r.batchBuf[e], payload)
	if uint32(len(r.batchBuf[e])) < n {
		slot.Clear()
		return
	}
	msg.Set(slot, msg.Batch{Items: r.batchBuf[e]})
	slot.Metadata = out.Metadata
	r.batchBuf[e] = nil
}

func (r *Runtime) clearOutgoing(id graph.NodeID) {
	if r.outs[id] != nil {
		r.outs[id].Clear()
	}
	for _, e := range r.g.GetSrcEdges(id) {
		r.releaseByteHandle(e)
		r.edges[e].Clear()
	}
}

// poolBackBytes re-homes a []byte payload already copied into slot onto a
// Host Memory Pool buffer, so byte-carrying edges (e.g. the NATS example
// transport) flow through the pool instead of a bare per-tick heap
// allocation. The edge's previous handle, if any, is released first since
// CopyFrom already replaced its payload. Exhaustion and an oversized
// payload both leave the original bytes in slot untouched — pool-backing
// is a data-path optimization, never a correctness requirement.
func (r *Runtime) poolBackBytes(e graph.EdgeID, slot *msg.Envelope) {
	data, ok := msg.Get[[]byte](slot)
	if !ok {
		return
	}
	r.releaseByteHandle(e)

	h := r.pool.Allocate()
	if h == nil {
		if r.metrics != nil {
			r.metrics.PoolExhausted.Inc()
		}
		return
	}
	buf := h.Bytes()
	if len(data) > len(buf) {
		h.Release()
		return
	}
	n := copy(buf, data)
	r.byteHandles[e] = h
	msg.Set(slot, buf[:n])
}

func (r *Runtime) releaseByteHandle(e graph.EdgeID) {
	if r.byteHandles[e] != nil {
		r.byteHandles[e].Release()
		r.byteHandles[e] = nil
	}
}

func (r *Runtime) handleTickError(docID string, cause error) {
	wrapped := &cuerr.TaskExecutionError{NodeID: docID, Tick: r.tick, Cause: cause}
	cls := r.monitor.Classify(wrapped)
	if r.metrics != nil {
		r.metrics.TaskErrors.WithLabelValues(docID, errorKind(cause)).Inc()
	}
	rlog.Warnf("node %q: %v (%s)", docID, cause, cls)
	if cls == Fatal {
		r.stop.Store(true)
	}
}

func errorKind(err error) string {
	switch err.(type) {
	case *cuerr.ResourceExhaustionError:
		return "resource_exhaustion"
	case *cuerr.TimeoutError:
		return "timeout"
	case *cuerr.IoError:
		return "io"
	default:
		return "task_execution"
	}
}

// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package graph implements the Graph Model: a directed graph of Nodes
// (tasks) and Connections (typed edges), plus top-level Monitor and
// Logging settings. Node and edge ids are dense, monotonically assigned
// from 0 in insertion order — that ordering is itself a contract (edge-id
// ascending is how a multi-input task's arguments are addressed) and must
// be preserved exactly through textual round-trips.
package graph

import (
	"fmt"

	"github.com/copperdag/copperdag/pkg/config"
	"github.com/copperdag/copperdag/pkg/cuerr"
)

// NodeID indexes Nodes; dense and monotonically assigned from 0.
type NodeID int

// EdgeID indexes Connections; dense and monotonically assigned from 0.
type EdgeID int

// Node is a task declaration: its document id, its implementation type
// string (resolved by the code generator / task registry, not at graph
// construction time), and its frozen construction config.
type Node struct {
	DocID  string
	Type   string
	Config *config.ComponentConfig
}

// Connection is a typed edge between two nodes. Batch, when set, means the
// downstream task receives an ordered window of n messages per tick
// instead of one. A missing Store defaults to true — "do not invert this
// default."
type Connection struct {
	Src   NodeID
	Dst   NodeID
	Msg   string
	Batch *uint32
	Store *bool
}

// StoreOrDefault returns whether this edge should be logged, applying the
// "missing means log" default.
func (c Connection) StoreOrDefault() bool {
	if c.Store == nil {
		return true
	}
	return *c.Store
}

// MonitorConfig is the optional top-level monitor singleton.
type MonitorConfig struct {
	Type   string
	Config *config.ComponentConfig
}

// LoggingConfig is the optional top-level logging singleton.
type LoggingConfig struct {
	SlabSizeMiB       *uint64
	SectionSizeMiB    *uint64
	EnableTaskLogging bool
}

// Validate enforces section_size_mib <= slab_size_mib whenever both are
// set.
func (l LoggingConfig) Validate() error {
	if l.SlabSizeMiB != nil && l.SectionSizeMiB != nil && *l.SectionSizeMiB > *l.SlabSizeMiB {
		return &cuerr.ConfigValidationError{Reason: fmt.Sprintf(
			"section_size_mib (%d) cannot be larger than slab_size_mib (%d)",
			*l.SectionSizeMiB, *l.SlabSizeMiB,
		)}
	}
	return nil
}

// Graph is the programmatic representation of the configuration graph.
type Graph struct {
	nodes       []Node
	connections []Connection
	srcEdges    map[NodeID][]EdgeID
	dstEdges    map[NodeID][]EdgeID
	idByDoc     map[string]NodeID

	Monitor *MonitorConfig
	Logging *LoggingConfig
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		srcEdges: make(map[NodeID][]EdgeID),
		dstEdges: make(map[NodeID][]EdgeID),
		idByDoc:  make(map[string]NodeID),
	}
}

// AddNode appends a node and returns its newly assigned, dense NodeID.
func (g *Graph) AddNode(n Node) (NodeID, error) {
	if _, dup := g.idByDoc[n.DocID]; dup {
		return 0, &cuerr.ConfigValidationError{Reason: fmt.Sprintf("duplicate node id %q", n.DocID)}
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	g.idByDoc[n.DocID] = id
	return id, nil
}

// NodeIDByDocID resolves a node's textual id to its dense NodeID.
func (g *Graph) NodeIDByDocID(docID string) (NodeID, bool) {
	id, ok := g.idByDoc[docID]
	return id, ok
}

// Connect appends an edge and returns its newly assigned, dense EdgeID.
// Edge-id assignment order is load-bearing: it is how a multi-input task's
// process arguments are ordered.
func (g *Graph) Connect(src, dst NodeID, msgType string, batch *uint32, store *bool) (EdgeID, error) {
	if int(src) < 0 || int(src) >= len(g.nodes) {
		return 0, &cuerr.ConfigValidationError{Reason: fmt.Sprintf("connection references unknown source node %d", src)}
	}
	if int(dst) < 0 || int(dst) >= len(g.nodes) {
		return 0, &cuerr.ConfigValidationError{Reason: fmt.Sprintf("connection references unknown destination node %d", dst)}
	}
	id := EdgeID(len(g.connections))
	g.connections = append(g.connections, Connection{Src: src, Dst: dst, Msg: msgType, Batch: batch, Store: store})
	g.srcEdges[src] = append(g.srcEdges[src], id)
	g.dstEdges[dst] = append(g.dstEdges[dst], id)
	return id, nil
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of connections in the graph.
func (g *Graph) EdgeCount() int { return len(g.connections) }

// Node returns the node at id.
func (g *Graph) Node(id NodeID) Node { return g.nodes[id] }

// Connection returns the connection at id.
func (g *Graph) Connection(id EdgeID) Connection { return g.connections[id] }

// GetSrcEdges returns the edge-ids where id is the source, in the order
// those connections were declared — independent of node declaration order.
func (g *Graph) GetSrcEdges(id NodeID) []EdgeID {
	return g.srcEdges[id]
}

// GetDstEdges returns the edge-ids where id is the destination, in
// declaration order.
func (g *Graph) GetDstEdges(id NodeID) []EdgeID {
	return g.dstEdges[id]
}

// InferOutputType returns the msg type of the node's first outgoing edge.
// A source with no outgoing edge is a configuration error returned to the
// caller, not a runtime panic — node type strings resolve dynamically at
// build time here, so there is no compiler to catch this earlier.
func (g *Graph) InferOutputType(id NodeID) (string, error) {
	edges := g.GetSrcEdges(id)
	if len(edges) == 0 {
		return "", &cuerr.ConfigValidationError{Reason: fmt.Sprintf("node %q has no outgoing edge", g.nodes[id].DocID)}
	}
	return g.connections[edges[0]].Msg, nil
}

// InferInputType returns the msg type of the node's first incoming edge.
func (g *Graph) InferInputType(id NodeID) (string, error) {
	edges := g.GetDstEdges(id)
	if len(edges) == 0 {
		return "", &cuerr.ConfigValidationError{Reason: fmt.Sprintf("node %q has no incoming edge", g.nodes[id].DocID)}
	}
	return g.connections[edges[0]].Msg, nil
}

// IsSource reports whether id has no incoming edges.
func (g *Graph) IsSource(id NodeID) bool { return len(g.dstEdges[id]) == 0 }

// IsSink reports whether id has no outgoing edges.
func (g *Graph) IsSink(id NodeID) bool { return len(g.srcEdges[id]) == 0 }

// Validate checks node-id uniqueness (guaranteed by AddNode already),
// edge endpoint existence (guaranteed by Connect already), acyclicity, and
// the logging-size invariant. It is meant to be called once after a graph
// has been fully built (e.g. by a deserializer) before it's handed to the
// runtime builder.
func (g *Graph) Validate() error {
	if err := g.validateAcyclic(); err != nil {
		return err
	}
	if g.Logging != nil {
		if err := g.Logging.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) validateAcyclic() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, len(g.nodes))
	var visit func(NodeID) error
	visit = func(n NodeID) error {
		color[n] = gray
		for _, e := range g.srcEdges[n] {
			dst := g.connections[e].Dst
			switch color[dst] {
			case gray:
				return &cuerr.ConfigValidationError{Reason: fmt.Sprintf(
					"graph contains a cycle through node %q", g.nodes[dst].DocID)}
			case white:
				if err := visit(dst); err != nil {
					return err
				}
			}
		}
		color[n] = black
		return nil
	}
	for id := range g.nodes {
		if color[id] == white {
			if err := visit(NodeID(id)); err != nil {
				return err
			}
		}
	}
	return nil
}

// TopologicalOrder returns node ids in topological order, tying off by
// node-id ascending so that build order is deterministic across runs.
func (g *Graph) TopologicalOrder() ([]NodeID, error) {
	indegree := make([]int, len(g.nodes))
	for _, c := range g.connections {
		indegree[c.Dst]++
	}

	// A small ascending priority queue keyed on NodeID keeps the tie-break
	// deterministic without pulling in container/heap for four lines of
	// linear scan logic.
	ready := make([]NodeID, 0, len(g.nodes))
	for id, deg := range indegree {
		if deg == 0 {
			ready = append(ready, NodeID(id))
		}
	}

	order := make([]NodeID, 0, len(g.nodes))
	for len(ready) > 0 {
		minIdx := 0
		for i, id := range ready {
			if id < ready[minIdx] {
				minIdx = i
			}
		}
		n := ready[minIdx]
		ready = append(ready[:minIdx], ready[minIdx+1:]...)
		order = append(order, n)

		for _, e := range g.srcEdges[n] {
			dst := g.connections[e].Dst
			indegree[dst]--
			if indegree[dst] == 0 {
				ready = append(ready, dst)
			}
		}
	}

	if len(order) != len(g.nodes) {
		return nil, &cuerr.ConfigValidationError{Reason: "graph contains a cycle"}
	}
	return order, nil
}

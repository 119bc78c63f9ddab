// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustU64(v uint64) *uint64 { return &v }

func TestTwoNodeRoundTrip(t *testing.T) {
	g := New()
	n1, err := g.AddNode(Node{DocID: "test1", Type: "pkg::P1"})
	require.NoError(t, err)
	n2, err := g.AddNode(Node{DocID: "test2", Type: "pkg::P2"})
	require.NoError(t, err)
	_, err = g.Connect(n1, n2, "pkg::M", nil, nil)
	require.NoError(t, err)

	doc := g.ToDocument()
	rebuilt, err := FromDocument(doc)
	require.NoError(t, err)

	assert.Equal(t, g.NodeCount(), rebuilt.NodeCount())
	assert.Equal(t, g.EdgeCount(), rebuilt.EdgeCount())
	assert.Equal(t, 2, rebuilt.NodeCount())
	c := rebuilt.Connection(0)
	assert.Equal(t, NodeID(0), c.Src)
	assert.Equal(t, NodeID(1), c.Dst)
}

func TestEdgeIDVsNodeDeclarationOrder(t *testing.T) {
	// src1 and src2 are declared before the connections are, but the
	// connection to src2 is declared first: edge-id must follow
	// connection-declaration order, not node-declaration order.
	doc := &Document{
		Tasks: []NodeDoc{
			{ID: "src1", Type: "a"},
			{ID: "src2", Type: "b"},
			{ID: "sink", Type: "c"},
		},
		Cnx: []CnxDoc{
			{Src: "src2", Dst: "sink", Msg: "msg1"},
			{Src: "src1", Dst: "sink", Msg: "msg2"},
		},
	}

	g, err := FromDocument(doc)
	require.NoError(t, err)

	src1, _ := g.NodeIDByDocID("src1")
	src2, _ := g.NodeIDByDocID("src2")
	assert.Equal(t, NodeID(0), src1)
	assert.Equal(t, NodeID(1), src2)

	assert.Equal(t, []EdgeID{1}, g.GetSrcEdges(src1))
	assert.Equal(t, []EdgeID{0}, g.GetSrcEdges(src2))
}

func TestLoggingSizeRule(t *testing.T) {
	_, err := FromDocument(&Document{
		Logging: &LoggingDoc{SlabSizeMiB: mustU64(100), SectionSizeMiB: mustU64(1024)},
	})
	assert.Error(t, err)

	g, err := FromDocument(&Document{
		Logging: &LoggingDoc{SlabSizeMiB: mustU64(1024), SectionSizeMiB: mustU64(100)},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1024), *g.Logging.SlabSizeMiB)
}

func TestAcyclicValidation(t *testing.T) {
	g := New()
	a, _ := g.AddNode(Node{DocID: "a", Type: "t"})
	b, _ := g.AddNode(Node{DocID: "b", Type: "t"})
	_, err := g.Connect(a, b, "m", nil, nil)
	require.NoError(t, err)
	_, err = g.Connect(b, a, "m", nil, nil)
	require.NoError(t, err)

	assert.Error(t, g.Validate())
}

func TestTopologicalOrderTieBreaksByNodeID(t *testing.T) {
	g := New()
	a, _ := g.AddNode(Node{DocID: "a", Type: "t"})
	b, _ := g.AddNode(Node{DocID: "b", Type: "t"})
	c, _ := g.AddNode(Node{DocID: "c", Type: "t"})
	// a and c are both roots (no incoming edges); ascending tie-break
	// means a must be visited before c regardless of connection order.
	_, err := g.Connect(c, b, "m", nil, nil)
	require.NoError(t, err)

	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	assert.Equal(t, []NodeID{a, c, b}, order)
}

func TestUnknownEndpointIsRejected(t *testing.T) {
	_, err := FromDocument(&Document{
		Tasks: []NodeDoc{{ID: "only", Type: "t"}},
		Cnx:   []CnxDoc{{Src: "only", Dst: "ghost", Msg: "m"}},
	})
	assert.Error(t, err)
}

func TestDuplicateNodeIDIsRejected(t *testing.T) {
	g := New()
	_, err := g.AddNode(Node{DocID: "dup", Type: "t"})
	require.NoError(t, err)
	_, err = g.AddNode(Node{DocID: "dup", Type: "t"})
	assert.Error(t, err)
}

func TestInferTypesRequireAnEdge(t *testing.T) {
	g := New()
	id, _ := g.AddNode(Node{DocID: "lonely", Type: "t"})
	_, err := g.InferOutputType(id)
	assert.Error(t, err)
	_, err = g.InferInputType(id)
	assert.Error(t, err)
}

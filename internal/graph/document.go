// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"

	"github.com/copperdag/copperdag/pkg/config"
	"github.com/copperdag/copperdag/pkg/cuerr"
)

// Document is the textual configuration schema: a single top-level record
// with tasks, cnx (edge-id = position in this sequence), and optional
// monitor/logging singletons.
type Document struct {
	Tasks   []NodeDoc    `json:"tasks"`
	Cnx     []CnxDoc     `json:"cnx"`
	Monitor *MonitorDoc  `json:"monitor,omitempty"`
	Logging *LoggingDoc  `json:"logging,omitempty"`
}

type NodeDoc struct {
	ID     string                  `json:"id"`
	Type   string                  `json:"type"`
	Config *config.ComponentConfig `json:"config,omitempty"`
}

type CnxDoc struct {
	Src   string `json:"src"`
	Dst   string `json:"dst"`
	Msg   string `json:"msg"`
	Batch *uint32 `json:"batch,omitempty"`
	Store *bool   `json:"store,omitempty"`
}

type MonitorDoc struct {
	Type   string                  `json:"type"`
	Config *config.ComponentConfig `json:"config,omitempty"`
}

type LoggingDoc struct {
	SlabSizeMiB       *uint64 `json:"slab_size_mib,omitempty"`
	SectionSizeMiB    *uint64 `json:"section_size_mib,omitempty"`
	EnableTaskLogging *bool   `json:"enable_task_logging,omitempty"`
}

// FromDocument builds a Graph from its textual representation. Node-ids
// are assigned by the textual order of the tasks list; edge-ids are
// assigned by the textual order of the cnx list — NOT the tasks list.
// Downstream task argument ordering depends on this and it must be
// preserved exactly.
func FromDocument(doc *Document) (*Graph, error) {
	g := New()

	for _, t := range doc.Tasks {
		if _, err := g.AddNode(Node{DocID: t.ID, Type: t.Type, Config: t.Config}); err != nil {
			return nil, err
		}
	}

	for _, c := range doc.Cnx {
		src, ok := g.NodeIDByDocID(c.Src)
		if !ok {
			return nil, &cuerr.ConfigValidationError{Reason: fmt.Sprintf("connection src node not found: %q", c.Src)}
		}
		dst, ok := g.NodeIDByDocID(c.Dst)
		if !ok {
			return nil, &cuerr.ConfigValidationError{Reason: fmt.Sprintf("connection dst node not found: %q", c.Dst)}
		}
		if _, err := g.Connect(src, dst, c.Msg, c.Batch, c.Store); err != nil {
			return nil, err
		}
	}

	if doc.Monitor != nil {
		g.Monitor = &MonitorConfig{Type: doc.Monitor.Type, Config: doc.Monitor.Config}
	}
	if doc.Logging != nil {
		enable := true
		if doc.Logging.EnableTaskLogging != nil {
			enable = *doc.Logging.EnableTaskLogging
		}
		g.Logging = &LoggingConfig{
			SlabSizeMiB:       doc.Logging.SlabSizeMiB,
			SectionSizeMiB:    doc.Logging.SectionSizeMiB,
			EnableTaskLogging: enable,
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// ToDocument renders a Graph back to its textual representation: tasks in
// node-id order, cnx in edge-id order, so that deserialize(serialize(G))
// round-trips structurally.
func (g *Graph) ToDocument() *Document {
	doc := &Document{
		Tasks: make([]NodeDoc, len(g.nodes)),
		Cnx:   make([]CnxDoc, len(g.connections)),
	}
	for i, n := range g.nodes {
		doc.Tasks[i] = NodeDoc{ID: n.DocID, Type: n.Type, Config: n.Config}
	}
	for i, c := range g.connections {
		doc.Cnx[i] = CnxDoc{
			Src:   g.nodes[c.Src].DocID,
			Dst:   g.nodes[c.Dst].DocID,
			Msg:   c.Msg,
			Batch: c.Batch,
			Store: c.Store,
		}
	}
	if g.Monitor != nil {
		doc.Monitor = &MonitorDoc{Type: g.Monitor.Type, Config: g.Monitor.Config}
	}
	if g.Logging != nil {
		enable := g.Logging.EnableTaskLogging
		doc.Logging = &LoggingDoc{
			SlabSizeMiB:       g.Logging.SlabSizeMiB,
			SectionSizeMiB:    g.Logging.SectionSizeMiB,
			EnableTaskLogging: &enable,
		}
	}
	return doc
}

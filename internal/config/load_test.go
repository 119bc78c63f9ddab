// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadGraphJSON(t *testing.T) {
	p := writeTemp(t, "graph.json", `{
		"tasks": [
			{"id": "src", "type": "pkg::Source"},
			{"id": "sink", "type": "pkg::Sink"}
		],
		"cnx": [
			{"src": "src", "dst": "sink", "msg": "pkg::Msg"}
		]
	}`)

	g, err := LoadGraph(p)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
}

func TestLoadGraphYAML(t *testing.T) {
	p := writeTemp(t, "graph.yaml", "tasks:\n  - id: src\n    type: pkg::Source\n  - id: sink\n    type: pkg::Sink\ncnx:\n  - src: src\n    dst: sink\n    msg: pkg::Msg\n")

	g, err := LoadGraph(p)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
}

func TestLoadGraphRejectsUnknownField(t *testing.T) {
	p := writeTemp(t, "graph.json", `{"tasks": [], "cnx": [], "bogus": true}`)

	_, err := LoadGraph(p)
	assert.Error(t, err)
}

func TestLoadGraphRejectsMissingRequiredField(t *testing.T) {
	p := writeTemp(t, "graph.json", `{"tasks": [{"type": "pkg::Source"}], "cnx": []}`)

	_, err := LoadGraph(p)
	assert.Error(t, err)
}

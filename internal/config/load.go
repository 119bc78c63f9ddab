// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	goyaml "github.com/goccy/go-yaml"

	"github.com/copperdag/copperdag/internal/graph"
	"github.com/copperdag/copperdag/pkg/cuerr"
)

// LoadGraph reads a graph configuration document from path and returns a
// fully built, validated Graph. Both JSON and YAML are accepted: files
// ending in .yml or .yaml are decoded with goccy/go-yaml and re-marshalled
// to JSON; everything else is treated as JSON directly. Either way the
// document is schema-validated before being handed to the Graph Model's
// deserializer, so malformed documents fail fast with a precise reason
// instead of surfacing as an obscure node-lookup error later.
func LoadGraph(path string) (*graph.Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &cuerr.IoError{Cause: err}
	}

	jsonBytes := raw
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var generic any
		if err := goyaml.Unmarshal(raw, &generic); err != nil {
			return nil, &cuerr.ConfigParseError{Pos: path, Err: err}
		}
		jsonBytes, err = json.Marshal(generic)
		if err != nil {
			return nil, &cuerr.ConfigParseError{Pos: path, Err: err}
		}
	}

	if err := validateGraphDocument(jsonBytes); err != nil {
		return nil, err
	}

	var doc graph.Document
	dec := json.NewDecoder(bytes.NewReader(jsonBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, &cuerr.ConfigParseError{Pos: path, Err: err}
	}

	return graph.FromDocument(&doc)
}

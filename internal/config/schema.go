// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/copperdag/copperdag/pkg/cuerr"
)

// graphDocumentSchema is the abstract shape of a graph configuration
// document: a tasks list, a cnx list (edge declaration order, not node
// order), and optional monitor/logging singletons.
const graphDocumentSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["tasks", "cnx"],
	"additionalProperties": false,
	"properties": {
		"tasks": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "type"],
				"additionalProperties": false,
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"type": {"type": "string", "minLength": 1},
					"config": {"type": "object"}
				}
			}
		},
		"cnx": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["src", "dst", "msg"],
				"additionalProperties": false,
				"properties": {
					"src": {"type": "string", "minLength": 1},
					"dst": {"type": "string", "minLength": 1},
					"msg": {"type": "string", "minLength": 1},
					"batch": {"type": "integer", "minimum": 1},
					"store": {"type": "boolean"}
				}
			}
		},
		"monitor": {
			"type": "object",
			"required": ["type"],
			"additionalProperties": false,
			"properties": {
				"type": {"type": "string", "minLength": 1},
				"config": {"type": "object"}
			}
		},
		"logging": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"slab_size_mib": {"type": "integer", "minimum": 1},
				"section_size_mib": {"type": "integer", "minimum": 1},
				"enable_task_logging": {"type": "boolean"}
			}
		}
	}
}`

var compiledGraphSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("graph.schema.json", strings.NewReader(graphDocumentSchema)); err != nil {
		panic("config: invalid embedded graph schema: " + err.Error())
	}
	s, err := compiler.Compile("graph.schema.json")
	if err != nil {
		panic("config: embedded graph schema fails to compile: " + err.Error())
	}
	compiledGraphSchema = s
}

// validateGraphDocument checks jsonBytes against graphDocumentSchema before
// it is decoded into a typed graph.Document. Schema failures are reported
// as ConfigValidation errors, distinct from the ConfigParse errors raised
// by malformed JSON/YAML syntax.
func validateGraphDocument(jsonBytes []byte) error {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(jsonBytes)))
	if err != nil {
		return &cuerr.ConfigParseError{Err: err}
	}
	if err := compiledGraphSchema.Validate(doc); err != nil {
		return &cuerr.ConfigValidationError{Reason: err.Error()}
	}
	return nil
}

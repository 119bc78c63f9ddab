// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads the runtime's own settings and the dataflow graph
// document it drives, keeping the two concerns in one package but behind
// separate entry points (Init for process settings, LoadGraph for the
// pipeline description).
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/copperdag/copperdag/pkg/cuerr"
)

// Settings are the process-wide options a copperdag binary is started
// with. Keys is populated once at startup by Init and read by main, which
// hands the relevant values to rlog, metrics and gops — the same
// package-level-singleton shape used throughout this codebase for things
// that are fixed for the life of the process.
type Settings struct {
	LogLevel    string `json:"log-level"`
	LogDateTime bool   `json:"log-date-time"`

	// GraphFile is the path to the dataflow graph document. Required.
	GraphFile string `json:"graph-file"`

	// MetricsAddr, if non-empty, is the listen address for the Prometheus
	// /metrics endpoint. Empty disables metrics serving.
	MetricsAddr string `json:"metrics-addr"`

	// GopsAddr, if non-empty, is the listen address for the gops runtime
	// diagnostics agent. Empty disables it.
	GopsAddr string `json:"gops-addr"`

	// CadenceMillis, if non-zero, runs the scheduler in cadence mode at
	// this period instead of direct (run-to-completion) mode.
	CadenceMillis uint64 `json:"cadence-ms"`
}

// Keys holds the process settings once Init has run.
var Keys = Settings{
	LogLevel:  "info",
	GraphFile: "./copperdag.json",
}

// Init reads process settings from path (a JSON document) into Keys.
// A missing file is not an error: Keys keeps its defaults and the caller
// is expected to have supplied required fields (GraphFile in particular)
// by some other means, such as flags.
func Init(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &cuerr.IoError{Cause: err}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&Keys); err != nil {
		return &cuerr.ConfigParseError{Pos: path, Err: err}
	}
	if Keys.GraphFile == "" {
		return &cuerr.ConfigValidationError{Reason: "graph-file must be set"}
	}
	return nil
}

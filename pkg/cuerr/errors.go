// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cuerr defines the distinct, named error kinds the graph loader,
// builder, and scheduler produce: small typed or sentinel errors per
// failure class rather than one opaque error.
package cuerr

import (
	"errors"
	"fmt"
)

// ConfigParseError wraps a malformed configuration document. Pos is the
// path of the document being loaded, or empty when no path is known; it
// does not carry a line, column or byte offset within the document.
type ConfigParseError struct {
	Pos string
	Err error
}

func (e *ConfigParseError) Error() string {
	if e.Pos == "" {
		return fmt.Sprintf("config parse error: %v", e.Err)
	}
	return fmt.Sprintf("config parse error at %s: %v", e.Pos, e.Err)
}

func (e *ConfigParseError) Unwrap() error { return e.Err }

// ConfigValidationError reports a well-formed document that violates a
// graph invariant: unknown endpoint, cycle, duplicate id, logging-size rule.
type ConfigValidationError struct {
	Reason string
}

func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s", e.Reason)
}

// TaskConstructionError reports a task's New returning an error. It aborts
// the whole build; tasks already constructed are torn down without Stop.
type TaskConstructionError struct {
	NodeID string
	Cause  error
}

func (e *TaskConstructionError) Error() string {
	return fmt.Sprintf("task construction error for node %q: %v", e.NodeID, e.Cause)
}

func (e *TaskConstructionError) Unwrap() error { return e.Cause }

// TaskExecutionError reports a per-tick hook returning an error. It is
// surfaced to the Monitor, never aborts the build.
type TaskExecutionError struct {
	NodeID string
	Tick   uint64
	Cause  error
}

func (e *TaskExecutionError) Error() string {
	return fmt.Sprintf("task execution error for node %q at tick %d: %v", e.NodeID, e.Tick, e.Cause)
}

func (e *TaskExecutionError) Unwrap() error { return e.Cause }

// ResourceExhaustionError reports a memory pool empty when a driver needed
// a buffer.
type ResourceExhaustionError struct {
	Pool string
}

func (e *ResourceExhaustionError) Error() string {
	return fmt.Sprintf("resource exhaustion: pool %q has no free buffers", e.Pool)
}

// TimeoutError reports a bounded external wait that elapsed.
type TimeoutError struct {
	Operation string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout waiting on %q", e.Operation)
}

// IoError wraps an error surfaced from a driver or the logger collaborator.
type IoError struct {
	Cause error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io error: %v", e.Cause)
}

func (e *IoError) Unwrap() error { return e.Cause }

// ErrKindMismatch is returned by Value extractors when the requested host
// type is incompatible with the stored variant.
var ErrKindMismatch = errors.New("value: kind mismatch")

// ErrNotNumeric names the failure of a numeric extraction from a
// non-numeric Value variant (bool, char, string, seq, map, option, bytes,
// unit never cross-coerce). The pkg/value extractors do not return it:
// they report that case as ErrKindMismatch.
var ErrNotNumeric = errors.New("value: not a numeric variant")

// ErrFloatToInt is returned when an integer extractor is used against a
// float-kind Value or vice-versa: numeric kinds are not cross-coerced.
var ErrFloatToInt = errors.New("value: cannot cross-coerce float and integer kinds")

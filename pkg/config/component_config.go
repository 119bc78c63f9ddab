// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config holds ComponentConfig, the key/Value map handed to every
// task's and monitor's constructor. It is deliberately separate from the
// graph document loader in internal/config so that task implementations
// living outside this module's internal/ tree (example tasks, user
// plugins) can depend on it.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/copperdag/copperdag/pkg/value"
)

// ComponentConfig is a mapping from string key to Value. Insertion order is
// not significant. It is created during graph deserialization, frozen at
// runtime start, and read-only thereafter.
type ComponentConfig struct {
	entries map[string]value.Value
	frozen  bool
}

// NewComponentConfig returns an empty, mutable ComponentConfig.
func NewComponentConfig() *ComponentConfig {
	return &ComponentConfig{entries: make(map[string]value.Value)}
}

// Get returns the Value stored under key, if any.
func (c *ComponentConfig) Get(key string) (value.Value, bool) {
	if c == nil {
		return value.Value{}, false
	}
	v, ok := c.entries[key]
	return v, ok
}

// Set stores value under key. It panics if the config has been frozen —
// the runtime never mutates a config after task construction begins.
func (c *ComponentConfig) Set(key string, v value.Value) {
	if c.frozen {
		panic("config: cannot set on a frozen ComponentConfig")
	}
	c.entries[key] = v
}

// Freeze marks the config read-only. Called by the scheduler just before
// the owning task's New is invoked.
func (c *ComponentConfig) Freeze() {
	c.frozen = true
}

// Frozen reports whether Freeze has been called.
func (c *ComponentConfig) Frozen() bool {
	return c.frozen
}

// Keys returns the configured keys in no particular order.
func (c *ComponentConfig) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// GetInt32 is a convenience wrapper for task constructors to read a signed
// 32-bit parameter, e.g. a "resolution-height" node config entry.
func (c *ComponentConfig) GetInt32(key string) (int32, bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false, nil
	}
	i, err := v.AsInt32()
	if err != nil {
		return 0, true, fmt.Errorf("config key %q: %w", key, err)
	}
	return i, true, nil
}

// GetString is the string-typed equivalent of GetInt32.
func (c *ComponentConfig) GetString(key string) (string, bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return "", false, nil
	}
	s, err := v.AsString()
	if err != nil {
		return "", true, fmt.Errorf("config key %q: %w", key, err)
	}
	return s, true, nil
}

// UnmarshalJSON decodes a JSON object into kind-inferring Values: numbers
// without a fractional part become I64, numbers with one become F64,
// strings/bools map directly, arrays become Seq, nested objects become Map.
func (c *ComponentConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.entries = make(map[string]value.Value, len(raw))
	for k, v := range raw {
		c.entries[k] = FromAny(v)
	}
	return nil
}

// MarshalJSON emits the config as a plain JSON object, losing the exact
// numeric Kind (by design: the wire format doesn't need it, only the
// config author's round-trip through ComponentConfig.Get does).
func (c *ComponentConfig) MarshalJSON() ([]byte, error) {
	raw := make(map[string]any, len(c.entries))
	for k, v := range c.entries {
		raw[k] = ToAny(v)
	}
	return json.Marshal(raw)
}

// FromAny converts a generically-decoded JSON/YAML scalar (as produced by
// encoding/json or goccy/go-yaml when unmarshaled into `any`) into a Value.
func FromAny(x any) value.Value {
	switch t := x.(type) {
	case nil:
		return value.NewOption(nil)
	case bool:
		return value.NewBool(t)
	case string:
		return value.NewString(t)
	case float64:
		if t == float64(int64(t)) {
			return value.NewI64(int64(t))
		}
		return value.NewF64(t)
	case int:
		return value.NewI64(int64(t))
	case int64:
		return value.NewI64(t)
	case uint64:
		return value.NewU64(t)
	case []byte:
		return value.NewBytes(t)
	case []any:
		items := make([]value.Value, len(t))
		for i, item := range t {
			items[i] = FromAny(item)
		}
		return value.NewSeq(items)
	case map[string]any:
		entries := make([]value.MapEntry, 0, len(t))
		for k, v := range t {
			entries = append(entries, value.MapEntry{Key: value.NewString(k), Val: FromAny(v)})
		}
		return value.NewMap(entries)
	default:
		return value.NewString(fmt.Sprintf("%v", t))
	}
}

// ToAny is the inverse of FromAny, used when marshaling a ComponentConfig
// back out to JSON for serialize/render.
func ToAny(v value.Value) any {
	switch v.Kind() {
	case value.KindI8, value.KindI16, value.KindI32, value.KindI64:
		i, _ := v.AsInt64()
		return i
	case value.KindU8, value.KindU16, value.KindU32, value.KindU64:
		u, _ := v.AsUint64()
		return u
	case value.KindF32, value.KindF64:
		f, _ := v.AsFloat64()
		return f
	case value.KindBool:
		b, _ := v.AsBool()
		return b
	case value.KindString:
		s, _ := v.AsString()
		return s
	case value.KindSeq:
		seq, _ := v.AsSeq()
		out := make([]any, len(seq))
		for i, item := range seq {
			out[i] = ToAny(item)
		}
		return out
	case value.KindMap:
		entries, _ := v.AsMap()
		out := make(map[string]any, len(entries))
		for _, e := range entries {
			out[e.Key.String()] = ToAny(e.Val)
		}
		return out
	case value.KindOption:
		opt, _ := v.AsOption()
		if opt == nil {
			return nil
		}
		return ToAny(*opt)
	default:
		return v.String()
	}
}

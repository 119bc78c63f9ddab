// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package value implements the self-describing scalar/compound Value type
// used for node configuration payloads, with well-defined coercions to
// host numeric and string types.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/copperdag/copperdag/pkg/cuerr"
)

// Kind tags which variant a Value holds.
type Kind int

const (
	KindUnit Kind = iota
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindBool
	KindChar
	KindString
	KindSeq
	KindMap
	KindOption
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindI8:
		return "i8"
	case KindI16:
		return "i16"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindSeq:
		return "seq"
	case KindMap:
		return "map"
	case KindOption:
		return "option"
	case KindBytes:
		return "bytes"
	case KindUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// MapEntry is one key-value pair of a Value-kinded Map. A plain Go map
// can't be used because Value itself isn't comparable (it may carry a
// slice or nested map), so the mapping is represented as an ordered slice.
type MapEntry struct {
	Key Value
	Val Value
}

// Value is a tagged variant over scalar and compound kinds. The zero Value
// is KindUnit.
type Value struct {
	kind Kind
	i    int64
	u    uint64
	f    float64
	s    string
	seq  []Value
	mp   []MapEntry
	opt  *Value
	by   []byte
}

func (v Value) Kind() Kind { return v.kind }

// Constructors

func NewI8(x int8) Value   { return Value{kind: KindI8, i: int64(x)} }
func NewI16(x int16) Value { return Value{kind: KindI16, i: int64(x)} }
func NewI32(x int32) Value { return Value{kind: KindI32, i: int64(x)} }
func NewI64(x int64) Value { return Value{kind: KindI64, i: x} }
func NewU8(x uint8) Value  { return Value{kind: KindU8, u: uint64(x)} }
func NewU16(x uint16) Value {
	return Value{kind: KindU16, u: uint64(x)}
}
func NewU32(x uint32) Value { return Value{kind: KindU32, u: uint64(x)} }
func NewU64(x uint64) Value { return Value{kind: KindU64, u: x} }
func NewF32(x float32) Value {
	return Value{kind: KindF32, f: float64(x)}
}
func NewF64(x float64) Value { return Value{kind: KindF64, f: x} }
func NewBool(x bool) Value {
	v := Value{kind: KindBool}
	if x {
		v.i = 1
	}
	return v
}
func NewChar(r rune) Value     { return Value{kind: KindChar, i: int64(r)} }
func NewString(s string) Value { return Value{kind: KindString, s: s} }
func NewSeq(items []Value) Value {
	return Value{kind: KindSeq, seq: items}
}
func NewMap(entries []MapEntry) Value {
	return Value{kind: KindMap, mp: entries}
}
func NewOption(v *Value) Value { return Value{kind: KindOption, opt: v} }
func NewBytes(b []byte) Value  { return Value{kind: KindBytes, by: b} }
func NewUnit() Value           { return Value{kind: KindUnit} }

func isIntKind(k Kind) bool {
	switch k {
	case KindI8, KindI16, KindI32, KindI64, KindU8, KindU16, KindU32, KindU64:
		return true
	default:
		return false
	}
}

func isFloatKind(k Kind) bool {
	return k == KindF32 || k == KindF64
}

// rawInt returns the value reinterpreted as a 64-bit integer: sign-extended
// for signed kinds, zero-extended for unsigned kinds.
func (v Value) rawInt() int64 {
	switch v.kind {
	case KindI8, KindI16, KindI32, KindI64:
		return v.i
	default:
		return int64(v.u)
	}
}

// extractInt64 is the shared path for every integer extractor: it enforces
// the numeric-only / no-float-crossover rules, then truncates or
// sign/zero-extends per standard two's-complement conversion.
func (v Value) extractInt64() (int64, error) {
	if isFloatKind(v.kind) {
		return 0, cuerr.ErrFloatToInt
	}
	if !isIntKind(v.kind) {
		return 0, fmt.Errorf("%w: expected integer kind, got %s", cuerr.ErrKindMismatch, v.kind)
	}
	return v.rawInt(), nil
}

func (v Value) AsInt8() (int8, error) {
	raw, err := v.extractInt64()
	if err != nil {
		return 0, err
	}
	return int8(raw), nil
}

func (v Value) AsInt16() (int16, error) {
	raw, err := v.extractInt64()
	if err != nil {
		return 0, err
	}
	return int16(raw), nil
}

func (v Value) AsInt32() (int32, error) {
	raw, err := v.extractInt64()
	if err != nil {
		return 0, err
	}
	return int32(raw), nil
}

func (v Value) AsInt64() (int64, error) {
	return v.extractInt64()
}

func (v Value) AsUint8() (uint8, error) {
	raw, err := v.extractInt64()
	if err != nil {
		return 0, err
	}
	return uint8(raw), nil
}

func (v Value) AsUint16() (uint16, error) {
	raw, err := v.extractInt64()
	if err != nil {
		return 0, err
	}
	return uint16(raw), nil
}

func (v Value) AsUint32() (uint32, error) {
	raw, err := v.extractInt64()
	if err != nil {
		return 0, err
	}
	return uint32(raw), nil
}

func (v Value) AsUint64() (uint64, error) {
	raw, err := v.extractInt64()
	if err != nil {
		return 0, err
	}
	return uint64(raw), nil
}

func (v Value) AsFloat32() (float32, error) {
	if isIntKind(v.kind) {
		return 0, cuerr.ErrFloatToInt
	}
	if !isFloatKind(v.kind) {
		return 0, fmt.Errorf("%w: expected float kind, got %s", cuerr.ErrKindMismatch, v.kind)
	}
	return float32(v.f), nil
}

func (v Value) AsFloat64() (float64, error) {
	if isIntKind(v.kind) {
		return 0, cuerr.ErrFloatToInt
	}
	if !isFloatKind(v.kind) {
		return 0, fmt.Errorf("%w: expected float kind, got %s", cuerr.ErrKindMismatch, v.kind)
	}
	return v.f, nil
}

func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("%w: expected bool kind, got %s", cuerr.ErrKindMismatch, v.kind)
	}
	return v.i != 0, nil
}

func (v Value) AsChar() (rune, error) {
	if v.kind != KindChar {
		return 0, fmt.Errorf("%w: expected char kind, got %s", cuerr.ErrKindMismatch, v.kind)
	}
	return rune(v.i), nil
}

func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("%w: expected string kind, got %s", cuerr.ErrKindMismatch, v.kind)
	}
	return v.s, nil
}

func (v Value) AsSeq() ([]Value, error) {
	if v.kind != KindSeq {
		return nil, fmt.Errorf("%w: expected seq kind, got %s", cuerr.ErrKindMismatch, v.kind)
	}
	return v.seq, nil
}

func (v Value) AsMap() ([]MapEntry, error) {
	if v.kind != KindMap {
		return nil, fmt.Errorf("%w: expected map kind, got %s", cuerr.ErrKindMismatch, v.kind)
	}
	return v.mp, nil
}

func (v Value) AsOption() (*Value, error) {
	if v.kind != KindOption {
		return nil, fmt.Errorf("%w: expected option kind, got %s", cuerr.ErrKindMismatch, v.kind)
	}
	return v.opt, nil
}

func (v Value) AsBytes() ([]byte, error) {
	if v.kind != KindBytes {
		return nil, fmt.Errorf("%w: expected bytes kind, got %s", cuerr.ErrKindMismatch, v.kind)
	}
	return v.by, nil
}

// String renders the scalar's natural text form. Maps and sequences emit a
// debug-grade representation that is not required to round-trip.
func (v Value) String() string {
	switch v.kind {
	case KindI8, KindI16, KindI32, KindI64:
		return strconv.FormatInt(v.i, 10)
	case KindU8, KindU16, KindU32, KindU64:
		return strconv.FormatUint(v.u, 10)
	case KindF32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindF64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.i != 0)
	case KindChar:
		return string(rune(v.i))
	case KindString:
		return v.s
	case KindSeq:
		parts := make([]string, len(v.seq))
		for i, item := range v.seq {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, len(v.mp))
		for i, e := range v.mp {
			parts[i] = fmt.Sprintf("%s: %s", e.Key.String(), e.Val.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindOption:
		if v.opt == nil {
			return "none"
		}
		return "some(" + v.opt.String() + ")"
	case KindBytes:
		return fmt.Sprintf("%x", v.by)
	case KindUnit:
		return "unit"
	default:
		return "<invalid>"
	}
}

// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package types defines the runtime type tags of column values, the widths
// of their fixed-width row storage and the compile-time tokens used for
// checked typed access to that storage.
//
// Fixed-width types (integers, floats, boolean) store their values inline
// in a column's row storage. Variable-length types (text, blob) store a
// ValueRef inline; the referenced bytes live in the owning column's arena
// and are always copied in, never aliased (deep-copy storage).
package types

import (
	"unsafe"

	"github.com/dbkit-io/dbkit/dberr"
)

// Type is the runtime tag describing the logical type of a column's values.
type Type uint8

const (
	// TypeInvalid represents an unset or invalid type.
	TypeInvalid Type = iota
	// TypeUInt32 stores an unsigned 32-bit integer per row.
	TypeUInt32
	// TypeUInt64 stores an unsigned 64-bit integer per row.
	TypeUInt64
	// TypeInt32 stores a signed 32-bit integer per row.
	TypeInt32
	// TypeInt64 stores a signed 64-bit integer per row.
	TypeInt64
	// TypeFloat32 stores a 32-bit float per row.
	TypeFloat32
	// TypeFloat64 stores a 64-bit float per row.
	TypeFloat64
	// TypeBoolean stores a bool per row.
	TypeBoolean
	// TypeText stores a ValueRef per row referencing UTF-8 bytes in the
	// column's arena.
	TypeText
	// TypeBlob stores a ValueRef per row referencing raw bytes in the
	// column's arena.
	TypeBlob

	typesCount
)

var typeName [typesCount]string = [typesCount]string{
	TypeInvalid: "INVALID",
	TypeUInt32:  "UINT32",
	TypeUInt64:  "UINT64",
	TypeInt32:   "INT32",
	TypeInt64:   "INT64",
	TypeFloat32: "FLOAT32",
	TypeFloat64: "FLOAT64",
	TypeBoolean: "BOOLEAN",
	TypeText:    "TEXT",
	TypeBlob:    "BLOB",
}

// String returns a human-readable string representation of the type.
func (t Type) String() string {
	return typeName[t]
}

// Width returns the number of bytes one row of this type occupies in a
// column's fixed-width storage.
func (t Type) Width() int {
	switch t {
	case TypeUInt32, TypeInt32, TypeFloat32:
		return 4
	case TypeUInt64, TypeInt64, TypeFloat64:
		return 8
	case TypeBoolean:
		return 1
	case TypeText, TypeBlob:
		return int(unsafe.Sizeof(ValueRef{}))
	default:
		panic("invalid type")
	}
}

// DeepCopy reports whether values of this type are stored indirectly: the
// row slot holds a ValueRef and writing a value copies its bytes into the
// owning column's arena.
func (t Type) DeepCopy() bool {
	return t == TypeText || t == TypeBlob
}

// ParseType maps a type name (as produced by String) back to its Type.
func ParseType(s string) (Type, error) {
	for t := TypeUInt32; t < typesCount; t++ {
		if typeName[t] == s {
			return t, nil
		}
	}
	return TypeInvalid, dberr.UnknownType(s)
}

// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package types

// Token binds a runtime type tag to the Go type used for one row of that
// type's fixed-width storage. Passing a token to a typed accessor selects
// the store type S at compile time, while the tag is verified against the
// attribute at runtime.
//
// The token set below is closed; a zero Token carries the invalid tag and
// never matches an attribute.
type Token[S any] struct {
	tag Type
}

// Tag returns the runtime type tag the token stands for.
func (t Token[S]) Tag() Type {
	return t.tag
}

var (
	// UInt32 is the type token for TypeUInt32.
	UInt32 = Token[uint32]{tag: TypeUInt32}
	// UInt64 is the type token for TypeUInt64.
	UInt64 = Token[uint64]{tag: TypeUInt64}
	// Int32 is the type token for TypeInt32.
	Int32 = Token[int32]{tag: TypeInt32}
	// Int64 is the type token for TypeInt64.
	Int64 = Token[int64]{tag: TypeInt64}
	// Float32 is the type token for TypeFloat32.
	Float32 = Token[float32]{tag: TypeFloat32}
	// Float64 is the type token for TypeFloat64.
	Float64 = Token[float64]{tag: TypeFloat64}
	// Boolean is the type token for TypeBoolean.
	Boolean = Token[bool]{tag: TypeBoolean}
	// Text is the type token for TypeText; its store type is ValueRef.
	Text = Token[ValueRef]{tag: TypeText}
	// Blob is the type token for TypeBlob; its store type is ValueRef.
	Blob = Token[ValueRef]{tag: TypeBlob}
)

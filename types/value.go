// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package types

import "unsafe"

// ValueRef is the inline row record for variable-length values. It points
// into the arena owned by the column that stores it; the referenced bytes
// are valid exactly as long as that column.
//
// ValueRef lives inside raw column storage that the garbage collector never
// scans, which is safe only because the owning column's arena keeps the
// referenced chunks alive.
type ValueRef struct {
	ptr unsafe.Pointer
	len uintptr
}

// MakeValueRef constructs a ValueRef from a pointer to n bytes of arena
// space.
func MakeValueRef(ptr unsafe.Pointer, n int) ValueRef {
	return ValueRef{ptr: ptr, len: uintptr(n)}
}

// Len returns the length of the referenced bytes.
func (v ValueRef) Len() int {
	return int(v.len)
}

// Bytes returns the referenced bytes without copying.
func (v ValueRef) Bytes() []byte {
	if v.len == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(v.ptr), v.len)
}

// String returns the referenced bytes as a string, copying them onto the
// Go heap.
func (v ValueRef) String() string {
	return string(v.Bytes())
}

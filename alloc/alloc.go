// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package alloc provides the memory-acquisition layer of the dbkit storage
// core: the Allocator interface, the Chunk owned-buffer type and the
// chunked bump-pointer Arena built on top of them.
//
// All buffers handed out by this package are aligned to at least MinAlign
// bytes so that column storage can be treated as a vector of SIMD lanes by
// downstream numeric kernels.
package alloc

import (
	"unsafe"

	"github.com/cockroachdb/crlib/crbytes"
	"github.com/cockroachdb/errors"
)

// MinAlign is the minimum alignment of any allocation, sized for 256-bit
// SIMD register width.
const MinAlign = 32

// Allocator acquires and releases aligned byte ranges. Implementations must
// be safe to share across concurrent callers; any usage tracking is
// serialized by the implementation, not the caller.
type Allocator interface {
	// Allocate returns a Chunk of the given size aligned to MinAlign.
	Allocate(size int) (Chunk, error)

	// AllocateAligned returns a Chunk of the given size aligned to align,
	// which must be a power of two.
	AllocateAligned(size, align int) (Chunk, error)

	// Resize grows or shrinks the chunk to the given size, attempting an
	// in-place resize first and falling back to allocating a new buffer and
	// copying the existing bytes.
	Resize(c *Chunk, size int) error

	// Putback releases the chunk's buffer back to this allocator. It is
	// called by Chunk.Close, never by user code directly.
	Putback(c *Chunk)
}

// globalHeap is the default allocator instance, for callers that don't care
// about accounting or limits.
var globalHeap HeapAllocator

// Global returns the process-wide default heap allocator.
func Global() Allocator {
	return &globalHeap
}

// HeapAllocator allocates from the Go heap with no accounting. The zero
// value is ready for use.
type HeapAllocator struct{}

var _ Allocator = (*HeapAllocator)(nil)

// Allocate implements Allocator.
func (a *HeapAllocator) Allocate(size int) (Chunk, error) {
	return a.AllocateAligned(size, MinAlign)
}

// AllocateAligned implements Allocator.
func (a *HeapAllocator) AllocateAligned(size, align int) (Chunk, error) {
	return Chunk{parent: a, data: allocAligned(size, align), align: align}, nil
}

// Resize implements Allocator.
func (a *HeapAllocator) Resize(c *Chunk, size int) error {
	resizeAligned(c, size)
	return nil
}

// Putback implements Allocator. The buffer is surrendered to the garbage
// collector once all aliases of it are gone.
func (a *HeapAllocator) Putback(c *Chunk) {
	c.data = nil
}

// allocAligned returns a zeroed byte slice of length size whose base
// address is a multiple of align. align must be a power of two.
func allocAligned(size, align int) []byte {
	if size < 0 || align <= 0 || align&(align-1) != 0 {
		panic(errors.AssertionFailedf("invalid allocation size=%d align=%d", size, align))
	}
	if size == 0 {
		return make([]byte, 0)
	}
	// crbytes.AllocAligned only guarantees word alignment; anything wider
	// takes the padding path below.
	if align <= 8 {
		return crbytes.AllocAligned(size)
	}
	raw := crbytes.AllocAligned(size + align)
	off := 0
	if rem := int(uintptr(unsafe.Pointer(unsafe.SliceData(raw))) & uintptr(align-1)); rem != 0 {
		off = align - rem
	}
	return raw[off : off+size : off+size]
}

// resizeAligned resizes a chunk's buffer in place when the backing array
// allows it, otherwise replaces it with a fresh aligned buffer carrying a
// copy of the old bytes. Bytes beyond the old length are zero either way.
func resizeAligned(c *Chunk, size int) {
	if size <= cap(c.data) {
		old := len(c.data)
		c.data = c.data[:size]
		if size > old {
			clear(c.data[old:])
		}
		return
	}
	replacement := allocAligned(size, c.align)
	copy(replacement, c.data)
	c.data = replacement
}

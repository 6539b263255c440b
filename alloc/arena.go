// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package alloc

import (
	"unsafe"

	"github.com/dbkit-io/dbkit/dberr"
	"github.com/dbkit-io/dbkit/internal/invariants"
)

// Arena is a chunked, append-only bump allocator for variable-length
// payloads. Chunks, once allocated, are never moved, resized or freed until
// the whole arena is closed, so every pointer handed out by Alloc or Append
// stays valid for the arena's lifetime.
//
// Each new chunk doubles the size of the previous one, capped at the
// arena's maximum size; the first chunk uses the minimum size. A single
// value may never exceed the maximum size.
type Arena struct {
	parent           Allocator
	chunks           []Chunk
	minSize, maxSize int
	// pos is the write cursor within the last chunk.
	pos    int
	closed invariants.CloseChecker
}

// ArenaRef locates a value written by Append: the index of the chunk it was
// written to and the address of its first byte.
type ArenaRef struct {
	Chunk int
	Ptr   unsafe.Pointer
}

// NewArena returns an arena drawing chunks of minSize up to maxSize bytes
// from the given allocator.
func NewArena(a Allocator, minSize, maxSize int) *Arena {
	return &Arena{parent: a, minSize: minSize, maxSize: maxSize}
}

// Alloc bump-allocates size bytes in the current chunk, growing the arena
// by a fresh chunk when the current one cannot satisfy the request. A size
// over the arena's maximum fails with ErrMemoryLimit before anything is
// allocated.
func (a *Arena) Alloc(size int) (unsafe.Pointer, error) {
	if size > a.maxSize {
		return nil, dberr.MemoryLimitf(
			"arena value of %d bytes exceeds maximum chunk size %d", size, a.maxSize)
	}
	if n := len(a.chunks); n > 0 {
		if last := &a.chunks[n-1]; last.Len()-a.pos >= size {
			p := unsafe.Pointer(unsafe.SliceData(last.data[a.pos:]))
			a.pos += size
			return p, nil
		}
	}
	newSize := a.minSize
	if n := len(a.chunks); n > 0 {
		newSize = min(a.chunks[n-1].Len()*2, a.maxSize)
	}
	// Doubling from a small last chunk may still fall short of the request.
	newSize = max(newSize, size)
	c, err := a.parent.Allocate(newSize)
	if err != nil {
		return nil, err
	}
	a.chunks = append(a.chunks, c)
	p := c.Pointer()
	a.pos = size
	return p, nil
}

// Append copies value into arena space and returns the location written.
func (a *Arena) Append(value []byte) (ArenaRef, error) {
	p, err := a.Alloc(len(value))
	if err != nil {
		return ArenaRef{}, err
	}
	if len(value) > 0 {
		copy(unsafe.Slice((*byte)(p), len(value)), value)
	}
	return ArenaRef{Chunk: len(a.chunks) - 1, Ptr: p}, nil
}

// Close releases every chunk back to the arena's allocator. All pointers
// previously handed out become invalid.
func (a *Arena) Close() {
	a.closed.Close()
	for i := range a.chunks {
		a.chunks[i].Close()
	}
	a.chunks = nil
	a.pos = 0
}

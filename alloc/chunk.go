// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package alloc

import (
	"unsafe"

	"github.com/dbkit-io/dbkit/dberr"
	"github.com/dbkit-io/dbkit/internal/invariants"
)

// Chunk is an owned, aligned byte buffer obtained from an Allocator. A
// Chunk has exactly one owner; ownership moves via Take and the buffer is
// released exactly once via Close. A Chunk whose buffer is nil has never
// been allocated or has already been released.
type Chunk struct {
	// parent is the allocator the buffer is released to. A parentless chunk
	// releases directly against the global default allocator.
	parent Allocator
	data   []byte
	align  int
	closed invariants.CloseChecker
}

// EmptyChunk returns a Chunk owning nothing.
func EmptyChunk() Chunk {
	return Chunk{align: MinAlign}
}

// IsNull reports whether the chunk owns no buffer.
func (c *Chunk) IsNull() bool {
	return c.data == nil
}

// Len returns the length of the owned buffer in bytes, zero if none.
func (c *Chunk) Len() int {
	return len(c.data)
}

// Align returns the alignment the buffer was allocated with.
func (c *Chunk) Align() int {
	return c.align
}

// Data returns the owned buffer. Callers must not retain the slice across a
// Resize or Close and must not use it to duplicate ownership.
func (c *Chunk) Data() []byte {
	return c.data
}

// Pointer returns the base address of the buffer for interfacing with typed
// views, or nil if the chunk owns nothing.
func (c *Chunk) Pointer() unsafe.Pointer {
	if len(c.data) == 0 {
		return nil
	}
	return unsafe.Pointer(&c.data[0])
}

// Resize delegates to the owning allocator's resize path. It fails if the
// chunk owns nothing.
func (c *Chunk) Resize(size int) error {
	if c.data == nil {
		return dberr.Memoryf("resize of a released or never-allocated chunk")
	}
	return c.owner().Resize(c, size)
}

// Take moves the buffer out of c into the returned Chunk, invalidating c.
// The moved-from chunk owns nothing afterwards, so closing both releases
// the buffer exactly once.
func (c *Chunk) Take() Chunk {
	out := Chunk{parent: c.parent, data: c.data, align: c.align}
	c.data = nil
	return out
}

// Close returns the buffer to the allocator that produced it. Closing a
// chunk that owns nothing is a no-op.
func (c *Chunk) Close() {
	if c.data == nil {
		return
	}
	c.closed.Close()
	c.owner().Putback(c)
}

func (c *Chunk) owner() Allocator {
	if c.parent != nil {
		return c.parent
	}
	return Global()
}

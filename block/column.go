// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package block implements the typed, schema-conforming column and block
// containers of the dbkit storage core, plus the zero-copy view types used
// to hand row ranges downstream.
package block

import (
	"github.com/dbkit-io/dbkit/alloc"
	"github.com/dbkit-io/dbkit/dberr"
	"github.com/dbkit-io/dbkit/schema"
)

// Arena chunk size bounds for variable-length column payloads.
const (
	arenaMinSize = 4 << 10
	arenaMaxSize = 1 << 20
)

// Column is a single typed, nullable vector of fixed-width row storage: a
// value chunk, a null-bitmap chunk if the attribute is nullable, and, for
// variable-length types, an owned arena holding the referenced bytes.
//
// The null bitmap stores one byte per row; zero means the row holds a
// value, non-zero means NULL.
type Column struct {
	alloc    alloc.Allocator
	attr     schema.Attribute
	raw      alloc.Chunk
	rawNulls alloc.Chunk
	// arena is non-nil only for deep-copy (variable-length) types. Row
	// slots of such columns hold (pointer, length) records into it.
	arena *alloc.Arena
}

func newColumn(a alloc.Allocator, attr schema.Attribute) *Column {
	c := &Column{
		alloc:    a,
		attr:     attr,
		raw:      alloc.EmptyChunk(),
		rawNulls: alloc.EmptyChunk(),
	}
	if attr.Type.DeepCopy() {
		c.arena = alloc.NewArena(a, arenaMinSize, arenaMaxSize)
	}
	return c
}

// Attribute returns the schema attribute the column stores rows for.
func (c *Column) Attribute() schema.Attribute {
	return c.attr
}

// Capacity returns the number of allocated row slots.
func (c *Column) Capacity() int {
	return c.raw.Len() / c.attr.Type.Width()
}

// Nulls returns the column's null bitmap, one byte per row. It fails with
// ErrAttributeNullability if the attribute is not nullable.
func (c *Column) Nulls() ([]byte, error) {
	if !c.attr.Nullable {
		return nil, dberr.AttributeNotNullable(c.attr.Name)
	}
	return c.rawNulls.Data(), nil
}

// NullsMut returns the column's null bitmap for writing. It fails with
// ErrAttributeNullability if the attribute is not nullable.
func (c *Column) NullsMut() ([]byte, error) {
	return c.Nulls()
}

// Arena returns the column's append-only arena for writers storing
// variable-length values, nil for fixed-width types. Writing a
// variable-length value is a two-step protocol: append the raw bytes to
// the arena, then store the returned (pointer, length) record into the
// fixed-width row slot.
func (c *Column) Arena() *alloc.Arena {
	return c.arena
}

// SetCapacity resizes the column to the given number of row slots. Growth
// preserves all previously written row values; allocation happens lazily
// on the first call.
func (c *Column) SetCapacity(rows int) error {
	width := c.attr.Type.Width()
	if c.raw.IsNull() {
		raw, err := c.alloc.Allocate(rows * width)
		if err != nil {
			return err
		}
		if c.attr.Nullable {
			nulls, err := c.alloc.Allocate(rows)
			if err != nil {
				raw.Close()
				return err
			}
			c.rawNulls = nulls
		}
		c.raw = raw
		return nil
	}
	if err := c.raw.Resize(rows * width); err != nil {
		return err
	}
	if c.attr.Nullable {
		return c.rawNulls.Resize(rows)
	}
	return nil
}

// close releases the column's chunks and arena.
func (c *Column) close() {
	c.raw.Close()
	c.rawNulls.Close()
	if c.arena != nil {
		c.arena.Close()
	}
}

// AsRef returns a non-owning view of the column's full capacity.
func (c *Column) AsRef() RefColumn {
	rc := RefColumn{
		attr:     c.attr,
		rowBytes: c.raw.Data(),
		capacity: c.Capacity(),
	}
	if c.attr.Nullable {
		rc.nullBytes = c.rawNulls.Data()
	}
	return rc
}

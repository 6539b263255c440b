// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package block

import (
	"github.com/cockroachdb/errors"

	"github.com/dbkit-io/dbkit/alloc"
	"github.com/dbkit-io/dbkit/schema"
)

// growthIncrement is the unit blocks grow by when rows are added beyond
// the current capacity.
const growthIncrement = 1024

// Block is an ordered collection of columns sharing one schema and one
// logical row count and capacity; it is the unit of ownership for a batch
// of data. Column i stores rows for schema attribute i.
//
// A block has a single owner and assumes single-writer access while it is
// being built; read-only sharing via views is safe once mutation stops.
type Block struct {
	alloc    alloc.Allocator
	schema   schema.Schema
	columns  []*Column
	rows     int
	capacity int
}

var _ View = (*Block)(nil)

// NewBlock creates a block with one empty column per schema attribute, in
// schema order. No memory is allocated until rows are added or the
// capacity is set.
func NewBlock(a alloc.Allocator, s schema.Schema) *Block {
	b := &Block{alloc: a, schema: s, columns: make([]*Column, s.Count())}
	for i, attr := range s.Attributes() {
		b.columns[i] = newColumn(a, attr)
	}
	return b
}

// Schema implements View.
func (b *Block) Schema() schema.Schema {
	return b.schema
}

// Rows implements View, returning the logically populated row count.
func (b *Block) Rows() int {
	return b.rows
}

// Capacity returns the number of allocated row slots.
func (b *Block) Capacity() int {
	return b.capacity
}

// Column implements View, returning a non-owning view of the column at the
// given position. An out-of-range position is a caller contract violation;
// the schema is fixed at construction.
func (b *Block) Column(pos int) RefColumn {
	if pos < 0 || pos >= len(b.columns) {
		panic(errors.AssertionFailedf("column position %d out of range [0, %d)",
			pos, len(b.columns)))
	}
	return b.columns[pos].AsRef()
}

// ColumnMut gives mutable access to one column for writers. An
// out-of-range position is a caller contract violation.
func (b *Block) ColumnMut(pos int) *Column {
	if pos < 0 || pos >= len(b.columns) {
		panic(errors.AssertionFailedf("column position %d out of range [0, %d)",
			pos, len(b.columns)))
	}
	return b.columns[pos]
}

// SetCapacity grows every column to the given row capacity. The block's
// capacity is committed only after every column has been resized, so a
// failure leaves the block reporting its old capacity; columns grown
// before the failing one are left at the larger size, which is harmless
// because row addressing never exceeds the committed capacity.
func (b *Block) SetCapacity(rows int) error {
	for i, col := range b.columns {
		if err := col.SetCapacity(rows); err != nil {
			return errors.Wrapf(err, "growing column %d (%s)", i, col.attr.Name)
		}
	}
	b.capacity = rows
	if b.rows > rows {
		b.rows = rows
	}
	return nil
}

// AddRow claims the next free row slot, growing the block's capacity by
// the growth increment when it is exhausted, and returns its offset.
func (b *Block) AddRow() (RowOffset, error) {
	if b.rows == b.capacity {
		if err := b.SetCapacity(b.capacity + growthIncrement); err != nil {
			return 0, err
		}
	}
	row := b.rows
	b.rows++
	return row, nil
}

// AddRows claims n consecutive row slots, growing the capacity to the next
// multiple of the growth increment when needed, and returns the offset of
// the first.
func (b *Block) AddRows(n int) (RowOffset, error) {
	if b.rows+n > b.capacity {
		if err := b.SetCapacity(roundUp(b.rows+n, growthIncrement)); err != nil {
			return 0, err
		}
	}
	row := b.rows
	b.rows += n
	return row, nil
}

// Close releases every column's storage. The block and any views aliased
// from it must not be used afterwards.
func (b *Block) Close() {
	for _, col := range b.columns {
		col.close()
	}
	b.columns = nil
	b.rows = 0
	b.capacity = 0
}

func roundUp(v, mult int) int {
	return (v + mult - 1) / mult * mult
}

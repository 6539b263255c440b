// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package table provides a convenience layer for building blocks row by
// row: a Table owning a single block, and a fluent Appender writing typed
// values column by column.
package table

import (
	"github.com/cockroachdb/errors"

	"github.com/dbkit-io/dbkit/alloc"
	"github.com/dbkit-io/dbkit/block"
	"github.com/dbkit-io/dbkit/schema"
)

// Table wraps one owned block. The block can be taken out of the table to
// hand ownership downstream; using a table whose block was taken is a
// caller contract violation.
type Table struct {
	block *block.Block
}

var _ block.View = (*Table)(nil)

// NewTable creates a table with an empty block conforming to the schema.
func NewTable(a alloc.Allocator, s schema.Schema) *Table {
	return &Table{block: block.NewBlock(a, s)}
}

// Schema implements block.View.
func (t *Table) Schema() schema.Schema {
	return t.mustBlock().Schema()
}

// Column implements block.View.
func (t *Table) Column(pos int) block.RefColumn {
	return t.mustBlock().Column(pos)
}

// Rows implements block.View.
func (t *Table) Rows() int {
	return t.mustBlock().Rows()
}

// AddRow claims the next row slot of the underlying block.
func (t *Table) AddRow() (block.RowOffset, error) {
	return t.mustBlock().AddRow()
}

// ColumnMut gives mutable access to one column of the underlying block.
func (t *Table) ColumnMut(pos int) *block.Column {
	return t.mustBlock().ColumnMut(pos)
}

// Block returns the underlying block, which stays owned by the table.
func (t *Table) Block() *block.Block {
	return t.mustBlock()
}

// TakeBlock moves the block out of the table, transferring ownership to
// the caller. The table owns nothing afterwards.
func (t *Table) TakeBlock() *block.Block {
	b := t.mustBlock()
	t.block = nil
	return b
}

// Close releases the underlying block if the table still owns it.
func (t *Table) Close() {
	if t.block != nil {
		t.block.Close()
		t.block = nil
	}
}

func (t *Table) mustBlock() *block.Block {
	if t.block == nil {
		panic(errors.AssertionFailedf("table's block was taken"))
	}
	return t.block
}

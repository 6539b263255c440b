// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package block

import (
	"github.com/cockroachdb/errors"

	"github.com/dbkit-io/dbkit/dberr"
	"github.com/dbkit-io/dbkit/schema"
)

// View is read access to a schema-conforming set of columns. It is
// implemented by Block (owning) and RefView (non-owning window).
type View interface {
	// Schema returns the attributes the view's columns conform to.
	Schema() schema.Schema
	// Column returns a non-owning view of the column at the given position.
	// An out-of-range position is a caller contract violation.
	Column(pos int) RefColumn
	// Rows returns the number of rows visible through the view.
	Rows() int
}

// RefColumn is a non-owning, zero-copy window over a source column's
// storage: the attribute plus borrowed row-byte and null-byte ranges. Its
// lifetime is bounded by the block (or view) it was aliased from.
type RefColumn struct {
	attr      schema.Attribute
	rowBytes  []byte
	nullBytes []byte
	capacity  int
}

// Attribute returns the attribute of the aliased column.
func (rc RefColumn) Attribute() schema.Attribute {
	return rc.attr
}

// Capacity returns the number of row slots visible through the alias.
func (rc RefColumn) Capacity() int {
	return rc.capacity
}

// RowBytes returns the aliased fixed-width row storage.
func (rc RefColumn) RowBytes() []byte {
	return rc.rowBytes
}

// Nulls returns the aliased null bitmap, erroring with
// ErrAttributeNullability if the attribute is not nullable.
func (rc RefColumn) Nulls() ([]byte, error) {
	if !rc.attr.Nullable {
		return nil, dberr.AttributeNotNullable(rc.attr.Name)
	}
	return rc.nullBytes, nil
}

// AliasColumn slices a row range out of a source column view without
// copying. A nil range aliases the source's full capacity; a range past
// the source's capacity fails with ErrRowOutOfBounds.
func AliasColumn(src RefColumn, rng *RowRange) (RefColumn, error) {
	offset, rows := 0, src.capacity
	if rng != nil {
		offset, rows = rng.Offset, rng.Rows
	}
	if offset < 0 || rows < 0 || offset+rows > src.capacity {
		return RefColumn{}, dberr.RowOutOfBoundsf(
			"alias range [%d, %d) exceeds capacity %d", offset, offset+rows, src.capacity)
	}
	width := src.attr.Type.Width()
	out := RefColumn{
		attr:     src.attr,
		rowBytes: src.rowBytes[offset*width : (offset+rows)*width : (offset+rows)*width],
		capacity: rows,
	}
	if src.nullBytes != nil {
		out.nullBytes = src.nullBytes[offset : offset+rows : offset+rows]
	}
	return out, nil
}

// RefView is a non-owning window over a source view's columns, restricted
// to a row range. It holds borrowed storage only and must not outlive its
// source.
type RefView struct {
	schema  schema.Schema
	columns []RefColumn
	rows    int
}

var _ View = RefView{}

// WindowAlias applies AliasColumn to every column of the source view,
// producing a borrowed view of the requested row range. A nil range
// windows the source's full row count; a range past the source's rows
// fails with ErrRowOutOfBounds. This is the single read-sharing primitive
// of the storage core: a sub-batch travels downstream without any copy.
func WindowAlias(src View, rng *RowRange) (RefView, error) {
	offset, rows := 0, src.Rows()
	if rng != nil {
		offset, rows = rng.Offset, rng.Rows
	}
	if offset < 0 || rows < 0 || offset+rows > src.Rows() {
		return RefView{}, dberr.RowOutOfBoundsf(
			"window range [%d, %d) exceeds %d rows", offset, offset+rows, src.Rows())
	}
	out := RefView{
		schema:  src.Schema(),
		columns: make([]RefColumn, src.Schema().Count()),
		rows:    rows,
	}
	for i := range out.columns {
		col, err := AliasColumn(src.Column(i), &RowRange{Offset: offset, Rows: rows})
		if err != nil {
			return RefView{}, err
		}
		out.columns[i] = col
	}
	return out, nil
}

// Schema implements View.
func (v RefView) Schema() schema.Schema {
	return v.schema
}

// Rows implements View.
func (v RefView) Rows() int {
	return v.rows
}

// Column implements View.
func (v RefView) Column(pos int) RefColumn {
	if pos < 0 || pos >= len(v.columns) {
		panic(errors.AssertionFailedf("column position %d out of range [0, %d)",
			pos, len(v.columns)))
	}
	return v.columns[pos]
}

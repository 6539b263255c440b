// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package table

import (
	"github.com/dbkit-io/dbkit/block"
	"github.com/dbkit-io/dbkit/dberr"
	"github.com/dbkit-io/dbkit/types"
)

// Appender builds a table row by row in a fluent style. Each AddRow starts
// a new row; each setter writes the next column in schema order. The first
// error latches: subsequent calls are no-ops and Done reports it.
type Appender struct {
	table *Table
	// row is the offset of the row currently being written, negative until
	// the first AddRow.
	row block.RowOffset
	// col is the position of the next column to write.
	col int
	err error
}

// NewAppender returns an appender for the table. AddRow must start a row
// before any value is written; a setter called first latches an error.
func NewAppender(t *Table) *Appender {
	return &Appender{table: t, row: -1}
}

// AddRow starts the next row, resetting the appender to the first column.
func (a *Appender) AddRow() *Appender {
	if a.err != nil {
		return a
	}
	a.col = 0
	a.row, a.err = a.table.AddRow()
	return a
}

// SetNull marks the next column NULL, erroring if it is not nullable.
func (a *Appender) SetNull() *Appender {
	col, ok := a.nextColumn()
	if !ok {
		return a
	}
	nulls, err := col.NullsMut()
	if err != nil {
		a.err = err
		return a
	}
	nulls[a.row] = 1
	return a
}

// SetUInt32 writes the next column's value.
func (a *Appender) SetUInt32(v uint32) *Appender {
	return putFixed(a, types.UInt32, v)
}

// SetUInt64 writes the next column's value.
func (a *Appender) SetUInt64(v uint64) *Appender {
	return putFixed(a, types.UInt64, v)
}

// SetInt32 writes the next column's value.
func (a *Appender) SetInt32(v int32) *Appender {
	return putFixed(a, types.Int32, v)
}

// SetInt64 writes the next column's value.
func (a *Appender) SetInt64(v int64) *Appender {
	return putFixed(a, types.Int64, v)
}

// SetFloat32 writes the next column's value.
func (a *Appender) SetFloat32(v float32) *Appender {
	return putFixed(a, types.Float32, v)
}

// SetFloat64 writes the next column's value.
func (a *Appender) SetFloat64(v float64) *Appender {
	return putFixed(a, types.Float64, v)
}

// SetBool writes the next column's value.
func (a *Appender) SetBool(v bool) *Appender {
	return putFixed(a, types.Boolean, v)
}

// SetText deep-copies the string into the next column's arena and stores
// the resulting value record in its row slot.
func (a *Appender) SetText(v string) *Appender {
	return putVar(a, types.Text, []byte(v))
}

// SetBlob deep-copies the bytes into the next column's arena and stores
// the resulting value record in its row slot.
func (a *Appender) SetBlob(v []byte) *Appender {
	return putVar(a, types.Blob, v)
}

// Done returns the first error encountered while appending, if any.
func (a *Appender) Done() error {
	return a.err
}

// nextColumn returns the column at the appender's cursor and advances it,
// latching an error if the cursor ran past the schema.
func (a *Appender) nextColumn() (*block.Column, bool) {
	if a.err != nil {
		return nil, false
	}
	if a.row < 0 {
		a.err = dberr.RowOutOfBoundsf("value written before the first AddRow")
		return nil, false
	}
	if a.col >= a.table.Schema().Count() {
		a.err = dberr.AttributeMissingPos(a.col)
		return nil, false
	}
	col := a.table.ColumnMut(a.col)
	a.col++
	return col, true
}

func putFixed[S any](a *Appender, tok types.Token[S], v S) *Appender {
	col, ok := a.nextColumn()
	if !ok {
		return a
	}
	rows, err := block.RowsMut(col, tok)
	if err != nil {
		a.err = err
		return a
	}
	rows[a.row] = v
	clearNull(a, col)
	return a
}

func putVar(a *Appender, tok types.Token[types.ValueRef], v []byte) *Appender {
	col, ok := a.nextColumn()
	if !ok {
		return a
	}
	rows, err := block.RowsMut(col, tok)
	if err != nil {
		a.err = err
		return a
	}
	ref, err := col.Arena().Append(v)
	if err != nil {
		a.err = err
		return a
	}
	rows[a.row] = types.MakeValueRef(ref.Ptr, len(v))
	clearNull(a, col)
	return a
}

func clearNull(a *Appender, col *block.Column) {
	if !col.Attribute().Nullable {
		return
	}
	nulls, err := col.NullsMut()
	if err != nil {
		a.err = err
		return
	}
	nulls[a.row] = 0
}

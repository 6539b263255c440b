// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package block

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/dbkit-io/dbkit/alloc"
	"github.com/dbkit-io/dbkit/dberr"
	"github.com/dbkit-io/dbkit/schema"
	"github.com/dbkit-io/dbkit/types"
)

func buildUInt32Block(t *testing.T, rows int) *Block {
	t.Helper()
	b := NewBlock(alloc.Global(), schema.Single("v", true, types.TypeUInt32))
	row, err := b.AddRows(rows)
	require.NoError(t, err)
	require.Equal(t, 0, row)
	vals, err := RowsMut(b.ColumnMut(0), types.UInt32)
	require.NoError(t, err)
	for i := 0; i < rows; i++ {
		vals[i] = uint32(i + 1)
	}
	return b
}

func TestAliasColumnBounds(t *testing.T) {
	b := buildUInt32Block(t, 4)
	defer b.Close()
	src := b.Column(0)

	_, err := AliasColumn(src, &RowRange{Offset: src.Capacity() - 1, Rows: 2})
	require.Error(t, err)
	require.True(t, errors.Is(err, dberr.ErrRowOutOfBounds))

	_, err = AliasColumn(src, &RowRange{Offset: -1, Rows: 1})
	require.True(t, errors.Is(err, dberr.ErrRowOutOfBounds))

	got, err := AliasColumn(src, nil)
	require.NoError(t, err)
	require.Equal(t, src.Capacity(), got.Capacity())
}

func TestAliasColumnDisjointWindows(t *testing.T) {
	b := buildUInt32Block(t, 4)
	defer b.Close()
	src := b.Column(0)

	w0, err := AliasColumn(src, &RowRange{Offset: 0, Rows: 2})
	require.NoError(t, err)
	w1, err := AliasColumn(src, &RowRange{Offset: 2, Rows: 2})
	require.NoError(t, err)

	r0, err := RefRows(w0, types.UInt32)
	require.NoError(t, err)
	r1, err := RefRows(w1, types.UInt32)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2}, r0)
	require.Equal(t, []uint32{3, 4}, r1)

	// The two windows reference disjoint byte ranges; writes through one
	// are invisible through the other but visible through the written
	// window's own raw bytes.
	before := append([]uint32(nil), r1...)
	r0[0], r0[1] = 100, 200
	require.Equal(t, before, r1)
	require.Equal(t, []byte{200, 0, 0, 0}, w0.RowBytes()[4:8])
}

func TestWindowAliasBounds(t *testing.T) {
	b := buildUInt32Block(t, 4)
	defer b.Close()

	// Windowing validates against the view's row count, not its capacity.
	require.Greater(t, b.Capacity(), b.Rows())
	_, err := WindowAlias(b, &RowRange{Offset: 2, Rows: 3})
	require.Error(t, err)
	require.True(t, errors.Is(err, dberr.ErrRowOutOfBounds))

	v, err := WindowAlias(b, nil)
	require.NoError(t, err)
	require.Equal(t, 4, v.Rows())
}

func TestWindowAliasZeroCopy(t *testing.T) {
	b := buildUInt32Block(t, 4)
	defer b.Close()

	v, err := WindowAlias(b, &RowRange{Offset: 1, Rows: 3})
	require.NoError(t, err)
	require.Equal(t, 3, v.Rows())
	require.Equal(t, b.Schema().Count(), v.Schema().Count())

	rows, err := RefRows(v.Column(0), types.UInt32)
	require.NoError(t, err)
	require.Equal(t, []uint32{2, 3, 4}, rows)

	// Writes to the source block are visible through the window: the
	// window borrows the block's bytes rather than copying them.
	src, err := RowsMut(b.ColumnMut(0), types.UInt32)
	require.NoError(t, err)
	src[1] = 42
	require.Equal(t, uint32(42), rows[0])

	nulls, err := v.Column(0).Nulls()
	require.NoError(t, err)
	require.Len(t, nulls, 3)
}

func TestWindowAliasOfWindow(t *testing.T) {
	b := buildUInt32Block(t, 4)
	defer b.Close()

	outer, err := WindowAlias(b, &RowRange{Offset: 1, Rows: 3})
	require.NoError(t, err)
	inner, err := WindowAlias(outer, &RowRange{Offset: 1, Rows: 2})
	require.NoError(t, err)

	rows, err := RefRows(inner.Column(0), types.UInt32)
	require.NoError(t, err)
	require.Equal(t, []uint32{3, 4}, rows)

	_, err = WindowAlias(outer, &RowRange{Offset: 1, Rows: 3})
	require.True(t, errors.Is(err, dberr.ErrRowOutOfBounds))
}

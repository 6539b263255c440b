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

func TestColumnSetCapacityRoundTrip(t *testing.T) {
	c := newColumn(alloc.Global(), schema.Attribute{Name: "v", Type: types.TypeUInt64})
	defer c.close()

	require.Zero(t, c.Capacity())
	require.NoError(t, c.SetCapacity(128))
	require.Equal(t, 128, c.Capacity())

	rows, err := RowsMut(c, types.UInt64)
	require.NoError(t, err)
	for i := range rows {
		rows[i] = uint64(i) * 3
	}

	// Growing preserves every previously written row value.
	for _, capacity := range []int{256, 1000, 4096} {
		require.NoError(t, c.SetCapacity(capacity))
		require.Equal(t, capacity, c.Capacity())
		rows, err = Rows(c, types.UInt64)
		require.NoError(t, err)
		for i := 0; i < 128; i++ {
			require.Equal(t, uint64(i)*3, rows[i], "row %d after grow to %d", i, capacity)
		}
	}
}

func TestColumnTypedAccessMismatch(t *testing.T) {
	c := newColumn(alloc.Global(), schema.Attribute{Name: "v", Type: types.TypeUInt32})
	defer c.close()
	require.NoError(t, c.SetCapacity(4))

	_, err := Rows(c, types.Int32)
	require.Error(t, err)
	require.True(t, errors.Is(err, dberr.ErrAttributeType))

	_, err = Rows(c, types.UInt32)
	require.NoError(t, err)

	// Text and blob share a store type but remain distinct tags.
	vc := newColumn(alloc.Global(), schema.Attribute{Name: "t", Type: types.TypeText})
	defer vc.close()
	require.NoError(t, vc.SetCapacity(4))
	_, err = Rows(vc, types.Blob)
	require.True(t, errors.Is(err, dberr.ErrAttributeType))
	_, err = Rows(vc, types.Text)
	require.NoError(t, err)
}

func TestColumnNullsNonNullable(t *testing.T) {
	c := newColumn(alloc.Global(), schema.Attribute{Name: "v", Type: types.TypeInt64})
	defer c.close()
	require.NoError(t, c.SetCapacity(4))

	_, err := c.Nulls()
	require.Error(t, err)
	require.True(t, errors.Is(err, dberr.ErrAttributeNullability))
	_, err = c.NullsMut()
	require.True(t, errors.Is(err, dberr.ErrAttributeNullability))
}

func TestColumnTextRoundTrip(t *testing.T) {
	c := newColumn(alloc.Global(), schema.Attribute{Name: "s", Nullable: true, Type: types.TypeText})
	defer c.close()
	require.NoError(t, c.SetCapacity(8))

	// Two-step deep-copy protocol: append the bytes to the arena, store the
	// returned record in the row slot.
	ref, err := c.Arena().Append([]byte("hello"))
	require.NoError(t, err)
	rows, err := RowsMut(c, types.Text)
	require.NoError(t, err)
	rows[0] = types.MakeValueRef(ref.Ptr, 5)

	got, err := Rows(c, types.Text)
	require.NoError(t, err)
	require.Equal(t, 5, got[0].Len())
	require.Equal(t, []byte("hello"), got[0].Bytes())
	require.Equal(t, "hello", got[0].String())

	nulls, err := c.Nulls()
	require.NoError(t, err)
	require.Zero(t, nulls[0])
}

func TestColumnFixedArenaAbsent(t *testing.T) {
	c := newColumn(alloc.Global(), schema.Attribute{Name: "v", Type: types.TypeFloat64})
	defer c.close()
	require.Nil(t, c.Arena())
}

// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package block

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/dbkit-io/dbkit/dberr"
	"github.com/dbkit-io/dbkit/internal/invariants"
	"github.com/dbkit-io/dbkit/types"
)

// RowOffset is an index into a block or column row.
type RowOffset = int

// RowRange selects a contiguous run of rows.
type RowRange struct {
	Offset RowOffset
	Rows   int
}

// Rows returns the column's fixed-width row storage as a typed slice, one
// element per allocated row slot. It fails with ErrAttributeType if the
// token's tag does not match the attribute's runtime type.
func Rows[S any](c *Column, tok types.Token[S]) ([]S, error) {
	if c.attr.Type != tok.Tag() {
		return nil, dberr.AttributeType(c.attr.Name)
	}
	return typedSlice[S](c.raw.Pointer(), c.Capacity()), nil
}

// RowsMut returns the column's fixed-width row storage for writing. It
// fails with ErrAttributeType if the token's tag does not match the
// attribute's runtime type.
func RowsMut[S any](c *Column, tok types.Token[S]) ([]S, error) {
	return Rows(c, tok)
}

// RefRows returns a non-owning column view's row storage as a typed
// read-only slice, with the same tag check as Rows.
func RefRows[S any](rc RefColumn, tok types.Token[S]) ([]S, error) {
	if rc.attr.Type != tok.Tag() {
		return nil, dberr.AttributeType(rc.attr.Name)
	}
	var p unsafe.Pointer
	if len(rc.rowBytes) > 0 {
		p = unsafe.Pointer(&rc.rowBytes[0])
	}
	return typedSlice[S](p, rc.capacity), nil
}

func typedSlice[S any](p unsafe.Pointer, n int) []S {
	if n == 0 {
		return nil
	}
	if invariants.Enabled {
		var z S
		if uintptr(p)&(unsafe.Alignof(z)-1) != 0 {
			panic(errors.AssertionFailedf("row storage pointer %p not %d-byte aligned",
				p, unsafe.Alignof(z)))
		}
	}
	return unsafe.Slice((*S)(p), n)
}

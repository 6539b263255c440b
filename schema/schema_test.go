// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package schema

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/dbkit-io/dbkit/dberr"
	"github.com/dbkit-io/dbkit/types"
)

func TestNewSchemaDuplicate(t *testing.T) {
	_, err := NewSchema(
		Attribute{Name: "a", Type: types.TypeUInt32},
		Attribute{Name: "b", Type: types.TypeText},
		Attribute{Name: "a", Type: types.TypeInt64},
	)
	require.Error(t, err)
	require.True(t, errors.Is(err, dberr.ErrAttributeDuplicate))
}

func TestSchemaLookup(t *testing.T) {
	s, err := NewSchema(
		Attribute{Name: "id", Type: types.TypeUInt64},
		Attribute{Name: "name", Nullable: true, Type: types.TypeText},
	)
	require.NoError(t, err)
	require.Equal(t, 2, s.Count())

	attr, err := s.Get(1)
	require.NoError(t, err)
	require.Equal(t, "name", attr.Name)
	require.True(t, attr.Nullable)

	_, err = s.Get(2)
	require.True(t, errors.Is(err, dberr.ErrAttributeMissing))

	pos, attr, err := s.Find("id")
	require.NoError(t, err)
	require.Equal(t, 0, pos)
	require.Equal(t, types.TypeUInt64, attr.Type)

	_, _, err = s.Find("missing")
	require.True(t, errors.Is(err, dberr.ErrAttributeMissing))
}

func TestSingle(t *testing.T) {
	s := Single("v", false, types.TypeBoolean)
	require.Equal(t, 1, s.Count())
	require.Equal(t, types.TypeBoolean, s.Attributes()[0].Type)
}

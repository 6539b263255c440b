// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package schema models the ordered, name-unique list of typed, nullable
// attributes a block conforms to. The storage core addresses columns only
// by position; name resolution lives here.
package schema

import (
	"github.com/dbkit-io/dbkit/dberr"
	"github.com/dbkit-io/dbkit/types"
)

// Attribute is the metadata of a single column: its name, nullability and
// type tag.
type Attribute struct {
	Name     string
	Nullable bool
	Type     types.Type
}

// Schema is an immutable ordered list of attributes with unique names.
type Schema struct {
	attrs []Attribute
}

// NewSchema builds a schema from the given attributes, rejecting repeated
// names with ErrAttributeDuplicate.
func NewSchema(attrs ...Attribute) (Schema, error) {
	seen := make(map[string]struct{}, len(attrs))
	for i := range attrs {
		if _, ok := seen[attrs[i].Name]; ok {
			return Schema{}, dberr.AttributeDuplicate(attrs[i].Name)
		}
		seen[attrs[i].Name] = struct{}{}
	}
	return Schema{attrs: append([]Attribute(nil), attrs...)}, nil
}

// Single returns a one-attribute schema.
func Single(name string, nullable bool, t types.Type) Schema {
	return Schema{attrs: []Attribute{{Name: name, Nullable: nullable, Type: t}}}
}

// Count returns the number of attributes.
func (s Schema) Count() int {
	return len(s.attrs)
}

// Get returns the attribute at the given position.
func (s Schema) Get(pos int) (Attribute, error) {
	if pos < 0 || pos >= len(s.attrs) {
		return Attribute{}, dberr.AttributeMissingPos(pos)
	}
	return s.attrs[pos], nil
}

// Find returns the position and attribute with the given name.
func (s Schema) Find(name string) (int, Attribute, error) {
	for i := range s.attrs {
		if s.attrs[i].Name == name {
			return i, s.attrs[i], nil
		}
	}
	return 0, Attribute{}, dberr.AttributeMissingName(name)
}

// Attributes returns the schema's attributes in order. The returned slice
// is shared; callers must not mutate it.
func (s Schema) Attributes() []Attribute {
	return s.attrs
}

// Copyright 2025 The dbkit Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package dberr defines the error taxonomy shared by the dbkit storage
// core. Each category is a marker error; callers classify failures with
// errors.Is against the exported sentinels and never by string matching.
package dberr

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

var (
	// ErrMemory is the generic allocation failure.
	ErrMemory = errors.New("dbkit: memory allocation failed")
	// ErrMemoryLimit marks allocation failures caused by a policy limit
	// (allocator budget or arena maximum size) rather than exhaustion.
	ErrMemoryLimit = errors.New("dbkit: memory limit reached")
	// ErrAttributeType marks typed access with a token that does not match
	// the attribute's runtime type tag.
	ErrAttributeType = errors.New("dbkit: attribute type mismatch")
	// ErrAttributeNullability marks null-bitmap access on a non-nullable
	// attribute.
	ErrAttributeNullability = errors.New("dbkit: attribute not nullable")
	// ErrAttributeMissing marks references to unknown attribute names or
	// positions.
	ErrAttributeMissing = errors.New("dbkit: unknown attribute")
	// ErrAttributeDuplicate marks schema construction with repeated names.
	ErrAttributeDuplicate = errors.New("dbkit: duplicate attribute")
	// ErrRowOutOfBounds marks aliasing or windowing past the source's
	// capacity or row count.
	ErrRowOutOfBounds = errors.New("dbkit: row out of bounds")
	// ErrUnknownType marks parsing of an unrecognized type name.
	ErrUnknownType = errors.New("dbkit: unknown type")
)

// Memoryf returns a generic allocation failure.
func Memoryf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrMemory)
}

// MemoryLimitf returns a policy-limit allocation failure.
func MemoryLimitf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrMemoryLimit)
}

// AttributeType returns a type mismatch error for the named attribute.
func AttributeType(name string) error {
	return errors.Mark(
		errors.Newf("type mismatch on attribute %s", redact.Safe(name)),
		ErrAttributeType)
}

// AttributeNotNullable returns a nullability error for the named attribute.
func AttributeNotNullable(name string) error {
	return errors.Mark(
		errors.Newf("attribute %s is not nullable", redact.Safe(name)),
		ErrAttributeNullability)
}

// AttributeMissingName returns an unknown-attribute error for a name lookup.
func AttributeMissingName(name string) error {
	return errors.Mark(
		errors.Newf("no attribute named %s", redact.Safe(name)),
		ErrAttributeMissing)
}

// AttributeMissingPos returns an unknown-attribute error for a position
// lookup.
func AttributeMissingPos(pos int) error {
	return errors.Mark(
		errors.Newf("no attribute at position %d", redact.Safe(pos)),
		ErrAttributeMissing)
}

// AttributeDuplicate returns a duplicate-name schema construction error.
func AttributeDuplicate(name string) error {
	return errors.Mark(
		errors.Newf("duplicate attribute name %s", redact.Safe(name)),
		ErrAttributeDuplicate)
}

// RowOutOfBoundsf returns a range violation error.
func RowOutOfBoundsf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrRowOutOfBounds)
}

// UnknownType returns a type parsing error.
func UnknownType(s string) error {
	return errors.Mark(
		errors.Newf("unknown type name %q", redact.Safe(s)),
		ErrUnknownType)
}

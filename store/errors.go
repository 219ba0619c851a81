// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package store

import "errors"

// Errors returned while acquiring a Store. Each failure step has its own
// sentinel so callers can report exactly which step failed.
var (
	// ErrInvalidLayout is returned for a negative or oversized element count.
	ErrInvalidLayout = errors.New("store: invalid layout")

	// ErrCreate is returned when the backing file cannot be created or opened.
	ErrCreate = errors.New("store: create backing file")

	// ErrResize is returned when the backing file cannot be sized.
	ErrResize = errors.New("store: resize backing file")

	// ErrMap is returned when the region cannot be mapped into memory.
	ErrMap = errors.New("store: map region")

	// ErrUnknownKind is returned by Open for an unrecognized Kind.
	ErrUnknownKind = errors.New("store: unknown backing kind")
)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package store

import (
	"fmt"
	"strings"
)

// Kind selects where a Store's region physically lives.
type Kind int

const (
	// KindHeap backs the region with anonymous process memory.
	KindHeap Kind = iota

	// KindFile backs the region with a memory-mapped file.
	KindFile

	// KindAuto picks KindHeap when the region fits in free memory and
	// KindFile otherwise.
	KindAuto
)

// String returns the flag spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindHeap:
		return "heap"
	case KindFile:
		return "file"
	case KindAuto:
		return "auto"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses "heap", "file" or "auto", ignoring case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "heap":
		return KindHeap, nil
	case "file":
		return KindFile, nil
	case "auto":
		return KindAuto, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

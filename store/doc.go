// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package store provides the backing memory for a sort visualization.
//
// A Store is a single contiguous byte region holding two segments laid out
// back to back:
//
//	[0, Count*4)                    Count uint32 values, native endian
//	[Count*4, Count*4 + Side*Side*4) Side x Side RGBX pixels, stride Side*4
//
// where Side = ceil(sqrt(Count)). The region has no header; its layout is
// fixed by Count alone.
//
// # Backing Kinds
//
//   - KindHeap: anonymous process memory, released on Close.
//   - KindFile: a file created or truncated to exactly Layout.Size bytes and
//     mapped shared read/write. Close unmaps it and closes the file.
//   - KindAuto: heap when the region fits the host's free memory, file
//     otherwise.
//
// Both kinds are interchangeable for consumers: Values and Pixels return
// slices over the same kind of region.
//
// # Concurrency
//
// A Store performs no synchronization of its own. Readers and writers of
// Values and Pixels coordinate externally.
package store

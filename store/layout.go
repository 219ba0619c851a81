// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package store

import (
	"fmt"
	"math"
)

const (
	// ValueSize is the size of one array element in bytes.
	ValueSize = 4

	// PixelSize is the size of one canvas pixel in bytes.
	PixelSize = 4

	// MaxCount is the largest supported element count. Every value of a
	// permutation of 0..Count-1 must fit in a uint32.
	MaxCount = 1 << 32
)

// Layout describes the sizes of the two segments of a Store.
type Layout struct {
	// Count is the number of uint32 elements in the array segment.
	Count int

	// Side is the width and height of the square canvas, ceil(sqrt(Count)).
	Side int
}

// NewLayout returns the layout for count elements.
func NewLayout(count int) (Layout, error) {
	if count < 0 || uint64(count) > MaxCount {
		return Layout{}, fmt.Errorf("%w: count=%d", ErrInvalidLayout, count)
	}
	return Layout{Count: count, Side: CanvasSide(count)}, nil
}

// CanvasSide returns the smallest s such that s*s >= n.
func CanvasSide(n int) int {
	if n <= 0 {
		return 0
	}
	s := int(math.Sqrt(float64(n)))
	// float64 rounding can land one off in either direction for large n.
	for s*s < n {
		s++
	}
	for s > 0 && (s-1)*(s-1) >= n {
		s--
	}
	return s
}

// ArrayBytes returns the size of the array segment.
func (l Layout) ArrayBytes() int64 {
	return int64(l.Count) * ValueSize
}

// CanvasBytes returns the size of the canvas segment.
func (l Layout) CanvasBytes() int64 {
	return int64(l.Side) * int64(l.Side) * PixelSize
}

// Size returns the total region size, ArrayBytes + CanvasBytes.
func (l Layout) Size() int64 {
	return l.ArrayBytes() + l.CanvasBytes()
}

// Stride returns the canvas row stride in bytes.
func (l Layout) Stride() int {
	return l.Side * PixelSize
}

// String implements fmt.Stringer.
func (l Layout) String() string {
	return fmt.Sprintf("Layout{Count: %d, Side: %d, Size: %d}", l.Count, l.Side, l.Size())
}

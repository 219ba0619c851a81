// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termview

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/sortview/internal/cache"
)

// upperHalf is drawn with the upper pixel as foreground and the lower
// pixel as background.
const upperHalf = "▀"

// cellCacheSize bounds the rendered cells kept between frames. A sorted
// canvas repeats the same color pairs across every frame.
const cellCacheSize = 1 << 14

var cells = cache.New[uint64, string](cellCacheSize)

// Cells renders img as lines of half-block cells, two pixel rows per line.
// An odd last pixel row is paired with black.
func Cells(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			var lower color.RGBA
			if y+1 < b.Max.Y {
				lower = img.RGBAAt(x, y+1)
			}
			sb.WriteString(cell(img.RGBAAt(x, y), lower))
		}
	}
	return sb.String()
}

func cell(upper, lower color.RGBA) string {
	key := rgbKey(upper)<<24 | rgbKey(lower)
	return cells.GetOrCreate(key, func() string {
		return lipgloss.NewStyle().
			Foreground(hex(upper)).
			Background(hex(lower)).
			Render(upperHalf)
	})
}

func rgbKey(c color.RGBA) uint64 {
	return uint64(c.R)<<16 | uint64(c.G)<<8 | uint64(c.B)
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

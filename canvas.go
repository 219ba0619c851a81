package sortview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// PixelFormat is the byte order of canvas pixels: R, G, B, then an unused
// byte the renderer sets to 0xFF.
const PixelFormat = gputypes.TextureFormatRGBA8Unorm

// Canvas is a square RGBX pixel grid, usually aliasing the tail of a
// backing store.
type Canvas struct {
	side   int
	stride int
	pix    []byte
}

// NewCanvas allocates a canvas of side x side pixels.
func NewCanvas(side int) *Canvas {
	side = max(side, 0)
	return &Canvas{
		side:   side,
		stride: side * 4,
		pix:    make([]byte, side*side*4),
	}
}

// CanvasOf wraps pix as a side x side canvas without copying.
func CanvasOf(pix []byte, side int) (*Canvas, error) {
	if side < 0 || len(pix) < side*side*4 {
		return nil, fmt.Errorf("%w: %d bytes for side %d", ErrCanvasSize, len(pix), side)
	}
	return &Canvas{side: side, stride: side * 4, pix: pix[:side*side*4]}, nil
}

// Side returns the width and height in pixels.
func (c *Canvas) Side() int {
	return c.side
}

// Stride returns the row stride in bytes.
func (c *Canvas) Stride() int {
	return c.stride
}

// Pix returns the raw pixel bytes.
func (c *Canvas) Pix() []byte {
	return c.pix
}

// Format returns the pixel format as a GPU texture format.
func (c *Canvas) Format() gputypes.TextureFormat {
	return PixelFormat
}

// At returns the pixel at (x, y). Out-of-range coordinates return the zero
// color.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || x >= c.side || y < 0 || y >= c.side {
		return color.RGBA{}
	}
	i := y*c.stride + x*4
	return color.RGBA{R: c.pix[i], G: c.pix[i+1], B: c.pix[i+2], A: c.pix[i+3]}
}

// Image returns an *image.RGBA sharing the canvas memory.
func (c *Canvas) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    c.pix,
		Stride: c.stride,
		Rect:   image.Rect(0, 0, c.side, c.side),
	}
}

// ScaleTo resamples the canvas into dst with bilinear filtering. Only the
// source pixels needed for dst are read, so scaling a huge canvas into a
// window-sized image stays cheap.
func (c *Canvas) ScaleTo(dst draw.Image) {
	if c.side == 0 || dst.Bounds().Empty() {
		return
	}
	src := c.Image()
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
}

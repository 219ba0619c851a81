package sortview

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(5)
	if c.Side() != 5 || c.Stride() != 20 || len(c.Pix()) != 100 {
		t.Errorf("NewCanvas(5) = side %d stride %d len %d", c.Side(), c.Stride(), len(c.Pix()))
	}
	if c.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v", c.Format())
	}
}

func TestCanvasOf(t *testing.T) {
	buf := make([]byte, 40)
	c, err := CanvasOf(buf, 3)
	if err != nil {
		t.Fatalf("CanvasOf error = %v", err)
	}
	if len(c.Pix()) != 36 {
		t.Errorf("len(Pix()) = %d, want 36", len(c.Pix()))
	}
	c.Pix()[0] = 1
	if buf[0] != 1 {
		t.Error("CanvasOf copied the buffer")
	}

	if _, err := CanvasOf(make([]byte, 35), 3); !errors.Is(err, ErrCanvasSize) {
		t.Errorf("CanvasOf(short) error = %v, want ErrCanvasSize", err)
	}
	if _, err := CanvasOf(nil, -1); !errors.Is(err, ErrCanvasSize) {
		t.Errorf("CanvasOf(side -1) error = %v, want ErrCanvasSize", err)
	}
}

func TestCanvasAtOutOfRange(t *testing.T) {
	c := NewCanvas(2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if got := c.At(p[0], p[1]); got != (color.RGBA{}) {
			t.Errorf("At(%d, %d) = %v, want zero", p[0], p[1], got)
		}
	}
}

func TestCanvasImageSharesMemory(t *testing.T) {
	c := NewCanvas(3)
	img := c.Image()
	if img.Bounds() != image.Rect(0, 0, 3, 3) {
		t.Errorf("Bounds() = %v", img.Bounds())
	}
	img.SetRGBA(2, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	if got := c.At(2, 1); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("At(2, 1) = %v after writing through Image()", got)
	}
}

func TestCanvasScaleTo(t *testing.T) {
	c := NewCanvas(2)
	for i := 0; i < len(c.Pix()); i += 4 {
		c.Pix()[i], c.Pix()[i+1], c.Pix()[i+2], c.Pix()[i+3] = 200, 0, 100, 255
	}

	dst := image.NewRGBA(image.Rect(0, 0, 8, 6))
	c.ScaleTo(dst)

	// A uniform canvas scales to the same uniform color.
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			if got := dst.RGBAAt(x, y); got != (color.RGBA{200, 0, 100, 255}) {
				t.Fatalf("dst(%d, %d) = %v", x, y, got)
			}
		}
	}
}

func TestCanvasScaleToEmpty(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	NewCanvas(0).ScaleTo(dst)
	NewCanvas(2).ScaleTo(image.NewRGBA(image.Rectangle{}))
}

// Package snapshot saves sortview frames as PNG images with the status line
// printed below the canvas.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/sortview"
)

// DefaultSize is the default width and height of the saved canvas.
const DefaultSize = 512

// captionHeight fits one line of basicfont.Face7x13 with padding.
const captionHeight = 20

// ErrEmptyCanvas is returned for a canvas with no pixels.
var ErrEmptyCanvas = errors.New("snapshot: empty canvas")

// Compose draws c scaled to size x size with st's title in a caption bar
// underneath. Cells never drawn by the renderer come out black.
func Compose(c *sortview.Canvas, st sortview.Status, size int) (*image.RGBA, error) {
	if c.Side() == 0 {
		return nil, ErrEmptyCanvas
	}
	if size <= 0 {
		size = DefaultSize
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size+captionHeight))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

	frame := img.SubImage(image.Rect(0, 0, size, size)).(*image.RGBA)
	c.ScaleTo(frame)
	opaque(frame)

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, size+captionHeight-5),
	}
	d.DrawString(st.Title())
	return img, nil
}

// opaque sets alpha to 0xFF. Pixels are premultiplied, so unrendered
// (all zero) cells become black.
func opaque(img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xFF
		}
	}
}

// Encode writes the composed snapshot to w as PNG.
func Encode(w io.Writer, c *sortview.Canvas, st sortview.Status, size int) error {
	img, err := Compose(c, st, size)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}

// FileName returns the file name for a snapshot taken at t in state st.
func FileName(t time.Time, st sortview.RunState) string {
	return fmt.Sprintf("sortview-%s-%s.png", t.UTC().Format("20060102-150405.000"), strings.ToLower(st.String()))
}

// SaveFile writes a snapshot into dir, creating it if needed, and returns
// the file path.
func SaveFile(dir string, c *sortview.Canvas, st sortview.Status, size int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	path := filepath.Join(dir, FileName(time.Now(), st.State))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	if err := Encode(f, c, st, size); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	return path, nil
}

// Handler returns a snapshot handler for sortview.WithSnapshotHandler that
// saves into dir.
func Handler(dir string, size int) func(*sortview.Canvas, sortview.Status) error {
	return func(c *sortview.Canvas, st sortview.Status) error {
		path, err := SaveFile(dir, c, st, size)
		if err != nil {
			return err
		}
		sortview.Logger().Info("snapshot: saved", slog.String("path", path), slog.String("state", st.State.String()))
		return nil
	}
}

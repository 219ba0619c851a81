package snapshot

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/sortview"
)

// sortedCanvas renders the identity permutation of n values.
func sortedCanvas(n, side int) *sortview.Canvas {
	values := make([]uint32, n)
	sortview.Reset(values)
	c := sortview.NewCanvas(side)
	sortview.RenderFrame(values, c)
	return c
}

func TestCompose(t *testing.T) {
	c := sortedCanvas(16, 4)
	st := sortview.Status{State: sortview.Idle, Elapsed: time.Second}

	img, err := Compose(c, st, 64)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64+captionHeight {
		t.Fatalf("bounds = %v, want 64x%d", b, 64+captionHeight)
	}

	// Top-left is cell 0 (black); bottom-right is cell 15 (R=B=191).
	if got := img.RGBAAt(0, 0); got != (color.RGBA{A: 0xFF}) {
		t.Errorf("top-left = %v, want opaque black", got)
	}
	if got := img.RGBAAt(63, 63); got.R < 150 || got.B < 150 || got.G != 0 {
		t.Errorf("bottom-right = %v, want magenta", got)
	}

	// The caption bar has some text pixels.
	lit := 0
	for y := 64; y < 64+captionHeight; y++ {
		for x := 0; x < 64; x++ {
			if img.RGBAAt(x, y).R > 0x80 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("caption bar is empty")
	}
}

func TestComposeUnrenderedCellsAreBlack(t *testing.T) {
	// 3 values on a 2x2 canvas: cell 3 is never rendered.
	c := sortedCanvas(3, 2)
	img, err := Compose(c, sortview.Status{State: sortview.Idle}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{A: 0xFF}) {
		t.Errorf("unrendered cell = %v, want opaque black", got)
	}
}

func TestComposeEmpty(t *testing.T) {
	if _, err := Compose(sortview.NewCanvas(0), sortview.Status{}, 10); !errors.Is(err, ErrEmptyCanvas) {
		t.Errorf("Compose(empty) error = %v, want ErrEmptyCanvas", err)
	}
}

func TestEncodeDecodes(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sortedCanvas(100, 10), sortview.Status{State: sortview.Sorting}, 0); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != DefaultSize || b.Dy() != DefaultSize+captionHeight {
		t.Errorf("decoded bounds = %v", b)
	}
}

func TestFileName(t *testing.T) {
	ts := time.Date(2026, 10, 19, 8, 30, 15, 250_000_000, time.UTC)
	if got, want := FileName(ts, sortview.Idle), "sortview-20261019-083015.250-idle.png"; got != want {
		t.Errorf("FileName() = %q, want %q", got, want)
	}
}

func TestHandlerSavesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	h := Handler(dir, 32)

	if err := h(sortedCanvas(16, 4), sortview.Status{State: sortview.Idle}); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), "-idle.png") {
		t.Fatalf("entries = %v, want one idle snapshot", entries)
	}
}

func TestSaveFileBadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := SaveFile(filepath.Join(file, "sub"), sortedCanvas(4, 2), sortview.Status{}, 8); err == nil {
		t.Error("SaveFile() under a regular file succeeded")
	}
}

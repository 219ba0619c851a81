// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpuview

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/sortview"
)

// Errors returned by View.
var (
	// ErrNilWindow is returned by New without a WindowProvider.
	ErrNilWindow = errors.New("gpuview: nil WindowProvider")

	// ErrClosed is returned by Present and Draw after Close.
	ErrClosed = errors.New("gpuview: view is closed")

	// ErrNoTextureCreator is returned by Draw when the drawer cannot
	// create textures.
	ErrNoTextureCreator = errors.New("gpuview: drawer has no TextureCreator")

	// ErrUnsupportedFormat is returned by New for surface formats other
	// than RGBA8 and BGRA8.
	ErrUnsupportedFormat = errors.New("gpuview: unsupported surface format")
)

// textureDestroyer matches gogpu.Texture.Destroy.
type textureDestroyer interface {
	Destroy()
}

// View implements sortview.Presenter for a gogpu window.
//
// Present, SetTitle and Poll are called by Visualizer.Run. Draw and Close
// are called from the window's draw goroutine. Key and resize callbacks may
// arrive on a third goroutine.
type View struct {
	win     gpucontext.WindowProvider
	format  gputypes.TextureFormat
	keys    map[gpucontext.Key]sortview.Command
	onTitle func(string)
	cmds    chan sortview.Command

	// Logical size from the last resize event, zero until one arrives.
	resizeW, resizeH atomic.Int32

	// Present side.
	scratch *image.RGBA

	mu     sync.Mutex
	back   *image.RGBA
	seq    uint64
	title  string
	closed bool

	// Draw side.
	front *image.RGBA
	drawn uint64
	tex   gpucontext.Texture
}

// New creates a View for win.
func New(win gpucontext.WindowProvider, opts ...Option) (*View, error) {
	if win == nil {
		return nil, ErrNilWindow
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch o.format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, o.format)
	}

	v := &View{
		win:     win,
		format:  o.format,
		keys:    o.keys,
		onTitle: o.onTitle,
		cmds:    make(chan sortview.Command, o.queue),
	}
	if o.events != nil {
		o.events.OnKeyPress(v.keyPressed)
		o.events.OnResize(v.resized)
	}
	return v, nil
}

func (v *View) keyPressed(k gpucontext.Key, _ gpucontext.Modifiers) {
	if cmd, ok := v.keys[k]; ok {
		v.Send(cmd)
	}
}

func (v *View) resized(w, h int) {
	v.resizeW.Store(int32(w))
	v.resizeH.Store(int32(h))
	v.win.RequestRedraw()
}

// Send queues cmd for the next Poll, for example when the window is
// closed. It reports false if the queue is full.
func (v *View) Send(cmd sortview.Command) bool {
	select {
	case v.cmds <- cmd:
		return true
	default:
		sortview.Logger().Debug("gpuview: command dropped", slog.String("cmd", cmd.String()))
		return false
	}
}

// Poll implements sortview.Presenter.
func (v *View) Poll() sortview.Command {
	select {
	case cmd := <-v.cmds:
		return cmd
	default:
		return sortview.CommandNone
	}
}

// SetTitle implements sortview.Presenter.
func (v *View) SetTitle(title string) {
	v.mu.Lock()
	v.title = title
	v.mu.Unlock()
	if v.onTitle != nil {
		v.onTitle(title)
	}
}

// Title returns the last status line.
func (v *View) Title() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.title
}

// PixelSize returns the window size in physical pixels.
func (v *View) PixelSize() (int, int) {
	w, h := int(v.resizeW.Load()), int(v.resizeH.Load())
	if w <= 0 || h <= 0 {
		w, h = v.win.Size()
	}
	sf := v.win.ScaleFactor()
	if sf <= 0 {
		sf = 1
	}
	return int(math.Round(float64(w) * sf)), int(math.Round(float64(h) * sf))
}

// Present implements sortview.Presenter. It scales c to the window and
// hands the result to the next Draw. A minimized window is skipped.
func (v *View) Present(c *sortview.Canvas) error {
	w, h := v.PixelSize()
	if w <= 0 || h <= 0 {
		return nil
	}

	if v.scratch == nil || v.scratch.Rect.Dx() != w || v.scratch.Rect.Dy() != h {
		v.scratch = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	c.ScaleTo(v.scratch)
	if v.format == gputypes.TextureFormatBGRA8Unorm {
		swapRB(v.scratch.Pix)
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	v.scratch, v.back = v.back, v.scratch
	v.seq++
	v.mu.Unlock()

	v.win.RequestRedraw()
	return nil
}

// Draw uploads the newest presented frame, if any, and draws it at the
// window origin. Draw before the first Present draws nothing.
func (v *View) Draw(dc gpucontext.TextureDrawer) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	fresh := v.seq != v.drawn
	if fresh {
		v.front, v.back = v.back, v.front
		v.drawn = v.seq
	}
	v.mu.Unlock()

	if fresh {
		if err := v.upload(dc); err != nil {
			return err
		}
	}
	if v.tex == nil {
		return nil
	}
	return dc.DrawTexture(v.tex, 0, 0)
}

func (v *View) upload(dc gpucontext.TextureDrawer) error {
	w, h := v.front.Rect.Dx(), v.front.Rect.Dy()

	if v.tex != nil && v.tex.Width() == w && v.tex.Height() == h {
		if u, ok := v.tex.(gpucontext.TextureUpdater); ok {
			if err := u.UpdateData(v.front.Pix); err != nil {
				return fmt.Errorf("gpuview: texture update: %w", err)
			}
			return nil
		}
	}

	creator := dc.TextureCreator()
	if creator == nil {
		return ErrNoTextureCreator
	}
	tex, err := creator.NewTextureFromRGBA(w, h, v.front.Pix)
	if err != nil {
		return fmt.Errorf("gpuview: NewTextureFromRGBA %dx%d: %w", w, h, err)
	}
	v.destroyTexture()
	v.tex = tex
	sortview.Logger().Debug("gpuview: texture created", slog.Int("width", w), slog.Int("height", h))
	return nil
}

func (v *View) destroyTexture() {
	if d, ok := v.tex.(textureDestroyer); ok {
		d.Destroy()
	}
	v.tex = nil
}

// Close releases the texture. Later Present and Draw calls return
// ErrClosed. Close is idempotent.
func (v *View) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	v.closed = true
	v.destroyTexture()
	return nil
}

// swapRB converts RGBA bytes to BGRA in place.
func swapRB(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}

var _ sortview.Presenter = (*View)(nil)

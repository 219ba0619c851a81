package sortview

import (
	"sync/atomic"
	"time"

	"github.com/gogpu/sortview/internal/parallel"
)

// RenderFrame colors every canvas cell that has a value. Cell i, at
// (i mod S, i div S), is colored by where values[i] belongs: red is its
// target column over S, blue its target row over S, green is zero. A sorted
// buffer renders as a smooth gradient; a shuffled one as noise.
//
// RenderFrame is a pure function of values and the canvas side. Cells at
// index >= len(values) are left untouched.
func RenderFrame(values []uint32, c *Canvas) {
	RenderRows(values, c, 0, c.Side())
}

// RenderRows renders canvas rows [y0, y1). Disjoint row ranges may be
// rendered concurrently.
func RenderRows(values []uint32, c *Canvas, y0, y1 int) {
	s := c.Side()
	if s == 0 {
		return
	}
	n := len(values)
	side := uint32(s)
	fs := float32(s)
	pix, stride := c.Pix(), c.Stride()

	for y := max(y0, 0); y < y1; y++ {
		i := y * s
		if i >= n {
			return
		}
		row := values[i:min(i+s, n)]
		out := pix[y*stride : y*stride+len(row)*4]
		for x, v := range row {
			ax := v % side
			ay := v / side
			p := out[x*4 : x*4+4 : x*4+4]
			p[0] = uint8(float32(ax) / fs * 255)
			p[1] = 0
			p[2] = uint8(float32(ay) / fs * 255)
			p[3] = 0xFF
		}
	}
}

// renderWorker redraws the canvas until Exiting, in every other state.
// It reads the buffer without synchronization: frames taken while the sort
// worker writes may tear. Only Idle frames are guaranteed consistent.
type renderWorker struct {
	values   []uint32
	canvas   *Canvas
	state    *stateMachine
	pool     *parallel.Pool
	bands    []parallel.Band
	interval time.Duration

	frames atomic.Uint64
	done   chan struct{}
}

func (w *renderWorker) run() {
	defer close(w.done)

	for w.state.Load() != Exiting {
		w.pass()
		w.frames.Add(1)
		if w.interval > 0 {
			time.Sleep(w.interval)
		}
	}
}

func (w *renderWorker) pass() {
	if w.pool == nil {
		RenderFrame(w.values, w.canvas)
		return
	}
	w.pool.Run(w.bands, func(b parallel.Band) {
		RenderRows(w.values, w.canvas, b.Y0, b.Y1)
	})
}

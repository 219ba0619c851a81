// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termview

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gogpu/sortview"
)

// Errors returned by View.
var (
	// ErrStarted is returned by a second Start.
	ErrStarted = errors.New("termview: already started")
)

// Default terminal size used until the terminal reports its own.
const (
	DefaultColumns = 80
	DefaultRows    = 24
)

// Option configures a View.
type Option func(*options)

type options struct {
	input     io.Reader
	output    io.Writer
	altScreen bool
	cols      int
	rows      int
	queue     int
}

// WithInput reads keys from r instead of the terminal.
func WithInput(r io.Reader) Option {
	return func(o *options) {
		o.input = r
	}
}

// WithOutput writes to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithAltScreen controls whether the alternate screen buffer is used.
// It is on by default.
func WithAltScreen(on bool) Option {
	return func(o *options) {
		o.altScreen = on
	}
}

// WithSize sets the terminal size assumed until a resize is reported.
func WithSize(cols, rows int) Option {
	return func(o *options) {
		if cols > 0 && rows > 0 {
			o.cols, o.rows = cols, rows
		}
	}
}

// View implements sortview.Presenter on a bubbletea program.
type View struct {
	prog  *tea.Program
	model *model
	cmds  chan sortview.Command

	cols, rows atomic.Int32
	started    atomic.Bool
	done       chan struct{}
	runErr     error

	// Present side.
	frame *image.RGBA

	closeOnce sync.Once
}

// New creates a View. Call Start to take over the terminal.
func New(opts ...Option) *View {
	o := options{altScreen: true, cols: DefaultColumns, rows: DefaultRows, queue: 16}
	for _, opt := range opts {
		opt(&o)
	}

	v := &View{
		cmds: make(chan sortview.Command, o.queue),
		done: make(chan struct{}),
	}
	v.cols.Store(int32(o.cols))
	v.rows.Store(int32(o.rows))
	v.model = &model{view: v}

	popts := []tea.ProgramOption{tea.WithoutSignalHandler()}
	if o.altScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	if o.input != nil {
		popts = append(popts, tea.WithInput(o.input))
	}
	if o.output != nil {
		popts = append(popts, tea.WithOutput(o.output))
	}
	v.prog = tea.NewProgram(v.model, popts...)
	return v
}

// Start runs the bubbletea program in the background. When the program
// ends, for example because the terminal was closed, a quit command is
// queued.
func (v *View) Start() error {
	if !v.started.CompareAndSwap(false, true) {
		return ErrStarted
	}
	go func() {
		defer close(v.done)
		_, err := v.prog.Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			v.runErr = err
			sortview.Logger().Warn("termview: program ended", slog.Any("err", err))
		}
		v.Send(sortview.CommandQuit)
	}()
	return nil
}

// Close stops the program, restores the terminal and returns the error
// the program ended with, if any.
func (v *View) Close() error {
	if !v.started.Load() {
		return nil
	}
	v.closeOnce.Do(v.prog.Quit)
	<-v.done
	return v.runErr
}

// Done is closed when the program has ended.
func (v *View) Done() <-chan struct{} {
	return v.done
}

func (v *View) resize(cols, rows int) {
	v.cols.Store(int32(cols))
	v.rows.Store(int32(rows))
}

// Size returns the terminal size in cells.
func (v *View) Size() (cols, rows int) {
	return int(v.cols.Load()), int(v.rows.Load())
}

// Send queues cmd for the next Poll. It reports false if the queue is full.
func (v *View) Send(cmd sortview.Command) bool {
	select {
	case v.cmds <- cmd:
		return true
	default:
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
	v.send(titleMsg(title))
}

// Present implements sortview.Presenter. The canvas is scaled to the
// terminal, leaving the last line for the status bar.
func (v *View) Present(c *sortview.Canvas) error {
	cols, rows := v.Size()
	w, h := cols, (rows-1)*2
	if w <= 0 || h <= 0 {
		return nil
	}
	if v.frame == nil || v.frame.Rect.Dx() != w || v.frame.Rect.Dy() != h {
		v.frame = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	c.ScaleTo(v.frame)
	v.send(frameMsg(Cells(v.frame)))
	return nil
}

// send delivers msg to a running program and drops it otherwise.
func (v *View) send(msg tea.Msg) {
	if !v.started.Load() {
		return
	}
	select {
	case <-v.done:
		return
	default:
	}
	v.prog.Send(msg)
}

var _ sortview.Presenter = (*View)(nil)

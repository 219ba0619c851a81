package sortview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/sortview/internal/parallel"
	"github.com/gogpu/sortview/store"
)

// Visualizer is the controller. It owns the backing store and the shared
// RunState, and runs a sort worker and a render worker over the same buffer.
//
// Restart, State, Status and Close may be called from any goroutine.
type Visualizer struct {
	opts      options
	store     *store.Store
	ownsStore bool
	values    []uint32
	canvas    *Canvas
	state     *stateMachine
	timing    *timing

	pool     *parallel.Pool
	sorter   *sortWorker
	renderer *renderWorker

	started   atomic.Bool
	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// New acquires the backing store and prepares the workers without starting
// them. A store failure is returned as is, wrapping one of store.ErrCreate,
// store.ErrResize, store.ErrMap or store.ErrInvalidLayout.
func New(opts ...Option) (*Visualizer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	st, owns := o.store, false
	if st == nil {
		layout, err := store.NewLayout(o.count)
		if err != nil {
			return nil, err
		}
		st, err = store.Open(o.backing, layout)
		if err != nil {
			return nil, err
		}
		owns = true
	}

	layout := st.Layout()
	canvas, err := CanvasOf(st.Pixels(), layout.Side)
	if err != nil {
		if owns {
			_ = st.Close()
		}
		return nil, err
	}

	v := &Visualizer{
		opts:      o,
		store:     st,
		ownsStore: owns,
		values:    st.Values(),
		canvas:    canvas,
		state:     newStateMachine(o.hook),
		timing:    newTiming(o.now()),
	}

	workers := o.renderWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var bands []parallel.Band
	if workers > 1 && layout.Side > 1 {
		v.pool = parallel.NewPool(workers)
		// Several bands per worker so stealing can balance them.
		bands = parallel.Split(layout.Side, workers*4)
	}

	v.sorter = &sortWorker{
		values:    v.values,
		state:     v.state,
		timing:    v.timing,
		now:       o.now,
		seed:      o.seed,
		idleDelay: o.idleDelay,
		done:      make(chan struct{}),
	}
	v.renderer = &renderWorker{
		values:   v.values,
		canvas:   canvas,
		state:    v.state,
		pool:     v.pool,
		bands:    bands,
		interval: o.frameInterval,
		done:     make(chan struct{}),
	}
	return v, nil
}

// Start launches the sort and render workers. The state starts at
// Resetting, so the first shuffle and sort begin immediately.
func (v *Visualizer) Start() error {
	if v.closed.Load() {
		return ErrClosed
	}
	if !v.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	Logger().Info("sortview: starting workers",
		slog.Int("count", len(v.values)),
		slog.Int("side", v.canvas.Side()),
		slog.String("backing", v.store.Kind().String()))

	go v.sorter.run()
	go v.renderer.run()
	return nil
}

// Restart requests a new shuffle and sort cycle. While a sort pass is
// running the request is kept and served once the pass ends. It returns
// false after Close.
func (v *Visualizer) Restart() bool {
	return v.state.restart()
}

// State returns the current RunState.
func (v *Visualizer) State() RunState {
	return v.state.Load()
}

// Timing returns the bracket of the latest sort pass.
func (v *Visualizer) Timing() TimingSample {
	return v.timing.sample()
}

// Status returns a report for the presentation layer.
func (v *Visualizer) Status() Status {
	st := v.state.Load()
	ts, running := v.timing.current()

	elapsed := ts.Duration()
	if st == Sorting {
		// Between the shuffle and the first clock reading nothing has
		// elapsed yet.
		elapsed = 0
		if running {
			elapsed = max(v.opts.now().Sub(ts.LastStart), 0)
		}
	}

	return Status{
		State:   st,
		Count:   len(v.values),
		Timing:  ts,
		Elapsed: elapsed,
		Frames:  v.renderer.frames.Load(),
		Passes:  v.sorter.passes.Load(),
	}
}

// Canvas returns the canvas the render worker draws into.
func (v *Visualizer) Canvas() *Canvas {
	return v.canvas
}

// Values returns the shared buffer. Reads race with the sort worker unless
// the state is Idle.
func (v *Visualizer) Values() []uint32 {
	return v.values
}

// Store returns the backing store.
func (v *Visualizer) Store() *store.Store {
	return v.store
}

// Run starts the workers if needed and drives p until a quit command,
// ctx cancellation or a presentation error, then closes the visualizer.
func (v *Visualizer) Run(ctx context.Context, p Presenter) error {
	if p == nil {
		return ErrNilPresenter
	}
	if v.closed.Load() {
		return ErrClosed
	}
	if !v.started.Load() {
		if err := v.Start(); err != nil && !errors.Is(err, ErrAlreadyStarted) {
			return err
		}
	}

	ticker := time.NewTicker(v.opts.presentInterval)
	defer ticker.Stop()

	var (
		runErr    error
		lastTitle string
		lastStat  = time.Now()
		lastFrame uint64
	)

loop:
	for {
		for cmd := p.Poll(); cmd != CommandNone; cmd = p.Poll() {
			switch cmd {
			case CommandQuit:
				break loop
			case CommandRestart:
				v.Restart()
			case CommandSnapshot:
				if err := v.snapshot(); err != nil {
					Logger().Warn("sortview: snapshot failed", slog.Any("err", err))
				}
			}
		}

		status := v.Status()
		if title := status.Title(); title != lastTitle {
			p.SetTitle(title)
			lastTitle = title
		}
		if err := p.Present(v.canvas); err != nil {
			runErr = fmt.Errorf("sortview: present: %w", err)
			break
		}

		if now := time.Now(); now.Sub(lastStat) >= time.Second {
			Logger().Debug("sortview: render rate",
				slog.Float64("fps", float64(status.Frames-lastFrame)/now.Sub(lastStat).Seconds()),
				slog.String("state", status.State.String()))
			lastStat, lastFrame = now, status.Frames
		}

		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
		}
	}

	return errors.Join(runErr, v.Close())
}

func (v *Visualizer) snapshot() error {
	if v.opts.snapshot == nil {
		return nil
	}
	return v.opts.snapshot(v.canvas, v.Status())
}

// Close sets Exiting, waits for the render worker and gives the sort
// worker DefaultShutdownGrace (or WithShutdownGrace) to finish. A sort pass
// cannot be interrupted; if one is still running, the backing store is left
// mapped for the rest of the process instead of being released under it.
// Close is safe to call multiple times.
func (v *Visualizer) Close() error {
	v.closeOnce.Do(func() {
		v.closed.Store(true)
		v.closeErr = v.shutdown()
	})
	return v.closeErr
}

func (v *Visualizer) shutdown() error {
	v.state.exit()

	if v.started.Load() {
		<-v.renderer.done
		if v.pool != nil {
			v.pool.Close()
		}
		if !v.waitSorter() {
			Logger().Warn("sortview: sort pass still running, abandoning backing store",
				slog.String("backing", v.store.Kind().String()),
				slog.Int("count", len(v.values)))
			return nil
		}
	} else if v.pool != nil {
		v.pool.Close()
	}

	if !v.ownsStore {
		return nil
	}
	if err := v.store.Close(); err != nil {
		return fmt.Errorf("sortview: release store: %w", err)
	}
	return nil
}

func (v *Visualizer) waitSorter() bool {
	grace := v.opts.shutdownGrace
	if grace <= 0 {
		select {
		case <-v.sorter.done:
			return true
		default:
			return false
		}
	}
	t := time.NewTimer(grace)
	defer t.Stop()
	select {
	case <-v.sorter.done:
		return true
	case <-t.C:
		return false
	}
}

// Done returns a channel closed when the sort worker has returned. It is
// never closed if Start was not called.
func (v *Visualizer) Done() <-chan struct{} {
	return v.sorter.done
}

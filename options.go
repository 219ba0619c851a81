package sortview

import (
	"time"

	"github.com/gogpu/sortview/store"
)

// Defaults used when no option overrides them.
const (
	// DefaultCount is the number of elements sorted.
	DefaultCount = 1_000_000_000

	// DefaultIdleDelay is how long the sort worker sleeps per poll while Idle.
	DefaultIdleDelay = 5 * time.Millisecond

	// DefaultPresentInterval is the pause between presented frames in Run.
	DefaultPresentInterval = 16 * time.Millisecond

	// DefaultShutdownGrace is how long Close waits for the sort worker
	// before abandoning the backing store.
	DefaultShutdownGrace = 250 * time.Millisecond
)

// Option configures a Visualizer during creation.
//
// Example:
//
//	v, err := sortview.New(
//	    sortview.WithCount(1<<20),
//	    sortview.WithBacking(store.Config{Kind: store.KindFile, Path: "sort.bin"}),
//	)
type Option func(*options)

type options struct {
	count           int
	backing         store.Config
	store           *store.Store
	idleDelay       time.Duration
	frameInterval   time.Duration
	presentInterval time.Duration
	shutdownGrace   time.Duration
	renderWorkers   int
	seed            func() uint64
	now             func() time.Time
	hook            TransitionFunc
	snapshot        func(*Canvas, Status) error
}

func defaultOptions() options {
	return options{
		count:           DefaultCount,
		idleDelay:       DefaultIdleDelay,
		presentInterval: DefaultPresentInterval,
		shutdownGrace:   DefaultShutdownGrace,
		renderWorkers:   1,
		seed:            func() uint64 { return uint64(time.Now().UnixNano()) },
		now:             time.Now,
	}
}

// WithCount sets the number of elements. Ignored when WithStore is used.
func WithCount(n int) Option {
	return func(o *options) {
		o.count = n
	}
}

// WithBacking selects the backing store acquired by New.
func WithBacking(cfg store.Config) Option {
	return func(o *options) {
		o.backing = cfg
	}
}

// WithStore uses an already opened store. The caller keeps ownership and
// closes it after the Visualizer is closed; the element count comes from
// the store's layout.
func WithStore(s *store.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithIdleDelay sets the sort worker's poll delay while Idle.
func WithIdleDelay(d time.Duration) Option {
	return func(o *options) {
		o.idleDelay = d
	}
}

// WithFrameInterval throttles the render worker to one pass per interval.
// Zero, the default, renders continuously.
func WithFrameInterval(d time.Duration) Option {
	return func(o *options) {
		o.frameInterval = d
	}
}

// WithPresentInterval sets the pause between frames handed to the
// Presenter in Run.
func WithPresentInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.presentInterval = d
		}
	}
}

// WithShutdownGrace sets how long Close waits for an in-flight sort.
func WithShutdownGrace(d time.Duration) Option {
	return func(o *options) {
		o.shutdownGrace = d
	}
}

// WithRenderWorkers splits each render pass across n goroutines.
// With n == 1, the default, the render worker draws every row itself.
// Zero or negative means GOMAXPROCS.
func WithRenderWorkers(n int) Option {
	return func(o *options) {
		o.renderWorkers = n
	}
}

// WithSeed makes shuffles reproducible: cycle k is seeded with seed+k.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		var k uint64
		o.seed = func() uint64 {
			s := seed + k
			k++
			return s
		}
	}
}

// WithClock replaces time.Now for pass timing.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithTransitionHook registers fn to observe every state change.
func WithTransitionHook(fn TransitionFunc) Option {
	return func(o *options) {
		o.hook = fn
	}
}

// WithSnapshotHandler handles CommandSnapshot in Run.
func WithSnapshotHandler(fn func(*Canvas, Status) error) Option {
	return func(o *options) {
		o.snapshot = fn
	}
}

package sortview

import (
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync/atomic"
	"time"
)

// Reset writes the identity permutation, values[i] = i.
func Reset(values []uint32) {
	for i := range values {
		values[i] = uint32(i)
	}
}

// Shuffle permutes values uniformly at random.
func Shuffle(values []uint32, r *rand.Rand) {
	r.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
}

// newRand returns a generator for one shuffle.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// sortWorker owns the reset, shuffle and sort cycle over the buffer.
type sortWorker struct {
	values    []uint32
	state     *stateMachine
	timing    *timing
	now       func() time.Time
	seed      func() uint64
	idleDelay time.Duration

	passes atomic.Uint64
	done   chan struct{}
}

// run resets the buffer and then follows the RunState until Exiting.
// A sort pass always runs to completion; Exiting is seen between phases.
func (w *sortWorker) run() {
	defer close(w.done)

	Reset(w.values)

	for {
		switch w.state.Load() {
		case Exiting:
			return

		case Idle:
			w.state.wait(w.idleDelay)

		case Resetting:
			Shuffle(w.values, newRand(w.seed()))
			w.state.advance(Resetting, Sorting)

		case Sorting:
			w.timing.markStart(w.now())
			slices.Sort(w.values)
			w.timing.markEnd(w.now())

			n := w.passes.Add(1)
			Logger().Info("sortview: sort pass finished",
				slog.Uint64("pass", n),
				slog.Int("count", len(w.values)),
				slog.Duration("took", w.timing.sample().Duration()))

			w.state.advance(Sorting, Idle)
		}
	}
}

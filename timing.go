package sortview

import (
	"sync/atomic"
	"time"
)

// TimingSample brackets the most recent sort pass. While a pass is running,
// LastStart belongs to it and LastEnd still belongs to the previous pass.
type TimingSample struct {
	LastStart time.Time
	LastEnd   time.Time
}

// Duration returns LastEnd - LastStart, or zero while a pass is running.
func (s TimingSample) Duration() time.Duration {
	if s.LastEnd.Before(s.LastStart) {
		return 0
	}
	return s.LastEnd.Sub(s.LastStart)
}

// timing is written only by the sort worker. Offsets from epoch keep the
// monotonic clock reading and fit in a single atomic word.
type timing struct {
	epoch   time.Time
	start   atomic.Int64
	end     atomic.Int64
	running atomic.Bool
}

func newTiming(epoch time.Time) *timing {
	return &timing{epoch: epoch}
}

func (t *timing) markStart(now time.Time) {
	t.start.Store(int64(now.Sub(t.epoch)))
	t.running.Store(true)
}

func (t *timing) markEnd(now time.Time) {
	t.end.Store(int64(now.Sub(t.epoch)))
	t.running.Store(false)
}

// current reports whether a pass is running together with a sample that is
// at least as new as that flag. running is loaded first: markStart publishes
// the start offset before the flag, so a true flag always comes with the
// start of the pass it belongs to.
func (t *timing) current() (TimingSample, bool) {
	running := t.running.Load()
	return t.sample(), running
}

func (t *timing) sample() TimingSample {
	return TimingSample{
		LastStart: t.epoch.Add(time.Duration(t.start.Load())),
		LastEnd:   t.epoch.Add(time.Duration(t.end.Load())),
	}
}

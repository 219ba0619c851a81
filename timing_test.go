package sortview

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTimingSample(t *testing.T) {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tm := newTiming(epoch)

	if d := tm.sample().Duration(); d != 0 {
		t.Errorf("Duration() before any pass = %v, want 0", d)
	}

	tm.markStart(epoch.Add(2 * time.Second))
	if d := tm.sample().Duration(); d != 0 {
		t.Errorf("Duration() while running = %v, want 0", d)
	}

	tm.markEnd(epoch.Add(3500 * time.Millisecond))
	s := tm.sample()
	if !s.LastStart.Equal(epoch.Add(2 * time.Second)) {
		t.Errorf("LastStart = %v", s.LastStart)
	}
	if got := s.Duration(); got != 1500*time.Millisecond {
		t.Errorf("Duration() = %v, want 1.5s", got)
	}
}

func TestTimingCurrent(t *testing.T) {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tm := newTiming(epoch)

	tm.markStart(epoch.Add(time.Second))
	tm.markEnd(epoch.Add(2 * time.Second))
	if _, running := tm.current(); running {
		t.Fatal("running after markEnd")
	}

	tm.markStart(epoch.Add(10 * time.Second))
	s, running := tm.current()
	if !running {
		t.Fatal("not running after markStart")
	}
	if !s.LastStart.Equal(epoch.Add(10 * time.Second)) {
		t.Errorf("LastStart = %v, want the start of the running pass", s.LastStart)
	}
	if !s.LastEnd.Equal(epoch.Add(2 * time.Second)) {
		t.Errorf("LastEnd = %v, want the end of the previous pass", s.LastEnd)
	}
}

// A reader that sees the running flag must also see the start of the pass
// that set it, never an older one.
func TestTimingCurrentConcurrent(t *testing.T) {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tm := newTiming(epoch)
	const passes = 2000

	var started atomic.Int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		for k := int64(1); k <= passes; k++ {
			tm.markStart(epoch.Add(time.Duration(k*10) * time.Millisecond))
			started.Store(k)
			tm.markEnd(epoch.Add(time.Duration(k*10+5) * time.Millisecond))
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
		}
		k := started.Load()
		s, running := tm.current()
		if running && k > 0 {
			floor := epoch.Add(time.Duration(k*10) * time.Millisecond)
			if s.LastStart.Before(floor) {
				t.Fatalf("running with LastStart %v older than pass %d", s.LastStart.Sub(epoch), k)
			}
		}
	}
}

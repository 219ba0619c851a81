package sortview

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// RunState is the phase shared by the controller and the workers.
type RunState int32

const (
	// Resetting is entered on startup and on restart. The sort worker
	// shuffles the buffer and moves on to Sorting.
	Resetting RunState = iota

	// Sorting is entered by the sort worker after the shuffle.
	Sorting

	// Idle is entered by the sort worker after the sort completes.
	Idle

	// Exiting ends both worker loops. No transition leaves it.
	Exiting
)

// String returns the state name.
func (s RunState) String() string {
	switch s {
	case Resetting:
		return "Resetting"
	case Sorting:
		return "Sorting"
	case Idle:
		return "Idle"
	case Exiting:
		return "Exiting"
	default:
		return fmt.Sprintf("RunState(%d)", int32(s))
	}
}

// TransitionFunc observes a state change. It runs on the goroutine that
// made the change and must not block.
type TransitionFunc func(from, to RunState)

// stateMachine holds the RunState. The state is polled, not waited on;
// wake only shortens the sort worker's idle sleep.
type stateMachine struct {
	v    atomic.Int32
	wake chan struct{}
	hook TransitionFunc
}

func newStateMachine(hook TransitionFunc) *stateMachine {
	m := &stateMachine{
		wake: make(chan struct{}, 1),
		hook: hook,
	}
	m.v.Store(int32(Resetting))
	return m
}

func (m *stateMachine) Load() RunState {
	return RunState(m.v.Load())
}

// advance moves the state from one phase to the next if, and only if, it is
// still in from. A controller write that raced with the worker is kept.
// Only the worker edges Resetting to Sorting and Sorting to Idle are accepted.
func (m *stateMachine) advance(from, to RunState) bool {
	if !workerEdge(from, to) {
		return false
	}
	if !m.v.CompareAndSwap(int32(from), int32(to)) {
		return false
	}
	m.notify(from, to)
	return true
}

func workerEdge(from, to RunState) bool {
	return (from == Resetting && to == Sorting) || (from == Sorting && to == Idle)
}

// restart requests a new reset cycle. It overwrites Idle and Sorting and
// fails only once Exiting has been set.
func (m *stateMachine) restart() bool {
	for {
		cur := m.Load()
		switch cur {
		case Exiting:
			return false
		case Resetting:
			m.signal()
			return true
		}
		if m.v.CompareAndSwap(int32(cur), int32(Resetting)) {
			m.notify(cur, Resetting)
			m.signal()
			return true
		}
	}
}

// exit sets Exiting. It reports false if the state was already Exiting.
func (m *stateMachine) exit() bool {
	for {
		cur := m.Load()
		if cur == Exiting {
			return false
		}
		if m.v.CompareAndSwap(int32(cur), int32(Exiting)) {
			m.notify(cur, Exiting)
			m.signal()
			return true
		}
	}
}

func (m *stateMachine) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// wait sleeps for at most d, returning early when signaled.
func (m *stateMachine) wait(d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-m.wake:
	case <-t.C:
	}
}

func (m *stateMachine) notify(from, to RunState) {
	Logger().Debug("sortview: state", slog.String("from", from.String()), slog.String("to", to.String()))
	if m.hook != nil {
		m.hook(from, to)
	}
}

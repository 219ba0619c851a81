package sortview

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Status is a point-in-time report for the presentation layer.
type Status struct {
	State  RunState
	Count  int
	Timing TimingSample

	// Elapsed is the running time of the current pass while Sorting and the
	// duration of the last pass otherwise.
	Elapsed time.Duration

	// Frames is the number of render passes completed.
	Frames uint64

	// Passes is the number of sort passes completed.
	Passes uint64
}

var defaultPrinter = message.NewPrinter(language.English)

// Title formats the status as a window title in English.
func (s Status) Title() string {
	return s.Format(defaultPrinter)
}

// Format formats the status as a window title using p's locale.
func (s Status) Format(p *message.Printer) string {
	switch s.State {
	case Resetting:
		return p.Sprintf("Resetting %d elements...", s.Count)
	case Sorting:
		return p.Sprintf("Sorting... (%.2f seconds elapsed)", s.Elapsed.Seconds())
	case Idle:
		return p.Sprintf("Done after %.2f seconds. Press S to sort again.", s.Elapsed.Seconds())
	case Exiting:
		return p.Sprintf("Exiting...")
	default:
		return s.State.String()
	}
}

package sortview

// Command is a user request delivered by a Presenter.
type Command int

const (
	// CommandNone means no command is pending.
	CommandNone Command = iota

	// CommandRestart starts a new shuffle and sort cycle.
	CommandRestart

	// CommandQuit stops the visualizer.
	CommandQuit

	// CommandSnapshot saves the current frame.
	CommandSnapshot
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandRestart:
		return "restart"
	case CommandQuit:
		return "quit"
	case CommandSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// Presenter is the window or terminal that shows frames. Visualizer.Run
// calls it from a single goroutine.
type Presenter interface {
	// Present shows the canvas, scaled to the presenter's surface.
	// The canvas may be modified concurrently by the render worker.
	Present(c *Canvas) error

	// SetTitle shows the status line.
	SetTitle(title string)

	// Poll returns the next pending command without blocking, or
	// CommandNone.
	Poll() Command
}

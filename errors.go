package sortview

import "errors"

// Errors returned by the visualizer.
var (
	// ErrClosed is returned when a closed visualizer is used.
	ErrClosed = errors.New("sortview: visualizer is closed")

	// ErrAlreadyStarted is returned by Start on a running visualizer.
	ErrAlreadyStarted = errors.New("sortview: workers already started")

	// ErrCanvasSize is returned when a pixel buffer is too small for the
	// requested canvas.
	ErrCanvasSize = errors.New("sortview: pixel buffer too small")

	// ErrNilPresenter is returned by Run without a presenter.
	ErrNilPresenter = errors.New("sortview: nil presenter")
)

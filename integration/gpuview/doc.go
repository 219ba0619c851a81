// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpuview presents a sortview canvas in a gogpu window.
//
// A View is a sortview.Presenter with two sides. Visualizer.Run calls
// Present, which scales the canvas to the window's pixel size into a back
// buffer. The window's draw callback calls Draw, which uploads the newest
// buffer to a GPU texture and draws it:
//
//	view, err := gpuview.New(app.WindowProvider(),
//	    gpuview.WithEvents(app.EventSource()),
//	    gpuview.WithDeviceProvider(app.GPUContextProvider()),
//	)
//	go v.Run(ctx, view)
//	app.OnDraw(func(dc *gogpu.Context) {
//	    _ = view.Draw(dc.AsTextureDrawer())
//	})
//
// Key presses from the EventSource become commands: S restarts, P takes a
// snapshot, and Q or Escape quit.
//
// The package depends only on gpucontext interfaces, not on gogpu itself.
package gpuview

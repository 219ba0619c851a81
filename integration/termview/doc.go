// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package termview presents a sortview canvas in a terminal.
//
// Each terminal cell shows two canvas pixels with the upper half block
// character: the foreground color is the upper pixel, the background the
// lower one. The last line is a status bar, and the status is also sent as
// the terminal window title.
//
// Keys: s restarts, p takes a snapshot, q, esc and ctrl+c quit.
//
//	view := termview.New()
//	if err := view.Start(); err != nil {
//	    return err
//	}
//	defer view.Close()
//	return v.Run(ctx, view)
package termview

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpuview

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/sortview"
)

// DefaultKeyMap binds keys to visualizer commands.
var DefaultKeyMap = map[gpucontext.Key]sortview.Command{
	gpucontext.KeyS:      sortview.CommandRestart,
	gpucontext.KeyP:      sortview.CommandSnapshot,
	gpucontext.KeyQ:      sortview.CommandQuit,
	gpucontext.KeyEscape: sortview.CommandQuit,
}

// defaultQueue is the number of commands buffered between Poll calls.
const defaultQueue = 16

// Option configures a View.
type Option func(*options)

type options struct {
	events  gpucontext.EventSource
	format  gputypes.TextureFormat
	keys    map[gpucontext.Key]sortview.Command
	onTitle func(string)
	queue   int
}

func defaultOptions() options {
	return options{
		format: gputypes.TextureFormatRGBA8Unorm,
		keys:   DefaultKeyMap,
		queue:  defaultQueue,
	}
}

// WithEvents subscribes the view to key presses and resizes.
func WithEvents(es gpucontext.EventSource) Option {
	return func(o *options) {
		o.events = es
	}
}

// WithDeviceProvider matches uploads to the provider's surface format.
// A headless provider, reporting TextureFormatUndefined, keeps RGBA.
func WithDeviceProvider(dp gpucontext.DeviceProvider) Option {
	return func(o *options) {
		if dp == nil {
			return
		}
		if f := dp.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			o.format = f
		}
	}
}

// WithSurfaceFormat sets the texture byte order directly. Only
// TextureFormatRGBA8Unorm and TextureFormatBGRA8Unorm are supported.
func WithSurfaceFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithKeyMap replaces DefaultKeyMap.
func WithKeyMap(keys map[gpucontext.Key]sortview.Command) Option {
	return func(o *options) {
		o.keys = keys
	}
}

// WithTitleFunc forwards status lines to the host, usually the window
// title setter.
func WithTitleFunc(fn func(string)) Option {
	return func(o *options) {
		o.onTitle = fn
	}
}

// WithCommandQueue sets how many key commands are buffered. Presses beyond
// it are dropped.
func WithCommandQueue(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queue = n
		}
	}
}

// Package shell defines the contract between windows and the native backends that host them
package shell

import (
	"context"

	"github.com/pkg/errors"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/event"
	"github.com/lixenwraith/retain/render"
)

// ErrClosed is returned when creating windows on a shell that stopped running
var ErrClosed = errors.New("shell closed")

// Flags are the window-level flags read from the root entity
type Flags struct {
	Borderless  bool
	Resizeable  bool
	AlwaysOnTop bool
}

// Options describe a native window
type Options struct {
	ID     string
	Title  string
	Bounds core.Rect
	Flags  Flags

	// Sender feeds the window request queue; shells use it for native close and resize
	Sender event.Sender
}

// Adapter is the window side a shell drives
type Adapter interface {
	// ID identifies the window for routing and logging
	ID() string
	// Input buffers native input for the next tick; safe from any goroutine
	Input(in event.Input)
	// Tick runs one pipeline pass. Any error ends the window
	Tick() error
	// Terminated reports whether the window stopped ticking
	Terminated() bool
}

// Window is the native handle of one hosted window
type Window interface {
	// Present shows a completed frame; force bypasses unchanged-frame skipping
	Present(f render.Frame, changed, force bool) error
	SetTitle(title string)
	SetSize(size core.Size)
	Bell()
	RequestRedraw()
	// Metrics returns the text metrics of the native surface
	Metrics() engine.TextMetrics
	Close() error
}

// Shell hosts windows and delivers ticks and input to their adapters
type Shell interface {
	CreateWindow(opts Options, a Adapter) (Window, error)
	// Run pumps native events and ticks windows until all terminate or ctx ends
	// Window errors are aggregated; one window failing does not stop the others
	Run(ctx context.Context) error
}

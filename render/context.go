package render

import "github.com/lixenwraith/retain/core"

// Context is the surface the render system produces into
// Implemented by shells; the render system only ever calls these three methods, in order
type Context interface {
	// Begin starts a frame of the given logical size
	Begin(size core.Size)

	// Emit appends one entity's drawable; emission order is composition order
	Emit(d Drawable)

	// End finishes the frame. Shells present here
	End() error
}

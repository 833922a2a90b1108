package render

import "github.com/lixenwraith/retain/core"

// Op is one draw primitive inside a Drawable
type Op interface {
	op() // sealed marker
}

// FillRect paints a solid rectangle
type FillRect struct {
	Rect  core.Rect
	Color RGB
}

// StrokeRect paints a one-unit border
type StrokeRect struct {
	Rect  core.Rect
	Color RGB
}

// Text paints a single line of text starting at Origin (top-left)
type Text struct {
	Origin core.Point
	Text   string
	Color  RGB
}

// Clip restricts subsequent ops of the same Drawable to Rect
type Clip struct {
	Rect core.Rect
}

func (FillRect) op()   {}
func (StrokeRect) op() {}
func (Text) op()       {}
func (Clip) op()       {}

package component

import "github.com/lixenwraith/retain/core"

// ScrollInfoComponent is written by scroll layouts with the geometry of the last arrange
type ScrollInfoComponent struct {
	Content  core.Size // Desired size of the scrolled child
	Viewport core.Size // Size of the visible area
}

// MaxOffset returns the largest valid scroll offset per axis
func (s ScrollInfoComponent) MaxOffset() core.Point {
	return core.Point{
		X: max(0, s.Content.Width-s.Viewport.Width),
		Y: max(0, s.Content.Height-s.Viewport.Height),
	}
}

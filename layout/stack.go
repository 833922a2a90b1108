package layout

import (
	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
)

// Stack lines children up along the orientation component, separated by the spacing component
type Stack struct{}

func (Stack) Measure(lc *engine.LayoutContext, e core.Entity) (core.Size, error) {
	cs := lc.World.Components
	horizontal := cs.Orientation.GetOr(e, component.Vertical) == component.Horizontal
	spacing := cs.Spacing.GetOr(e, 0)

	var main, cross float64
	children := lc.Children(e)
	for i, c := range children {
		o := lc.Outer(c)
		if i > 0 {
			main += spacing
		}
		if horizontal {
			main += o.Width
			cross = max(cross, o.Height)
		} else {
			main += o.Height
			cross = max(cross, o.Width)
		}
	}

	if horizontal {
		return pad(lc, e, core.Size{Width: main, Height: cross}), nil
	}
	return pad(lc, e, core.Size{Width: cross, Height: main}), nil
}

func (Stack) Arrange(lc *engine.LayoutContext, e core.Entity, bounds core.Rect) error {
	cs := lc.World.Components
	horizontal := cs.Orientation.GetOr(e, component.Vertical) == component.Horizontal
	spacing := cs.Spacing.GetOr(e, 0)
	content := bounds.Inset(padding(lc, e))

	cursor := 0.0
	for _, c := range lc.Children(e) {
		o := lc.Outer(c)
		if horizontal {
			lc.Place(c, core.Rect{X: content.X + cursor, Y: content.Y, Width: o.Width, Height: content.Height})
			cursor += o.Width + spacing
		} else {
			lc.Place(c, core.Rect{X: content.X, Y: content.Y + cursor, Width: content.Width, Height: o.Height})
			cursor += o.Height + spacing
		}
	}
	return nil
}

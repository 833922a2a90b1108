package layout

import (
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
)

// Fill stacks all children on top of each other inside the padded content area
// It is the layout of entities that register none
type Fill struct{}

func (Fill) Measure(lc *engine.LayoutContext, e core.Entity) (core.Size, error) {
	var size core.Size
	for _, c := range lc.Children(e) {
		size = size.Max(lc.Outer(c))
	}
	return pad(lc, e, size), nil
}

func (Fill) Arrange(lc *engine.LayoutContext, e core.Entity, bounds core.Rect) error {
	content := bounds.Inset(padding(lc, e))
	for _, c := range lc.Children(e) {
		lc.Place(c, content)
	}
	return nil
}

func padding(lc *engine.LayoutContext, e core.Entity) core.Thickness {
	return lc.World.Components.Padding.GetOr(e, core.Thickness{})
}

func pad(lc *engine.LayoutContext, e core.Entity, s core.Size) core.Size {
	p := padding(lc, e)
	return core.Size{Width: s.Width + p.Horizontal(), Height: s.Height + p.Vertical()}
}

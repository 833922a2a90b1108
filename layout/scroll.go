package layout

import (
	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
)

// Scroll shows its children through a viewport shifted by the scroll offset component
// Each arrange records content and viewport size in the scroll info component
type Scroll struct{}

func (Scroll) Measure(lc *engine.LayoutContext, e core.Entity) (core.Size, error) {
	return Fill{}.Measure(lc, e)
}

func (Scroll) Arrange(lc *engine.LayoutContext, e core.Entity, bounds core.Rect) error {
	cs := lc.World.Components
	viewport := bounds.Inset(padding(lc, e))
	offset := cs.ScrollOffset.GetOr(e, core.Point{})

	var content core.Size
	for _, c := range lc.Children(e) {
		content = content.Max(lc.Outer(c))
	}

	slot := core.Rect{
		X:      viewport.X - offset.X,
		Y:      viewport.Y - offset.Y,
		Width:  max(content.Width, viewport.Width),
		Height: max(content.Height, viewport.Height),
	}
	for _, c := range lc.Children(e) {
		lc.Place(c, slot)
	}

	cs.ScrollInfo.Set(e, component.ScrollInfoComponent{
		Content:  content,
		Viewport: viewport.Size(),
	})
	return nil
}

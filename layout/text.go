package layout

import (
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
)

// Text sizes an entity to its text component
// Children, if any, are filled into the content area
type Text struct{}

func (Text) Measure(lc *engine.LayoutContext, e core.Entity) (core.Size, error) {
	text, err := lc.World.Components.Text.Require(e)
	if err != nil {
		return core.Size{}, err
	}
	size := lc.MeasureText(text)
	for _, c := range lc.Children(e) {
		size = size.Max(lc.Outer(c))
	}
	return pad(lc, e, size), nil
}

func (Text) Arrange(lc *engine.LayoutContext, e core.Entity, bounds core.Rect) error {
	return Fill{}.Arrange(lc, e, bounds)
}

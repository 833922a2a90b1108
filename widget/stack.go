package widget

import (
	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/layout"
)

// Stack lines up children along orientation with spacing between them
func Stack(b *engine.BuildContext, parent core.Entity, orientation component.Orientation, spacing float64, opts ...Option) core.Entity {
	e := b.Create(parent)
	if e == core.NoEntity {
		return e
	}
	cs := b.Components()
	cs.Orientation.Set(e, orientation)
	cs.Spacing.Set(e, spacing)
	b.RegisterLayout(e, layout.Stack{})
	b.RegisterRenderObject(e, boxRenderer{})
	apply(b, e, opts)
	return e
}

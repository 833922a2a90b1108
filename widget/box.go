package widget

import (
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/layout"
	"github.com/lixenwraith/retain/render"
)

// boxRenderer paints the background and border components when present
type boxRenderer struct{}

func (boxRenderer) Render(w *engine.World, e core.Entity, d *render.Drawable) error {
	paintBox(w.Components, e, d)
	return nil
}

func paintBox(cs *engine.ComponentStore, e core.Entity, d *render.Drawable) {
	if bg, ok := cs.Background.Get(e); ok {
		d.FillRect(d.Bounds, bg)
	}
	if border, ok := cs.BorderColor.Get(e); ok {
		d.StrokeRect(d.Bounds, border)
	}
}

// Container is a box whose children fill its padded content area
func Container(b *engine.BuildContext, parent core.Entity, opts ...Option) core.Entity {
	e := b.Create(parent)
	b.RegisterLayout(e, layout.Fill{})
	b.RegisterRenderObject(e, boxRenderer{})
	apply(b, e, opts)
	return e
}

package widget

import (
	"strings"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/layout"
	"github.com/lixenwraith/retain/render"
)

// textRenderer paints the box then one text op per line of the text component
type textRenderer struct {
	metrics engine.TextMetrics
}

func (r textRenderer) Render(w *engine.World, e core.Entity, d *render.Drawable) error {
	paintBox(w.Components, e, d)
	return r.paintText(w.Components, e, d)
}

func (r textRenderer) paintText(cs *engine.ComponentStore, e core.Entity, d *render.Drawable) error {
	text, err := cs.Text.Require(e)
	if err != nil {
		return err
	}
	fg := cs.Foreground.GetOr(e, render.RGBWhite)
	content := d.Bounds.Inset(cs.Padding.GetOr(e, core.Thickness{}))
	lh := r.metrics.LineHeight()
	for i, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		d.Text(core.Point{X: content.X, Y: content.Y + float64(i)*lh}, line, fg)
	}
	return nil
}

func metricsOf(b *engine.BuildContext) engine.TextMetrics {
	if m := b.Context().Metrics; m != nil {
		return m
	}
	return layout.DefaultMetrics()
}

// TextBlock displays text sized to its content
func TextBlock(b *engine.BuildContext, parent core.Entity, text string, opts ...Option) core.Entity {
	e := b.Create(parent)
	if e == core.NoEntity {
		return e
	}
	b.Components().Text.Set(e, text)
	b.RegisterLayout(e, layout.Text{})
	b.RegisterRenderObject(e, textRenderer{metrics: metricsOf(b)})
	apply(b, e, opts)
	return e
}

// SetText replaces the text of a text widget
func SetText(cs *engine.ComponentStore, e core.Entity, text string) {
	cs.Text.Set(e, text)
}

package widget

import (
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/event"
	"github.com/lixenwraith/retain/layout"
	"github.com/lixenwraith/retain/render"
)

// KindPressed is the custom component tracking a held button
const KindPressed = "button.pressed"

const (
	pressedTint = 0.35 // Blend of a held button toward its foreground
	buttonInset = 8    // Horizontal label padding
)

// ClickFunc runs when a button is activated
type ClickFunc func(sc *engine.StateContext, e core.Entity) error

type buttonHandler struct {
	onClick ClickFunc
}

func (h buttonHandler) Handle(sc *engine.StateContext, e core.Entity, in event.Input) (bool, error) {
	custom := sc.Components().Custom
	switch v := in.(type) {
	case event.MouseInput:
		if v.Button != event.ButtonLeft {
			return false, nil
		}
		switch v.Action {
		case event.MouseDown:
			custom.Set(KindPressed, e, true)
			return true, nil
		case event.MouseUp:
			// The release of a press always comes back here through pointer capture
			pressed, _ := engine.GetCustom[bool](custom, KindPressed, e)
			custom.Set(KindPressed, e, false)
			if !pressed {
				return false, nil
			}
			bounds, _ := sc.Components().Bounds.Get(e)
			if !bounds.ContainsPoint(v.Position) {
				return true, nil
			}
			return true, h.click(sc, e)
		}
	case event.KeyInput:
		if v.Key == event.KeyEnter || (v.Key == event.KeyRune && v.Rune == ' ') {
			return true, h.click(sc, e)
		}
	}
	return false, nil
}

func (h buttonHandler) click(sc *engine.StateContext, e core.Entity) error {
	if h.onClick == nil {
		return nil
	}
	return h.onClick(sc, e)
}

type buttonRenderer struct {
	text textRenderer
}

func (r buttonRenderer) Render(w *engine.World, e core.Entity, d *render.Drawable) error {
	cs := w.Components
	if pressed, _ := engine.GetCustom[bool](cs.Custom, KindPressed, e); pressed {
		bg := cs.Background.GetOr(e, render.RGBBlack)
		fg := cs.Foreground.GetOr(e, render.RGBWhite)
		d.FillRect(d.Bounds, bg.BlendLab(fg, pressedTint))
		if border, ok := cs.BorderColor.Get(e); ok {
			d.StrokeRect(d.Bounds, border)
		}
		return r.text.paintText(cs, e, d)
	}
	return r.text.Render(w, e, d)
}

// Button is a focusable text widget that calls onClick on click, Enter or space
func Button(b *engine.BuildContext, parent core.Entity, label string, onClick ClickFunc, opts ...Option) core.Entity {
	e := b.Create(parent)
	if e == core.NoEntity {
		return e
	}
	cs := b.Components()
	cs.Text.Set(e, label)
	cs.Focusable.Set(e, true)
	cs.Padding.Set(e, core.Thickness{Left: buttonInset, Right: buttonInset})
	cs.Custom.Set(KindPressed, e, false)

	b.RegisterLayout(e, layout.Text{})
	b.RegisterRenderObject(e, buttonRenderer{text: textRenderer{metrics: metricsOf(b)}})
	b.RegisterHandler(e, buttonHandler{onClick: onClick})
	apply(b, e, opts)
	return e
}

package widget

import (
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/event"
	"github.com/lixenwraith/retain/layout"
)

// scrollState moves the offset on wheel and paging keys and clamps it once geometry is final
type scrollState struct {
	step float64 // Distance of one wheel notch
}

func (s scrollState) Update(*engine.StateContext, core.Entity) error {
	return nil
}

// UpdatePostLayout clamps the offset to the content measured by the last arrange
func (s scrollState) UpdatePostLayout(sc *engine.StateContext, e core.Entity) error {
	cs := sc.Components()
	info, ok := cs.ScrollInfo.Get(e)
	if !ok {
		return nil
	}
	offset := cs.ScrollOffset.GetOr(e, core.Point{})
	limit := info.MaxOffset()
	clamped := core.Point{
		X: min(max(offset.X, 0), limit.X),
		Y: min(max(offset.Y, 0), limit.Y),
	}
	if clamped != offset {
		cs.ScrollOffset.Set(e, clamped)
		sc.InvalidateLayout()
	}
	return nil
}

func (s scrollState) Handle(sc *engine.StateContext, e core.Entity, in event.Input) (bool, error) {
	cs := sc.Components()
	offset := cs.ScrollOffset.GetOr(e, core.Point{})

	switch v := in.(type) {
	case event.ScrollInput:
		offset = offset.Add(core.Point{X: v.Delta.X * s.step, Y: v.Delta.Y * s.step})
	case event.KeyInput:
		info, _ := cs.ScrollInfo.Get(e)
		switch v.Key {
		case event.KeyPageDown:
			offset.Y += info.Viewport.Height
		case event.KeyPageUp:
			offset.Y -= info.Viewport.Height
		case event.KeyHome:
			offset.Y = 0
		case event.KeyEnd:
			offset.Y = info.MaxOffset().Y
		default:
			return false, nil
		}
	default:
		return false, nil
	}

	// Clamped after layout
	cs.ScrollOffset.Set(e, offset)
	return true, nil
}

// ScrollViewer clips its children to its bounds and scrolls them by wheel or paging keys
func ScrollViewer(b *engine.BuildContext, parent core.Entity, opts ...Option) core.Entity {
	e := b.Create(parent)
	if e == core.NoEntity {
		return e
	}
	cs := b.Components()
	cs.ScrollOffset.Set(e, core.Point{})
	cs.Focusable.Set(e, true)

	st := scrollState{step: metricsOf(b).LineHeight()}
	b.RegisterLayout(e, layout.Scroll{})
	b.RegisterRenderObject(e, boxRenderer{})
	b.RegisterState(e, st)
	b.RegisterHandler(e, st)
	apply(b, e, opts)
	return e
}

// ScrollTo sets the offset; out of range values are clamped after the next layout
func ScrollTo(cs *engine.ComponentStore, e core.Entity, offset core.Point) {
	cs.ScrollOffset.Set(e, offset)
}

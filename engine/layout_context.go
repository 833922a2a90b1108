package engine

import (
	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
)

// LayoutContext carries measure results and child slots through one layout run
type LayoutContext struct {
	World   *World
	Metrics TextMetrics

	desired map[core.Entity]core.Size
	slots   map[core.Entity]core.Rect
}

// NewLayoutContext creates an empty layout context
func NewLayoutContext(w *World, metrics TextMetrics) *LayoutContext {
	return &LayoutContext{
		World:   w,
		Metrics: metrics,
		desired: make(map[core.Entity]core.Size),
		slots:   make(map[core.Entity]core.Rect),
	}
}

// Reset clears results of the previous run
func (lc *LayoutContext) Reset() {
	clear(lc.desired)
	clear(lc.slots)
}

// SetDesired records the measured size of e, margin excluded
func (lc *LayoutContext) SetDesired(e core.Entity, s core.Size) {
	lc.desired[e] = s
}

// Desired returns the measured size of e, margin excluded
func (lc *LayoutContext) Desired(e core.Entity) core.Size {
	return lc.desired[e]
}

// Outer returns the measured size of e including its margin
// Collapsed entities take no space
func (lc *LayoutContext) Outer(e core.Entity) core.Size {
	cs := lc.World.Components
	if cs.VisibilityOf(e) == component.Collapsed {
		return core.Size{}
	}
	s := lc.desired[e]
	m := cs.Margin.GetOr(e, core.Thickness{})
	return core.Size{
		Width:  s.Width + m.Horizontal(),
		Height: s.Height + m.Vertical(),
	}
}

// Children returns the children of e that take part in layout
func (lc *LayoutContext) Children(e core.Entity) []core.Entity {
	children, err := lc.World.Tree.Children(e)
	if err != nil {
		return nil
	}
	cs := lc.World.Components
	out := children[:0]
	for _, c := range children {
		if cs.VisibilityOf(c) != component.Collapsed {
			out = append(out, c)
		}
	}
	return out
}

// Place assigns the slot child is arranged into, margin included
func (lc *LayoutContext) Place(child core.Entity, slot core.Rect) {
	lc.slots[child] = slot
}

// Slot returns the slot assigned to e during the current arrange pass
func (lc *LayoutContext) Slot(e core.Entity) (core.Rect, bool) {
	r, ok := lc.slots[e]
	return r, ok
}

// MeasureText measures text with the window metrics
func (lc *LayoutContext) MeasureText(text string) core.Size {
	if lc.Metrics == nil {
		return core.Size{}
	}
	return lc.Metrics.MeasureText(text)
}

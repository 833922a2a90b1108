package system

import (
	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/layout"
	"github.com/lixenwraith/retain/parameter"
)

// LayoutSystem measures bottom-up then arranges top-down, writing the bounds component
// An entity whose layout fails keeps its previous geometry and so does its subtree
type LayoutSystem struct {
	engine.SystemBase

	fallback engine.Layout
	lc       *engine.LayoutContext
	failed   map[core.Entity]struct{}
}

// NewLayoutSystem creates the Layout phase
func NewLayoutSystem() *LayoutSystem {
	return &LayoutSystem{
		SystemBase: engine.NewSystemBase("layout", parameter.PriorityLayout),
		fallback:   layout.Fill{},
		failed:     make(map[core.Entity]struct{}),
	}
}

func (s *LayoutSystem) Update(w *engine.World, ctx *engine.Context) error {
	lc := s.context(w, ctx)
	lc.Reset()
	clear(s.failed)

	for _, top := range []core.Entity{w.Tree.Root(), w.Tree.Overlay()} {
		if top != core.NoEntity {
			s.measure(lc, ctx, top)
		}
	}
	s.arrangeAll(lc, ctx)
	return nil
}

// Rearrange repeats the arrange pass with the measurements of the last Update
func (s *LayoutSystem) Rearrange(w *engine.World, ctx *engine.Context) {
	s.arrangeAll(s.context(w, ctx), ctx)
}

func (s *LayoutSystem) context(w *engine.World, ctx *engine.Context) *engine.LayoutContext {
	metrics := ctx.Metrics
	if metrics == nil {
		metrics = layout.DefaultMetrics()
	}
	if s.lc == nil || s.lc.World != w {
		s.lc = engine.NewLayoutContext(w, metrics)
	}
	s.lc.Metrics = metrics
	return s.lc
}

func (s *LayoutSystem) layoutOf(ctx *engine.Context, e core.Entity) engine.Layout {
	if l, ok := ctx.Layouts.Get(e); ok && l != nil {
		return l
	}
	return s.fallback
}

func (s *LayoutSystem) measure(lc *engine.LayoutContext, ctx *engine.Context, top core.Entity) {
	cs := lc.World.Components
	order, err := lc.World.Tree.PostOrder(top)
	if err != nil {
		return
	}

	for _, e := range order {
		if cs.VisibilityOf(e) == component.Collapsed {
			lc.SetDesired(e, core.Size{})
			continue
		}

		var size core.Size
		l := s.layoutOf(ctx, e)
		ok := isolate(ctx, engine.PhaseLayout, e, func() error {
			var err error
			size, err = l.Measure(lc, e)
			return err
		})
		if !ok {
			s.failed[e] = struct{}{}
			lc.SetDesired(e, cs.Bounds.GetOr(e, core.Rect{}).Size())
			continue
		}
		lc.SetDesired(e, cs.Constraint.GetOr(e, core.Constraint{}).Apply(size))
	}
}

func (s *LayoutSystem) arrangeAll(lc *engine.LayoutContext, ctx *engine.Context) {
	w := lc.World
	window := core.Rect{Width: ctx.WindowSize().Width, Height: ctx.WindowSize().Height}

	for _, top := range []core.Entity{w.Tree.Root(), w.Tree.Overlay()} {
		if top == core.NoEntity {
			continue
		}
		slot := window
		if slot.IsEmpty() {
			slot = core.NewRect(core.Point{}, lc.Desired(top))
		}
		lc.Place(top, slot)
		s.arrange(lc, ctx, top)
	}
}

func (s *LayoutSystem) arrange(lc *engine.LayoutContext, ctx *engine.Context, top core.Entity) {
	w := lc.World
	cs := w.Components
	order, err := w.Tree.PreOrder(top)
	if err != nil {
		return
	}

	skipped := make(map[core.Entity]struct{})
	for _, e := range order {
		if p, _ := w.Tree.Parent(e); p != core.NoEntity {
			if _, skip := skipped[p]; skip {
				skipped[e] = struct{}{}
				continue
			}
		}

		slot, placed := lc.Slot(e)
		_, failed := s.failed[e]
		if !placed || failed {
			skipped[e] = struct{}{}
			continue
		}

		if cs.VisibilityOf(e) == component.Collapsed {
			cs.Bounds.Set(e, core.Rect{X: slot.X, Y: slot.Y})
			skipped[e] = struct{}{}
			continue
		}

		bounds := layout.Resolve(
			slot,
			lc.Desired(e),
			cs.Margin.GetOr(e, core.Thickness{}),
			cs.Alignment.GetOr(e, component.AlignmentComponent{}),
			cs.Constraint.GetOr(e, core.Constraint{}),
		)
		cs.Bounds.Set(e, bounds)

		l := s.layoutOf(ctx, e)
		if !isolate(ctx, engine.PhaseLayout, e, func() error {
			return l.Arrange(lc, e, bounds)
		}) {
			skipped[e] = struct{}{}
		}
	}
}

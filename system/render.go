package system

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/parameter"
	"github.com/lixenwraith/retain/render"
)

// RenderSystem walks the root subtree then the overlay subtree and emits one drawable
// per entity with a render object. Hidden and collapsed subtrees are skipped
type RenderSystem struct {
	engine.SystemBase

	target render.Context
}

// NewRenderSystem creates the Render phase producing into target
func NewRenderSystem(target render.Context) engine.System {
	return &RenderSystem{
		SystemBase: engine.NewSystemBase("render", parameter.PriorityRender),
		target:     target,
	}
}

func (s *RenderSystem) Update(w *engine.World, ctx *engine.Context) error {
	if s.target == nil {
		return nil
	}

	size := ctx.WindowSize()
	if size.IsEmpty() {
		size = w.Components.Bounds.GetOr(w.Tree.Root(), core.Rect{}).Size()
	}
	s.target.Begin(size)

	if root := w.Tree.Root(); root != core.NoEntity {
		s.emit(w, ctx, root, render.LayerRoot, nil)
	}
	if overlay := w.Tree.Overlay(); overlay != core.NoEntity {
		s.emit(w, ctx, overlay, render.LayerOverlay, nil)
	}

	if err := s.target.End(); err != nil {
		return errors.Wrap(err, "present frame")
	}
	return nil
}

func (s *RenderSystem) emit(w *engine.World, ctx *engine.Context, e core.Entity, layer render.Layer, clip *core.Rect) {
	cs := w.Components
	if cs.VisibilityOf(e) != component.Visible {
		return
	}

	if ro, ok := ctx.RenderObjects.Get(e); ok && ro != nil {
		d := render.NewDrawable(e, layer, cs.Bounds.GetOr(e, core.Rect{}))
		if clip != nil {
			d.Clip(*clip)
		}
		if isolate(ctx, engine.PhaseRender, e, func() error {
			return ro.Render(w, e, d)
		}) {
			s.target.Emit(*d)
		}
	}

	children, err := w.Tree.Children(e)
	if err != nil {
		return
	}
	next := childClip(w, e, clip)
	for _, c := range children {
		s.emit(w, ctx, c, layer, next)
	}
}

package system

import (
	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/event"
)

// dispatch routes one input to its target and bubbles it to ancestors
func dispatch(sc *engine.StateContext, in event.Input) {
	w := sc.World
	root := w.Tree.Root()

	var target core.Entity
	switch v := in.(type) {
	case event.Resized:
		resizeRoot(w, sc.Ctx, core.Size{Width: v.Width, Height: v.Height})
		target = root

	case event.CloseRequested:
		if !bubble(sc, root, in) {
			sc.Ctx.RequestClose()
		}
		return

	case event.KeyInput:
		target = sc.Focused()
		if target == core.NoEntity {
			target = root
		}

	case event.MouseInput:
		target = HitTest(w, v.Position)
		switch v.Action {
		case event.MouseDown:
			_ = sc.Focus(focusTarget(w, target))
			setCapture(w, target)
		case event.MouseUp:
			if captured := takeCapture(w); captured != core.NoEntity {
				target = captured
			}
		}

	case event.ScrollInput:
		target = HitTest(w, v.Position)
	}

	if target != core.NoEntity {
		bubble(sc, target, in)
	}
}

// bubble offers in to target then each ancestor until a handler reports it handled
func bubble(sc *engine.StateContext, target core.Entity, in event.Input) bool {
	ctx := sc.Ctx
	for e := target; e != core.NoEntity; {
		handlers, _ := ctx.Handlers.Get(e)
		for _, h := range handlers {
			var handled bool
			ok := isolate(ctx, sc.Phase, e, func() error {
				var err error
				handled, err = h.Handle(sc, e, in)
				return err
			})
			if !ok {
				break
			}
			if handled {
				return true
			}
		}

		p, err := sc.World.Tree.Parent(e)
		if err != nil {
			// Removed by a handler during this dispatch; staged removals keep this rare
			return false
		}
		e = p
	}
	return false
}

// focusTarget returns the nearest focusable entity at or above e, NoEntity when none
func focusTarget(w *engine.World, e core.Entity) core.Entity {
	for cur := e; cur != core.NoEntity; {
		if w.Components.Focusable.GetOr(cur, false) {
			return cur
		}
		p, err := w.Tree.Parent(cur)
		if err != nil {
			return core.NoEntity
		}
		cur = p
	}
	return core.NoEntity
}

// HitTest returns the deepest visible entity whose bounds contain p
// Overlay descendants are tested before root content; the overlay entity itself is transparent
func HitTest(w *engine.World, p core.Point) core.Entity {
	if overlay := w.Tree.Overlay(); overlay != core.NoEntity {
		if hit := hitChildren(w, overlay, p, nil); hit != core.NoEntity {
			return hit
		}
	}
	if root := w.Tree.Root(); root != core.NoEntity {
		return hit(w, root, p, nil)
	}
	return core.NoEntity
}

func hit(w *engine.World, e core.Entity, p core.Point, clip *core.Rect) core.Entity {
	cs := w.Components
	if cs.VisibilityOf(e) != component.Visible {
		return core.NoEntity
	}
	if clip != nil && !clip.ContainsPoint(p) {
		return core.NoEntity
	}

	bounds := cs.Bounds.GetOr(e, core.Rect{})
	if child := hitChildren(w, e, p, childClip(w, e, clip)); child != core.NoEntity {
		return child
	}
	if bounds.ContainsPoint(p) {
		return e
	}
	return core.NoEntity
}

// hitChildren tests later children first; they are drawn on top
func hitChildren(w *engine.World, e core.Entity, p core.Point, clip *core.Rect) core.Entity {
	children, err := w.Tree.Children(e)
	if err != nil {
		return core.NoEntity
	}
	for i := len(children) - 1; i >= 0; i-- {
		if h := hit(w, children[i], p, clip); h != core.NoEntity {
			return h
		}
	}
	return core.NoEntity
}

// childClip narrows clip to the viewport of scrolling entities
func childClip(w *engine.World, e core.Entity, clip *core.Rect) *core.Rect {
	cs := w.Components
	if !cs.ScrollInfo.Has(e) {
		return clip
	}
	viewport := cs.Bounds.GetOr(e, core.Rect{}).Inset(cs.Padding.GetOr(e, core.Thickness{}))
	if clip != nil {
		viewport = viewport.Intersect(*clip)
	}
	return &viewport
}

// setCapture routes the rest of a press to e, wherever the pointer is released
func setCapture(w *engine.World, e core.Entity) {
	if g, err := w.Components.Global.Mut(w.Tree.Root()); err == nil {
		g.Captured = e
	}
}

// takeCapture clears the capture and returns it if the entity still exists
func takeCapture(w *engine.World) core.Entity {
	g, err := w.Components.Global.Mut(w.Tree.Root())
	if err != nil {
		return core.NoEntity
	}
	e := g.Captured
	g.Captured = core.NoEntity
	if !w.Tree.Contains(e) {
		return core.NoEntity
	}
	return e
}

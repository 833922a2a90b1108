package widget

import (
	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/layout"
)

// WindowConfig carries the window-level components of the root
type WindowConfig struct {
	Title       string
	Position    core.Point
	Size        core.Size
	Borderless  bool
	Resizeable  bool
	AlwaysOnTop bool
}

// Window creates the root entity with the components shells read from it
func Window(b *engine.BuildContext, cfg WindowConfig, opts ...Option) core.Entity {
	e := b.Create(core.NoEntity)
	b.SetRoot(e)
	if b.Err() != nil {
		return core.NoEntity
	}

	cs := b.Components()
	cs.Title.Set(e, cfg.Title)
	cs.Borderless.Set(e, cfg.Borderless)
	cs.Resizeable.Set(e, cfg.Resizeable)
	cs.AlwaysOnTop.Set(e, cfg.AlwaysOnTop)
	cs.Position.Set(e, cfg.Position)
	cs.Constraint.Set(e, core.FixedConstraint(cfg.Size.Width, cfg.Size.Height))
	cs.Global.Set(e, component.GlobalComponent{})
	cs.Bounds.Set(e, core.NewRect(core.Point{}, cfg.Size))

	b.RegisterLayout(e, layout.Fill{})
	b.RegisterRenderObject(e, boxRenderer{})
	apply(b, e, opts)
	return e
}

// Overlay returns the overlay entity, creating it on first use; popups are built as its children
// The overlay itself draws nothing and is transparent to the pointer
func Overlay(b *engine.BuildContext) core.Entity {
	if e := b.World().Tree.Overlay(); e != core.NoEntity {
		return e
	}
	e := b.Create(core.NoEntity)
	b.SetOverlay(e)
	if b.Err() != nil {
		return core.NoEntity
	}
	b.RegisterLayout(e, layout.Fill{})
	return e
}

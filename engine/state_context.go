package engine

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/event"
)

// StateContext is handed to handlers and state objects for the duration of one call
// Do not retain it across ticks
type StateContext struct {
	World *World
	Ctx   *Context
	Phase string
}

// NewStateContext binds world and context for one phase
func NewStateContext(w *World, ctx *Context, phase string) *StateContext {
	return &StateContext{World: w, Ctx: ctx, Phase: phase}
}

// Components returns the component store
func (sc *StateContext) Components() *ComponentStore {
	return sc.World.Components
}

// Logger returns the window logger
func (sc *StateContext) Logger() *zap.Logger {
	return sc.Ctx.Logger
}

// Services returns the window services
func (sc *StateContext) Services() *Services {
	return sc.Ctx.Services
}

// Tick returns the tick in progress
func (sc *StateContext) Tick() uint64 {
	return sc.Ctx.Tick()
}

// Send queues a window request; false once the window has terminated
func (sc *StateContext) Send(req event.Request) bool {
	return sc.Ctx.Queue.Send(req)
}

// Remove schedules e and its subtree for removal
// The tree stays unchanged until the running phase finishes
func (sc *StateContext) Remove(e core.Entity) error {
	return sc.World.StageRemove(e)
}

// Build returns a builder for creating entities during the tick
func (sc *StateContext) Build() *BuildContext {
	return NewBuildContext(sc.World, sc.Ctx)
}

// InvalidateLayout requests a second arrange pass; only meaningful during PostLayoutState
func (sc *StateContext) InvalidateLayout() {
	sc.Ctx.RequestRelayout()
}

// Focused returns the entity receiving key input, NoEntity when none
func (sc *StateContext) Focused() core.Entity {
	root := sc.World.Tree.Root()
	g, _ := sc.World.Components.Global.Get(root)
	if !sc.World.Tree.Contains(g.Focused) {
		return core.NoEntity
	}
	return g.Focused
}

// Focus moves key input to e; NoEntity clears focus
func (sc *StateContext) Focus(e core.Entity) error {
	root := sc.World.Tree.Root()
	if root == core.NoEntity {
		return ErrNoRoot
	}
	g, err := sc.World.Components.Global.Mut(root)
	if err != nil {
		return err
	}
	g.Focused = e
	return nil
}

// Visible reports whether e and all its ancestors are Visible
func (sc *StateContext) Visible(e core.Entity) bool {
	cs := sc.World.Components
	for cur := e; cur != core.NoEntity; {
		if cs.VisibilityOf(cur) != component.Visible {
			return false
		}
		p, err := sc.World.Tree.Parent(cur)
		if err != nil {
			return false
		}
		cur = p
	}
	return true
}

package system

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
)

// InitSystem validates the root and starts state objects before the first tick
// Safe to run repeatedly; nothing is registered or started twice
type InitSystem struct {
	engine.SystemBase
}

// NewInitSystem creates the init system
func NewInitSystem() engine.System {
	return &InitSystem{SystemBase: engine.NewSystemBase("init", -1)}
}

func (s *InitSystem) Update(w *engine.World, ctx *engine.Context) error {
	root := w.Tree.Root()
	if root == core.NoEntity {
		return errors.WithStack(engine.ErrNoRoot)
	}

	cs := w.Components
	if err := requireWindowComponents(cs, root); err != nil {
		return err
	}

	// Registered once; a window built with its own values keeps them
	if !cs.Global.Has(root) {
		cs.Global.Set(root, component.GlobalComponent{})
	}
	if !cs.Bounds.Has(root) {
		cs.Bounds.Set(root, core.Rect{})
	}

	if ctx.WindowSize().IsEmpty() {
		c, _ := cs.Constraint.Get(root)
		ctx.SetWindowSize(c.Apply(core.Size{}))
	}

	title, _ := cs.Title.Get(root)
	ctx.Window.SetTitle(title)

	sc := engine.NewStateContext(w, ctx, engine.PhaseInit)
	started := startStates(sc)

	ctx.Logger.Debug("window initialized",
		zap.Int("entities", w.Tree.Len()),
		zap.Int("states", started),
		zap.Float64("width", ctx.WindowSize().Width),
		zap.Float64("height", ctx.WindowSize().Height),
	)
	return nil
}

// requireWindowComponents checks the components a shell reads from the root
func requireWindowComponents(cs *engine.ComponentStore, root core.Entity) error {
	if _, err := cs.Title.Require(root); err != nil {
		return err
	}
	if _, err := cs.Borderless.Require(root); err != nil {
		return err
	}
	if _, err := cs.Resizeable.Require(root); err != nil {
		return err
	}
	if _, err := cs.AlwaysOnTop.Require(root); err != nil {
		return err
	}
	if _, err := cs.Position.Require(root); err != nil {
		return err
	}
	if _, err := cs.Constraint.Require(root); err != nil {
		return err
	}
	return nil
}

// startStates runs Init once for every state not started yet, tree order
func startStates(sc *engine.StateContext) int {
	ctx := sc.Ctx
	n := 0
	for _, e := range sc.World.Tree.Walk() {
		st, ok := ctx.States.Get(e)
		if !ok || ctx.Started(e) {
			continue
		}
		ctx.MarkStarted(e)
		n++
		if in, ok := st.(engine.StateInitializer); ok {
			isolate(ctx, sc.Phase, e, func() error {
				return in.Init(sc, e)
			})
		}
	}
	return n
}

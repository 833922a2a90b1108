package system

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
)

// CleanupSystem releases registry entries of removed entities
// Runs before any later tick can look them up
type CleanupSystem struct {
	engine.SystemBase
}

// NewCleanupSystem creates the cleanup system
func NewCleanupSystem() engine.System {
	return &CleanupSystem{SystemBase: engine.NewSystemBase("cleanup", -1)}
}

func (s *CleanupSystem) Update(w *engine.World, ctx *engine.Context) error {
	freed := w.TakePending()
	if len(freed) == 0 {
		return nil
	}
	sc := engine.NewStateContext(w, ctx, engine.PhaseCleanup)

	for _, e := range freed {
		if st, ok := ctx.States.Get(e); ok {
			if cl, ok := st.(engine.StateCleaner); ok && ctx.Started(e) {
				isolate(ctx, sc.Phase, e, func() error {
					return cl.Cleanup(sc, e)
				})
			}
		}
		ctx.Forget(e)
	}

	// Focus and capture must not point at a freed entity
	if g, err := w.Components.Global.Mut(w.Tree.Root()); err == nil {
		if !w.Tree.Contains(g.Focused) {
			g.Focused = core.NoEntity
		}
		if !w.Tree.Contains(g.Captured) {
			g.Captured = core.NoEntity
		}
	}

	ctx.Logger.Debug("registries cleaned", zap.Int("entities", len(freed)))
	return nil
}

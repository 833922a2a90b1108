package system

import (
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/parameter"
)

// PostLayoutStateSystem re-invokes states that depend on final geometry
// A state that invalidates layout triggers one more arrange pass before rendering
type PostLayoutStateSystem struct {
	engine.SystemBase

	layout *LayoutSystem
}

// NewPostLayoutStateSystem creates the PostLayoutState phase; layout serves relayout requests
func NewPostLayoutStateSystem(layout *LayoutSystem) engine.System {
	return &PostLayoutStateSystem{
		SystemBase: engine.NewSystemBase("post_layout", parameter.PriorityPostLayout),
		layout:     layout,
	}
}

func (s *PostLayoutStateSystem) Update(w *engine.World, ctx *engine.Context) error {
	sc := engine.NewStateContext(w, ctx, engine.PhasePostLayout)

	// States registered from here are staged by the registry until the range ends
	ctx.States.Range(func(e core.Entity, st engine.State) bool {
		pl, ok := st.(engine.PostLayoutState)
		if !ok || !ctx.Started(e) || !w.Tree.Contains(e) {
			return true
		}
		isolate(ctx, sc.Phase, e, func() error {
			return pl.UpdatePostLayout(sc, e)
		})
		return true
	})

	if ctx.TakeRelayout() && s.layout != nil {
		s.layout.Rearrange(w, ctx)
	}
	return nil
}

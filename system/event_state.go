package system

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/event"
	"github.com/lixenwraith/retain/parameter"
)

// EventStateSystem drains window requests and buffered input, then updates state objects
// Removals requested by handlers or states are applied when it returns
type EventStateSystem struct {
	engine.SystemBase

	statInputs *atomic.Int64
}

// NewEventStateSystem creates the EventState phase
func NewEventStateSystem() engine.System {
	return &EventStateSystem{
		SystemBase: engine.NewSystemBase("event_state", parameter.PriorityEventState),
	}
}

func (s *EventStateSystem) Update(w *engine.World, ctx *engine.Context) error {
	if s.statInputs == nil {
		s.statInputs = ctx.Status.Ints.Get("event_state.inputs")
	}
	sc := engine.NewStateContext(w, ctx, engine.PhaseEventState)

	// States registered by the previous tick
	startStates(sc)

	requests := ctx.Queue.Drain()
	ctx.CountRequests(len(requests))
	for _, req := range requests {
		s.apply(w, ctx, req)
	}

	inputs := ctx.TakeInputs()
	s.statInputs.Add(int64(len(inputs)))
	for _, in := range inputs {
		dispatch(sc, in)
	}

	for _, e := range w.Tree.Walk() {
		st, ok := ctx.States.Get(e)
		if !ok || !ctx.Started(e) {
			continue
		}
		isolate(ctx, sc.Phase, e, func() error {
			return st.Update(sc, e)
		})
	}

	if freed := w.ApplyStaged(); len(freed) > 0 {
		ctx.Logger.Debug("entities removed", zap.Int("count", len(freed)), zap.Uint64("tick", ctx.Tick()))
	}
	return nil
}

// apply handles one window request in send order
func (s *EventStateSystem) apply(w *engine.World, ctx *engine.Context, req event.Request) {
	cs := w.Components
	root := w.Tree.Root()

	switch r := req.(type) {
	case event.Close:
		ctx.RequestClose()

	case event.Resize:
		size := core.Size{Width: r.Width, Height: r.Height}
		resizeRoot(w, ctx, size)
		ctx.Window.SetSize(size)

	case event.TitleChanged:
		cs.Title.Set(root, r.Title)
		ctx.Window.SetTitle(r.Title)

	case event.Redraw:
		ctx.MarkRedraw()
		ctx.Window.RequestRedraw()

	case event.Bell:
		ctx.Window.Bell()

	default:
		ctx.Logger.Warn("unknown window request", zap.Stringer("request", req))
	}
}

// resizeRoot makes size the root slot and pins the root constraint to it
func resizeRoot(w *engine.World, ctx *engine.Context, size core.Size) {
	ctx.SetWindowSize(size)
	root := w.Tree.Root()
	if c, err := w.Components.Constraint.Mut(root); err == nil {
		c.Width = size.Width
		c.Height = size.Height
	}
}

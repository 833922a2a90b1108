package engine

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/parameter"
)

// Pipeline is the fixed system order of one window
// Init runs once, then every tick runs EventState, Layout, PostLayoutState and Render in that order.
// Cleanup runs whenever entities were freed, always before the next tick observes the tree
type Pipeline struct {
	init    System
	phases  [4]System
	cleanup System

	initialized bool
	terminated  bool
}

// NewPipeline validates phase priorities and builds the pipeline
func NewPipeline(init, eventState, layout, postLayout, render, cleanup System) (*Pipeline, error) {
	phases := [4]System{eventState, layout, postLayout, render}
	want := [4]int{
		parameter.PriorityEventState,
		parameter.PriorityLayout,
		parameter.PriorityPostLayout,
		parameter.PriorityRender,
	}
	if init == nil || cleanup == nil {
		return nil, errors.New("pipeline requires init and cleanup systems")
	}
	for i, s := range phases {
		if s == nil {
			return nil, errors.Errorf("pipeline phase %d is nil", i)
		}
		if s.Priority() != want[i] {
			return nil, errors.Errorf("system %s has priority %d, phase requires %d", s.Name(), s.Priority(), want[i])
		}
	}
	return &Pipeline{init: init, phases: phases, cleanup: cleanup}, nil
}

// Phases returns the per-tick systems in execution order
func (p *Pipeline) Phases() []System {
	out := make([]System, len(p.phases))
	copy(out, p.phases[:])
	return out
}

// Initialized reports whether init has run
func (p *Pipeline) Initialized() bool {
	return p.initialized
}

// Terminated reports whether a close request ended the pipeline
func (p *Pipeline) Terminated() bool {
	return p.terminated
}

// RunInit runs the init system once; later calls are no-ops
func (p *Pipeline) RunInit(w *World, ctx *Context) error {
	if p.initialized {
		return nil
	}
	if w.Tree.Root() == core.NoEntity {
		return errors.WithStack(ErrNoRoot)
	}
	if err := p.run(p.init, w, ctx); err != nil {
		return err
	}
	p.initialized = true
	return nil
}

// RunCleanup releases registry entries of freed entities
func (p *Pipeline) RunCleanup(w *World, ctx *Context) error {
	if !w.HasPending() {
		return nil
	}
	return p.run(p.cleanup, w, ctx)
}

// Tick runs one full pass
// Returns ErrTerminated once a close request observed in an earlier tick is honored
func (p *Pipeline) Tick(w *World, ctx *Context) error {
	if p.terminated {
		return errors.WithStack(ErrTerminated)
	}
	if err := p.RunInit(w, ctx); err != nil {
		return err
	}
	if err := p.RunCleanup(w, ctx); err != nil {
		return err
	}
	if ctx.Closing() {
		p.terminated = true
		ctx.Queue.Close()
		ctx.Logger.Info("window closed", zap.Uint64("tick", ctx.Tick()))
		return errors.WithStack(ErrTerminated)
	}

	start := time.Now()
	ctx.BeginTick()

	for _, s := range p.phases {
		if err := p.run(s, w, ctx); err != nil {
			return err
		}
	}

	// Removals requested after EventState
	w.ApplyStaged()
	if err := p.RunCleanup(w, ctx); err != nil {
		return err
	}

	ctx.RecordTick(time.Since(start).Microseconds(), w.Tree.Len())
	return nil
}

func (p *Pipeline) run(s System, w *World, ctx *Context) error {
	err := core.Guard(func() error {
		return s.Update(w, ctx)
	})
	if err != nil {
		return errors.Wrapf(err, "system %s", s.Name())
	}
	return nil
}

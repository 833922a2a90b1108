package engine

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/event"
)

// BuildContext is the declarative construction surface used by widget builders
// The first failure sticks; later calls become no-ops and Err reports it
type BuildContext struct {
	world *World
	ctx   *Context
	err   error
}

// NewBuildContext creates a builder over world and context
func NewBuildContext(w *World, ctx *Context) *BuildContext {
	return &BuildContext{world: w, ctx: ctx}
}

// World returns the world being built
func (b *BuildContext) World() *World {
	return b.world
}

// Context returns the shared context being built
func (b *BuildContext) Context() *Context {
	return b.ctx
}

// Components returns the component store
func (b *BuildContext) Components() *ComponentStore {
	return b.world.Components
}

// Sender returns the window queue producer for callbacks created during build
func (b *BuildContext) Sender() event.Sender {
	return b.ctx.Queue
}

// Err returns the first build failure
func (b *BuildContext) Err() error {
	return b.err
}

// Fail records err unless an earlier failure exists
func (b *BuildContext) Fail(err error) {
	if b.err == nil && err != nil {
		b.err = errors.WithStack(err)
	}
}

// Create allocates an entity under parent
func (b *BuildContext) Create(parent core.Entity) core.Entity {
	if b.err != nil {
		return core.NoEntity
	}
	e, err := b.world.Create(parent)
	if err != nil {
		b.Fail(err)
		return core.NoEntity
	}
	return e
}

// SetRoot designates e as the window root
func (b *BuildContext) SetRoot(e core.Entity) {
	if b.err != nil {
		return
	}
	b.Fail(b.world.Tree.SetRoot(e))
}

// SetOverlay designates e as the window overlay
func (b *BuildContext) SetOverlay(e core.Entity) {
	if b.err != nil {
		return
	}
	b.Fail(b.world.Tree.SetOverlay(e))
}

// RegisterRenderObject sets the render object of e
func (b *BuildContext) RegisterRenderObject(e core.Entity, ro RenderObject) {
	if b.ok(e) {
		b.ctx.RenderObjects.Insert(e, ro)
	}
}

// RegisterLayout sets the layout strategy of e
func (b *BuildContext) RegisterLayout(e core.Entity, l Layout) {
	if b.ok(e) {
		b.ctx.Layouts.Insert(e, l)
	}
}

// RegisterHandler appends h to the handlers of e
func (b *BuildContext) RegisterHandler(e core.Entity, h Handler) {
	if b.ok(e) {
		b.ctx.AddHandler(e, h)
	}
}

// RegisterState sets the state object of e
func (b *BuildContext) RegisterState(e core.Entity, s State) {
	if b.ok(e) {
		b.ctx.States.Insert(e, s)
	}
}

func (b *BuildContext) ok(e core.Entity) bool {
	if b.err != nil {
		return false
	}
	if !b.world.Tree.Contains(e) {
		b.Fail(structural("register", e, ErrNotFound))
		return false
	}
	return true
}

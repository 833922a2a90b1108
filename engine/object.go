package engine

import (
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/event"
	"github.com/lixenwraith/retain/render"
)

// RenderObject produces the draw ops of one entity
// d arrives with entity, layer and final bounds filled in
type RenderObject interface {
	Render(w *World, e core.Entity, d *render.Drawable) error
}

// RenderFunc adapts a function to RenderObject
type RenderFunc func(w *World, e core.Entity, d *render.Drawable) error

func (f RenderFunc) Render(w *World, e core.Entity, d *render.Drawable) error {
	return f(w, e, d)
}

// Layout measures an entity from its children and places the children
// Margin, alignment, constraint and visibility of the entity itself are applied by the layout system
type Layout interface {
	// Measure returns the desired content size of e; children are already measured
	Measure(lc *LayoutContext, e core.Entity) (core.Size, error)
	// Arrange assigns a slot to each child via lc.Place; bounds is e's final rectangle
	Arrange(lc *LayoutContext, e core.Entity, bounds core.Rect) error
}

// Handler reacts to input routed to an entity
// Returning true stops bubbling to ancestors
type Handler interface {
	Handle(sc *StateContext, e core.Entity, in event.Input) (bool, error)
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(sc *StateContext, e core.Entity, in event.Input) (bool, error)

func (f HandlerFunc) Handle(sc *StateContext, e core.Entity, in event.Input) (bool, error) {
	return f(sc, e, in)
}

// State is the per-widget behavioral object, updated once per tick during EventState
type State interface {
	Update(sc *StateContext, e core.Entity) error
}

// StateInitializer is implemented by states that need setup before their first update
type StateInitializer interface {
	Init(sc *StateContext, e core.Entity) error
}

// PostLayoutState is implemented by states that react to finalized geometry
type PostLayoutState interface {
	UpdatePostLayout(sc *StateContext, e core.Entity) error
}

// StateCleaner is implemented by states that release resources when their entity is removed
type StateCleaner interface {
	Cleanup(sc *StateContext, e core.Entity) error
}

// TextMetrics measures text in window units
type TextMetrics interface {
	MeasureText(text string) core.Size
	LineHeight() float64
}

// WindowControl is the native window as seen from inside the pipeline
type WindowControl interface {
	SetTitle(title string)
	SetSize(size core.Size)
	Bell()
	RequestRedraw()
}

type nopWindow struct{}

func (nopWindow) SetTitle(string)   {}
func (nopWindow) SetSize(core.Size) {}
func (nopWindow) Bell()             {}
func (nopWindow) RequestRedraw()    {}

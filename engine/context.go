package engine

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/event"
	"github.com/lixenwraith/retain/parameter"
	"github.com/lixenwraith/retain/status"
)

// Metric keys published by the pipeline
const (
	MetricTicks       = "pipeline.ticks"
	MetricDiagnostics = "pipeline.diagnostics"
	MetricTickMicros  = "pipeline.tick_us"
	MetricTickPeak    = "pipeline.tick_us_peak"
	MetricLastFailure = "pipeline.last_failure"
	MetricEntities    = "tree.entities"
	MetricRequests    = "queue.requests"
)

// Context is the per-window state shared by every system
// Created with the window, dropped when the window terminates
type Context struct {
	// ===== Registries =====
	// Mutated only from the window goroutine, one system at a time.

	RenderObjects *Registry[RenderObject]
	Layouts       *Registry[Layout]
	Handlers      *Registry[[]Handler]
	States        *Registry[State]

	// ===== Cross-Boundary =====
	// Queue is the only path safe for other goroutines.

	Queue *event.Queue

	// ===== Collaborators =====
	// Set once before the first tick.

	Services *Services
	Status   *status.Registry
	Logger   *zap.Logger
	Metrics  TextMetrics
	Window   WindowControl

	// ===== Window-Goroutine Exclusive =====

	started     map[core.Entity]struct{}
	inputs      []event.Input
	diagnostics []Diagnostic
	diagNext    int
	diagTotal   int
	windowSize  core.Size
	tick        uint64
	closing     bool
	redraw      bool
	relayout    bool

	// Cached metric pointers
	statTicks       *atomic.Int64
	statDiagnostics *atomic.Int64
	statTickMicros  *atomic.Int64
	statEntities    *atomic.Int64
	statRequests    *atomic.Int64
	statTickPeak    *status.AtomicFloat
	statLastFailure *status.AtomicString
}

// NewContext creates a context with empty registries and a fresh queue
// Nil logger or registry are replaced with a no-op logger and a private registry
func NewContext(logger *zap.Logger, reg *status.Registry) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	return &Context{
		RenderObjects: NewRegistry[RenderObject]("render_objects"),
		Layouts:       NewRegistry[Layout]("layouts"),
		Handlers:      NewRegistry[[]Handler]("handlers"),
		States:        NewRegistry[State]("states"),
		Queue:         event.NewQueue(),
		Services:      NewServices(),
		Status:        reg,
		Logger:        logger,
		Window:        nopWindow{},

		started:     make(map[core.Entity]struct{}),
		diagnostics: make([]Diagnostic, 0, parameter.DiagnosticHistory),

		statTicks:       reg.Ints.Get(MetricTicks),
		statDiagnostics: reg.Ints.Get(MetricDiagnostics),
		statTickMicros:  reg.Ints.Get(MetricTickMicros),
		statEntities:    reg.Ints.Get(MetricEntities),
		statRequests:    reg.Ints.Get(MetricRequests),
		statTickPeak:    reg.Floats.Get(MetricTickPeak),
		statLastFailure: reg.Strings.Get(MetricLastFailure),
	}
}

// Sender returns the producer side of the window queue
func (c *Context) Sender() event.Sender {
	return c.Queue
}

// Tick returns the number of the tick in progress, 0 before the first
func (c *Context) Tick() uint64 {
	return c.tick
}

// BeginTick advances the tick counter
func (c *Context) BeginTick() uint64 {
	c.tick++
	c.statTicks.Store(int64(c.tick))
	return c.tick
}

// RecordTick publishes tick duration and tree size
func (c *Context) RecordTick(micros int64, entities int) {
	c.statTickMicros.Store(micros)
	c.statTickPeak.Max(float64(micros))
	c.statEntities.Store(int64(entities))
}

// CountRequests adds n drained requests to the queue metric
func (c *Context) CountRequests(n int) {
	c.statRequests.Add(int64(n))
}

// WindowSize returns the last known native window size
func (c *Context) WindowSize() core.Size {
	return c.windowSize
}

// SetWindowSize records the native window size used as the root slot
func (c *Context) SetWindowSize(s core.Size) {
	c.windowSize = s
}

// RequestClose marks the window for termination at the top of the next tick
func (c *Context) RequestClose() {
	c.closing = true
}

// Closing reports whether a close request has been observed
func (c *Context) Closing() bool {
	return c.closing
}

// MarkRedraw forces the next frame to be presented
func (c *Context) MarkRedraw() {
	c.redraw = true
}

// TakeRedraw returns and clears the redraw flag
func (c *Context) TakeRedraw() bool {
	r := c.redraw
	c.redraw = false
	return r
}

// RequestRelayout asks for another arrange pass before rendering
func (c *Context) RequestRelayout() {
	c.relayout = true
}

// TakeRelayout returns and clears the relayout flag
func (c *Context) TakeRelayout() bool {
	r := c.relayout
	c.relayout = false
	return r
}

// PushInput buffers input for the next EventState run
func (c *Context) PushInput(in ...event.Input) {
	c.inputs = append(c.inputs, in...)
}

// TakeInputs returns buffered input in arrival order and clears the buffer
func (c *Context) TakeInputs() []event.Input {
	in := c.inputs
	c.inputs = nil
	return in
}

// Started reports whether the state of e has been initialized
func (c *Context) Started(e core.Entity) bool {
	_, ok := c.started[e]
	return ok
}

// MarkStarted records that the state of e has been initialized
func (c *Context) MarkStarted(e core.Entity) {
	c.started[e] = struct{}{}
}

// Forget drops every registry entry and per-entity flag of e
func (c *Context) Forget(e core.Entity) {
	c.RenderObjects.Remove(e)
	c.Layouts.Remove(e)
	c.Handlers.Remove(e)
	c.States.Remove(e)
	delete(c.started, e)
}

// AddHandler appends h to e's handler list
func (c *Context) AddHandler(e core.Entity, h Handler) {
	hs, _ := c.Handlers.Get(e)
	next := make([]Handler, len(hs), len(hs)+1)
	copy(next, hs)
	c.Handlers.Insert(e, append(next, h))
}

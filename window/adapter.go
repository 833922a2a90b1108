package window

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/event"
	"github.com/lixenwraith/retain/parameter"
	"github.com/lixenwraith/retain/render"
	"github.com/lixenwraith/retain/settings"
	"github.com/lixenwraith/retain/shell"
	"github.com/lixenwraith/retain/status"
	"github.com/lixenwraith/retain/system"
	"github.com/lixenwraith/retain/widget"
)

// ErrNotAttached is returned when ticking a window that has no native handle
var ErrNotAttached = errors.New("window not attached to a shell")

// State is the lifecycle of one window
type State int32

const (
	StateUninitialized State = iota
	StateTicking
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateTicking:
		return "ticking"
	case StateTerminated:
		return "terminated"
	default:
		return "uninitialized"
	}
}

// Config describes a window before it is built
type Config struct {
	Title       string
	Position    core.Point
	Size        core.Size
	Borderless  bool
	Resizeable  bool
	AlwaysOnTop bool

	// RestoreGeometry loads and saves position and size through the settings service
	RestoreGeometry bool

	Logger *zap.Logger
	// Status is shared by windows; each writes under its own "window.<id>." prefix
	Status *status.Registry
}

// DefaultConfig returns a resizeable window with the default title and size
func DefaultConfig() Config {
	return Config{
		Title:      parameter.DefaultWindowTitle,
		Size:       core.Size{Width: parameter.DefaultWindowWidth, Height: parameter.DefaultWindowHeight},
		Resizeable: true,
	}
}

// BuildFunc declares the content of a window under its root
type BuildFunc func(b *engine.BuildContext, root core.Entity) error

// Sounder plays the window bell
type Sounder interface {
	Bell()
}

// Adapter binds one world, shared context and pipeline to one native window
// Tick must be called from a single goroutine; Input may be called from any
type Adapter struct {
	id       string
	cfg      Config
	build    BuildFunc
	world    *engine.World
	ctx      *engine.Context
	pipeline *engine.Pipeline
	recorder *render.Recorder
	native   shell.Window
	sound    Sounder
	logger   *zap.Logger

	mu     sync.Mutex
	inputs []event.Input

	state       atomic.Int32
	err         error
	onTerminate []func(*Adapter)
}

// New creates an unattached window; build runs when a shell window is attached
func New(cfg Config, build BuildFunc) (*Adapter, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	logger = logger.Named("window").With(zap.String("window", id))

	reg := cfg.Status
	if reg != nil {
		reg = reg.Prefixed("window." + id + ".")
	}

	rec := render.NewRecorder()
	pipeline, err := system.NewPipeline(rec)
	if err != nil {
		return nil, err
	}

	a := &Adapter{
		id:       id,
		cfg:      cfg,
		build:    build,
		world:    engine.NewWorld(),
		ctx:      engine.NewContext(logger, reg),
		pipeline: pipeline,
		recorder: rec,
		logger:   logger,
	}
	rec.OnFrame = a.present
	return a, nil
}

// ID returns the window identifier
func (a *Adapter) ID() string {
	return a.id
}

// World returns the entity tree and components of the window
func (a *Adapter) World() *engine.World {
	return a.world
}

// Context returns the shared context of the window
func (a *Adapter) Context() *engine.Context {
	return a.ctx
}

// Frames returns the frame recorder feeding the native window
func (a *Adapter) Frames() *render.Recorder {
	return a.recorder
}

// Sender returns the producer side of the window request queue
func (a *Adapter) Sender() event.Sender {
	return a.ctx.Queue
}

// Options returns the native window description
func (a *Adapter) Options() shell.Options {
	return shell.Options{
		ID:     a.id,
		Title:  a.cfg.Title,
		Bounds: core.NewRect(a.cfg.Position, a.cfg.Size),
		Flags: shell.Flags{
			Borderless:  a.cfg.Borderless,
			Resizeable:  a.cfg.Resizeable,
			AlwaysOnTop: a.cfg.AlwaysOnTop,
		},
		Sender: a.ctx.Queue,
	}
}

// Attach binds the native window and builds the widget tree
func (a *Adapter) Attach(native shell.Window, sound Sounder) error {
	a.native = native
	a.sound = sound
	a.ctx.Window = control{a: a}
	if m := native.Metrics(); m != nil {
		a.ctx.Metrics = m
	}

	b := engine.NewBuildContext(a.world, a.ctx)
	// Every window owns an overlay for popups; builders reach it through widget.Overlay
	widget.Overlay(b)
	root := widget.Window(b, widget.WindowConfig{
		Title:       a.cfg.Title,
		Position:    a.cfg.Position,
		Size:        a.cfg.Size,
		Borderless:  a.cfg.Borderless,
		Resizeable:  a.cfg.Resizeable,
		AlwaysOnTop: a.cfg.AlwaysOnTop,
	})
	if a.build != nil && b.Err() == nil {
		b.Fail(a.build(b, root))
	}
	if err := b.Err(); err != nil {
		a.terminate(errors.Wrap(err, "build window"))
		return err
	}
	return nil
}

// Input buffers native input for the next tick
func (a *Adapter) Input(in event.Input) {
	a.mu.Lock()
	a.inputs = append(a.inputs, in)
	a.mu.Unlock()
}

func (a *Adapter) takeInputs() []event.Input {
	a.mu.Lock()
	defer a.mu.Unlock()
	in := a.inputs
	a.inputs = nil
	return in
}

// State returns the lifecycle state
func (a *Adapter) State() State {
	return State(a.state.Load())
}

// Terminated reports whether the window stopped ticking
func (a *Adapter) Terminated() bool {
	return a.State() == StateTerminated
}

// Err returns the failure that terminated the window, nil after a normal close
func (a *Adapter) Err() error {
	return a.err
}

// OnTerminate registers fn to run once when the window terminates
func (a *Adapter) OnTerminate(fn func(*Adapter)) {
	a.onTerminate = append(a.onTerminate, fn)
}

// Tick runs init on first call, then one pass of the pipeline
func (a *Adapter) Tick() error {
	if a.Terminated() {
		if a.err != nil {
			return a.err
		}
		return errors.WithStack(engine.ErrTerminated)
	}
	if a.native == nil {
		return errors.WithStack(ErrNotAttached)
	}

	a.ctx.PushInput(a.takeInputs()...)
	err := a.pipeline.Tick(a.world, a.ctx)
	if err != nil {
		a.terminate(err)
		return err
	}
	a.state.CompareAndSwap(int32(StateUninitialized), int32(StateTicking))
	return nil
}

// Run ticks at interval until the window terminates or ctx ends
func (a *Adapter) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = parameter.FrameUpdateInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := a.Tick(); err != nil {
			if errors.Is(err, engine.ErrTerminated) {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			a.terminate(nil)
			return nil
		case <-ticker.C:
		}
	}
}

// Geometry returns the current placement for persistence
func (a *Adapter) Geometry() settings.Geometry {
	pos := a.world.Components.Position.GetOr(a.world.Tree.Root(), a.cfg.Position)
	size := a.ctx.WindowSize()
	if size.IsEmpty() {
		size = a.cfg.Size
	}
	return settings.Geometry{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

func (a *Adapter) terminate(err error) {
	if State(a.state.Swap(int32(StateTerminated))) == StateTerminated {
		return
	}
	if err != nil && !errors.Is(err, engine.ErrTerminated) {
		a.err = err
		a.logger.Error("window failed", zap.Error(err))
	}
	a.ctx.Queue.Close()

	for _, fn := range a.onTerminate {
		fn(a)
	}
	if a.native != nil {
		if cerr := a.native.Close(); cerr != nil {
			a.logger.Warn("close native window", zap.Error(cerr))
		}
	}
}

func (a *Adapter) present(f render.Frame, changed bool) error {
	if a.native == nil {
		return nil
	}
	return a.native.Present(f, changed, a.ctx.TakeRedraw())
}

// control exposes the native window to the pipeline
type control struct {
	a *Adapter
}

func (c control) SetTitle(title string) {
	c.a.native.SetTitle(title)
}

func (c control) SetSize(size core.Size) {
	c.a.native.SetSize(size)
}

func (c control) Bell() {
	c.a.native.Bell()
	if c.a.sound != nil {
		c.a.sound.Bell()
	}
}

func (c control) RequestRedraw() {
	c.a.native.RequestRedraw()
}

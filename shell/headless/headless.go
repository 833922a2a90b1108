// Package headless hosts windows without a display, keeping presented frames in memory
package headless

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/event"
	"github.com/lixenwraith/retain/layout"
	"github.com/lixenwraith/retain/render"
	"github.com/lixenwraith/retain/shell"
)

// Config controls the frame clock of the shell
type Config struct {
	// Interval between ticks; zero ticks as fast as possible
	Interval time.Duration
	// MaxTicks sends a close request to a window after that many ticks; zero runs until closed
	MaxTicks int
	Metrics  engine.TextMetrics
	Logger   *zap.Logger
}

// Shell runs every window on its own goroutine
type Shell struct {
	cfg    Config
	logger *zap.Logger

	mu      sync.Mutex
	windows []*Window
	group   *errgroup.Group
	runCtx  context.Context
	closed  bool
	errs    error
}

// New creates a headless shell
func New(cfg Config) *Shell {
	if cfg.Metrics == nil {
		cfg.Metrics = layout.DefaultMetrics()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{cfg: cfg, logger: logger.Named("headless")}
}

// CreateWindow registers a and returns its in-memory window
// Windows created while Run is active start ticking immediately
func (s *Shell) CreateWindow(opts shell.Options, a shell.Adapter) (shell.Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, shell.ErrClosed
	}
	w := &Window{
		opts:    opts,
		adapter: a,
		metrics: s.cfg.Metrics,
		title:   opts.Title,
		size:    opts.Bounds.Size(),
	}
	s.windows = append(s.windows, w)
	if s.group != nil {
		s.spawn(w)
	}
	return w, nil
}

// Windows returns the windows created so far
func (s *Shell) Windows() []*Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Window(nil), s.windows...)
}

// Run ticks every window until all terminate or ctx ends
func (s *Shell) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return shell.ErrClosed
	}
	s.group, s.runCtx = errgroup.WithContext(ctx)
	for _, w := range s.windows {
		s.spawn(w)
	}
	g := s.group
	s.mu.Unlock()

	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.errs
}

// spawn must be called with s.mu held
func (s *Shell) spawn(w *Window) {
	ctx := s.runCtx
	s.group.Go(func() error {
		if err := s.drive(ctx, w); err != nil {
			s.logger.Warn("window ended with error", zap.String("window", w.opts.ID), zap.Error(err))
			s.mu.Lock()
			shell.Collect(&s.errs, err)
			s.mu.Unlock()
		}
		// Window failures never cancel siblings
		return nil
	})
}

func (s *Shell) drive(ctx context.Context, w *Window) error {
	var tick <-chan time.Time
	if s.cfg.Interval > 0 {
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for n := 1; ; n++ {
		done, err := shell.TickError(w.adapter)
		if done {
			return err
		}
		if s.cfg.MaxTicks > 0 && n == s.cfg.MaxTicks && w.opts.Sender != nil {
			_ = w.opts.Sender.Send(event.Close{})
		}

		if tick == nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
		}
	}
}

// Window keeps the state a display would show
type Window struct {
	opts    shell.Options
	adapter shell.Adapter
	metrics engine.TextMetrics

	mu        sync.Mutex
	last      render.Frame
	presented int
	skipped   int
	title     string
	size      core.Size
	bells     int
	redraws   int
	closed    bool
}

// ID returns the window identifier
func (w *Window) ID() string {
	return w.opts.ID
}

// Inject delivers native input to the window
func (w *Window) Inject(in event.Input) {
	w.adapter.Input(in)
}

// Present keeps f unless it is unchanged and not forced
func (w *Window) Present(f render.Frame, changed, force bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !changed && !force {
		w.skipped++
		return nil
	}
	w.last = f
	w.presented++
	return nil
}

func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
}

func (w *Window) SetSize(size core.Size) {
	w.mu.Lock()
	w.size = size
	w.mu.Unlock()
}

func (w *Window) Bell() {
	w.mu.Lock()
	w.bells++
	w.mu.Unlock()
}

func (w *Window) RequestRedraw() {
	w.mu.Lock()
	w.redraws++
	w.mu.Unlock()
}

func (w *Window) Metrics() engine.TextMetrics {
	return w.metrics
}

func (w *Window) Close() error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	return nil
}

// Snapshot is a consistent copy of the window state
type Snapshot struct {
	Title     string
	Size      core.Size
	Last      render.Frame
	Presented int
	Skipped   int
	Bells     int
	Redraws   int
	Closed    bool
}

// Snapshot copies the window state
func (w *Window) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Title:     w.title,
		Size:      w.size,
		Last:      w.last,
		Presented: w.presented,
		Skipped:   w.skipped,
		Bells:     w.bells,
		Redraws:   w.redraws,
		Closed:    w.closed,
	}
}

// Package term hosts a single window on a terminal through tcell
package term

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/retain/event"
	"github.com/lixenwraith/retain/layout"
	"github.com/lixenwraith/retain/parameter"
	"github.com/lixenwraith/retain/shell"
)

// ErrSingleWindow is returned when a second window is created on a terminal
var ErrSingleWindow = errors.New("terminal hosts a single window")

// Config controls the terminal shell
type Config struct {
	// Interval between ticks; defaults to the frame update interval
	Interval time.Duration
	// Metrics maps cells to window units
	Metrics layout.CellMetrics
	// Screen overrides the terminal screen, e.g. a simulation screen
	Screen tcell.Screen
	// Border selects the characters of stroked rectangles
	Border LineType
	// Mouse enables mouse reporting
	Mouse  bool
	Logger *zap.Logger
}

// Shell drives one window from the terminal event stream and a frame ticker
type Shell struct {
	cfg    Config
	logger *zap.Logger

	mu      sync.Mutex
	win     *Window
	screen  tcell.Screen
	closed  bool
	buttons tcell.ButtonMask
}

// New creates a terminal shell
func New(cfg Config) *Shell {
	if cfg.Interval <= 0 {
		cfg.Interval = parameter.FrameUpdateInterval
	}
	if cfg.Metrics.CellWidth <= 0 || cfg.Metrics.CellHeight <= 0 {
		cfg.Metrics = layout.DefaultMetrics()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{cfg: cfg, logger: logger.Named("term")}
}

// CreateWindow binds the only window of the terminal
func (s *Shell) CreateWindow(opts shell.Options, a shell.Adapter) (shell.Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, shell.ErrClosed
	}
	if s.win != nil {
		return nil, errors.WithStack(ErrSingleWindow)
	}
	s.win = &Window{shell: s, opts: opts, adapter: a, title: opts.Title}
	return s.win, nil
}

// Run owns the terminal until the window terminates or ctx ends
func (s *Shell) Run(ctx context.Context) error {
	s.mu.Lock()
	win := s.win
	if s.closed || win == nil {
		s.closed = true
		s.mu.Unlock()
		return shell.ErrClosed
	}
	s.mu.Unlock()

	screen, err := s.open()
	if err != nil {
		return err
	}
	defer func() {
		screen.Fini()
		s.mu.Lock()
		s.closed = true
		s.screen = nil
		s.mu.Unlock()
	}()

	// The root follows the terminal, not the configured window size
	w, h := screen.Size()
	win.adapter.Input(s.resized(w, h))
	if title := win.Title(); title != "" {
		screen.SetTitle(title)
	}

	quit := make(chan struct{})
	defer close(quit)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		if done, err := shell.TickError(win.adapter); done {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			s.handle(win, ev)
		case <-ticker.C:
		}
		// Drain whatever else arrived before the next tick
	drain:
		for {
			select {
			case ev := <-events:
				s.handle(win, ev)
			default:
				break drain
			}
		}
	}
}

func (s *Shell) open() (tcell.Screen, error) {
	screen := s.cfg.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, errors.Wrap(err, "open terminal")
		}
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "init terminal")
	}
	if s.cfg.Mouse {
		screen.EnableMouse()
	}
	screen.Clear()

	s.mu.Lock()
	s.screen = screen
	s.mu.Unlock()
	return screen, nil
}

// handle translates one terminal event; Ctrl+C is a close request
func (s *Shell) handle(win *Window, ev tcell.Event) {
	if key, ok := ev.(*tcell.EventKey); ok && key.Key() == tcell.KeyCtrlC {
		if win.opts.Sender != nil {
			win.opts.Sender.Send(event.Close{})
		}
		return
	}
	for _, in := range s.translate(ev) {
		win.adapter.Input(in)
	}
}

func (s *Shell) resized(cols, rows int) event.Resized {
	return event.Resized{
		Width:  float64(cols) * s.cfg.Metrics.CellWidth,
		Height: float64(rows) * s.cfg.Metrics.CellHeight,
	}
}

// Package remote serves windows to browser clients over websockets
package remote

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/layout"
	"github.com/lixenwraith/retain/parameter"
	"github.com/lixenwraith/retain/shell"
)

const (
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 2 * time.Second
	clientBuffer    = 16
)

// Config controls the remote shell
type Config struct {
	// Addr to listen on; empty serves only through Handler
	Addr string
	// Interval between ticks of each window
	Interval time.Duration
	Metrics  engine.TextMetrics
	Logger   *zap.Logger
}

// Shell ticks each window on its own goroutine and streams frames to subscribers
// Routes:
//   - GET /windows       lists windows
//   - GET /windows/{id}  upgrades to a websocket bound to one window
type Shell struct {
	cfg      Config
	logger   *zap.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux

	mu      sync.Mutex
	windows map[string]*Window
	order   []string
	group   *errgroup.Group
	runCtx  context.Context
	closed  bool
	errs    error
}

// New creates a remote shell
func New(cfg Config) *Shell {
	if cfg.Interval <= 0 {
		cfg.Interval = parameter.FrameUpdateInterval
	}
	if cfg.Metrics == nil {
		cfg.Metrics = layout.DefaultMetrics()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Shell{
		cfg:    cfg,
		logger: logger.Named("remote"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		windows: make(map[string]*Window),
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET /windows", s.handleList)
	s.mux.HandleFunc("GET /windows/{id}", s.handleWindow)
	return s
}

// Handler returns the HTTP routes of the shell
func (s *Shell) Handler() http.Handler {
	return s.mux
}

// CreateWindow registers a under its ID
func (s *Shell) CreateWindow(opts shell.Options, a shell.Adapter) (shell.Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, shell.ErrClosed
	}
	w := newWindow(s, opts, a)
	s.windows[opts.ID] = w
	s.order = append(s.order, opts.ID)
	if s.group != nil {
		s.spawn(w)
	}
	return w, nil
}

// Run serves clients and ticks windows until all terminate or ctx ends
func (s *Shell) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return shell.ErrClosed
	}
	ticking, tickCtx := errgroup.WithContext(ctx)
	s.group, s.runCtx = ticking, tickCtx
	for _, id := range s.order {
		s.spawn(s.windows[id])
	}
	s.mu.Unlock()

	var srv *http.Server
	serveErr := make(chan error, 1)
	if s.cfg.Addr != "" {
		ln, err := net.Listen("tcp", s.cfg.Addr)
		if err != nil {
			return errors.Wrapf(err, "listen %s", s.cfg.Addr)
		}
		s.logger.Info("serving windows", zap.String("addr", ln.Addr().String()))
		srv = &http.Server{Handler: s.mux}
		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()
	}

	_ = ticking.Wait()

	s.mu.Lock()
	s.closed = true
	for _, w := range s.windows {
		w.disconnect()
	}
	agg := s.errs
	s.mu.Unlock()

	if srv != nil {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shell.Collect(&agg, srv.Shutdown(sctx))
		shell.Collect(&agg, <-serveErr)
	}
	return agg
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
		return nil
	})
}

func (s *Shell) drive(ctx context.Context, w *Window) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		if done, err := shell.TickError(w.adapter); done {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

type windowInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (s *Shell) handleList(rw http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	list := make([]windowInfo, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, windowInfo{ID: id, Title: s.windows[id].Title()})
	}
	s.mu.Unlock()

	rw.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(rw).Encode(list); err != nil {
		s.logger.Debug("write window list", zap.Error(err))
	}
}

func (s *Shell) handleWindow(rw http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	w, ok := s.windows[id]
	closed := s.closed
	s.mu.Unlock()
	if !ok || closed || w.adapter.Terminated() {
		http.NotFound(rw, r)
		return
	}

	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		s.logger.Debug("upgrade failed", zap.String("window", id), zap.Error(err))
		return
	}
	c := w.subscribe(conn)
	go c.writeLoop()
	w.readLoop(c)
}

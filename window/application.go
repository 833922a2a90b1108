package window

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/settings"
	"github.com/lixenwraith/retain/shell"
	"github.com/lixenwraith/retain/status"
)

// ServiceSettings is the service key under which windows find the settings store
const ServiceSettings = "settings"

// Application owns the shell and every window created on it
type Application struct {
	name     string
	shell    shell.Shell
	logger   *zap.Logger
	settings *settings.Store
	sound    Sounder
	status   *status.Registry

	mu      sync.Mutex
	windows []*Adapter
}

// AppOption configures an Application
type AppOption func(*Application)

// WithLogger sets the parent logger of every window
func WithLogger(l *zap.Logger) AppOption {
	return func(app *Application) { app.logger = l }
}

// WithSettings enables geometry persistence and the settings service
func WithSettings(s *settings.Store) AppOption {
	return func(app *Application) { app.settings = s }
}

// WithSound routes window bells to s in addition to the native bell
func WithSound(s Sounder) AppOption {
	return func(app *Application) { app.sound = s }
}

// WithStatus shares one metrics registry across windows
func WithStatus(r *status.Registry) AppOption {
	return func(app *Application) { app.status = r }
}

// NewApplication creates an application hosted by sh
func NewApplication(name string, sh shell.Shell, opts ...AppOption) *Application {
	app := &Application{
		name:   name,
		shell:  sh,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Name returns the application name
func (app *Application) Name() string {
	return app.name
}

// Window creates, attaches and builds a new window
func (app *Application) Window(cfg Config, build BuildFunc) (*Adapter, error) {
	if cfg.Logger == nil {
		cfg.Logger = app.logger
	}
	if cfg.Status == nil {
		cfg.Status = app.status
	}
	key := app.geometryKey(cfg.Title)
	if cfg.RestoreGeometry && app.settings != nil {
		app.restore(key, &cfg)
	}

	a, err := New(cfg, build)
	if err != nil {
		return nil, err
	}
	if app.settings != nil {
		a.Context().Services.Register(ServiceSettings, app.settings)
		if cfg.RestoreGeometry {
			a.OnTerminate(func(a *Adapter) { app.save(key, a) })
		}
	}

	native, err := app.shell.CreateWindow(a.Options(), a)
	if err != nil {
		return nil, errors.Wrapf(err, "create window %q", cfg.Title)
	}
	if err := a.Attach(native, app.sound); err != nil {
		return nil, err
	}

	app.mu.Lock()
	app.windows = append(app.windows, a)
	app.mu.Unlock()
	return a, nil
}

// Windows returns the windows created so far
func (app *Application) Windows() []*Adapter {
	app.mu.Lock()
	defer app.mu.Unlock()
	return append([]*Adapter(nil), app.windows...)
}

// Run drives the shell until every window terminates or ctx ends
// The returned error aggregates every window failure
func (app *Application) Run(ctx context.Context) error {
	err := app.shell.Run(ctx)
	for _, a := range app.Windows() {
		if !a.Terminated() {
			a.terminate(nil)
		}
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

// Errors returns the failures of windows that did not close normally
func (app *Application) Errors() error {
	var agg error
	for _, a := range app.Windows() {
		agg = multierr.Append(agg, a.Err())
	}
	return agg
}

func (app *Application) geometryKey(title string) string {
	return app.name + "/" + title
}

func (app *Application) restore(key string, cfg *Config) {
	g, err := app.settings.Geometry(key)
	if err != nil {
		if !errors.Is(err, settings.ErrNoValue) {
			app.logger.Warn("restore window geometry", zap.String("key", key), zap.Error(err))
		}
		return
	}
	if g.Width <= 0 || g.Height <= 0 {
		return
	}
	cfg.Position = core.Point{X: g.X, Y: g.Y}
	cfg.Size = core.Size{Width: g.Width, Height: g.Height}
}

func (app *Application) save(key string, a *Adapter) {
	if err := app.settings.SetGeometry(key, a.Geometry()); err != nil {
		app.logger.Warn("save window geometry", zap.String("key", key), zap.Error(err))
	}
}

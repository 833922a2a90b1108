// Package injector assembles an Application from configuration
package injector

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/wire"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/retain/audio"
	"github.com/lixenwraith/retain/config"
	"github.com/lixenwraith/retain/layout"
	"github.com/lixenwraith/retain/logging"
	"github.com/lixenwraith/retain/settings"
	"github.com/lixenwraith/retain/shell"
	"github.com/lixenwraith/retain/shell/headless"
	"github.com/lixenwraith/retain/shell/remote"
	"github.com/lixenwraith/retain/shell/term"
	"github.com/lixenwraith/retain/status"
	"github.com/lixenwraith/retain/window"
)

// ProviderSet builds every dependency of an Application
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideStatus,
	ProvideSettings,
	ProvidePlayer,
	ProvideShell,
	ProvideApplication,
)

// ProvideLogger builds the root logger
// The terminal shell owns stderr, so terminal sinks are redirected to a file
func ProvideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := logging.New(loggingConfig(cfg))
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func loggingConfig(cfg config.Config) logging.Config {
	lc := cfg.Log
	if cfg.Shell.Kind == config.ShellTerminal && lc.WritesTerminal() {
		lc.Outputs = []string{filepath.Join(os.TempDir(), cfg.App.Name+".log")}
	}
	return lc
}

// ProvideStatus creates the metrics registry shared by every window
func ProvideStatus() *status.Registry {
	return status.NewRegistry()
}

// ProvideSettings opens the settings file; an empty path disables persistence
func ProvideSettings(cfg config.Config) (*settings.Store, func(), error) {
	if cfg.Settings.Path == "" {
		return nil, func() {}, nil
	}
	store, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// ProvidePlayer creates the bell player on the system speaker
func ProvidePlayer(cfg config.Config, logger *zap.Logger) (*audio.Player, func()) {
	p := audio.NewPlayer(cfg.Audio, nil, logger)
	return p, p.Close
}

// ProvideShell creates the shell selected by shell.kind
func ProvideShell(cfg config.Config, logger *zap.Logger) (shell.Shell, error) {
	sc := cfg.Shell
	interval := time.Second / time.Duration(sc.FrameRate)
	metrics := layout.CellMetrics{CellWidth: sc.CellWidth, CellHeight: sc.CellHeight}

	switch sc.Kind {
	case config.ShellTerminal:
		border, err := term.ParseLineType(sc.Border)
		if err != nil {
			return nil, errors.Wrap(config.ErrInvalid, err.Error())
		}
		return term.New(term.Config{Interval: interval, Metrics: metrics, Border: border, Mouse: sc.Mouse, Logger: logger}), nil
	case config.ShellHeadless:
		return headless.New(headless.Config{Interval: interval, MaxTicks: sc.MaxTicks, Metrics: metrics, Logger: logger}), nil
	case config.ShellRemote:
		return remote.New(remote.Config{Addr: sc.Listen, Interval: interval, Metrics: metrics, Logger: logger}), nil
	}
	return nil, errors.Wrapf(config.ErrInvalid, "shell.kind %q", sc.Kind)
}

// ProvideApplication wires the shell and shared services into an Application
func ProvideApplication(cfg config.Config, sh shell.Shell, logger *zap.Logger, store *settings.Store, player *audio.Player, reg *status.Registry) *window.Application {
	opts := []window.AppOption{
		window.WithLogger(logger),
		window.WithSound(player),
		window.WithStatus(reg),
	}
	if store != nil {
		opts = append(opts, window.WithSettings(store))
	}
	return window.NewApplication(cfg.App.Name, sh, opts...)
}

// WindowConfig converts the window section into a window configuration
func WindowConfig(cfg config.Config) window.Config {
	wc := window.DefaultConfig()
	wc.Title = cfg.Window.Title
	wc.Position.X, wc.Position.Y = cfg.Window.X, cfg.Window.Y
	if cfg.Window.Width > 0 && cfg.Window.Height > 0 {
		wc.Size.Width, wc.Size.Height = cfg.Window.Width, cfg.Window.Height
	}
	wc.Borderless = cfg.Window.Borderless
	wc.Resizeable = cfg.Window.Resizeable
	wc.AlwaysOnTop = cfg.Window.AlwaysOnTop
	wc.RestoreGeometry = cfg.Window.RestoreGeometry
	return wc
}

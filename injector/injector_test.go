package injector

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/retain/config"
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/settings"
	"github.com/lixenwraith/retain/shell/headless"
	"github.com/lixenwraith/retain/shell/remote"
	"github.com/lixenwraith/retain/shell/term"
	"github.com/lixenwraith/retain/widget"
)

func headlessConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.App.Name = "inject"
	cfg.Shell.Kind = config.ShellHeadless
	cfg.Shell.MaxTicks = 2
	cfg.Log.Outputs = []string{filepath.Join(t.TempDir(), "log.json")}
	cfg.Settings.Path = filepath.Join(t.TempDir(), "settings.db")
	cfg.Window.RestoreGeometry = true
	return cfg
}

func TestInitializeApplicationRuns(t *testing.T) {
	cfg := headlessConfig(t)
	app, cleanup, err := InitializeApplication(cfg)
	require.NoError(t, err)

	a, err := app.Window(WindowConfig(cfg), func(b *engine.BuildContext, root core.Entity) error {
		widget.TextBlock(b, root, "wired")
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, app.Run(context.Background()))
	assert.True(t, a.Terminated())
	cleanup()

	// geometry was persisted under the application name and window title
	store, err := settings.Open(cfg.Settings.Path)
	require.NoError(t, err)
	defer store.Close()
	g, err := store.Geometry("inject/" + cfg.Window.Title)
	require.NoError(t, err)
	assert.Equal(t, cfg.Window.Width, g.Width)
}

func TestProvideShellKinds(t *testing.T) {
	cfg := config.Default()
	logger, cleanup, err := ProvideLogger(headlessConfig(t))
	require.NoError(t, err)
	defer cleanup()

	for kind, want := range map[string]any{
		config.ShellTerminal: &term.Shell{},
		config.ShellHeadless: &headless.Shell{},
		config.ShellRemote:   &remote.Shell{},
	} {
		cfg.Shell.Kind = kind
		sh, err := ProvideShell(cfg, logger)
		require.NoError(t, err)
		assert.IsType(t, want, sh)
	}

	cfg.Shell.Kind = "wayland"
	_, err = ProvideShell(cfg, logger)
	assert.ErrorIs(t, err, config.ErrInvalid)

	cfg.Shell.Kind = config.ShellTerminal
	cfg.Shell.Border = "dotted"
	_, err = ProvideShell(cfg, logger)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestTerminalLogsAwayFromScreen(t *testing.T) {
	cfg := config.Default()
	require.True(t, cfg.Log.WritesTerminal())

	lc := loggingConfig(cfg)
	assert.False(t, lc.WritesTerminal())
	assert.Equal(t, cfg.App.Name+".log", filepath.Base(lc.Outputs[0]))

	cfg.Shell.Kind = config.ShellHeadless
	assert.Equal(t, cfg.Log, loggingConfig(cfg))
}

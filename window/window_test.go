package window

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/event"
	"github.com/lixenwraith/retain/settings"
	"github.com/lixenwraith/retain/shell/headless"
	"github.com/lixenwraith/retain/status"
	"github.com/lixenwraith/retain/widget"
)

type countingSounder struct {
	n atomic.Int32
}

func (s *countingSounder) Bell() { s.n.Add(1) }

func textContent(text string) BuildFunc {
	return func(b *engine.BuildContext, root core.Entity) error {
		widget.TextBlock(b, root, text)
		return nil
	}
}

func config(title string) Config {
	cfg := DefaultConfig()
	cfg.Title = title
	return cfg
}

func TestWindowRunsUntilClosed(t *testing.T) {
	sh := headless.New(headless.Config{MaxTicks: 3})
	app := NewApplication("test", sh)

	a, err := app.Window(config("main"), textContent("hello"))
	require.NoError(t, err)
	assert.Equal(t, StateUninitialized, a.State())
	assert.NotEmpty(t, a.ID())

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, StateTerminated, a.State())
	assert.NoError(t, a.Err())
	assert.NoError(t, app.Errors())

	wins := sh.Windows()
	require.Len(t, wins, 1)
	snap := wins[0].Snapshot()
	assert.True(t, snap.Closed)
	assert.Equal(t, "main", snap.Title)
	assert.GreaterOrEqual(t, snap.Presented, 1)
	assert.Equal(t, 420.0, snap.Last.Width)
	assert.NotEmpty(t, snap.Last.Drawables)

	// the close request sent after tick 3 is drained in tick 4 and honored at the top of tick 5
	assert.Equal(t, uint64(4), a.Context().Tick())
}

func TestUnchangedFramesAreSkipped(t *testing.T) {
	sh := headless.New(headless.Config{MaxTicks: 5})
	app := NewApplication("test", sh)
	_, err := app.Window(config("static"), textContent("still"))
	require.NoError(t, err)
	require.NoError(t, app.Run(context.Background()))

	snap := sh.Windows()[0].Snapshot()
	assert.Equal(t, 1, snap.Presented)
	assert.Equal(t, 5, snap.Skipped)
}

func TestBuildFailureRejectsWindow(t *testing.T) {
	sh := headless.New(headless.Config{MaxTicks: 1})
	app := NewApplication("test", sh)

	boom := errors.New("boom")
	_, err := app.Window(config("broken"), func(*engine.BuildContext, core.Entity) error {
		return boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, app.Windows())
}

func TestWindowOwnsOverlay(t *testing.T) {
	sh := headless.New(headless.Config{MaxTicks: 1})
	app := NewApplication("test", sh)

	var popup core.Entity
	a, err := app.Window(config("popup"), func(b *engine.BuildContext, root core.Entity) error {
		popup = widget.TextBlock(b, widget.Overlay(b), "tip")
		return nil
	})
	require.NoError(t, err)

	tree := a.World().Tree
	overlay := tree.Overlay()
	require.NotEqual(t, core.NoEntity, overlay)
	assert.NotEqual(t, tree.Root(), overlay)
	parent, err := tree.Parent(popup)
	require.NoError(t, err)
	assert.Equal(t, overlay, parent)

	require.NoError(t, app.Run(context.Background()))
	last := sh.Windows()[0].Snapshot().Last.Drawables
	require.NotEmpty(t, last)
	assert.Equal(t, popup, last[len(last)-1].Entity)
}

func TestFatalWindowDoesNotStopOthers(t *testing.T) {
	sh := headless.New(headless.Config{MaxTicks: 4})
	app := NewApplication("test", sh)

	healthy, err := app.Window(config("healthy"), textContent("ok"))
	require.NoError(t, err)
	broken, err := app.Window(config("broken"), func(b *engine.BuildContext, root core.Entity) error {
		b.Components().Title.Remove(root)
		return nil
	})
	require.NoError(t, err)

	err = app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), broken.ID())

	assert.True(t, healthy.Terminated())
	assert.NoError(t, healthy.Err())
	assert.True(t, broken.Terminated())
	assert.Error(t, broken.Err())
	assert.Error(t, app.Errors())
	assert.Equal(t, uint64(5), healthy.Context().Tick())
}

func TestWindowRequestsReachNative(t *testing.T) {
	sh := headless.New(headless.Config{MaxTicks: 2})
	sound := &countingSounder{}
	app := NewApplication("test", sh, WithSound(sound))

	a, err := app.Window(config("before"), textContent("x"))
	require.NoError(t, err)
	a.Sender().Send(event.TitleChanged{Title: "after"})
	a.Sender().Send(event.Bell{})
	a.Sender().Send(event.Resize{Width: 300, Height: 200})

	require.NoError(t, app.Run(context.Background()))

	snap := sh.Windows()[0].Snapshot()
	assert.Equal(t, "after", snap.Title)
	assert.Equal(t, 1, snap.Bells)
	assert.Equal(t, int32(1), sound.n.Load())
	assert.Equal(t, core.Size{Width: 300, Height: 200}, snap.Size)
	assert.Equal(t, 300.0, snap.Last.Width)
}

func TestInputBufferedUntilTick(t *testing.T) {
	sh := headless.New(headless.Config{MaxTicks: 2})
	app := NewApplication("test", sh)

	var keys atomic.Int32
	_, err := app.Window(config("input"), func(b *engine.BuildContext, root core.Entity) error {
		b.RegisterHandler(root, engine.HandlerFunc(func(_ *engine.StateContext, _ core.Entity, in event.Input) (bool, error) {
			if _, ok := in.(event.KeyInput); ok {
				keys.Add(1)
				return true, nil
			}
			return false, nil
		}))
		return nil
	})
	require.NoError(t, err)

	// nothing is focused so keys reach the root
	win := sh.Windows()[0]
	win.Inject(event.KeyInput{Key: event.KeyRune, Rune: 'a'})
	win.Inject(event.KeyInput{Key: event.KeyEnter})
	assert.Equal(t, int32(0), keys.Load())

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, int32(2), keys.Load())
}

func TestGeometryRestoredAndSaved(t *testing.T) {
	store, err := settings.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.SetGeometry("demo/main", settings.Geometry{X: 10, Y: 20, Width: 300, Height: 200}))

	sh := headless.New(headless.Config{MaxTicks: 2})
	app := NewApplication("demo", sh, WithSettings(store))

	cfg := config("main")
	cfg.RestoreGeometry = true
	a, err := app.Window(cfg, textContent("x"))
	require.NoError(t, err)
	assert.Equal(t, core.Rect{X: 10, Y: 20, Width: 300, Height: 200}, a.Options().Bounds)

	svc, err := engine.ServiceAs[*settings.Store](a.Context().Services, ServiceSettings)
	require.NoError(t, err)
	assert.Same(t, store, svc)

	a.Sender().Send(event.Resize{Width: 500, Height: 400})
	require.NoError(t, app.Run(context.Background()))

	g, err := store.Geometry("demo/main")
	require.NoError(t, err)
	assert.Equal(t, settings.Geometry{X: 10, Y: 20, Width: 500, Height: 400}, g)
}

func TestTickBeforeAttach(t *testing.T) {
	a, err := New(DefaultConfig(), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, a.Tick(), ErrNotAttached)
}

func TestRunStopsOnContext(t *testing.T) {
	sh := headless.New(headless.Config{Interval: time.Millisecond})
	app := NewApplication("test", sh)
	a, err := app.Window(config("endless"), textContent("x"))
	require.NoError(t, err)

	var hooked atomic.Bool
	a.OnTerminate(func(*Adapter) { hooked.Store(true) })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	require.NoError(t, app.Run(ctx))
	assert.True(t, a.Terminated())
	assert.True(t, hooked.Load())
	assert.NoError(t, a.Err())
}

func TestWindowsShareStatusUnderOwnPrefix(t *testing.T) {
	reg := status.NewRegistry()
	sh := headless.New(headless.Config{MaxTicks: 2})
	app := NewApplication("test", sh, WithStatus(reg))

	a, err := app.Window(config("a"), textContent("a"))
	require.NoError(t, err)
	b, err := app.Window(config("b"), textContent("b"))
	require.NoError(t, err)
	require.NoError(t, app.Run(context.Background()))

	snap := reg.Snapshot()
	assert.Equal(t, int64(a.Context().Tick()), snap["window."+a.ID()+"."+engine.MetricTicks])
	assert.Equal(t, int64(b.Context().Tick()), snap["window."+b.ID()+"."+engine.MetricTicks])
}

package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/event"
	"github.com/lixenwraith/retain/layout"
	"github.com/lixenwraith/retain/render"
	"github.com/lixenwraith/retain/shell"
	"github.com/lixenwraith/retain/widget"
	"github.com/lixenwraith/retain/window"
)

type inputLog struct {
	inputs []event.Input
}

func (l *inputLog) ID() string           { return "log" }
func (l *inputLog) Input(in event.Input) { l.inputs = append(l.inputs, in) }
func (l *inputLog) Tick() error          { return nil }
func (l *inputLog) Terminated() bool     { return false }

func newSimShell(t *testing.T, cols, rows int) (*Shell, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(cols, rows)
	s := New(Config{Screen: sim, Interval: time.Millisecond})
	s.screen = sim
	return s, sim
}

func TestTranslateKeys(t *testing.T) {
	in, ok := translateKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt))
	require.True(t, ok)
	assert.Equal(t, event.KeyInput{Key: event.KeyRune, Rune: 'x', Modifiers: event.ModAlt}, in)

	in, ok = translateKey(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, event.KeyPageDown, in.Key)

	_, ok = translateKey(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone))
	assert.False(t, ok)
}

func TestTranslateMouseTransitions(t *testing.T) {
	s := New(Config{Metrics: layout.CellMetrics{CellWidth: 8, CellHeight: 16}})
	center := core.Point{X: 2.5 * 8, Y: 1.5 * 16}

	down := s.translate(tcell.NewEventMouse(2, 1, tcell.Button1, tcell.ModNone))
	require.Len(t, down, 1)
	assert.Equal(t, event.MouseInput{Position: center, Button: event.ButtonLeft, Action: event.MouseDown}, down[0])

	up := s.translate(tcell.NewEventMouse(2, 1, tcell.ButtonNone, tcell.ModNone))
	require.Len(t, up, 1)
	assert.Equal(t, event.MouseUp, up[0].(event.MouseInput).Action)

	move := s.translate(tcell.NewEventMouse(3, 1, tcell.ButtonNone, tcell.ModNone))
	require.Len(t, move, 1)
	assert.Equal(t, event.MouseMove, move[0].(event.MouseInput).Action)

	wheel := s.translate(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone))
	require.Len(t, wheel, 1)
	assert.Equal(t, core.Point{Y: 1}, wheel[0].(event.ScrollInput).Delta)
}

func TestTranslateResizeToWindowUnits(t *testing.T) {
	s := New(Config{Metrics: layout.CellMetrics{CellWidth: 8, CellHeight: 16}})
	out := s.translate(tcell.NewEventResize(40, 20))
	require.Len(t, out, 1)
	assert.Equal(t, event.Resized{Width: 320, Height: 320}, out[0])
}

func TestCtrlCRequestsClose(t *testing.T) {
	s := New(Config{})
	q := event.NewQueue()
	log := &inputLog{}
	w, err := s.CreateWindow(shell.Options{ID: "log", Sender: q}, log)
	require.NoError(t, err)

	s.handle(w.(*Window), tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	assert.Equal(t, []event.Request{event.Close{}}, q.Drain())
	assert.Empty(t, log.inputs)

	s.handle(w.(*Window), tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Len(t, log.inputs, 1)
}

func TestSecondWindowRejected(t *testing.T) {
	s := New(Config{})
	_, err := s.CreateWindow(shell.Options{}, &inputLog{})
	require.NoError(t, err)
	_, err = s.CreateWindow(shell.Options{}, &inputLog{})
	assert.ErrorIs(t, err, ErrSingleWindow)
}

func TestPresentPaintsCells(t *testing.T) {
	s, sim := newSimShell(t, 10, 4)
	defer sim.Fini()
	w, err := s.CreateWindow(shell.Options{}, &inputLog{})
	require.NoError(t, err)

	bg := render.RGB{R: 10, G: 20, B: 30}
	fg := render.RGB{R: 200, G: 200, B: 200}
	d := render.NewDrawable(1, render.LayerRoot, core.Rect{Width: 80, Height: 64})
	d.FillRect(core.Rect{Width: 80, Height: 64}, bg).
		Text(core.Point{X: 8, Y: 16}, "hi", fg).
		Clip(core.Rect{Width: 16, Height: 64}).
		Text(core.Point{X: 0, Y: 32}, "clipped", fg)
	frame := render.Frame{Width: 80, Height: 64, Drawables: []render.Drawable{*d}}

	require.NoError(t, w.Present(frame, true, false))

	r, _, style, _ := sim.GetContent(1, 1)
	assert.Equal(t, 'h', r)
	gotFg, gotBg, _ := style.Decompose()
	assert.Equal(t, color(fg), gotFg)
	assert.Equal(t, color(bg), gotBg)

	r, _, _, _ = sim.GetContent(1, 2)
	assert.Equal(t, 'l', r)
	r, _, _, _ = sim.GetContent(2, 2)
	assert.Equal(t, ' ', r)
}

func TestPresentSkipsUnchanged(t *testing.T) {
	s, sim := newSimShell(t, 10, 4)
	defer sim.Fini()
	w, err := s.CreateWindow(shell.Options{}, &inputLog{})
	require.NoError(t, err)

	d := render.NewDrawable(1, render.LayerRoot, core.Rect{Width: 80, Height: 64})
	d.Text(core.Point{}, "a", render.RGB{R: 255})
	require.NoError(t, w.Present(render.Frame{Drawables: []render.Drawable{*d}}, false, false))

	r, _, _, _ := sim.GetContent(0, 0)
	assert.NotEqual(t, 'a', r)
}

func TestStrokeUsesBorderStyle(t *testing.T) {
	s, sim := newSimShell(t, 10, 4)
	defer sim.Fini()
	s.cfg.Border = LineRounded
	w, err := s.CreateWindow(shell.Options{}, &inputLog{})
	require.NoError(t, err)

	d := render.NewDrawable(1, render.LayerRoot, core.Rect{Width: 32, Height: 48})
	d.StrokeRect(core.Rect{Width: 32, Height: 48}, render.RGB{B: 255})
	require.NoError(t, w.Present(render.Frame{Drawables: []render.Drawable{*d}}, true, false))

	for _, c := range []struct {
		x, y int
		want rune
	}{
		{0, 0, '╭'}, {3, 0, '╮'}, {0, 2, '╰'}, {3, 2, '╯'}, {1, 0, '─'}, {0, 1, '│'},
	} {
		r, _, _, _ := sim.GetContent(c.x, c.y)
		assert.Equal(t, c.want, r, "cell %d,%d", c.x, c.y)
	}

	_, err = ParseLineType("dotted")
	assert.Error(t, err)
}

// closeAfter asks its window to close once the given tick is reached
type closeAfter struct {
	tick uint64
}

func (c closeAfter) Update(sc *engine.StateContext, _ core.Entity) error {
	if sc.Tick() == c.tick {
		sc.Send(event.Close{})
	}
	return nil
}

func TestRunUntilWindowCloses(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	s := New(Config{Screen: sim, Interval: time.Millisecond})
	app := window.NewApplication("term", s)

	a, err := app.Window(window.DefaultConfig(), func(b *engine.BuildContext, root core.Entity) error {
		widget.TextBlock(b, root, "hello")
		b.RegisterState(root, closeAfter{tick: 3})
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.Run(ctx))
	assert.True(t, a.Terminated())
	assert.NoError(t, a.Err())
	assert.Equal(t, uint64(4), a.Context().Tick())

	// the root follows the 80x25 simulation terminal, not the configured window size
	assert.Equal(t, core.Size{Width: 80 * 8, Height: 25 * 16}, a.Context().WindowSize())
}

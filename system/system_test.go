package system

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/event"
	"github.com/lixenwraith/retain/render"
	"github.com/lixenwraith/retain/widget"
)

type harness struct {
	w   *engine.World
	ctx *engine.Context
	p   *engine.Pipeline
	rec *render.Recorder
	b   *engine.BuildContext
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	rec := render.NewRecorder()
	p, err := NewPipeline(rec)
	if err != nil {
		t.Fatal(err)
	}
	w := engine.NewWorld()
	ctx := engine.NewContext(nil, nil)
	return &harness{w: w, ctx: ctx, p: p, rec: rec, b: engine.NewBuildContext(w, ctx)}
}

func (h *harness) window(t *testing.T) core.Entity {
	t.Helper()
	root := widget.Window(h.b, widget.WindowConfig{
		Title: "test",
		Size:  core.Size{Width: 420, Height: 730},
	})
	if err := h.b.Err(); err != nil {
		t.Fatal(err)
	}
	return root
}

func (h *harness) tick(t *testing.T) {
	t.Helper()
	if err := h.p.Tick(h.w, h.ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}
}

func TestTextChildInsideRoot(t *testing.T) {
	h := newHarness(t)
	root := h.window(t)
	child := widget.TextBlock(h.b, root, "hello")
	if err := h.b.Err(); err != nil {
		t.Fatal(err)
	}

	h.tick(t)

	cs := h.w.Components
	rootBounds := cs.Bounds.MustGet(root)
	childBounds := cs.Bounds.MustGet(child)
	if rootBounds != (core.Rect{Width: 420, Height: 730}) {
		t.Errorf("root bounds = %+v", rootBounds)
	}
	if childBounds.IsEmpty() {
		t.Errorf("child bounds empty")
	}
	if !rootBounds.Contains(childBounds) {
		t.Errorf("child %+v outside root %+v", childBounds, rootBounds)
	}

	frame := h.rec.Last()
	if len(frame.Drawables) != h.ctx.RenderObjects.Len() {
		t.Errorf("drawables = %d, render objects = %d", len(frame.Drawables), h.ctx.RenderObjects.Len())
	}
	seen := map[core.Entity]int{}
	for _, d := range frame.Drawables {
		seen[d.Entity]++
	}
	for _, e := range []core.Entity{root, child} {
		if seen[e] != 1 {
			t.Errorf("%v emitted %d times", e, seen[e])
		}
	}
}

func TestHandlerMutationVisibleToLayout(t *testing.T) {
	h := newHarness(t)
	root := h.window(t)
	label := widget.TextBlock(h.b, root, "ab",
		widget.WithAlignment(component.AlignStart, component.AlignStart))
	h.b.RegisterHandler(root, engine.HandlerFunc(func(sc *engine.StateContext, _ core.Entity, in event.Input) (bool, error) {
		if k, ok := in.(event.KeyInput); ok && k.Key == event.KeyEnter {
			sc.Components().Text.Set(label, "a much longer label")
			return true, nil
		}
		return false, nil
	}))

	h.tick(t)
	before := h.w.Components.Bounds.MustGet(label)

	h.ctx.PushInput(event.KeyInput{Key: event.KeyEnter})
	h.tick(t)
	after := h.w.Components.Bounds.MustGet(label)

	if before == after {
		t.Fatalf("bounds unchanged after text change: %+v", after)
	}
	if after.Width <= before.Width {
		t.Errorf("width did not grow: %v -> %v", before.Width, after.Width)
	}

	var found bool
	for _, d := range h.rec.Last().Drawables {
		if d.Entity == label {
			found = d.Bounds == after
		}
	}
	if !found {
		t.Errorf("render did not see the new bounds")
	}
}

func TestOverlayComposedAfterRoot(t *testing.T) {
	h := newHarness(t)
	root := h.window(t)
	under := widget.Container(h.b, root, widget.WithBackground(render.RGBBlack))
	overlay := widget.Overlay(h.b)
	popup := widget.Container(h.b, overlay, widget.WithBackground(render.RGBWhite))
	if err := h.b.Err(); err != nil {
		t.Fatal(err)
	}

	h.tick(t)

	var order []core.Entity
	for _, d := range h.rec.Last().Drawables {
		order = append(order, d.Entity)
	}
	want := []core.Entity{root, under, popup}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("draw order (-want +got):\n%s", diff)
	}

	cs := h.w.Components
	if cs.Bounds.MustGet(under) != cs.Bounds.MustGet(popup) {
		t.Errorf("test expects overlapping bounds")
	}
	last := h.rec.Last().Drawables[2]
	if last.Layer != render.LayerOverlay {
		t.Errorf("last drawable layer = %v", last.Layer)
	}
}

type requestLog struct {
	log []string
}

func (r *requestLog) SetTitle(title string) { r.log = append(r.log, "title:"+title) }
func (r *requestLog) SetSize(s core.Size)   { r.log = append(r.log, "size") }
func (r *requestLog) Bell()                 { r.log = append(r.log, "bell") }
func (r *requestLog) RequestRedraw()        { r.log = append(r.log, "redraw") }

func TestRequestsProcessedInSendOrder(t *testing.T) {
	h := newHarness(t)
	h.window(t)
	wc := &requestLog{}
	h.ctx.Window = wc

	h.tick(t)
	wc.log = nil

	h.ctx.Queue.Send(event.TitleChanged{Title: "A"})
	h.ctx.Queue.Send(event.Bell{})
	h.ctx.Queue.Send(event.TitleChanged{Title: "B"})
	h.tick(t)

	want := []string{"title:A", "bell", "title:B"}
	if diff := cmp.Diff(want, wc.log); diff != "" {
		t.Errorf("request order (-want +got):\n%s", diff)
	}
	if got := h.w.Components.Title.MustGet(h.w.Tree.Root()); got != "B" {
		t.Errorf("title = %q", got)
	}
}

func TestInitNotRepeated(t *testing.T) {
	h := newHarness(t)
	root := h.window(t)
	st := &countingState{}
	h.b.RegisterState(root, st)

	for i := 0; i < 3; i++ {
		h.tick(t)
	}
	sizes := [4]int{h.ctx.RenderObjects.Len(), h.ctx.Layouts.Len(), h.ctx.Handlers.Len(), h.ctx.States.Len()}

	init := NewInitSystem()
	if err := init.Update(h.w, h.ctx); err != nil {
		t.Fatal(err)
	}
	after := [4]int{h.ctx.RenderObjects.Len(), h.ctx.Layouts.Len(), h.ctx.Handlers.Len(), h.ctx.States.Len()}

	if st.inits != 1 {
		t.Errorf("state initialized %d times", st.inits)
	}
	if st.updates != 3 {
		t.Errorf("state updated %d times", st.updates)
	}
	if sizes != after {
		t.Errorf("registries changed by second init: %v -> %v", sizes, after)
	}
}

type countingState struct {
	inits, updates, post, cleanups int
}

func (s *countingState) Init(*engine.StateContext, core.Entity) error {
	s.inits++
	return nil
}

func (s *countingState) Update(*engine.StateContext, core.Entity) error {
	s.updates++
	return nil
}

func (s *countingState) UpdatePostLayout(*engine.StateContext, core.Entity) error {
	s.post++
	return nil
}

func (s *countingState) Cleanup(*engine.StateContext, core.Entity) error {
	s.cleanups++
	return nil
}

// spawningState registers a state on target from PostLayoutState
type spawningState struct {
	target  core.Entity
	child   *countingState
	staged  bool
	spawned bool
}

func (s *spawningState) Update(*engine.StateContext, core.Entity) error { return nil }

func (s *spawningState) UpdatePostLayout(sc *engine.StateContext, _ core.Entity) error {
	if s.spawned {
		return nil
	}
	sc.Build().RegisterState(s.target, s.child)
	s.staged = !sc.Ctx.States.Has(s.target) && sc.Ctx.States.Iterating()
	s.spawned = true
	return nil
}

func TestStateRegisteredDuringPostLayout(t *testing.T) {
	h := newHarness(t)
	root := h.window(t)
	target := widget.Container(h.b, root)
	spawner := &spawningState{target: target, child: &countingState{}}
	h.b.RegisterState(root, spawner)

	h.tick(t)

	if !spawner.staged {
		t.Errorf("registration during post layout was applied mid-range")
	}
	if !h.ctx.States.Has(target) {
		t.Fatalf("staged state not applied after post layout")
	}

	// Started and updated on the next tick like any other state
	h.tick(t)
	if c := spawner.child; c.inits != 1 || c.updates != 1 {
		t.Errorf("spawned state inits=%d updates=%d, want 1 1", c.inits, c.updates)
	}
}

func TestRemovalDuringTick(t *testing.T) {
	h := newHarness(t)
	root := h.window(t)
	panel := widget.Container(h.b, root)
	inner := widget.TextBlock(h.b, panel, "bye")
	st := &countingState{}
	h.b.RegisterState(inner, st)

	h.b.RegisterHandler(root, engine.HandlerFunc(func(sc *engine.StateContext, _ core.Entity, in event.Input) (bool, error) {
		if _, ok := in.(event.KeyInput); ok {
			if err := sc.Remove(panel); err != nil {
				return false, err
			}
			if !sc.World.Tree.Contains(inner) {
				t.Errorf("removal applied mid-dispatch")
			}
			return true, nil
		}
		return false, nil
	}))

	h.tick(t)
	h.ctx.PushInput(event.KeyInput{Key: event.KeyEscape})
	h.tick(t)

	for _, e := range []core.Entity{panel, inner} {
		if h.w.Tree.Contains(e) {
			t.Errorf("%v still in tree", e)
		}
		if _, err := h.w.Components.Text.Require(e); e == inner && !errors.Is(err, engine.ErrMissingComponent) {
			t.Errorf("component of removed entity: %v", err)
		}
		if h.ctx.RenderObjects.Has(e) || h.ctx.States.Has(e) {
			t.Errorf("registry entry of %v survived", e)
		}
	}
	if st.cleanups != 1 {
		t.Errorf("cleanup called %d times", st.cleanups)
	}
	for _, d := range h.rec.Last().Drawables {
		if d.Entity == panel || d.Entity == inner {
			t.Errorf("removed entity rendered")
		}
	}
}

func TestFailingEntityIsolated(t *testing.T) {
	h := newHarness(t)
	root := h.window(t)
	bad := h.b.Create(root)
	h.b.RegisterRenderObject(bad, engine.RenderFunc(func(*engine.World, core.Entity, *render.Drawable) error {
		panic("broken widget")
	}))
	good := widget.TextBlock(h.b, root, "fine")

	h.tick(t)

	var emitted []core.Entity
	for _, d := range h.rec.Last().Drawables {
		emitted = append(emitted, d.Entity)
	}
	if diff := cmp.Diff([]core.Entity{root, good}, emitted); diff != "" {
		t.Errorf("emitted (-want +got):\n%s", diff)
	}
	diags := h.ctx.Diagnostics()
	if len(diags) != 1 || diags[0].Entity != bad || diags[0].Phase != engine.PhaseRender {
		t.Errorf("diagnostics = %v", diags)
	}
}

type panicMeasure struct{}

func (panicMeasure) Measure(*engine.LayoutContext, core.Entity) (core.Size, error) {
	panic("measure")
}

func (panicMeasure) Arrange(*engine.LayoutContext, core.Entity, core.Rect) error { return nil }

func TestFailingLayoutIsolated(t *testing.T) {
	h := newHarness(t)
	root := h.window(t)
	panel := widget.Stack(h.b, root, component.Vertical, 0)
	bad := widget.Container(h.b, panel)
	h.b.RegisterLayout(bad, panicMeasure{})
	good := widget.TextBlock(h.b, panel, "fine")

	previous := core.Rect{X: 1, Y: 2, Width: 3, Height: 4}
	h.w.Components.Bounds.Set(bad, previous)

	h.tick(t)

	cs := h.w.Components
	if b := cs.Bounds.MustGet(good); b.IsEmpty() {
		t.Errorf("sibling of failed layout has no bounds")
	}
	if b := cs.Bounds.MustGet(bad); b != previous {
		t.Errorf("failed entity bounds = %+v, want previous %+v", b, previous)
	}
	diags := h.ctx.Diagnostics()
	if len(diags) != 1 || diags[0].Entity != bad || diags[0].Phase != engine.PhaseLayout {
		t.Errorf("diagnostics = %v", diags)
	}
}

func TestFailingHandlerIsolated(t *testing.T) {
	h := newHarness(t)
	root := h.window(t)
	label := widget.TextBlock(h.b, root, "still here")
	runes := 0
	h.b.RegisterHandler(root, engine.HandlerFunc(func(_ *engine.StateContext, _ core.Entity, in event.Input) (bool, error) {
		k, ok := in.(event.KeyInput)
		if !ok {
			return false, nil
		}
		if k.Key == event.KeyEnter {
			panic("handler")
		}
		runes++
		return true, nil
	}))
	h.tick(t)

	h.ctx.PushInput(event.KeyInput{Key: event.KeyEnter}, event.KeyInput{Key: event.KeyRune, Rune: 'x'})
	h.tick(t)

	if runes != 1 {
		t.Errorf("input after the failure handled %d times, want 1", runes)
	}
	var rendered bool
	for _, d := range h.rec.Last().Drawables {
		rendered = rendered || d.Entity == label
	}
	if !rendered {
		t.Errorf("tick did not reach render after handler failure")
	}
	diags := h.ctx.Diagnostics()
	if len(diags) != 1 || diags[0].Entity != root || diags[0].Phase != engine.PhaseEventState {
		t.Errorf("diagnostics = %v", diags)
	}
}

func TestMissingWindowComponentIsFatal(t *testing.T) {
	h := newHarness(t)
	root := h.b.Create(core.NoEntity)
	h.b.SetRoot(root)

	err := h.p.Tick(h.w, h.ctx)
	if !errors.Is(err, engine.ErrMissingComponent) {
		t.Errorf("Tick = %v, want ErrMissingComponent", err)
	}
}

func TestCloseRequestTerminatesNextTick(t *testing.T) {
	h := newHarness(t)
	h.window(t)

	h.ctx.PushInput(event.CloseRequested{})
	h.tick(t)
	if !h.ctx.Closing() {
		t.Fatalf("unhandled CloseRequested did not request close")
	}
	if err := h.p.Tick(h.w, h.ctx); !errors.Is(err, engine.ErrTerminated) {
		t.Errorf("Tick = %v, want ErrTerminated", err)
	}
}

func TestResizedInputUpdatesRoot(t *testing.T) {
	h := newHarness(t)
	root := h.window(t)
	h.tick(t)

	h.ctx.PushInput(event.Resized{Width: 300, Height: 200})
	h.tick(t)

	if got := h.w.Components.Bounds.MustGet(root); got != (core.Rect{Width: 300, Height: 200}) {
		t.Errorf("root bounds = %+v", got)
	}
	if got := h.rec.Last(); got.Width != 300 || got.Height != 200 {
		t.Errorf("frame size = %vx%v", got.Width, got.Height)
	}
}

package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/parameter"
)

func TestContextDiagnosticsRing(t *testing.T) {
	ctx := NewContext(nil, nil)
	total := parameter.DiagnosticHistory + 5
	for i := 0; i < total; i++ {
		ctx.Report(PhaseLayout, core.NewEntity(uint32(i+1), 1), fmt.Errorf("fail %d", i))
	}

	got := ctx.Diagnostics()
	if len(got) != parameter.DiagnosticHistory {
		t.Fatalf("retained %d, want %d", len(got), parameter.DiagnosticHistory)
	}
	if got[0].Entity.Index() != 6 {
		t.Errorf("oldest retained = %v, want index 6", got[0].Entity)
	}
	if got[len(got)-1].Entity.Index() != uint32(total) {
		t.Errorf("newest retained = %v", got[len(got)-1].Entity)
	}
	if ctx.DiagnosticCount() != total {
		t.Errorf("DiagnosticCount = %d", ctx.DiagnosticCount())
	}
	if v := ctx.Status.Ints.Get(MetricDiagnostics).Load(); v != int64(total) {
		t.Errorf("metric = %d", v)
	}
	last := core.NewEntity(uint32(total), 1)
	if v := ctx.Status.Strings.Get(MetricLastFailure).Load(); v != PhaseLayout+" "+last.String() {
		t.Errorf("last failure = %q", v)
	}
}

func TestContextTickPeak(t *testing.T) {
	ctx := NewContext(nil, nil)
	ctx.RecordTick(40, 3)
	ctx.RecordTick(10, 3)
	if v := ctx.Status.Ints.Get(MetricTickMicros).Load(); v != 10 {
		t.Errorf("tick_us = %d", v)
	}
	if v := ctx.Status.Floats.Get(MetricTickPeak).Get(); v != 40 {
		t.Errorf("tick_us_peak = %g", v)
	}
}

func TestServicesTyped(t *testing.T) {
	s := NewServices()
	s.Register("settings", map[string]string{"a": "b"})

	m, err := ServiceAs[map[string]string](s, "settings")
	if err != nil || m["a"] != "b" {
		t.Errorf("ServiceAs = %v, %v", m, err)
	}
	if _, err := ServiceAs[int](s, "settings"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("wrong type = %v", err)
	}
	if _, err := ServiceAs[int](s, "missing"); !errors.Is(err, ErrNoService) {
		t.Errorf("missing = %v", err)
	}
}

func TestBuildContextStickyError(t *testing.T) {
	w := NewWorld()
	ctx := NewContext(nil, nil)
	b := NewBuildContext(w, ctx)

	root := b.Create(core.NoEntity)
	b.SetRoot(root)
	b.RegisterLayout(core.NewEntity(99, 1), nil)
	if !errors.Is(b.Err(), ErrNotFound) {
		t.Fatalf("Err = %v, want ErrNotFound", b.Err())
	}

	if e := b.Create(root); e != core.NoEntity {
		t.Errorf("Create after failure returned %v", e)
	}
	if w.Tree.Len() != 1 {
		t.Errorf("tree grew after failure: %d", w.Tree.Len())
	}
}

func TestContextAddHandlerAppends(t *testing.T) {
	ctx := NewContext(nil, nil)
	e := core.NewEntity(1, 1)
	ctx.AddHandler(e, HandlerFunc(nil))
	ctx.AddHandler(e, HandlerFunc(nil))

	hs, _ := ctx.Handlers.Get(e)
	if len(hs) != 2 {
		t.Errorf("handlers = %d, want 2", len(hs))
	}
}

package engine

import (
	"errors"
	"testing"

	"github.com/lixenwraith/retain/core"
)

func TestStoreOverwrite(t *testing.T) {
	s := NewStore[string]("title")
	e := core.NewEntity(1, 1)

	s.Set(e, "first")
	s.Set(e, "second")

	if s.Count() != 1 {
		t.Errorf("Count = %d, want 1", s.Count())
	}
	if v, _ := s.Get(e); v != "second" {
		t.Errorf("Get = %q, want second", v)
	}
}

func TestStoreMissingComponent(t *testing.T) {
	s := NewStore[core.Rect]("bounds")
	e := core.NewEntity(3, 1)

	_, err := s.Require(e)
	if !errors.Is(err, ErrMissingComponent) {
		t.Fatalf("Require = %v, want ErrMissingComponent", err)
	}
	var ce *ComponentError
	if !errors.As(err, &ce) || ce.Kind != "bounds" || ce.Entity != e {
		t.Errorf("unexpected error detail: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("MustGet on absent component did not panic")
		}
	}()
	s.MustGet(e)
}

func TestStoreMutInPlace(t *testing.T) {
	s := NewStore[core.Point]("position")
	e := core.NewEntity(1, 1)
	s.Set(e, core.Point{X: 1, Y: 2})

	p, err := s.Mut(e)
	if err != nil {
		t.Fatal(err)
	}
	p.X = 10

	if got, _ := s.Get(e); got.X != 10 {
		t.Errorf("mutation through Mut not visible: %+v", got)
	}
}

func TestStoreRemoveBatch(t *testing.T) {
	s := NewStore[int]("n")
	var es []core.Entity
	for i := uint32(1); i <= 5; i++ {
		e := core.NewEntity(i, 1)
		es = append(es, e)
		s.Set(e, int(i))
	}

	s.RemoveBatch([]core.Entity{es[1], es[3]})

	if s.Count() != 3 {
		t.Errorf("Count = %d, want 3", s.Count())
	}
	for i, e := range es {
		want := i != 1 && i != 3
		if s.Has(e) != want {
			t.Errorf("Has(%v) = %v, want %v", e, s.Has(e), want)
		}
	}
}

func TestCustomStoreTypeMismatch(t *testing.T) {
	c := NewCustomStore()
	e := core.NewEntity(1, 1)
	c.Set("pressed", e, true)

	if v, err := GetCustom[bool](c, "pressed", e); err != nil || !v {
		t.Errorf("GetCustom[bool] = %v, %v", v, err)
	}
	if _, err := GetCustom[string](c, "pressed", e); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetCustom[string] = %v, want ErrTypeMismatch", err)
	}
	if _, err := GetCustom[bool](c, "hovered", e); !errors.Is(err, ErrMissingComponent) {
		t.Errorf("GetCustom missing kind = %v, want ErrMissingComponent", err)
	}

	c.Remove(e)
	if c.Has(e) {
		t.Errorf("custom values survived Remove")
	}
}

func TestWorldRemoveClearsComponents(t *testing.T) {
	w := NewWorld()
	root, _ := w.Create(core.NoEntity)
	_ = w.Tree.SetRoot(root)
	child, _ := w.Create(root)
	grandchild, _ := w.Create(child)

	cs := w.Components
	for _, e := range []core.Entity{child, grandchild} {
		cs.Text.Set(e, "x")
		cs.Bounds.Set(e, core.Rect{Width: 1, Height: 1})
		cs.Custom.Set("data", e, 1)
	}

	if _, err := w.Remove(child); err != nil {
		t.Fatal(err)
	}

	for _, e := range []core.Entity{child, grandchild} {
		if cs.HasAny(e) {
			t.Errorf("%v still has components", e)
		}
		if _, err := cs.Text.Require(e); !errors.Is(err, ErrMissingComponent) {
			t.Errorf("Text.Require(%v) = %v, want ErrMissingComponent", e, err)
		}
	}
	if got := w.TakePending(); len(got) != 2 {
		t.Errorf("pending = %v, want 2 entities", got)
	}
}

func TestWorldStagedRemoval(t *testing.T) {
	w := NewWorld()
	root, _ := w.Create(core.NoEntity)
	a, _ := w.Create(root)
	b, _ := w.Create(a)

	if err := w.StageRemove(b); err != nil {
		t.Fatal(err)
	}
	if err := w.StageRemove(a); err != nil {
		t.Fatal(err)
	}
	if !w.Tree.Contains(b) {
		t.Fatalf("staged removal applied early")
	}

	freed := w.ApplyStaged()
	if len(freed) != 2 {
		t.Errorf("freed = %v, want 2 entities", freed)
	}
	if w.Tree.Contains(a) || w.Tree.Contains(b) {
		t.Errorf("staged entities still live")
	}
	if w.Staged() != 0 {
		t.Errorf("staging list not cleared")
	}
}

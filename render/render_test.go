package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/retain/core"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
		err  bool
	}{
		{"#ff0000", RGB{255, 0, 0}, false},
		{"#0f0", RGB{0, 255, 0}, false},
		{"#1e1e2e", RGB{0x1e, 0x1e, 0x2e}, false},
		{"nope", RGB{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if tt.err {
			if err == nil {
				t.Errorf("ParseHex(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHex(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.Hex() != expandShortHex(tt.in) {
			t.Errorf("Hex() = %s, want %s", got.Hex(), expandShortHex(tt.in))
		}
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := RGB{10, 20, 30}
	b := RGB{200, 100, 50}
	if a.Blend(b, 0) != a || a.Blend(b, 1) != b {
		t.Error("linear blend endpoints wrong")
	}
	if a.BlendLab(b, 0) != a || a.BlendLab(b, 1) != b {
		t.Error("lab blend endpoints wrong")
	}
	mid := RGBBlack.BlendLab(RGBWhite, 0.5)
	if mid.R == 0 || mid.R == 255 {
		t.Errorf("lab midpoint should be grey, got %v", mid)
	}
}

func TestRecorderKeepsEmissionOrder(t *testing.T) {
	r := NewRecorder()
	r.Begin(core.Size{Width: 100, Height: 50})
	root := NewDrawable(core.NewEntity(1, 1), LayerRoot, core.Rect{Width: 100, Height: 50})
	root.FillRect(root.Bounds, RGBBlack)
	r.Emit(*root)
	over := NewDrawable(core.NewEntity(2, 1), LayerOverlay, core.Rect{Width: 10, Height: 10})
	over.Text(core.Point{}, "hi", RGBWhite)
	r.Emit(*over)
	if err := r.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	got := r.Last()
	want := Frame{
		Width:  100,
		Height: 50,
		Drawables: []Drawable{
			{Entity: core.NewEntity(1, 1), Layer: LayerRoot, Bounds: core.Rect{Width: 100, Height: 50},
				Ops: []Op{FillRect{Rect: core.Rect{Width: 100, Height: 50}, Color: RGBBlack}}},
			{Entity: core.NewEntity(2, 1), Layer: LayerOverlay, Bounds: core.Rect{Width: 10, Height: 10},
				Ops: []Op{Text{Text: "hi", Color: RGBWhite}}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorderDigestDetectsChange(t *testing.T) {
	r := NewRecorder()
	emit := func(text string) {
		r.Begin(core.Size{Width: 10, Height: 10})
		d := NewDrawable(core.NewEntity(1, 1), LayerRoot, core.Rect{Width: 10, Height: 10})
		d.Text(core.Point{}, text, RGBWhite)
		r.Emit(*d)
		if err := r.End(); err != nil {
			t.Fatalf("End: %v", err)
		}
	}

	emit("a")
	if !r.Changed() {
		t.Error("first frame must count as changed")
	}
	emit("a")
	if r.Changed() {
		t.Error("identical frame reported as changed")
	}
	emit("b")
	if !r.Changed() {
		t.Error("different frame reported as unchanged")
	}
	if r.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", r.Frames())
	}
}

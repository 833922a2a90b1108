package render

import "github.com/lixenwraith/retain/core"

// Layer identifies which top-level subtree produced a Drawable
// Overlay drawables are always emitted after root drawables
type Layer uint8

const (
	LayerRoot Layer = iota
	LayerOverlay
)

func (l Layer) String() string {
	if l == LayerOverlay {
		return "overlay"
	}
	return "root"
}

// Drawable is the draw output of one entity for one frame
type Drawable struct {
	Entity core.Entity
	Layer  Layer
	Bounds core.Rect
	Ops    []Op
}

// NewDrawable starts an empty drawable for e at bounds
func NewDrawable(e core.Entity, layer Layer, bounds core.Rect) *Drawable {
	return &Drawable{Entity: e, Layer: layer, Bounds: bounds}
}

// FillRect appends a solid fill
func (d *Drawable) FillRect(r core.Rect, c RGB) *Drawable {
	d.Ops = append(d.Ops, FillRect{Rect: r, Color: c})
	return d
}

// StrokeRect appends a border
func (d *Drawable) StrokeRect(r core.Rect, c RGB) *Drawable {
	d.Ops = append(d.Ops, StrokeRect{Rect: r, Color: c})
	return d
}

// Text appends a text run
func (d *Drawable) Text(origin core.Point, text string, c RGB) *Drawable {
	d.Ops = append(d.Ops, Text{Origin: origin, Text: text, Color: c})
	return d
}

// Clip appends a clip rectangle
func (d *Drawable) Clip(r core.Rect) *Drawable {
	d.Ops = append(d.Ops, Clip{Rect: r})
	return d
}

package layout

import (
	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
)

// Resolve computes the final bounds of an entity inside the slot its parent assigned
// desired is the constrained measure result, margin excluded
func Resolve(slot core.Rect, desired core.Size, margin core.Thickness, align component.AlignmentComponent, c core.Constraint) core.Rect {
	inner := slot.Inset(margin)

	stretched := c.Apply(core.Size{Width: inner.Width, Height: inner.Height})

	x, w := resolveAxis(inner.X, inner.Width, desired.Width, stretched.Width, align.Horizontal)
	y, h := resolveAxis(inner.Y, inner.Height, desired.Height, stretched.Height, align.Vertical)
	return core.Rect{X: x, Y: y, Width: w, Height: h}
}

// resolveAxis never lets the result leave [start, start+avail]
func resolveAxis(start, avail, desired, stretched float64, a component.Align) (pos, size float64) {
	avail = max(avail, 0)
	switch a {
	case component.AlignStart:
		return start, min(desired, avail)
	case component.AlignCenter:
		size = min(desired, avail)
		return start + (avail-size)/2, size
	case component.AlignEnd:
		size = min(desired, avail)
		return start + avail - size, size
	default:
		// Fixed or max-clamped sizes that cannot fill the slot are centered
		size = min(stretched, avail)
		return start + (avail-size)/2, size
	}
}

package core

import "math"

// Point is a position in window units
type Point struct {
	X, Y float64
}

// Add returns p translated by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a width/height pair in window units
type Size struct {
	Width, Height float64
}

// IsEmpty reports whether either dimension is zero or negative
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Max returns the component-wise maximum of s and o
func (s Size) Max(o Size) Size {
	return Size{Width: math.Max(s.Width, o.Width), Height: math.Max(s.Height, o.Height)}
}

// Rect is an axis aligned rectangle in absolute window coordinates
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect builds a rect from origin and size
func NewRect(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

// Position returns the top-left corner
func (r Rect) Position() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rect dimensions
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Right returns the exclusive right edge
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// IsEmpty reports whether the rect covers no area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ContainsPoint reports whether p lies inside r (right/bottom edges exclusive)
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Contains reports whether o lies entirely inside r
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Intersect returns the overlapping area, empty if none
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.Right(), o.Right())
	y1 := math.Min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Inset shrinks r by t on every side, clamping to zero size
func (r Rect) Inset(t Thickness) Rect {
	out := Rect{
		X:      r.X + t.Left,
		Y:      r.Y + t.Top,
		Width:  r.Width - t.Horizontal(),
		Height: r.Height - t.Vertical(),
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Translate moves r by d
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Thickness describes margin or padding per side
type Thickness struct {
	Left, Top, Right, Bottom float64
}

// Uniform returns a thickness with the same value on all sides
func Uniform(v float64) Thickness {
	return Thickness{Left: v, Top: v, Right: v, Bottom: v}
}

// Horizontal returns left+right
func (t Thickness) Horizontal() float64 {
	return t.Left + t.Right
}

// Vertical returns top+bottom
func (t Thickness) Vertical() float64 {
	return t.Top + t.Bottom
}

// Constraint bounds the size of an entity
// Zero Width/Height means "use desired size", zero Max means unbounded
type Constraint struct {
	Width, Height       float64
	MinWidth, MinHeight float64
	MaxWidth, MaxHeight float64
}

// FixedConstraint returns a constraint pinning both dimensions
func FixedConstraint(width, height float64) Constraint {
	return Constraint{Width: width, Height: height}
}

// Apply resolves a desired size against the constraint
func (c Constraint) Apply(desired Size) Size {
	w := desired.Width
	if c.Width > 0 {
		w = c.Width
	}
	h := desired.Height
	if c.Height > 0 {
		h = c.Height
	}
	return Size{
		Width:  clampDim(w, c.MinWidth, c.MaxWidth),
		Height: clampDim(h, c.MinHeight, c.MaxHeight),
	}
}

// Size returns the fixed size part of the constraint
func (c Constraint) Size() Size {
	return Size{Width: c.Width, Height: c.Height}
}

func clampDim(v, lo, hi float64) float64 {
	if hi > 0 && v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	if v < 0 {
		v = 0
	}
	return v
}

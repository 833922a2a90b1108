package widget

import (
	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/render"
)

// Option sets a component on a freshly built widget
type Option func(b *engine.BuildContext, e core.Entity)

func apply(b *engine.BuildContext, e core.Entity, opts []Option) {
	if e == core.NoEntity {
		return
	}
	for _, opt := range opts {
		opt(b, e)
	}
}

func WithMargin(t core.Thickness) Option {
	return func(b *engine.BuildContext, e core.Entity) { b.Components().Margin.Set(e, t) }
}

func WithPadding(t core.Thickness) Option {
	return func(b *engine.BuildContext, e core.Entity) { b.Components().Padding.Set(e, t) }
}

func WithAlignment(h, v component.Align) Option {
	return func(b *engine.BuildContext, e core.Entity) {
		b.Components().Alignment.Set(e, component.AlignmentComponent{Horizontal: h, Vertical: v})
	}
}

func WithConstraint(c core.Constraint) Option {
	return func(b *engine.BuildContext, e core.Entity) { b.Components().Constraint.Set(e, c) }
}

// WithSize pins width and height; zero leaves a dimension free
func WithSize(width, height float64) Option {
	return WithConstraint(core.FixedConstraint(width, height))
}

func WithForeground(c render.RGB) Option {
	return func(b *engine.BuildContext, e core.Entity) { b.Components().Foreground.Set(e, c) }
}

func WithBackground(c render.RGB) Option {
	return func(b *engine.BuildContext, e core.Entity) { b.Components().Background.Set(e, c) }
}

func WithBorder(c render.RGB) Option {
	return func(b *engine.BuildContext, e core.Entity) { b.Components().BorderColor.Set(e, c) }
}

func WithVisibility(v component.Visibility) Option {
	return func(b *engine.BuildContext, e core.Entity) { b.Components().Visibility.Set(e, v) }
}

// Focusable lets the widget take key focus on mouse down
func Focusable() Option {
	return func(b *engine.BuildContext, e core.Entity) { b.Components().Focusable.Set(e, true) }
}

// OnInput appends an input handler
func OnInput(h engine.HandlerFunc) Option {
	return func(b *engine.BuildContext, e core.Entity) { b.RegisterHandler(e, h) }
}

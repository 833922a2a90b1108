package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/event"
	"github.com/lixenwraith/retain/render"
	"github.com/lixenwraith/retain/widget"
)

var (
	colorPanel  = render.MustHex("#1e2030")
	colorText   = render.MustHex("#c8d3f5")
	colorAccent = render.MustHex("#82aaff")
	colorBorder = render.MustHex("#444a73")
)

const logLines = 40

// demo holds the entities the handlers update
type demo struct {
	counter core.Entity
	clicks  int
}

// buildDemo lays out a header, a counter button and a scrollable log
func buildDemo(b *engine.BuildContext, root core.Entity) error {
	b.Components().Background.Set(root, colorPanel)
	d := &demo{}

	col := widget.Stack(b, root, component.Vertical, 16, widget.WithPadding(core.Uniform(16)))
	widget.TextBlock(b, col, "retain demo", widget.WithForeground(colorAccent))
	d.counter = widget.TextBlock(b, col, d.label(), widget.WithForeground(colorText))

	row := widget.Stack(b, col, component.Horizontal, 16)
	widget.Button(b, row, "Click", d.click,
		widget.Focusable(),
		widget.WithForeground(colorAccent),
		widget.WithBorder(colorBorder))
	widget.Button(b, row, "Quit", quit,
		widget.Focusable(),
		widget.WithForeground(colorText),
		widget.WithBorder(colorBorder))

	scroll := widget.ScrollViewer(b, col,
		widget.WithSize(0, 400),
		widget.WithBorder(colorBorder),
		widget.WithPadding(core.Uniform(16)))
	lines := widget.Stack(b, scroll, component.Vertical, 0)
	for i := 1; i <= logLines; i++ {
		widget.TextBlock(b, lines, fmt.Sprintf("line %02d", i), widget.WithForeground(colorText))
	}

	// Escape closes from anywhere focus is
	b.RegisterHandler(root, engine.HandlerFunc(func(sc *engine.StateContext, _ core.Entity, in event.Input) (bool, error) {
		if k, ok := in.(event.KeyInput); ok && k.Key == event.KeyEscape {
			sc.Send(event.Close{})
			return true, nil
		}
		return false, nil
	}))
	return b.Err()
}

func (d *demo) label() string {
	return fmt.Sprintf("clicked %d times", d.clicks)
}

func (d *demo) click(sc *engine.StateContext, _ core.Entity) error {
	d.clicks++
	widget.SetText(sc.Components(), d.counter, d.label())
	sc.Send(event.Bell{})
	sc.Send(event.TitleChanged{Title: fmt.Sprintf("retain (%d)", d.clicks)})
	sc.Logger().Debug("demo click", zap.Int("clicks", d.clicks))
	return nil
}

func quit(sc *engine.StateContext, _ core.Entity) error {
	sc.Send(event.Close{})
	return nil
}

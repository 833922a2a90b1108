package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/event"
)

var keyMap = map[tcell.Key]event.Key{
	tcell.KeyEnter:      event.KeyEnter,
	tcell.KeyEscape:     event.KeyEscape,
	tcell.KeyBackspace:  event.KeyBackspace,
	tcell.KeyBackspace2: event.KeyBackspace,
	tcell.KeyTab:        event.KeyTab,
	tcell.KeyUp:         event.KeyUp,
	tcell.KeyDown:       event.KeyDown,
	tcell.KeyLeft:       event.KeyLeft,
	tcell.KeyRight:      event.KeyRight,
	tcell.KeyHome:       event.KeyHome,
	tcell.KeyEnd:        event.KeyEnd,
	tcell.KeyPgUp:       event.KeyPageUp,
	tcell.KeyPgDn:       event.KeyPageDown,
	tcell.KeyDelete:     event.KeyDelete,
}

// translate converts a terminal event into window inputs in window units
func (s *Shell) translate(ev tcell.Event) []event.Input {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if in, ok := translateKey(ev); ok {
			return []event.Input{in}
		}
	case *tcell.EventMouse:
		return s.translateMouse(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return []event.Input{s.resized(w, h)}
	}
	return nil
}

func translateKey(ev *tcell.EventKey) (event.KeyInput, bool) {
	mods := translateMods(ev.Modifiers())
	if ev.Key() == tcell.KeyRune {
		return event.KeyInput{Key: event.KeyRune, Rune: ev.Rune(), Modifiers: mods}, true
	}
	k, ok := keyMap[ev.Key()]
	if !ok {
		return event.KeyInput{}, false
	}
	return event.KeyInput{Key: k, Modifiers: mods}, true
}

func translateMods(m tcell.ModMask) event.Modifier {
	var out event.Modifier
	if m&tcell.ModShift != 0 {
		out |= event.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= event.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= event.ModAlt
	}
	return out
}

// translateMouse turns button state changes into down, up and move inputs
// Positions are cell centers so hit testing lands inside the cell
func (s *Shell) translateMouse(ev *tcell.EventMouse) []event.Input {
	x, y := ev.Position()
	p := core.Point{
		X: (float64(x) + 0.5) * s.cfg.Metrics.CellWidth,
		Y: (float64(y) + 0.5) * s.cfg.Metrics.CellHeight,
	}
	buttons := ev.Buttons()

	var out []event.Input
	switch {
	case buttons&tcell.WheelUp != 0:
		out = append(out, event.ScrollInput{Position: p, Delta: core.Point{Y: -1}})
	case buttons&tcell.WheelDown != 0:
		out = append(out, event.ScrollInput{Position: p, Delta: core.Point{Y: 1}})
	case buttons&tcell.WheelLeft != 0:
		out = append(out, event.ScrollInput{Position: p, Delta: core.Point{X: -1}})
	case buttons&tcell.WheelRight != 0:
		out = append(out, event.ScrollInput{Position: p, Delta: core.Point{X: 1}})
	}

	pressed := buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	prev := s.buttons
	s.buttons = pressed
	for _, b := range []struct {
		mask   tcell.ButtonMask
		button event.MouseButton
	}{
		{tcell.Button1, event.ButtonLeft},
		{tcell.Button3, event.ButtonMiddle},
		{tcell.Button2, event.ButtonRight},
	} {
		was, is := prev&b.mask != 0, pressed&b.mask != 0
		switch {
		case is && !was:
			out = append(out, event.MouseInput{Position: p, Button: b.button, Action: event.MouseDown})
		case was && !is:
			out = append(out, event.MouseInput{Position: p, Button: b.button, Action: event.MouseUp})
		}
	}
	if len(out) == 0 {
		out = append(out, event.MouseInput{Position: p, Action: event.MouseMove})
	}
	return out
}

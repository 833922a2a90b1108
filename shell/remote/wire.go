package remote

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/event"
	"github.com/lixenwraith/retain/render"
)

// ErrUnknownMessage is returned for client messages with an unsupported type
var ErrUnknownMessage = errors.New("unknown message type")

// Server to client message types
const (
	MsgFrame = "frame"
	MsgTitle = "title"
	MsgSize  = "size"
	MsgBell  = "bell"
)

// Client to server message types
const (
	MsgKey    = "key"
	MsgMouse  = "mouse"
	MsgScroll = "scroll"
	MsgResize = "resize"
	MsgClose  = "close"
)

// RectMsg is a rectangle in window units
type RectMsg struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// OpMsg is one draw primitive; unused fields are omitted
type OpMsg struct {
	Op    string   `json:"op"`
	Rect  *RectMsg `json:"rect,omitempty"`
	X     float64  `json:"x,omitempty"`
	Y     float64  `json:"y,omitempty"`
	Text  string   `json:"text,omitempty"`
	Color string   `json:"color,omitempty"`
}

// DrawableMsg is the output of one entity
type DrawableMsg struct {
	Entity uint64  `json:"entity"`
	Layer  string  `json:"layer"`
	Bounds RectMsg `json:"bounds"`
	Ops    []OpMsg `json:"ops"`
}

// ServerMsg is every message a client receives
type ServerMsg struct {
	Type      string        `json:"type"`
	Width     float64       `json:"width,omitempty"`
	Height    float64       `json:"height,omitempty"`
	Drawables []DrawableMsg `json:"drawables,omitempty"`
	Title     string        `json:"title,omitempty"`
}

// ClientMsg is every message a client sends
type ClientMsg struct {
	Type   string   `json:"type"`
	Key    string   `json:"key,omitempty"`
	Rune   string   `json:"rune,omitempty"`
	Mods   []string `json:"mods,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	DX     float64  `json:"dx,omitempty"`
	DY     float64  `json:"dy,omitempty"`
	Button string   `json:"button,omitempty"`
	Action string   `json:"action,omitempty"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`
}

func rectMsg(r core.Rect) RectMsg {
	return RectMsg{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// EncodeFrame converts a frame to its wire form
func EncodeFrame(f render.Frame) ServerMsg {
	msg := ServerMsg{Type: MsgFrame, Width: f.Width, Height: f.Height}
	msg.Drawables = make([]DrawableMsg, 0, len(f.Drawables))
	for _, d := range f.Drawables {
		dm := DrawableMsg{
			Entity: uint64(d.Entity),
			Layer:  d.Layer.String(),
			Bounds: rectMsg(d.Bounds),
			Ops:    make([]OpMsg, 0, len(d.Ops)),
		}
		for _, op := range d.Ops {
			switch o := op.(type) {
			case render.FillRect:
				r := rectMsg(o.Rect)
				dm.Ops = append(dm.Ops, OpMsg{Op: "fill", Rect: &r, Color: o.Color.Hex()})
			case render.StrokeRect:
				r := rectMsg(o.Rect)
				dm.Ops = append(dm.Ops, OpMsg{Op: "stroke", Rect: &r, Color: o.Color.Hex()})
			case render.Text:
				dm.Ops = append(dm.Ops, OpMsg{Op: "text", X: o.Origin.X, Y: o.Origin.Y, Text: o.Text, Color: o.Color.Hex()})
			case render.Clip:
				r := rectMsg(o.Rect)
				dm.Ops = append(dm.Ops, OpMsg{Op: "clip", Rect: &r})
			}
		}
		msg.Drawables = append(msg.Drawables, dm)
	}
	return msg
}

var keyNames = map[string]event.Key{
	"enter":     event.KeyEnter,
	"escape":    event.KeyEscape,
	"backspace": event.KeyBackspace,
	"tab":       event.KeyTab,
	"up":        event.KeyUp,
	"down":      event.KeyDown,
	"left":      event.KeyLeft,
	"right":     event.KeyRight,
	"home":      event.KeyHome,
	"end":       event.KeyEnd,
	"pageup":    event.KeyPageUp,
	"pagedown":  event.KeyPageDown,
	"delete":    event.KeyDelete,
}

var buttonNames = map[string]event.MouseButton{
	"":       event.ButtonNone,
	"left":   event.ButtonLeft,
	"middle": event.ButtonMiddle,
	"right":  event.ButtonRight,
}

var actionNames = map[string]event.MouseAction{
	"down": event.MouseDown,
	"up":   event.MouseUp,
	"move": event.MouseMove,
}

// DecodeInput parses one client message into a window input
func DecodeInput(data []byte) (event.Input, error) {
	var msg ClientMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, errors.Wrap(err, "decode client message")
	}
	return msg.Input()
}

// Input converts the message into a window input
func (m ClientMsg) Input() (event.Input, error) {
	p := core.Point{X: m.X, Y: m.Y}
	switch m.Type {
	case MsgKey:
		mods := modifiers(m.Mods)
		if r := []rune(m.Rune); len(r) == 1 {
			return event.KeyInput{Key: event.KeyRune, Rune: r[0], Modifiers: mods}, nil
		}
		k, ok := keyNames[m.Key]
		if !ok {
			return nil, errors.Errorf("unknown key %q", m.Key)
		}
		return event.KeyInput{Key: k, Modifiers: mods}, nil
	case MsgMouse:
		b, ok := buttonNames[m.Button]
		if !ok {
			return nil, errors.Errorf("unknown button %q", m.Button)
		}
		a, ok := actionNames[m.Action]
		if !ok {
			return nil, errors.Errorf("unknown mouse action %q", m.Action)
		}
		return event.MouseInput{Position: p, Button: b, Action: a}, nil
	case MsgScroll:
		return event.ScrollInput{Position: p, Delta: core.Point{X: m.DX, Y: m.DY}}, nil
	case MsgResize:
		return event.Resized{Width: m.Width, Height: m.Height}, nil
	case MsgClose:
		return event.CloseRequested{}, nil
	}
	return nil, errors.Wrapf(ErrUnknownMessage, "%q", m.Type)
}

func modifiers(names []string) event.Modifier {
	var mods event.Modifier
	for _, n := range names {
		switch n {
		case "shift":
			mods |= event.ModShift
		case "ctrl":
			mods |= event.ModCtrl
		case "alt":
			mods |= event.ModAlt
		}
	}
	return mods
}

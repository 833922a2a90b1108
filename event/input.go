package event

import "github.com/lixenwraith/retain/core"

// Input is a raw input or window event delivered by the shell
type Input interface {
	input() // sealed marker
}

// Key identifies a non-printable key, KeyRune for text input
type Key uint16

const (
	KeyRune Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
)

// Modifier is a bitmask of held modifier keys
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModCtrl  Modifier = 1 << 1
	ModAlt   Modifier = 1 << 2
)

// MouseButton identifies a pointer button
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// MouseAction distinguishes pointer transitions
type MouseAction uint8

const (
	MouseDown MouseAction = iota
	MouseUp
	MouseMove
)

// KeyInput is a key press routed to the focused entity
type KeyInput struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// MouseInput is a pointer event routed to the entity under Position
type MouseInput struct {
	Position core.Point
	Button   MouseButton
	Action   MouseAction
}

// ScrollInput is a wheel event routed to the entity under Position
type ScrollInput struct {
	Position core.Point
	Delta    core.Point
}

// Resized reports that the native surface changed size
type Resized struct {
	Width, Height float64
}

// CloseRequested reports that the user asked the native window to close
type CloseRequested struct{}

func (KeyInput) input()       {}
func (MouseInput) input()     {}
func (ScrollInput) input()    {}
func (Resized) input()        {}
func (CloseRequested) input() {}

// Positional returns the point for inputs that are hit-tested
func Positional(in Input) (core.Point, bool) {
	switch v := in.(type) {
	case MouseInput:
		return v.Position, true
	case ScrollInput:
		return v.Position, true
	}
	return core.Point{}, false
}

package event

import "fmt"

// Request is a window-level request sent from widget code to the window adapter
// Closed set: Close, Resize, TitleChanged, Redraw, Bell
type Request interface {
	fmt.Stringer
	request() // sealed marker
}

// Close asks the window to terminate; honored at the top of the next tick
type Close struct{}

// Resize asks the window to change its content size
type Resize struct {
	Width, Height float64
}

// TitleChanged replaces the window title
type TitleChanged struct {
	Title string
}

// Redraw forces the shell to present the next frame even if unchanged
type Redraw struct{}

// Bell asks for an audible notification
type Bell struct{}

func (Close) request()        {}
func (Resize) request()       {}
func (TitleChanged) request() {}
func (Redraw) request()       {}
func (Bell) request()         {}

func (Close) String() string          { return "close" }
func (r Resize) String() string       { return fmt.Sprintf("resize(%gx%g)", r.Width, r.Height) }
func (r TitleChanged) String() string { return fmt.Sprintf("title(%q)", r.Title) }
func (Redraw) String() string         { return "redraw" }
func (Bell) String() string           { return "bell" }

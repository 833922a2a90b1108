package component

// Kind names, used in diagnostics and error messages
const (
	KindBounds       = "bounds"
	KindPosition     = "position"
	KindConstraint   = "constraint"
	KindMargin       = "margin"
	KindPadding      = "padding"
	KindTitle        = "title"
	KindBorderless   = "borderless"
	KindResizeable   = "resizeable"
	KindAlwaysOnTop  = "always_on_top"
	KindText         = "text"
	KindForeground   = "foreground"
	KindBackground   = "background"
	KindBorderColor  = "border_color"
	KindVisibility   = "visibility"
	KindAlignment    = "alignment"
	KindOrientation  = "orientation"
	KindSpacing      = "spacing"
	KindFocusable    = "focusable"
	KindGlobal       = "global"
	KindScrollOffset = "scroll_offset"
	KindScrollInfo   = "scroll_info"
)

package component

// Align positions a child inside the slot its parent assigns
type Align uint8

const (
	AlignStretch Align = iota
	AlignStart
	AlignCenter
	AlignEnd
)

// AlignmentComponent holds horizontal and vertical alignment
// Zero value stretches on both axes
type AlignmentComponent struct {
	Horizontal Align
	Vertical   Align
}

// Orientation is the main axis of a stack
type Orientation uint8

const (
	Vertical Orientation = iota
	Horizontal
)

package parameter

// Text Metrics
// One terminal cell maps to CellWidth x CellHeight window units so pixel-sized
// windows (e.g. 420x730) rasterise onto a character grid
const (
	CellWidth  = 8
	CellHeight = 16
)

// Default Window
const (
	DefaultWindowWidth  = 420
	DefaultWindowHeight = 730
	DefaultWindowTitle  = "retain"
)

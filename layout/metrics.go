package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/parameter"
)

// CellMetrics measures text on a fixed cell grid using East Asian width rules
type CellMetrics struct {
	CellWidth  float64
	CellHeight float64
}

// DefaultMetrics returns cell metrics with the default cell size
func DefaultMetrics() CellMetrics {
	return CellMetrics{CellWidth: parameter.CellWidth, CellHeight: parameter.CellHeight}
}

// MeasureText returns the extent of text; each line break starts a new row
func (m CellMetrics) MeasureText(text string) core.Size {
	if text == "" {
		return core.Size{}
	}
	lines := strings.Split(text, "\n")
	cols := 0
	for _, line := range lines {
		cols = max(cols, runewidth.StringWidth(line))
	}
	return core.Size{
		Width:  float64(cols) * m.CellWidth,
		Height: float64(len(lines)) * m.CellHeight,
	}
}

// LineHeight returns the height of one text row
func (m CellMetrics) LineHeight() float64 {
	return m.CellHeight
}

// Columns converts a width in window units to whole cells
func (m CellMetrics) Columns(width float64) int {
	if m.CellWidth <= 0 {
		return 0
	}
	return int(width / m.CellWidth)
}

// Truncate cuts text to fit width, counting wide runes as two cells
func (m CellMetrics) Truncate(text string, width float64) string {
	return runewidth.Truncate(text, m.Columns(width), "")
}

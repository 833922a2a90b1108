package term

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/render"
	"github.com/lixenwraith/retain/shell"
)

// Window paints frames onto the terminal cell grid
type Window struct {
	shell   *Shell
	opts    shell.Options
	adapter shell.Adapter

	mu     sync.Mutex
	title  string
	resync bool
	closed bool
}

// cellRect is a half-open range of cells
type cellRect struct {
	x0, y0, x1, y1 int
}

func (r cellRect) intersect(o cellRect) cellRect {
	return cellRect{max(r.x0, o.x0), max(r.y0, o.y0), min(r.x1, o.x1), min(r.y1, o.y1)}
}

func (r cellRect) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

// Present paints f unless it is unchanged and not forced
func (w *Window) Present(f render.Frame, changed, force bool) error {
	w.mu.Lock()
	resync, closed := w.resync, w.closed
	w.resync = false
	w.mu.Unlock()

	if closed || (!changed && !force && !resync) {
		return nil
	}
	screen := w.screen()
	if screen == nil {
		return nil
	}

	screen.Clear()
	cols, rows := screen.Size()
	full := cellRect{0, 0, cols, rows}
	for i := range f.Drawables {
		w.paint(screen, full, &f.Drawables[i])
	}
	if force || resync {
		screen.Sync()
	} else {
		screen.Show()
	}
	return nil
}

func (w *Window) paint(screen tcell.Screen, full cellRect, d *render.Drawable) {
	clip := full
	for _, op := range d.Ops {
		switch o := op.(type) {
		case render.Clip:
			clip = full.intersect(w.cells(o.Rect))
		case render.FillRect:
			r := clip.intersect(w.cells(o.Rect))
			style := tcell.StyleDefault.Background(color(o.Color))
			for y := r.y0; y < r.y1; y++ {
				for x := r.x0; x < r.x1; x++ {
					screen.SetContent(x, y, ' ', nil, style)
				}
			}
		case render.StrokeRect:
			w.stroke(screen, clip, w.cells(o.Rect), o.Color)
		case render.Text:
			w.text(screen, clip, o)
		}
	}
}

func (w *Window) stroke(screen tcell.Screen, clip, r cellRect, c render.RGB) {
	if r.x1-r.x0 < 2 || r.y1-r.y0 < 2 {
		return
	}
	put := func(x, y int, ch rune) {
		if !clip.contains(x, y) {
			return
		}
		_, _, style, _ := screen.GetContent(x, y)
		screen.SetContent(x, y, ch, nil, style.Foreground(color(c)))
	}
	chars := w.shell.cfg.Border.chars()
	for x := r.x0 + 1; x < r.x1-1; x++ {
		put(x, r.y0, chars[boxH])
		put(x, r.y1-1, chars[boxH])
	}
	for y := r.y0 + 1; y < r.y1-1; y++ {
		put(r.x0, y, chars[boxV])
		put(r.x1-1, y, chars[boxV])
	}
	put(r.x0, r.y0, chars[boxTL])
	put(r.x1-1, r.y0, chars[boxTR])
	put(r.x0, r.y1-1, chars[boxBL])
	put(r.x1-1, r.y1-1, chars[boxBR])
}

// text keeps the background already painted under each cell
func (w *Window) text(screen tcell.Screen, clip cellRect, t render.Text) {
	m := w.shell.cfg.Metrics
	x := int(math.Round(t.Origin.X / m.CellWidth))
	y := int(math.Round(t.Origin.Y / m.CellHeight))
	for _, r := range t.Text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if clip.contains(x, y) && clip.contains(x+rw-1, y) {
			_, _, style, _ := screen.GetContent(x, y)
			screen.SetContent(x, y, r, nil, style.Foreground(color(t.Color)))
		}
		x += rw
	}
}

func (w *Window) cells(r core.Rect) cellRect {
	m := w.shell.cfg.Metrics
	return cellRect{
		x0: int(math.Round(r.X / m.CellWidth)),
		y0: int(math.Round(r.Y / m.CellHeight)),
		x1: int(math.Round(r.Right() / m.CellWidth)),
		y1: int(math.Round(r.Bottom() / m.CellHeight)),
	}
}

func color(c render.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (w *Window) screen() tcell.Screen {
	w.shell.mu.Lock()
	defer w.shell.mu.Unlock()
	return w.shell.screen
}

// SetTitle updates the terminal title where supported
func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
	if screen := w.screen(); screen != nil {
		screen.SetTitle(title)
	}
}

// SetSize is ignored; the terminal owns its size
func (w *Window) SetSize(size core.Size) {
	w.shell.logger.Debug("terminal ignores resize request",
		zap.Float64("width", size.Width), zap.Float64("height", size.Height))
}

func (w *Window) Bell() {
	if screen := w.screen(); screen != nil {
		if err := screen.Beep(); err != nil {
			w.shell.logger.Debug("terminal bell", zap.Error(err))
		}
	}
}

// RequestRedraw makes the next present repaint the whole terminal
func (w *Window) RequestRedraw() {
	w.mu.Lock()
	w.resync = true
	w.mu.Unlock()
}

func (w *Window) Metrics() engine.TextMetrics {
	return w.shell.cfg.Metrics
}

func (w *Window) Close() error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	return nil
}

// Title returns the last title set on the window
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

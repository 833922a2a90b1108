package render

import (
	"sync"

	"github.com/lixenwraith/retain/core"
)

// Recorder is an in-memory Context that keeps the most recent frame
// Used by the headless shell and as the frame source of other shells
type Recorder struct {
	mu      sync.RWMutex
	current Frame
	last    Frame
	frames  uint64
	digest  uint64
	changed bool

	// OnFrame, if set, is called from End with the completed frame
	OnFrame func(f Frame, changed bool) error
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Begin starts a new frame
func (r *Recorder) Begin(size core.Size) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = Frame{Width: size.Width, Height: size.Height, Drawables: make([]Drawable, 0, len(r.last.Drawables))}
}

// Emit appends a drawable to the frame under construction
func (r *Recorder) Emit(d Drawable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current.Drawables = append(r.current.Drawables, d)
}

// End publishes the frame and reports it to OnFrame
func (r *Recorder) End() error {
	r.mu.Lock()
	f := r.current
	digest := f.Digest()
	r.changed = r.frames == 0 || digest != r.digest
	r.digest = digest
	r.last = f
	r.frames++
	changed := r.changed
	hook := r.OnFrame
	r.mu.Unlock()

	if hook != nil {
		return hook(f, changed)
	}
	return nil
}

// Last returns the most recently completed frame
func (r *Recorder) Last() Frame {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}

// Frames returns the number of completed frames
func (r *Recorder) Frames() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frames
}

// Changed reports whether the last frame differed from the one before it
func (r *Recorder) Changed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.changed
}

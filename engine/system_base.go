package engine

// System is one pipeline phase
// Update runs synchronously on the window goroutine; a returned error is fatal to the window
type System interface {
	Name() string
	Priority() int // Lower values run first
	Update(w *World, ctx *Context) error
}

// SystemBase provides Name and Priority for embedding
type SystemBase struct {
	name     string
	priority int
}

// NewSystemBase initializes the identity of a system
// Call once in system constructor
func NewSystemBase(name string, priority int) SystemBase {
	return SystemBase{name: name, priority: priority}
}

// Name returns the system name
func (b SystemBase) Name() string {
	return b.name
}

// Priority returns the pipeline position
func (b SystemBase) Priority() int {
	return b.priority
}

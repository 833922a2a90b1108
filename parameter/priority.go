package parameter

// System Execution Priorities (lower runs first)
// The four per-tick phases are a closed set; the pipeline rejects any other order
const (
	PriorityEventState = 0 // Drains requests and input, runs handlers and states
	PriorityLayout     = 1 // Measure bottom-up, arrange top-down, writes bounds
	PriorityPostLayout = 2 // States that depend on final geometry
	PriorityRender     = 3 // Pure consumer, emits drawables
)

package parameter

import "time"

// Tick Timing
const (
	// FrameUpdateInterval is the default tick interval for shells with a frame clock (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// DefaultFrameRate matches FrameUpdateInterval
	DefaultFrameRate = 60
)

// Diagnostics
const (
	// DiagnosticHistory is how many per-entity failures a window retains for inspection
	DiagnosticHistory = 64
)

// Arena Defaults
const (
	// TreeInitialCapacity is the initial node arena size of a window tree
	TreeInitialCapacity = 64

	// RegistryInitialCapacity is the initial slot count of context registries
	RegistryInitialCapacity = 64
)

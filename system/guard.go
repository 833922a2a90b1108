package system

import (
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/engine"
)

// isolate runs one per-entity callback; a failure or panic becomes a diagnostic
// Returns false when the entity must be skipped for the rest of the phase
func isolate(ctx *engine.Context, phase string, e core.Entity, fn func() error) bool {
	if err := core.Guard(fn); err != nil {
		ctx.Report(phase, e, err)
		return false
	}
	return true
}

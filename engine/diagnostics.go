package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/parameter"
)

// Pipeline phases named in diagnostics
const (
	PhaseInit       = "init"
	PhaseEventState = "event_state"
	PhaseLayout     = "layout"
	PhasePostLayout = "post_layout"
	PhaseRender     = "render"
	PhaseCleanup    = "cleanup"
)

// Diagnostic is a per-entity failure recovered by the pipeline
type Diagnostic struct {
	Tick   uint64
	Phase  string
	Entity core.Entity
	Err    error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("tick %d %s %s: %v", d.Tick, d.Phase, d.Entity, d.Err)
}

// Report records a per-entity failure and lets the tick continue
func (c *Context) Report(phase string, e core.Entity, err error) {
	d := Diagnostic{Tick: c.tick, Phase: phase, Entity: e, Err: err}

	if len(c.diagnostics) < parameter.DiagnosticHistory {
		c.diagnostics = append(c.diagnostics, d)
	} else {
		c.diagnostics[c.diagNext] = d
	}
	c.diagNext = (c.diagNext + 1) % parameter.DiagnosticHistory
	c.diagTotal++
	c.statDiagnostics.Add(1)
	c.statLastFailure.Store(phase + " " + e.String())

	c.Logger.Warn("entity failed",
		zap.String("phase", phase),
		zap.Stringer("entity", e),
		zap.Uint64("tick", c.tick),
		zap.Error(err),
	)
}

// Diagnostics returns retained diagnostics, oldest first
func (c *Context) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, 0, len(c.diagnostics))
	if len(c.diagnostics) < parameter.DiagnosticHistory {
		return append(out, c.diagnostics...)
	}
	out = append(out, c.diagnostics[c.diagNext:]...)
	return append(out, c.diagnostics[:c.diagNext]...)
}

// DiagnosticCount returns the number of diagnostics reported since creation
func (c *Context) DiagnosticCount() int {
	return c.diagTotal
}

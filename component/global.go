package component

import "github.com/lixenwraith/retain/core"

// GlobalComponent is window-wide widget state, registered on the root entity
type GlobalComponent struct {
	// Focused receives key input; NoEntity routes keys to the root
	Focused core.Entity
	// Captured receives mouse input from a press until its release
	Captured core.Entity
}

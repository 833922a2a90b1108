package system

import (
	"github.com/lixenwraith/retain/engine"
	"github.com/lixenwraith/retain/render"
)

// NewPipeline assembles the standard system order rendering into target
func NewPipeline(target render.Context) (*engine.Pipeline, error) {
	layout := NewLayoutSystem()
	return engine.NewPipeline(
		NewInitSystem(),
		NewEventStateSystem(),
		layout,
		NewPostLayoutStateSystem(layout),
		NewRenderSystem(target),
		NewCleanupSystem(),
	)
}

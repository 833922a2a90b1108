package component

import (
	"testing"

	"github.com/lixenwraith/retain/core"
)

func TestScrollInfoMaxOffset(t *testing.T) {
	tests := []struct {
		name string
		info ScrollInfoComponent
		want core.Point
	}{
		{"content larger", ScrollInfoComponent{Content: core.Size{Width: 100, Height: 300}, Viewport: core.Size{Width: 80, Height: 100}}, core.Point{X: 20, Y: 200}},
		{"content smaller", ScrollInfoComponent{Content: core.Size{Width: 10, Height: 10}, Viewport: core.Size{Width: 80, Height: 100}}, core.Point{}},
		{"zero", ScrollInfoComponent{}, core.Point{}},
	}
	for _, tt := range tests {
		if got := tt.info.MaxOffset(); got != tt.want {
			t.Errorf("%s: MaxOffset() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

package engine

import (
	"github.com/lixenwraith/retain/component"
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/render"
)

// ComponentStore holds one typed store per known component kind
// Unknown widget data goes to Custom
type ComponentStore struct {
	// Geometry
	Bounds     *Store[core.Rect]
	Position   *Store[core.Point]
	Constraint *Store[core.Constraint]
	Margin     *Store[core.Thickness]
	Padding    *Store[core.Thickness]

	// Window flags, read from the root
	Title       *Store[string]
	Borderless  *Store[bool]
	Resizeable  *Store[bool]
	AlwaysOnTop *Store[bool]

	// Visual
	Text        *Store[string]
	Foreground  *Store[render.RGB]
	Background  *Store[render.RGB]
	BorderColor *Store[render.RGB]
	Visibility  *Store[component.Visibility]

	// Layout parameters
	Alignment   *Store[component.AlignmentComponent]
	Orientation *Store[component.Orientation]
	Spacing     *Store[float64]

	// Interaction
	Focusable    *Store[bool]
	Global       *Store[component.GlobalComponent]
	ScrollOffset *Store[core.Point]
	ScrollInfo   *Store[component.ScrollInfoComponent]

	Custom *CustomStore

	all []AnyStore
}

// NewComponentStore creates every typed store
func NewComponentStore() *ComponentStore {
	cs := &ComponentStore{
		Bounds:     NewStore[core.Rect](component.KindBounds),
		Position:   NewStore[core.Point](component.KindPosition),
		Constraint: NewStore[core.Constraint](component.KindConstraint),
		Margin:     NewStore[core.Thickness](component.KindMargin),
		Padding:    NewStore[core.Thickness](component.KindPadding),

		Title:       NewStore[string](component.KindTitle),
		Borderless:  NewStore[bool](component.KindBorderless),
		Resizeable:  NewStore[bool](component.KindResizeable),
		AlwaysOnTop: NewStore[bool](component.KindAlwaysOnTop),

		Text:        NewStore[string](component.KindText),
		Foreground:  NewStore[render.RGB](component.KindForeground),
		Background:  NewStore[render.RGB](component.KindBackground),
		BorderColor: NewStore[render.RGB](component.KindBorderColor),
		Visibility:  NewStore[component.Visibility](component.KindVisibility),

		Alignment:   NewStore[component.AlignmentComponent](component.KindAlignment),
		Orientation: NewStore[component.Orientation](component.KindOrientation),
		Spacing:     NewStore[float64](component.KindSpacing),

		Focusable:    NewStore[bool](component.KindFocusable),
		Global:       NewStore[component.GlobalComponent](component.KindGlobal),
		ScrollOffset: NewStore[core.Point](component.KindScrollOffset),
		ScrollInfo:   NewStore[component.ScrollInfoComponent](component.KindScrollInfo),

		Custom: NewCustomStore(),
	}

	cs.all = []AnyStore{
		cs.Bounds, cs.Position, cs.Constraint, cs.Margin, cs.Padding,
		cs.Title, cs.Borderless, cs.Resizeable, cs.AlwaysOnTop,
		cs.Text, cs.Foreground, cs.Background, cs.BorderColor, cs.Visibility,
		cs.Alignment, cs.Orientation, cs.Spacing,
		cs.Focusable, cs.Global, cs.ScrollOffset, cs.ScrollInfo,
		cs.Custom,
	}
	return cs
}

// Stores returns every store for uniform lifecycle operations
func (cs *ComponentStore) Stores() []AnyStore {
	return cs.all
}

// RemoveAll deletes every component of e
func (cs *ComponentStore) RemoveAll(e core.Entity) {
	for _, s := range cs.all {
		s.Remove(e)
	}
}

// RemoveBatch deletes every component of the given entities
func (cs *ComponentStore) RemoveBatch(entities []core.Entity) {
	for _, s := range cs.all {
		s.RemoveBatch(entities)
	}
}

// HasAny reports whether any store holds a component for e
func (cs *ComponentStore) HasAny(e core.Entity) bool {
	for _, s := range cs.all {
		if s.Has(e) {
			return true
		}
	}
	return false
}

// VisibilityOf returns the visibility of e, Visible when unset
func (cs *ComponentStore) VisibilityOf(e core.Entity) component.Visibility {
	return cs.Visibility.GetOr(e, component.Visible)
}

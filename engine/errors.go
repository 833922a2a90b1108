package engine

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/lixenwraith/retain/core"
)

// Sentinel errors; match with errors.Is
var (
	ErrNotFound         = errors.New("entity not found")
	ErrCycle            = errors.New("operation would create a cycle")
	ErrAttached         = errors.New("entity already has a parent")
	ErrTopLevel         = errors.New("root and overlay cannot be reparented")
	ErrMissingComponent = errors.New("missing component")
	ErrTypeMismatch     = errors.New("component type mismatch")
	ErrTerminated       = errors.New("window terminated")
	ErrNoRoot           = errors.New("no root entity")
)

// StructuralError reports a tree operation on an unknown entity or an illegal edge
// Always a logic bug in calling code
type StructuralError struct {
	Op     string
	Entity core.Entity
	Err    error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("tree %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StructuralError) Unwrap() error { return e.Err }

// ComponentError reports a failed component access
type ComponentError struct {
	Kind   string
	Entity core.Entity
	Err    error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("component %q on %s: %v", e.Kind, e.Entity, e.Err)
}

func (e *ComponentError) Unwrap() error { return e.Err }

func structural(op string, e core.Entity, err error) error {
	return errors.WithStack(&StructuralError{Op: op, Entity: e, Err: err})
}

func missing(kind string, e core.Entity) error {
	return errors.WithStack(&ComponentError{Kind: kind, Entity: e, Err: ErrMissingComponent})
}

func mismatch(kind string, e core.Entity, want, got any) error {
	return errors.WithStack(&ComponentError{
		Kind:   kind,
		Entity: e,
		Err:    errors.Wrapf(ErrTypeMismatch, "want %T, stored %T", want, got),
	})
}

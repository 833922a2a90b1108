package engine

import (
	"github.com/lixenwraith/retain/core"
)

// World pairs the entity tree with its component store
// Removal keeps both in step; registry cleanup is deferred to the cleanup system through Pending
type World struct {
	Tree       *Tree
	Components *ComponentStore

	staged  []core.Entity // Removals requested during a tick
	pending []core.Entity // Freed entities awaiting registry cleanup
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		Tree:       NewTree(),
		Components: NewComponentStore(),
	}
}

// Create allocates an entity under parent, NoEntity for a detached top-level entity
func (w *World) Create(parent core.Entity) (core.Entity, error) {
	return w.Tree.Create(parent)
}

// Remove frees e and its subtree immediately and drops their components
// Freed entities are queued for registry cleanup
func (w *World) Remove(e core.Entity) ([]core.Entity, error) {
	freed, err := w.Tree.Remove(e)
	if err != nil {
		return nil, err
	}
	w.Components.RemoveBatch(freed)
	w.pending = append(w.pending, freed...)
	return freed, nil
}

// StageRemove defers removal of e to the end of the current EventState run
func (w *World) StageRemove(e core.Entity) error {
	if !w.Tree.Contains(e) {
		return structural("remove", e, ErrNotFound)
	}
	w.staged = append(w.staged, e)
	return nil
}

// ApplyStaged removes every staged entity
// An entity already freed as part of an earlier staged subtree is skipped
func (w *World) ApplyStaged() []core.Entity {
	if len(w.staged) == 0 {
		return nil
	}
	staged := w.staged
	w.staged = nil

	var freed []core.Entity
	for _, e := range staged {
		if !w.Tree.Contains(e) {
			continue
		}
		f, err := w.Remove(e)
		if err != nil {
			continue
		}
		freed = append(freed, f...)
	}
	return freed
}

// Staged returns the number of removals waiting for ApplyStaged
func (w *World) Staged() int {
	return len(w.staged)
}

// HasPending reports whether freed entities await registry cleanup
func (w *World) HasPending() bool {
	return len(w.pending) > 0
}

// TakePending returns freed entities awaiting cleanup and clears the list
func (w *World) TakePending() []core.Entity {
	p := w.pending
	w.pending = nil
	return p
}

package engine

import (
	"github.com/lixenwraith/retain/core"
	"github.com/lixenwraith/retain/parameter"
)

type slot[T any] struct {
	entity core.Entity
	value  T
	used   bool
}

type stagedOp[T any] struct {
	entity core.Entity
	value  T
	remove bool
}

// Registry is an arena keyed by entity index
// Lookups check the generation so stale identifiers miss. Inserts and removes issued while
// Range is running are staged and applied when the outermost Range returns
type Registry[T any] struct {
	name      string
	slots     []slot[T]
	count     int
	iterating int
	staged    []stagedOp[T]
}

// NewRegistry creates an empty registry
func NewRegistry[T any](name string) *Registry[T] {
	return &Registry[T]{
		name:  name,
		slots: make([]slot[T], 0, parameter.RegistryInitialCapacity),
	}
}

// Name returns the registry name used in diagnostics
func (r *Registry[T]) Name() string {
	return r.name
}

// Insert sets the value for e, overwriting any previous value
func (r *Registry[T]) Insert(e core.Entity, v T) {
	if e == core.NoEntity {
		return
	}
	if r.iterating > 0 {
		r.staged = append(r.staged, stagedOp[T]{entity: e, value: v})
		return
	}
	r.insert(e, v)
}

// Get returns the value for e
func (r *Registry[T]) Get(e core.Entity) (T, bool) {
	idx := int(e.Index())
	if idx < len(r.slots) {
		s := &r.slots[idx]
		if s.used && s.entity == e {
			return s.value, true
		}
	}
	var zero T
	return zero, false
}

// Has reports whether e has a value
func (r *Registry[T]) Has(e core.Entity) bool {
	_, ok := r.Get(e)
	return ok
}

// Remove deletes the value for e; a slot reused by a newer generation is left untouched
func (r *Registry[T]) Remove(e core.Entity) {
	if r.iterating > 0 {
		r.staged = append(r.staged, stagedOp[T]{entity: e, remove: true})
		return
	}
	r.remove(e)
}

// Len returns the number of values
func (r *Registry[T]) Len() int {
	return r.count
}

// Range calls fn for every value in index order until fn returns false
func (r *Registry[T]) Range(fn func(e core.Entity, v T) bool) {
	r.iterating++
	defer r.endRange()

	for i := range r.slots {
		s := &r.slots[i]
		if !s.used {
			continue
		}
		if !fn(s.entity, s.value) {
			return
		}
	}
}

// Iterating reports whether a Range is in progress
func (r *Registry[T]) Iterating() bool {
	return r.iterating > 0
}

// Clear removes all values; staged operations are discarded
func (r *Registry[T]) Clear() {
	r.slots = r.slots[:0]
	r.count = 0
	r.staged = r.staged[:0]
}

func (r *Registry[T]) endRange() {
	r.iterating--
	if r.iterating > 0 || len(r.staged) == 0 {
		return
	}
	ops := r.staged
	r.staged = nil
	for _, op := range ops {
		if op.remove {
			r.remove(op.entity)
		} else {
			r.insert(op.entity, op.value)
		}
	}
}

func (r *Registry[T]) insert(e core.Entity, v T) {
	idx := int(e.Index())
	if idx >= len(r.slots) {
		if idx < cap(r.slots) {
			n := len(r.slots)
			r.slots = r.slots[:idx+1]
			clear(r.slots[n:])
		} else {
			grown := make([]slot[T], idx+1, max(2*cap(r.slots), idx+1))
			copy(grown, r.slots)
			r.slots = grown
		}
	}
	s := &r.slots[idx]
	if !s.used {
		r.count++
	}
	s.entity = e
	s.value = v
	s.used = true
}

func (r *Registry[T]) remove(e core.Entity) {
	idx := int(e.Index())
	if idx >= len(r.slots) {
		return
	}
	s := &r.slots[idx]
	if !s.used || s.entity != e {
		return
	}
	var zero T
	s.value = zero
	s.entity = core.NoEntity
	s.used = false
	r.count--
}

package engine

import (
	"github.com/lixenwraith/retain/core"
)

// Store is a generic container for one component kind
// At most one value per entity; Set overwrites. Owned by a single window goroutine
type Store[T any] struct {
	kind       string
	components map[core.Entity]*T
	entities   []core.Entity // Entities holding this component, insertion order
}

// NewStore creates a new component store for kind
func NewStore[T any](kind string) *Store[T] {
	return &Store[T]{
		kind:       kind,
		components: make(map[core.Entity]*T),
		entities:   make([]core.Entity, 0, 64),
	}
}

// Kind returns the component kind name
func (s *Store[T]) Kind() string {
	return s.kind
}

// Set inserts or overwrites the component for an entity
func (s *Store[T]) Set(e core.Entity, val T) {
	if ptr, exists := s.components[e]; exists {
		*ptr = val
		return
	}
	v := val
	s.components[e] = &v
	s.entities = append(s.entities, e)
}

// Get retrieves a copy of the component for an entity
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	if ptr, ok := s.components[e]; ok {
		return *ptr, true
	}
	var zero T
	return zero, false
}

// Require is Get for components the caller must have registered
// Returns a ComponentError wrapping ErrMissingComponent when absent
func (s *Store[T]) Require(e core.Entity) (T, error) {
	if ptr, ok := s.components[e]; ok {
		return *ptr, nil
	}
	var zero T
	return zero, missing(s.kind, e)
}

// MustGet panics with a ComponentError when absent; for invariants established at build time
func (s *Store[T]) MustGet(e core.Entity) T {
	v, err := s.Require(e)
	if err != nil {
		panic(err)
	}
	return v
}

// Mut returns a pointer to the stored value for in-place mutation
// The pointer is valid until the component or entity is removed
func (s *Store[T]) Mut(e core.Entity) (*T, error) {
	if ptr, ok := s.components[e]; ok {
		return ptr, nil
	}
	return nil, missing(s.kind, e)
}

// GetOr returns the component or def when absent
func (s *Store[T]) GetOr(e core.Entity, def T) T {
	if ptr, ok := s.components[e]; ok {
		return *ptr
	}
	return def
}

// Has checks if entity has this component
func (s *Store[T]) Has(e core.Entity) bool {
	_, ok := s.components[e]
	return ok
}

// Remove deletes the component of an entity, no-op if absent
func (s *Store[T]) Remove(e core.Entity) {
	if _, exists := s.components[e]; !exists {
		return
	}
	delete(s.components, e)
	for i, entity := range s.entities {
		if entity == e {
			s.entities[i] = s.entities[len(s.entities)-1]
			s.entities = s.entities[:len(s.entities)-1]
			break
		}
	}
}

// All returns all entities with this component
func (s *Store[T]) All() []core.Entity {
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// Count returns number of entities with this component
func (s *Store[T]) Count() int {
	return len(s.entities)
}

// Clear removes all components from this store
func (s *Store[T]) Clear() {
	s.components = make(map[core.Entity]*T)
	s.entities = make([]core.Entity, 0, 64)
}

// RemoveBatch deletes multiple entities in a single pass - O(n+m) vs O(n*m) for individual removes
func (s *Store[T]) RemoveBatch(entities []core.Entity) {
	if len(entities) == 0 || len(s.components) == 0 {
		return
	}

	toRemove := make(map[core.Entity]struct{}, len(entities))
	for _, e := range entities {
		if _, exists := s.components[e]; exists {
			toRemove[e] = struct{}{}
			delete(s.components, e)
		}
	}
	if len(toRemove) == 0 {
		return
	}

	// Single pass compaction of entities slice
	writeIdx := 0
	for _, e := range s.entities {
		if _, remove := toRemove[e]; !remove {
			s.entities[writeIdx] = e
			writeIdx++
		}
	}
	s.entities = s.entities[:writeIdx]
}

package engine

import (
	"github.com/lixenwraith/retain/core"
)

// AnyStore provides type-erased operations for lifecycle management
// This interface allows World to manage all stores uniformly
// for operations like entity removal without knowing the concrete type
type AnyStore interface {
	// Kind returns the component kind name
	Kind() string

	// Remove deletes a component from an entity
	Remove(e core.Entity)

	// RemoveBatch deletes components of many entities in one pass
	RemoveBatch(entities []core.Entity)

	// Has checks if an entity has this component
	Has(e core.Entity) bool

	// Count returns the number of entities with this component
	Count() int

	// Clear removes all components from this store
	Clear()
}

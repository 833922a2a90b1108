package engine

import (
	"github.com/lixenwraith/retain/core"
)

// CustomStore is the string-keyed fallback for open-ended widget data
// Known kinds live in typed ComponentStore fields; this store checks types at access time
type CustomStore struct {
	kinds map[string]map[core.Entity]any
}

// NewCustomStore creates an empty custom store
func NewCustomStore() *CustomStore {
	return &CustomStore{kinds: make(map[string]map[core.Entity]any)}
}

// Set inserts or overwrites the value of kind for e
func (c *CustomStore) Set(kind string, e core.Entity, v any) {
	m, ok := c.kinds[kind]
	if !ok {
		m = make(map[core.Entity]any)
		c.kinds[kind] = m
	}
	m[e] = v
}

// Lookup returns the raw stored value
func (c *CustomStore) Lookup(kind string, e core.Entity) (any, bool) {
	v, ok := c.kinds[kind][e]
	return v, ok
}

// Kind returns the store name for AnyStore
func (c *CustomStore) Kind() string {
	return "custom"
}

// Remove deletes every custom kind held by e
func (c *CustomStore) Remove(e core.Entity) {
	for _, m := range c.kinds {
		delete(m, e)
	}
}

// RemoveBatch deletes custom kinds for many entities
func (c *CustomStore) RemoveBatch(entities []core.Entity) {
	for _, e := range entities {
		c.Remove(e)
	}
}

// Has reports whether e holds any custom kind
func (c *CustomStore) Has(e core.Entity) bool {
	for _, m := range c.kinds {
		if _, ok := m[e]; ok {
			return true
		}
	}
	return false
}

// Count returns the number of stored values across kinds
func (c *CustomStore) Count() int {
	n := 0
	for _, m := range c.kinds {
		n += len(m)
	}
	return n
}

// Clear removes all custom values
func (c *CustomStore) Clear() {
	c.kinds = make(map[string]map[core.Entity]any)
}

// RemoveKind deletes one kind from one entity
func (c *CustomStore) RemoveKind(kind string, e core.Entity) {
	delete(c.kinds[kind], e)
}

// GetCustom returns the value of kind for e as T
// Fails with ErrMissingComponent when absent and ErrTypeMismatch when stored as another type
func GetCustom[T any](c *CustomStore, kind string, e core.Entity) (T, error) {
	var zero T
	raw, ok := c.kinds[kind][e]
	if !ok {
		return zero, missing(kind, e)
	}
	v, ok := raw.(T)
	if !ok {
		return zero, mismatch(kind, e, zero, raw)
	}
	return v, nil
}

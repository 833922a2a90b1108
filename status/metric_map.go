package status

import (
	"sort"
	"strings"
	"sync"
)

// metricStore is the storage shared by a MetricMap and its prefixed views
type metricStore[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// MetricMap maps metric keys to stable pointers of T
// Writers resolve a pointer once and update it atomically afterwards
// A prefixed view sees only its own keys, with the prefix stripped
type MetricMap[T any] struct {
	store  *metricStore[T]
	prefix string
}

// NewMetricMap creates an empty map
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{store: &metricStore[T]{items: make(map[string]*T)}}
}

// Prefixed returns a view whose keys are stored under prefix
func (m *MetricMap[T]) Prefixed(prefix string) *MetricMap[T] {
	return &MetricMap[T]{store: m.store, prefix: m.prefix + prefix}
}

// Get returns the pointer for key, allocating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	full := m.prefix + key
	s := m.store

	s.mu.RLock()
	ptr, ok := s.items[full]
	s.mu.RUnlock()
	if ok {
		return ptr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ptr, ok := s.items[full]; ok {
		return ptr
	}
	ptr = new(T)
	s.items[full] = ptr
	return ptr
}

// Lookup returns the pointer for key without creating it
func (m *MetricMap[T]) Lookup(key string) (*T, bool) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	ptr, ok := m.store.items[m.prefix+key]
	return ptr, ok
}

// Has reports whether key was ever requested
func (m *MetricMap[T]) Has(key string) bool {
	_, ok := m.Lookup(key)
	return ok
}

// Range visits the keys of this view in order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()

	keys := m.keysLocked()
	for _, k := range keys {
		fn(strings.TrimPrefix(k, m.prefix), m.store.items[k])
	}
}

// Count returns the number of keys in this view
func (m *MetricMap[T]) Count() int {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	if m.prefix == "" {
		return len(m.store.items)
	}
	return len(m.keysLocked())
}

func (m *MetricMap[T]) keysLocked() []string {
	keys := make([]string, 0, len(m.store.items))
	for k := range m.store.items {
		if strings.HasPrefix(k, m.prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

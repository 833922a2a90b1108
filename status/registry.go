package status

import "sync/atomic"

// Registry groups the metrics of one window by value type
// Systems resolve pointers once and write them every tick without locking
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Prefixed returns a view that stores every metric under prefix
// Windows sharing one registry each write through their own view
func (r *Registry) Prefixed(prefix string) *Registry {
	return &Registry{
		Bools:   r.Bools.Prefixed(prefix),
		Ints:    r.Ints.Prefixed(prefix),
		Floats:  r.Floats.Prefixed(prefix),
		Strings: r.Strings.Prefixed(prefix),
	}
}

// TotalCount returns the number of metrics of every type
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot copies every metric value into a plain map keyed by metric name
// Key collisions across types resolve in the order bools, ints, floats, strings
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Get() })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}

package engine

import (
	"github.com/pkg/errors"
)

// ErrNoService is returned when a service name is not registered
var ErrNoService = errors.New("service not registered")

// Services is a string-keyed registry of window collaborators such as persisted settings
type Services struct {
	items map[string]any
}

// NewServices creates an empty registry
func NewServices() *Services {
	return &Services{items: make(map[string]any)}
}

// Register stores svc under name, replacing any previous entry
func (s *Services) Register(name string, svc any) {
	s.items[name] = svc
}

// Lookup returns the service registered under name
func (s *Services) Lookup(name string) (any, bool) {
	svc, ok := s.items[name]
	return svc, ok
}

// Remove drops the service registered under name
func (s *Services) Remove(name string) {
	delete(s.items, name)
}

// Len returns the number of registered services
func (s *Services) Len() int {
	return len(s.items)
}

// ServiceAs returns the service under name as T
func ServiceAs[T any](s *Services, name string) (T, error) {
	var zero T
	raw, ok := s.items[name]
	if !ok {
		return zero, errors.Wrap(ErrNoService, name)
	}
	svc, ok := raw.(T)
	if !ok {
		return zero, errors.Wrapf(ErrTypeMismatch, "service %q: want %T, registered %T", name, zero, raw)
	}
	return svc, nil
}

package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen bounds string metrics such as the last failing phase
const MaxStringLen = 64

// AtomicString holds a short label
// The zero value reads as ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, cut to at most MaxStringLen bytes on a rune boundary
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.ptr.Store(&val)
}

// Load returns the current label
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

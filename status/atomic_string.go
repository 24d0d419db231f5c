package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen caps a string gauge in bytes
const MaxStringLen = 32

// AtomicString is a short text gauge such as a state name
// Zero value reads as ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, cut to MaxStringLen bytes on a rune boundary
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

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// Swap stores val and returns the previous value
func (s *AtomicString) Swap(val string) string {
	old := s.Load()
	s.Store(val)
	return old
}

package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen is the byte cap for atomic strings; dotted phase names fit
const MaxStringLen = 32

// AtomicString holds a short string readable from any goroutine
// Zero value loads as ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, cut back to the last whole rune within MaxStringLen
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

// Load returns the current value
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

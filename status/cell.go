package status

import (
	"math"
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen caps string metrics in bytes; truncation never splits a rune
const MaxStringLen = 32

// AtomicFloat is a float64 gauge stored as its bit pattern, zero value is 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// AtomicString is a short label gauge such as the lifecycle name, zero value is ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

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

// Package atomicval provides a fixed-width atomic integer cell for the four
// widths used by sequence counters: int32, uint32, int64, uint64.
//
// All four widths share one implementation backed by a single 64-bit cell,
// so a Value is atomic on every platform Go supports (including 32-bit,
// where the cell keeps its own alignment). Arithmetic wraps modulo the
// width of T. The raw cell is never exposed.
package atomicval

import (
	"sync"
	"sync/atomic"
)

// Integer is the closed set of widths a Value can hold.
type Integer interface {
	~int32 | ~uint32 | ~int64 | ~uint64
}

// Value is an atomic integer of type T. The zero value holds T's zero and
// is ready to use. Must not be copied after first use.
type Value[T Integer] struct {
	// cause copy attempts to be caught by `go vet`
	_ [0]sync.Mutex

	bits atomic.Uint64
}

// Load atomically returns the current value.
func (v *Value[T]) Load() T {
	return T(v.bits.Load())
}

// Store atomically replaces the current value with x.
func (v *Value[T]) Store(x T) {
	v.bits.Store(uint64(x))
}

// Swap atomically replaces the current value with x and returns the
// previous value.
func (v *Value[T]) Swap(x T) T {
	return T(v.bits.Swap(uint64(x)))
}

// CompareAndSwap atomically replaces old with new and reports whether it
// did. When it returns false the value was not old at the time of the call.
func (v *Value[T]) CompareAndSwap(old, new T) bool {
	return v.bits.CompareAndSwap(uint64(old), uint64(new))
}

// Add atomically adds delta (which may be negative for signed T) and
// returns the new value. Overflow wraps modulo the width of T.
func (v *Value[T]) Add(delta T) T {
	for {
		old := v.bits.Load()
		new := uint64(T(old) + delta)
		if v.bits.CompareAndSwap(old, new) {
			return T(new)
		}
	}
}

// Inc atomically increments by one and returns the new value.
func (v *Value[T]) Inc() T {
	return v.Add(1)
}

// Dec atomically decrements by one and returns the new value. Valid for
// unsigned T too: the subtraction wraps, so Dec after Inc restores the
// prior value.
func (v *Value[T]) Dec() T {
	for {
		old := v.bits.Load()
		new := uint64(T(old) - 1)
		if v.bits.CompareAndSwap(old, new) {
			return T(new)
		}
	}
}

// IncSkipZero increments like Inc but never returns zero: when an
// increment lands on zero (wraparound), it increments again. Used by
// counters that reserve zero as the "never set" sentinel.
//
// Concurrent readers using Load can observe the transient zero between
// the two increments.
func (v *Value[T]) IncSkipZero() T {
	for {
		n := v.Add(1)
		if n != 0 {
			return n
		}
	}
}

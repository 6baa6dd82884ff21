package seqsync

import (
	"sync/atomic"

	"github.com/unkn0wn-root/seqsync/atomicval"
)

// Seq is a sequence counter: an atomically advancing integer plus a flag
// recording whether it was ever set. Readers compare two loads to decide
// "did anything change between my looks" without touching the guarded
// state the counter stands for.
//
// The skip-zero policy reserves zero as the "never set" sentinel: an
// increment that wraps to zero advances once more, so a set counter never
// reads zero. The policy is fixed at construction. With skip-zero enabled,
// concurrent writers can expose a transient zero to readers during the
// re-increment window; disable skip-zero (or serialize writers) when that
// matters.
//
// The zero value is a ready-to-use counter with skip-zero disabled.
type Seq[T atomicval.Integer] struct {
	val      atomicval.Value[T]
	set      atomic.Bool
	skipZero bool
}

// NewSeq returns a counter with the given skip-zero policy.
func NewSeq[T atomicval.Integer](skipZero bool) *Seq[T] {
	return &Seq[T]{skipZero: skipZero}
}

// NewSeq32 returns a 32-bit counter with skip-zero enabled: 32-bit counters
// wrap in realistic lifetimes, and zero must stay reserved for "never set".
func NewSeq32() *Seq[uint32] { return NewSeq[uint32](true) }

// NewSeq64 returns a 64-bit counter with skip-zero disabled: a 64-bit
// counter does not wrap in a process lifetime.
func NewSeq64() *Seq[uint64] { return NewSeq[uint64](false) }

// Next advances the counter by one (honoring skip-zero), marks it set, and
// returns the new value.
func (s *Seq[T]) Next() T {
	var n T
	if s.skipZero {
		n = s.val.IncSkipZero()
	} else {
		n = s.val.Inc()
	}
	s.set.Store(true)
	return n
}

// Set assigns the counter directly and marks it set. Under skip-zero,
// assigning zero is the caller's contract violation to avoid; Set does not
// police it.
func (s *Seq[T]) Set(v T) {
	s.val.Store(v)
	s.set.Store(true)
}

// Load returns the current value without locking. Zero means "never set"
// only under the skip-zero policy; check IsSet otherwise.
func (s *Seq[T]) Load() T { return s.val.Load() }

// IsSet reports whether Next or Set was ever called. It never transitions
// back to false.
func (s *Seq[T]) IsSet() bool { return s.set.Load() }

// SkipZero reports the policy chosen at construction.
func (s *Seq[T]) SkipZero() bool { return s.skipZero }

// NotifySeq is a sequence counter that invokes a callback after every
// advance, for wiring counters into notification or event machinery.
// Skip-zero does not exist for this variant: the retry loop would fire the
// callback for the transient zero, so the combination is not constructible.
//
// Next is safe for concurrent writers; the callback must be fast, must not
// block, and may run concurrently with itself (one call per advance, each
// with that advance's value).
type NotifySeq[T atomicval.Integer] struct {
	seq Seq[T]
	fn  func(T)
}

// NewNotifySeq returns a notifying counter. A nil callback is allowed and
// makes it behave like a plain Seq.
func NewNotifySeq[T atomicval.Integer](onAdvance func(T)) *NotifySeq[T] {
	return &NotifySeq[T]{fn: onAdvance}
}

// Next advances by one, marks the counter set, fires the callback with the
// new value, and returns it.
func (s *NotifySeq[T]) Next() T {
	n := s.seq.Next()
	if s.fn != nil {
		s.fn(n)
	}
	return n
}

// Load returns the current value without locking.
func (s *NotifySeq[T]) Load() T { return s.seq.Load() }

// IsSet reports whether the counter ever advanced.
func (s *NotifySeq[T]) IsSet() bool { return s.seq.IsSet() }

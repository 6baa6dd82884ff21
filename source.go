package seqsync

import (
	"sync"
	"sync/atomic"
)

// Sequenced is the read side of a sequenced source. Both Source and
// RefSource implement it; Observer binds to it.
type Sequenced[T any] interface {
	// Snapshot returns the current value and sequence as one consistent
	// pair; ok is false while nothing was ever published.
	Snapshot() (v T, seq uint64, ok bool)
	// Seq returns the current sequence without locking - the cheap
	// "did anything change" probe. Unset => 0.
	Seq() uint64
	// IsSet reports whether the source was ever written or invalidated.
	IsSet() bool
}

// Ref is a lock-free holder of a shared reference. Readers always see a
// fully published pointer; concurrent writers are last-write-wins. The
// zero value is ready to use and holds nil.
type Ref[T any] struct {
	p atomic.Pointer[T]
}

// Load returns the current reference, nil if none was stored.
func (r *Ref[T]) Load() *T { return r.p.Load() }

// Store publishes v.
func (r *Ref[T]) Store(v *T) { r.p.Store(v) }

// Swap publishes v and returns the previous reference.
func (r *Ref[T]) Swap(v *T) *T { return r.p.Swap(v) }

// CompareAndSwap publishes new iff the current reference is old.
func (r *Ref[T]) CompareAndSwap(old, new *T) bool { return r.p.CompareAndSwap(old, new) }

// Guarded is a mutex-guarded holder for values of any type, including ones
// a pointer swap cannot publish whole. Load and Store serialize on an
// internal lock that is never exposed; LoadRecent trades strictness for a
// lock-free read. The zero value is ready to use.
type Guarded[T any] struct {
	mu     sync.RWMutex
	v      T
	recent atomic.Pointer[T]
}

// Load returns the current value under the read lock. Zero value of T if
// never stored.
func (g *Guarded[T]) Load() T {
	g.mu.RLock()
	v := g.v
	g.mu.RUnlock()
	return v
}

// Store replaces the value under the lock.
func (g *Guarded[T]) Store(v T) {
	g.mu.Lock()
	g.v = v
	cp := v
	g.recent.Store(&cp)
	g.mu.Unlock()
}

// Update mutates the value in place under the lock. fn must not capture
// the pointer beyond the call and must not re-enter this Guarded.
func (g *Guarded[T]) Update(fn func(*T)) {
	g.mu.Lock()
	fn(&g.v)
	cp := g.v
	g.recent.Store(&cp)
	g.mu.Unlock()
}

// LoadRecent returns the value published by the most recently completed
// Store or Update without taking the lock. A write still in flight may or
// may not be visible; the returned value is never torn. ok is false before
// the first completed write.
func (g *Guarded[T]) LoadRecent() (T, bool) {
	if p := g.recent.Load(); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// Source publishes a value of any type together with a sequence number.
// The value write and the sequence advance happen in one critical section,
// so Snapshot always returns a pair that existed at some instant. Any
// number of writers and readers.
//
// Observers poll Seq without the lock; a probe racing a write in flight
// can miss it (and catches it next time), but once a write completed the
// probe cannot claim "unchanged".
type Source[T any] struct {
	mu  sync.RWMutex
	val T
	seq Seq[uint64]
}

// NewSource returns an empty source: IsSet is false and observers have
// nothing to fetch until the first Store or Invalidate.
func NewSource[T any]() *Source[T] { return &Source[T]{} }

// NewSourceWith returns a source that already published initial (sequence 1).
func NewSourceWith[T any](initial T) *Source[T] {
	s := &Source[T]{}
	s.Store(initial)
	return s
}

// Store publishes v and advances the sequence.
func (s *Source[T]) Store(v T) {
	s.mu.Lock()
	s.val = v
	s.seq.Next()
	s.mu.Unlock()
}

// Load returns the current value alone. Prefer Snapshot when the sequence
// matters; a separate Load and Seq can straddle a write.
func (s *Source[T]) Load() T {
	s.mu.RLock()
	v := s.val
	s.mu.RUnlock()
	return v
}

// Snapshot returns value and sequence as one consistent pair.
func (s *Source[T]) Snapshot() (T, uint64, bool) {
	s.mu.RLock()
	v, n, ok := s.val, s.seq.Load(), s.seq.IsSet()
	s.mu.RUnlock()
	return v, n, ok
}

// Seq returns the current sequence without the lock.
func (s *Source[T]) Seq() uint64 { return s.seq.Load() }

// IsSet reports whether the source was ever written or invalidated.
func (s *Source[T]) IsSet() bool { return s.seq.IsSet() }

// Invalidate advances the sequence without changing the value: the bare
// "something changed, look again" signal. On a source never written it
// publishes the zero value of T.
func (s *Source[T]) Invalidate() {
	s.mu.Lock()
	s.seq.Next()
	s.mu.Unlock()
}

// refState is one published {value, sequence} pair. Immutable once stored.
type refState[T any] struct {
	val *T
	seq uint64
}

// RefSource publishes a reference value together with a sequence number
// without any lock: every write swaps in a fresh immutable pair, so no
// interleaving can hand a reader a new sequence with an old value or the
// reverse. Exactly one goroutine may write; any number may read.
type RefSource[T any] struct {
	cur atomic.Pointer[refState[T]]
}

// NewRefSource returns an empty lock-free source.
func NewRefSource[T any]() *RefSource[T] { return &RefSource[T]{} }

// NewRefSourceWith returns a source that already published initial
// (sequence 1).
func NewRefSourceWith[T any](initial *T) *RefSource[T] {
	s := &RefSource[T]{}
	s.Store(initial)
	return s
}

// Store publishes v and advances the sequence.
func (s *RefSource[T]) Store(v *T) {
	next := &refState[T]{val: v, seq: 1}
	if st := s.cur.Load(); st != nil {
		next.seq = st.seq + 1
	}
	s.cur.Store(next)
}

// Load returns the current reference alone, nil while unset.
func (s *RefSource[T]) Load() *T {
	if st := s.cur.Load(); st != nil {
		return st.val
	}
	return nil
}

// Snapshot returns the published pair. The pair is exact by construction.
func (s *RefSource[T]) Snapshot() (*T, uint64, bool) {
	st := s.cur.Load()
	if st == nil {
		return nil, 0, false
	}
	return st.val, st.seq, true
}

// Seq returns the current sequence. Unset => 0.
func (s *RefSource[T]) Seq() uint64 {
	if st := s.cur.Load(); st != nil {
		return st.seq
	}
	return 0
}

// IsSet reports whether the source was ever written or invalidated.
func (s *RefSource[T]) IsSet() bool { return s.cur.Load() != nil }

// Invalidate advances the sequence keeping the current value. On a source
// never written it publishes nil.
func (s *RefSource[T]) Invalidate() {
	next := &refState[T]{seq: 1}
	if st := s.cur.Load(); st != nil {
		next.val, next.seq = st.val, st.seq+1
	}
	s.cur.Store(next)
}

var (
	_ Sequenced[int]  = (*Source[int])(nil)
	_ Sequenced[*int] = (*RefSource[int])(nil)
)

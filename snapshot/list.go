// Package snapshot provides mutex-guarded collections that lazily publish
// immutable snapshots, so hot readers iterate and index without taking the
// lock.
//
// Mutations go through the collection's mutex and raise a rebuild flag;
// the next snapshot access rebuilds once under the same mutex and callers
// after that hit a lock-free fast path until the next mutation. A goroutine
// always sees its own mutations in its next snapshot; other goroutines may
// keep reading an older snapshot while a write is in flight - snapshots
// are point-in-time copies, never views.
//
// Returned snapshots are immutable by contract: callers must not modify
// them, and the collection never reuses one after a mutation.
package snapshot

import (
	"fmt"
	"iter"
	"sync"
	"sync/atomic"
)

// List is a guarded slice with snapshot caching. Safe for concurrent use.
// The zero value is an empty ready-to-use list.
type List[T comparable] struct {
	mu    sync.Mutex
	items []T
	dirty atomic.Bool
	snap  atomic.Pointer[[]T]
}

// Append adds values at the end.
func (l *List[T]) Append(vs ...T) {
	if len(vs) == 0 {
		return
	}
	l.mu.Lock()
	l.items = append(l.items, vs...)
	l.dirty.Store(true)
	l.mu.Unlock()
}

// Insert places v before index i; i == Len() appends. Panics when i is out
// of range.
func (l *List[T]) Insert(i int, v T) {
	l.mu.Lock()
	if i < 0 || i > len(l.items) {
		n := len(l.items)
		l.mu.Unlock()
		panic(outOfRange("Insert", i, n))
	}
	l.items = append(l.items, v)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = v
	l.dirty.Store(true)
	l.mu.Unlock()
}

// Set replaces the element at index i. Panics when i is out of range.
func (l *List[T]) Set(i int, v T) {
	l.mu.Lock()
	if i < 0 || i >= len(l.items) {
		n := len(l.items)
		l.mu.Unlock()
		panic(outOfRange("Set", i, n))
	}
	l.items[i] = v
	l.dirty.Store(true)
	l.mu.Unlock()
}

// RemoveAt deletes and returns the element at index i. Panics when i is
// out of range.
func (l *List[T]) RemoveAt(i int) T {
	l.mu.Lock()
	if i < 0 || i >= len(l.items) {
		n := len(l.items)
		l.mu.Unlock()
		panic(outOfRange("RemoveAt", i, n))
	}
	v := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.dirty.Store(true)
	l.mu.Unlock()
	return v
}

// Remove deletes the first occurrence of v and reports whether it was
// present.
func (l *List[T]) Remove(v T) bool {
	l.mu.Lock()
	for i := range l.items {
		if l.items[i] == v {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.dirty.Store(true)
			l.mu.Unlock()
			return true
		}
	}
	l.mu.Unlock()
	return false
}

// Clear removes all elements.
func (l *List[T]) Clear() {
	l.mu.Lock()
	if len(l.items) > 0 {
		l.items = l.items[:0]
		l.dirty.Store(true)
	}
	l.mu.Unlock()
}

// Len returns the element count. Lock-free while no mutation is pending.
func (l *List[T]) Len() int {
	if !l.dirty.Load() {
		if p := l.snap.Load(); p != nil {
			return len(*p)
		}
	}
	l.mu.Lock()
	n := len(l.items)
	l.mu.Unlock()
	return n
}

// At returns the element at index i. Lock-free while no mutation is
// pending. Panics when i is out of range.
func (l *List[T]) At(i int) T {
	if !l.dirty.Load() {
		if p := l.snap.Load(); p != nil {
			s := *p
			if i < 0 || i >= len(s) {
				panic(outOfRange("At", i, len(s)))
			}
			return s[i]
		}
	}
	l.mu.Lock()
	if i < 0 || i >= len(l.items) {
		n := len(l.items)
		l.mu.Unlock()
		panic(outOfRange("At", i, n))
	}
	v := l.items[i]
	l.mu.Unlock()
	return v
}

// Snapshot returns the current elements as an immutable slice. Lock-free
// while no mutation is pending; otherwise it rebuilds once under the lock.
// After a mutation the next Snapshot returns a new slice - an already
// returned one never changes.
func (l *List[T]) Snapshot() []T {
	if !l.dirty.Load() {
		if p := l.snap.Load(); p != nil {
			return *p
		}
	}
	l.mu.Lock()
	s := l.rebuildLocked()
	l.mu.Unlock()
	return s
}

// All iterates over a snapshot; the lock is never held while the caller's
// loop body runs.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range l.Snapshot() {
			if !yield(v) {
				return
			}
		}
	}
}

// rebuildLocked returns the cached snapshot, rebuilding it when a mutation
// happened since the last build. The new slice is published before the
// flag clears, both inside the critical section, so a concurrent fast-path
// reader can never pair a cleared flag with the old snapshot.
func (l *List[T]) rebuildLocked() []T {
	if p := l.snap.Load(); p != nil && !l.dirty.Load() {
		return *p
	}
	cp := make([]T, len(l.items))
	copy(cp, l.items)
	l.snap.Store(&cp)
	l.dirty.Store(false)
	return cp
}

func outOfRange(op string, i, n int) string {
	return fmt.Sprintf("snapshot: %s index %d out of range with length %d", op, i, n)
}

package snapshot

import "iter"

// UnsyncedList is List without the mutex: the same snapshot contract for
// code that already confines the list to a single goroutine and wants the
// cheapest possible mutations. Using it from several goroutines is a data
// race.
//
// The zero value is an empty ready-to-use list.
type UnsyncedList[T comparable] struct {
	items []T
	snap  []T
	clean bool
}

// Append adds values at the end.
func (l *UnsyncedList[T]) Append(vs ...T) {
	if len(vs) == 0 {
		return
	}
	l.items = append(l.items, vs...)
	l.clean = false
}

// Insert places v before index i; i == Len() appends. Panics when i is out
// of range.
func (l *UnsyncedList[T]) Insert(i int, v T) {
	if i < 0 || i > len(l.items) {
		panic(outOfRange("Insert", i, len(l.items)))
	}
	l.items = append(l.items, v)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = v
	l.clean = false
}

// Set replaces the element at index i. Panics when i is out of range.
func (l *UnsyncedList[T]) Set(i int, v T) {
	if i < 0 || i >= len(l.items) {
		panic(outOfRange("Set", i, len(l.items)))
	}
	l.items[i] = v
	l.clean = false
}

// RemoveAt deletes and returns the element at index i. Panics when i is
// out of range.
func (l *UnsyncedList[T]) RemoveAt(i int) T {
	if i < 0 || i >= len(l.items) {
		panic(outOfRange("RemoveAt", i, len(l.items)))
	}
	v := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.clean = false
	return v
}

// Remove deletes the first occurrence of v and reports whether it was
// present.
func (l *UnsyncedList[T]) Remove(v T) bool {
	for i := range l.items {
		if l.items[i] == v {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.clean = false
			return true
		}
	}
	return false
}

// Clear removes all elements.
func (l *UnsyncedList[T]) Clear() {
	if len(l.items) > 0 {
		l.items = l.items[:0]
		l.clean = false
	}
}

// Len returns the element count.
func (l *UnsyncedList[T]) Len() int { return len(l.items) }

// At returns the element at index i. Panics when i is out of range.
func (l *UnsyncedList[T]) At(i int) T {
	if i < 0 || i >= len(l.items) {
		panic(outOfRange("At", i, len(l.items)))
	}
	return l.items[i]
}

// Snapshot returns the current elements as an immutable slice, rebuilding
// it only after a mutation. An already returned snapshot never changes.
func (l *UnsyncedList[T]) Snapshot() []T {
	if l.clean && l.snap != nil {
		return l.snap
	}
	cp := make([]T, len(l.items))
	copy(cp, l.items)
	l.snap = cp
	l.clean = true
	return cp
}

// All iterates over a snapshot, so the caller may mutate the list from
// inside the loop without disturbing the iteration.
func (l *UnsyncedList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range l.Snapshot() {
			if !yield(v) {
				return
			}
		}
	}
}

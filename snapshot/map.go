package snapshot

import (
	"sync"
	"sync/atomic"
)

// Entry is one key/value pair of a Map snapshot.
type Entry[K comparable, V any] struct {
	Key K
	Val V
}

// Map is a guarded map with two snapshot kinds - keys and entries - each
// rebuilt lazily and served lock-free while no mutation is pending. Every
// mutation invalidates both kinds; each rebuilds on its own next access.
// Snapshot order is unspecified but consistent within one snapshot.
//
// Safe for concurrent use. The zero value is an empty ready-to-use map.
type Map[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V

	dirtyKeys    atomic.Bool
	dirtyEntries atomic.Bool
	keys         atomic.Pointer[[]K]
	entries      atomic.Pointer[[]Entry[K, V]]
}

// Put stores v under k.
func (m *Map[K, V]) Put(k K, v V) {
	m.mu.Lock()
	if m.items == nil {
		m.items = make(map[K]V)
	}
	m.items[k] = v
	m.invalidateLocked()
	m.mu.Unlock()
}

// Get returns the value under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	m.mu.RLock()
	v, ok := m.items[k]
	m.mu.RUnlock()
	return v, ok
}

// Delete removes k and reports whether it was present. Absent keys leave
// the snapshots valid.
func (m *Map[K, V]) Delete(k K) bool {
	m.mu.Lock()
	_, ok := m.items[k]
	if ok {
		delete(m.items, k)
		m.invalidateLocked()
	}
	m.mu.Unlock()
	return ok
}

// Clear removes all entries.
func (m *Map[K, V]) Clear() {
	m.mu.Lock()
	if len(m.items) > 0 {
		m.items = make(map[K]V)
		m.invalidateLocked()
	}
	m.mu.Unlock()
}

// Len returns the entry count.
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	n := len(m.items)
	m.mu.RUnlock()
	return n
}

// Keys returns the current keys as an immutable slice. Lock-free while no
// mutation is pending.
func (m *Map[K, V]) Keys() []K {
	if !m.dirtyKeys.Load() {
		if p := m.keys.Load(); p != nil {
			return *p
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p := m.keys.Load(); p != nil && !m.dirtyKeys.Load() {
		return *p
	}
	ks := make([]K, 0, len(m.items))
	for k := range m.items {
		ks = append(ks, k)
	}
	m.keys.Store(&ks)
	m.dirtyKeys.Store(false)
	return ks
}

// Entries returns the current pairs as an immutable slice. Lock-free while
// no mutation is pending.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	if !m.dirtyEntries.Load() {
		if p := m.entries.Load(); p != nil {
			return *p
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p := m.entries.Load(); p != nil && !m.dirtyEntries.Load() {
		return *p
	}
	es := make([]Entry[K, V], 0, len(m.items))
	for k, v := range m.items {
		es = append(es, Entry[K, V]{Key: k, Val: v})
	}
	m.entries.Store(&es)
	m.dirtyEntries.Store(false)
	return es
}

// invalidateLocked raises both rebuild flags. Caller holds mu.
func (m *Map[K, V]) invalidateLocked() {
	m.dirtyKeys.Store(true)
	m.dirtyEntries.Store(true)
}

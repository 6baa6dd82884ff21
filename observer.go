package seqsync

import "github.com/unkn0wn-root/seqsync/atomicval"

// Observer is a reader-side cache over one Sequenced source. It remembers
// the last observed {value, sequence} pair and re-fetches only when the
// source's sequence moved, so steady-state reads cost one atomic load.
//
// An Observer is not safe for concurrent use: give each reader goroutine
// its own (Clone is cheap). The source binding is fixed for life.
type Observer[T any] struct {
	src    Sequenced[T]
	val    T
	seq    uint64
	seen   bool
	forced bool
}

// NewObserver returns an observer bound to src with an empty cache; the
// first Update after the source publishes fetches unconditionally.
func NewObserver[T any](src Sequenced[T]) *Observer[T] {
	return &Observer[T]{src: src}
}

// Stale reports whether Update would re-fetch, without locking. A probe
// racing a write in flight may answer false and correct itself on the next
// call; once a write is fully visible Stale cannot answer false.
func (o *Observer[T]) Stale() bool {
	if !o.src.IsSet() {
		return false
	}
	return o.forced || !o.seen || o.src.Seq() != o.seq
}

// MarkStale makes the next Update re-fetch even if the sequence matches -
// for callers that learned out of band that the cache cannot be trusted.
// It does not bypass the IsSet gate: an unset source still yields nothing.
func (o *Observer[T]) MarkStale() { o.forced = true }

// Update re-fetches the source's current pair into the cache when Stale,
// and reports whether it did. Calling it again without an intervening
// write is a no-op returning false; the cache is left untouched.
func (o *Observer[T]) Update() bool {
	if !o.Stale() {
		return false
	}
	v, n, ok := o.src.Snapshot()
	if !ok {
		return false
	}
	o.val, o.seq, o.seen, o.forced = v, n, true, false
	return true
}

// Value returns the cached value; zero value of T before the first Update.
func (o *Observer[T]) Value() T { return o.val }

// Seq returns the sequence the cached value was observed under.
func (o *Observer[T]) Seq() uint64 { return o.seq }

// Seen reports whether Update ever fetched.
func (o *Observer[T]) Seen() bool { return o.seen }

// Clone returns an independent observer with the same source binding and
// cached state.
func (o *Observer[T]) Clone() *Observer[T] {
	cp := *o
	return &cp
}

// SeqObserver applies the observer protocol to a bare Seq: no value
// payload, just "did the counter move since I last looked". Not safe for
// concurrent use.
//
// Against a skip-zero counter with concurrent writers, Update can catch
// the transient zero of a wrap in progress; it self-corrects on the next
// call.
type SeqObserver[T atomicval.Integer] struct {
	src    *Seq[T]
	last   T
	seen   bool
	forced bool
}

// NewSeqObserver returns an observer bound to src.
func NewSeqObserver[T atomicval.Integer](src *Seq[T]) *SeqObserver[T] {
	return &SeqObserver[T]{src: src}
}

// Stale reports whether the counter moved since the last Update.
func (o *SeqObserver[T]) Stale() bool {
	if !o.src.IsSet() {
		return false
	}
	return o.forced || !o.seen || o.src.Load() != o.last
}

// MarkStale makes the next Update re-read the counter unconditionally.
func (o *SeqObserver[T]) MarkStale() { o.forced = true }

// Update caches the current counter value when Stale and reports whether
// it did.
func (o *SeqObserver[T]) Update() bool {
	if !o.Stale() {
		return false
	}
	o.last, o.seen, o.forced = o.src.Load(), true, false
	return true
}

// Last returns the cached counter value.
func (o *SeqObserver[T]) Last() T { return o.last }

// Seen reports whether Update ever fetched.
func (o *SeqObserver[T]) Seen() bool { return o.seen }

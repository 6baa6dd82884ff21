// Package lifecycle provides deterministic teardown helpers: an ordered
// cleanup list and a token-counted shared resource. Everything here is
// explicit - there is no finalizer fallback, and misuse fails fast rather
// than being absorbed.
package lifecycle

import (
	"errors"
	"io"
	"sync"
)

// ErrClosed is returned when a single-shot Close runs a second time.
var ErrClosed = errors.New("lifecycle: already closed")

// Teardown collects cleanup actions and runs them once, newest first, the
// way stacked defers unwind. Safe for concurrent use. The zero value is
// ready.
type Teardown struct {
	mu     sync.Mutex
	fns    []func() error
	closed bool
}

// Defer registers fn to run on Close, before every fn registered earlier.
// Panics when called after Close: registering cleanup for a torn-down
// scope is an ordering bug in the caller.
func (t *Teardown) Defer(fn func() error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		panic("lifecycle: Defer after Close")
	}
	t.fns = append(t.fns, fn)
	t.mu.Unlock()
}

// Close runs the registered actions in reverse registration order and
// joins their errors. Every action runs even when earlier ones fail. A
// second or concurrent Close returns ErrClosed without running anything.
//
// Actions run outside the internal lock.
func (t *Teardown) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	t.closed = true
	fns := t.fns
	t.fns = nil
	t.mu.Unlock()

	var errs []error
	for i := len(fns) - 1; i >= 0; i-- {
		if err := fns[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Shared owns one resource of type T shared by token holders: the first
// Acquire sets it up, the close of the last live token releases it. The
// count then starts over - a later Acquire sets up a fresh resource.
//
// Setup and release run while the internal lock is held, so the
// first-acquirer and last-closer races are settled inside the holder.
// The callbacks must not call back into this Shared and must not take
// locks that elsewhere are held while calling into it.
type Shared[T any] struct {
	mu      sync.Mutex
	setup   func() (T, error)
	release func(T) error
	res     T
	live    int
}

// NewShared returns a holder around the given callbacks; both are
// required.
func NewShared[T any](setup func() (T, error), release func(T) error) *Shared[T] {
	if setup == nil || release == nil {
		panic("lifecycle: NewShared requires setup and release callbacks")
	}
	return &Shared[T]{setup: setup, release: release}
}

// Acquire returns a live token, running setup when no token exists. A
// setup error aborts the acquire and leaves the holder empty, so the next
// Acquire retries.
func (s *Shared[T]) Acquire() (*Token[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == 0 {
		res, err := s.setup()
		if err != nil {
			return nil, err
		}
		s.res = res
	}
	s.live++
	return &Token[T]{holder: s}, nil
}

// Live returns the number of open tokens.
func (s *Shared[T]) Live() int {
	s.mu.Lock()
	n := s.live
	s.mu.Unlock()
	return n
}

// Token is one handle on a Shared resource. Close it exactly once when
// done; the resource stays valid until then.
type Token[T any] struct {
	holder *Shared[T]
	closed bool // guarded by holder.mu
}

// Value returns the shared resource. Panics on a closed token: the
// resource may already be released.
func (tk *Token[T]) Value() T {
	tk.holder.mu.Lock()
	defer tk.holder.mu.Unlock()
	if tk.closed {
		panic("lifecycle: Value on closed token")
	}
	return tk.holder.res
}

// Close returns this token to the holder; closing the last token runs
// release and returns its error. A second Close of the same token returns
// ErrClosed and does not touch the count.
func (tk *Token[T]) Close() error {
	s := tk.holder
	s.mu.Lock()
	defer s.mu.Unlock()
	if tk.closed {
		return ErrClosed
	}
	tk.closed = true
	s.live--
	if s.live > 0 {
		return nil
	}
	res := s.res
	var zero T
	s.res = zero
	return s.release(res)
}

var (
	_ io.Closer = (*Teardown)(nil)
	_ io.Closer = (*Token[int])(nil)
)

package asynchook

import (
	"sync"
	"testing"

	"github.com/unkn0wn-root/seqsync/feed"
)

type gate struct {
	entered chan struct{}
	release chan struct{}
}

type countHooks struct {
	feed.NopHooks
	mu     sync.Mutex
	healed []string
	gate   *gate
}

func (h *countHooks) SelfHeal(name, reason string) {
	if h.gate != nil {
		h.gate.entered <- struct{}{}
		<-h.gate.release
	}
	h.mu.Lock()
	h.healed = append(h.healed, name+"/"+reason)
	h.mu.Unlock()
}

func (h *countHooks) list() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.healed...)
}

// TestAsyncDelivery: events reach the inner hooks in order and Close
// flushes the queue before returning.
func TestAsyncDelivery(t *testing.T) {
	inner := &countHooks{}
	h := New(inner, 1, 16)

	h.SelfHeal("a", "frame")
	h.SelfHeal("b", "value_decode")
	h.SelfHeal("c", "frame")
	h.Close()

	got := inner.list()
	want := []string{"a/frame", "b/value_decode", "c/frame"}
	if len(got) != len(want) {
		t.Fatalf("delivered %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("delivered %v, want %v", got, want)
		}
	}
}

// TestAsyncDropOnFull: a full queue drops events instead of blocking the
// caller.
func TestAsyncDropOnFull(t *testing.T) {
	g := &gate{entered: make(chan struct{}, 16), release: make(chan struct{})}
	inner := &countHooks{gate: g}
	h := New(inner, 1, 2)

	h.SelfHeal("a", "frame") // worker picks this up and parks in the gate
	<-g.entered
	h.SelfHeal("b", "frame") // queued
	h.SelfHeal("c", "frame") // queued
	h.SelfHeal("d", "frame") // dropped
	h.SelfHeal("e", "frame") // dropped

	close(g.release)
	h.Close()

	if got := inner.list(); len(got) != 3 {
		t.Fatalf("delivered %d events (%v), want 3", len(got), got)
	}
}

// TestAsyncCloseIdempotent: double Close must not panic or hang.
func TestAsyncCloseIdempotent(t *testing.T) {
	h := New(&countHooks{}, 2, 8)
	h.Close()
	h.Close()
}

// TestAsyncEventAfterCloseDropped: events arriving after Close are
// dropped, never sent into the stopped queue.
func TestAsyncEventAfterCloseDropped(t *testing.T) {
	inner := &countHooks{}
	h := New(inner, 1, 8)

	h.SelfHeal("a", "frame")
	h.Close()

	h.SelfHeal("b", "frame")
	h.SeqLoadError("c", nil)

	if got := inner.list(); len(got) != 1 || got[0] != "a/frame" {
		t.Fatalf("delivered %v, want just a/frame", got)
	}
}

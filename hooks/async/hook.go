// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/seqsync/feed"
//	"github.com/unkn0wn-root/seqsync/hooks/async"
//	"github.com/unkn0wn-root/seqsync/hooks/slog"
//
// )
//
//	raw := sloghook.New(slog.Default(), sloghook.Options{
//	    SelfHealEvery: 10, // sample logs: ~every 10th self-heal
//	    SeqErrEvery:   50, // outage logs at poll rate otherwise
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	f, _ := feed.New[Config](feed.Options[Config]{
//	    Name:  "config",
//	    Store: st,
//	    Codec: codec.JSON[Config]{},
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/seqsync/feed"
)

type Hooks struct {
	inner feed.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once

	mu     sync.RWMutex
	closed bool
}

var _ feed.Hooks = (*Hooks)(nil)

func New(inner feed.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Safe to call more
// than once; events arriving after Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		h.mu.Unlock()
		close(h.q)
		h.wg.Wait()
	})
}

// try holds the read lock across the send so Close cannot close the
// queue under an in-flight event.
func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return // late event; dropped like an overflow
	}
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) SelfHeal(name, r string)            { h.try(func() { h.inner.SelfHeal(name, r) }) }
func (h *Hooks) StoreSetRejected(name string)       { h.try(func() { h.inner.StoreSetRejected(name) }) }
func (h *Hooks) SeqLoadError(name string, e error)  { h.try(func() { h.inner.SeqLoadError(name, e) }) }
func (h *Hooks) SeqBumpError(name string, e error)  { h.try(func() { h.inner.SeqBumpError(name, e) }) }
func (h *Hooks) InvalidateOutage(name string, be, de error) {
	h.try(func() { h.inner.InvalidateOutage(name, be, de) })
}

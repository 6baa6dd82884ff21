package seqstore

import (
	"context"
	"sync"
	"time"

	"github.com/unkn0wn-root/seqsync/atomicval"
)

// localEntry holds one name's counter. The fields are atomic so a Bump of
// an existing name needs only the map's read lock.
type localEntry struct {
	seq       atomicval.Value[uint64]
	updatedAt atomicval.Value[int64] // unix nanos of the last bump
}

// Local keeps sequences in-process (default). Optional cleanup loop to
// prune long-inactive names.
type Local struct {
	mu     sync.RWMutex
	names  map[string]*localEntry
	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup

	retention time.Duration
}

var _ Store = (*Local)(nil)

func NewLocal(cleanupInterval, retention time.Duration) *Local {
	s := &Local{
		names:     make(map[string]*localEntry),
		retention: retention,
	}
	if cleanupInterval > 0 && retention > 0 {
		s.ticker = time.NewTicker(cleanupInterval)
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-s.ticker.C:
					s.Cleanup(retention)
				case <-s.stopCh:
					return
				}
			}
		}()
	}
	return s
}

func (s *Local) Load(_ context.Context, name string) (uint64, error) {
	s.mu.RLock()
	e, ok := s.names[name]
	s.mu.RUnlock()
	if !ok {
		return 0, nil
	}
	return e.seq.Load(), nil
}

// LoadMany acquires the read lock once and reads all requested names.
// this avoids per-name lock/unlock overhead.
func (s *Local) LoadMany(_ context.Context, names []string) (map[string]uint64, error) {
	out := make(map[string]uint64, len(names))
	s.mu.RLock()
	for _, n := range names {
		if e, ok := s.names[n]; ok {
			out[n] = e.seq.Load()
		} else {
			out[n] = 0
		}
	}
	s.mu.RUnlock()
	return out, nil
}

func (s *Local) Bump(_ context.Context, name string) (uint64, error) {
	now := time.Now().UnixNano()

	s.mu.RLock()
	e, ok := s.names[name]
	s.mu.RUnlock()
	if ok {
		n := e.seq.Inc()
		e.updatedAt.Store(now)
		return n, nil
	}

	s.mu.Lock()
	e, ok = s.names[name]
	if !ok {
		e = &localEntry{}
		s.names[name] = e
	}
	s.mu.Unlock()

	n := e.seq.Inc()
	e.updatedAt.Store(now)
	return n, nil
}

func (s *Local) Cleanup(retention time.Duration) {
	if retention <= 0 {
		return
	}
	cutoff := time.Now().Add(-retention).UnixNano()

	s.mu.Lock()
	for n, e := range s.names {
		if at := e.updatedAt.Load(); at != 0 && at < cutoff {
			delete(s.names, n)
		}
	}
	s.mu.Unlock()
}

func (s *Local) Close(_ context.Context) error {
	if s.stopCh != nil {
		close(s.stopCh)
		if s.ticker != nil {
			s.ticker.Stop() // stop ticker before waiting
		}
		s.wg.Wait()
	}
	return nil
}

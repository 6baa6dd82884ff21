package feed

import (
	"context"

	"github.com/unkn0wn-root/seqsync"
	"github.com/unkn0wn-root/seqsync/internal/wire"
)

// Observer tracks one feed and caches the last adopted value together
// with the sequence stamped on it. Not safe for concurrent use; give each
// goroutine its own Observer.
type Observer[V any] struct {
	f      *feed[V]
	val    V
	seq    uint64
	seen   bool
	forced bool
}

func (f *feed[V]) Observer() *Observer[V] { return &Observer[V]{f: f} }

// Update polls the feed once. It probes the sequence store first and only
// fetches the frame when the sequence moved past the cached one, so the
// steady state costs one sequence read. Returns true when a frame was
// adopted and Value/Seq changed.
//
// Frames that fail validation or decoding are deleted on read and the
// cached value is kept; the error cases an operator must see go through
// Hooks. A frame not newer than the cache (a publish still in flight)
// is ignored — unless it carries the probed sequence itself, which
// happens when the sequence store was reset and the counter restarted
// below the cache.
func (o *Observer[V]) Update(ctx context.Context) (bool, error) {
	f := o.f
	if !f.enabled {
		return false, nil
	}
	cur, err := f.seqs.Load(ctx, f.key)
	if err != nil {
		f.hooks.SeqLoadError(f.name, err)
		return false, err
	}
	if !o.forced {
		if cur == 0 {
			return false, nil // nothing published, or the sequence expired
		}
		if o.seen && cur == o.seq {
			return false, nil
		}
	}

	raw, ok, err := f.st.Get(ctx, f.key)
	if err != nil {
		return false, err
	}
	if !ok {
		// frame missing (invalidated or evicted); keep the last value
		return false, nil
	}

	fseq, payload, err := wire.Decode(raw)
	if err != nil {
		_ = f.st.Del(ctx, f.key) // self-heal corrupt frame
		f.hooks.SelfHeal(f.name, "frame")
		f.log.Warn("corrupt frame dropped", seqsync.Fields{"feed": f.name, "err": err})
		return false, nil
	}
	if !o.forced && o.seen && fseq != cur && fseq <= o.seq {
		// below the cache and not what the probe reported: a publish
		// still in flight. A frame matching the probe is adopted even
		// below the cache — the counter restarted after a store reset.
		return false, nil
	}

	v, err := f.codec.Decode(payload)
	if err != nil {
		_ = f.st.Del(ctx, f.key) // self-heal undecodable value
		f.hooks.SelfHeal(f.name, "value_decode")
		f.log.Warn("frame value decode failed; dropped", seqsync.Fields{"feed": f.name, "seq": fseq, "err": err})
		return false, nil
	}

	o.val, o.seq, o.seen, o.forced = v, fseq, true, false
	return true, nil
}

// Value returns the last adopted value (zero V before the first adoption).
func (o *Observer[V]) Value() V { return o.val }

// Seq returns the sequence stamped on the last adopted value.
func (o *Observer[V]) Seq() uint64 { return o.seq }

// Seen reports whether Update has adopted at least one value.
func (o *Observer[V]) Seen() bool { return o.seen }

// MarkStale forces the next Update to refetch the frame even when the
// sequence has not moved. It re-adopts whatever valid frame the store
// holds, at any sequence.
func (o *Observer[V]) MarkStale() { o.forced = true }

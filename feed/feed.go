// Package feed publishes sequence-stamped values through a shared byte
// store, so observers in other goroutines or processes can detect changes
// by polling a cheap sequence instead of refetching the value.
//
// One writer owns a feed. Publish encodes the value, advances the feed
// sequence in a sequence store and writes a frame stamping the value with
// that sequence. Observers keep the last adopted (value, sequence) pair;
// Update first probes the sequence and only fetches the frame when it
// moved. A frame whose embedded sequence is corrupt is deleted on read so
// the next publish starts clean.
package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/unkn0wn-root/seqsync"
	"github.com/unkn0wn-root/seqsync/codec"
	"github.com/unkn0wn-root/seqsync/internal/wire"
	"github.com/unkn0wn-root/seqsync/seqstore"
	"github.com/unkn0wn-root/seqsync/store"
)

// Feed is the high-level, store-agnostic publication API with change
// detection via a per-feed sequence.
// V is the caller's value type. Serialization is handled by a pluggable Codec[V].
type Feed[V any] interface {
	Enabled() bool
	Close(context.Context) error

	// Publish encodes value, advances the feed sequence and stores the
	// stamped frame. Returns the sequence assigned to this revision.
	// A store rejection under pressure is not an error: the sequence has
	// still moved and the next Publish overwrites the frame.
	Publish(ctx context.Context, value V) (uint64, error)

	// Invalidate advances the sequence and deletes the stored frame.
	// Observers keep their last adopted value; the moved sequence tells
	// integrators the published state is no longer current.
	Invalidate(ctx context.Context) error

	// Seq reads the current feed sequence. 0 => nothing published yet.
	Seq(ctx context.Context) (uint64, error)

	// Observer returns a new, independent observer of this feed.
	Observer() *Observer[V]
}

type feed[V any] struct {
	name  string
	key   string
	st    store.Store
	codec codec.Codec[V]
	seqs  seqstore.Store
	log   seqsync.Logger
	hooks Hooks

	ttl     time.Duration
	enabled bool

	ownSeq      bool // seqs was created here, not passed in
	closeStores bool
	closeOnce   sync.Once
}

func New[V any](opts Options[V]) (Feed[V], error) {
	return newFeed[V](opts)
}

func newFeed[V any](opts Options[V]) (*feed[V], error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("feed: store is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("feed: codec is required")
	}
	if opts.Name == "" {
		return nil, fmt.Errorf("feed: name is required")
	}

	f := &feed[V]{
		name:        opts.Name,
		key:         "feed:" + opts.Name,
		st:          opts.Store,
		codec:       opts.Codec,
		seqs:        opts.Seq,
		ttl:         opts.TTL,
		closeStores: opts.CloseStores,
	}
	f.log = coalesce[seqsync.Logger](opts.Logger, seqsync.NopLogger{})
	f.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	if f.seqs == nil {
		f.seqs = seqstore.NewLocal(0, 0) // one name only; nothing to sweep
		f.ownSeq = true
	}
	f.enabled = !opts.Disabled
	return f, nil
}

func (f *feed[V]) Enabled() bool { return f.enabled }

func (f *feed[V]) Publish(ctx context.Context, value V) (uint64, error) {
	if !f.enabled {
		return 0, nil
	}
	payload, err := f.codec.Encode(value)
	if err != nil {
		return 0, err
	}
	seq, err := f.seqs.Bump(ctx, f.key)
	if err != nil {
		f.hooks.SeqBumpError(f.name, err)
		f.log.Error("sequence bump failed", seqsync.Fields{"feed": f.name, "err": err})
		return 0, err
	}
	frame, err := wire.Encode(seq, payload)
	if err != nil {
		return 0, err
	}
	ok, err := f.st.Set(ctx, f.key, frame, int64(len(frame)), f.ttl)
	if err != nil {
		return 0, err
	}
	if !ok {
		// sequence already moved; observers refetch on the next publish
		f.hooks.StoreSetRejected(f.name)
		f.log.Debug("publish rejected by store (pressure)", seqsync.Fields{"feed": f.name, "seq": seq})
	}
	return seq, nil
}

func (f *feed[V]) Invalidate(ctx context.Context) error {
	if !f.enabled {
		return nil
	}
	_, bumpErr := f.seqs.Bump(ctx, f.key)
	delErr := f.st.Del(ctx, f.key)
	switch {
	case bumpErr != nil && delErr != nil:
		f.hooks.InvalidateOutage(f.name, bumpErr, delErr)
		f.log.Error("invalidate outage (bump and delete failed)",
			seqsync.Fields{"feed": f.name, "bumpErr": bumpErr, "delErr": delErr})
		return &InvalidateError{Name: f.name, BumpErr: bumpErr, DelErr: delErr}
	case bumpErr != nil:
		// frame is gone but the sequence did not move; observers that
		// already adopted it will not notice until the next publish.
		f.hooks.SeqBumpError(f.name, bumpErr)
		return &InvalidateError{Name: f.name, BumpErr: bumpErr}
	case delErr != nil:
		// stale frame left behind is fenced by its embedded sequence
		f.log.Warn("invalidate left a stale frame (delete failed)",
			seqsync.Fields{"feed": f.name, "err": delErr})
		return &InvalidateError{Name: f.name, DelErr: delErr}
	}
	f.log.Debug("invalidated feed (bumped seq + cleared frame)", seqsync.Fields{"feed": f.name})
	return nil
}

func (f *feed[V]) Seq(ctx context.Context) (uint64, error) {
	if !f.enabled {
		return 0, nil
	}
	n, err := f.seqs.Load(ctx, f.key)
	if err != nil {
		f.hooks.SeqLoadError(f.name, err)
		return 0, err
	}
	return n, nil
}

func (f *feed[V]) Close(ctx context.Context) error {
	var err error
	f.closeOnce.Do(func() {
		if f.ownSeq || f.closeStores {
			err = f.seqs.Close(ctx)
		}
		if f.closeStores {
			if cerr := f.st.Close(ctx); cerr != nil && err == nil {
				err = cerr
			}
		}
	})
	return err
}

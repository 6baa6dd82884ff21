// Package seqsync implements low-overhead primitives for publishing mutable
// state from one writer to many readers: sequence counters as cheap change
// proofs, sources that pair a value with its sequence, and observers that
// cache the last observed pair and re-fetch only when the sequence moved.
//
// Components:
//   - Seq / NotifySeq: sequence counters with an unset->set flag and an
//     optional skip-zero policy (zero reserved as the "never set" sentinel).
//   - Ref / Guarded: plain shared holders - lock-free reference swap vs.
//     mutex-guarded any-type value.
//   - Source / RefSource: value + sequence published together, guarded or
//     as one atomic pair swap.
//   - Observer / SeqObserver: reader-side caches with a lock-free staleness
//     probe and an idempotent Update.
//
// Change-detection pattern:
//
//	src := seqsync.NewSource[Config]()
//	obs := seqsync.NewObserver[Config](src)
//
//	src.Store(cfg)    // writer side
//
//	if obs.Update() { // reader side: cheap probe, fetch only on change
//		apply(obs.Value())
//	}
//
// Snapshot-cached collections live in package snapshot, deterministic
// teardown and shared-resource tokens in package lifecycle, and publication
// across processes over a shared byte store in package feed.
package seqsync

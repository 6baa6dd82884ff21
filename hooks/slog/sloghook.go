package sloghook

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/seqsync/feed"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	// SelfHealEvery samples corrupt-frame deletions (read path).
	// SeqErrEvery samples sequence load errors (every observer poll
	// hits the sequence store, so an outage logs at poll rate).
	SelfHealEvery uint64
	SeqErrEvery   uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr atomic.Uint64
	seqErrCtr   atomic.Uint64
}

var _ feed.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) SelfHeal(name, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("seqsync.self_heal",
		"feed", name,
		"reason", reason)
}

func (h *Hooks) StoreSetRejected(name string) {
	if h.l == nil {
		return
	}
	h.l.Warn("seqsync.store_set_rejected",
		"feed", name)
}

func (h *Hooks) SeqLoadError(name string, err error) {
	if h.l == nil || !sample(h.opts.SeqErrEvery, &h.seqErrCtr) {
		return
	}
	h.l.Warn("seqsync.seq_load_error",
		"feed", name,
		"err", err)
}

func (h *Hooks) SeqBumpError(name string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("seqsync.seq_bump_error",
		"feed", name,
		"err", err)
}

func (h *Hooks) InvalidateOutage(name string, bumpErr, delErr error) {
	if h.l == nil {
		return
	}
	h.l.Error("seqsync.invalidate_outage",
		"feed", name,
		"bump_err", bumpErr,
		"del_err", delErr)
}

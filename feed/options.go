package feed

import (
	"time"

	"github.com/unkn0wn-root/seqsync"
	"github.com/unkn0wn-root/seqsync/codec"
	"github.com/unkn0wn-root/seqsync/seqstore"
	"github.com/unkn0wn-root/seqsync/store"
)

// Options tune the behavior of a feed.
// Only Name, Store and Codec are required; others have sensible defaults.
type Options[V any] struct {
	// Required
	Name  string // feed name; becomes part of the storage key. e.g. "config", "routes"
	Store store.Store
	Codec codec.Codec[V]

	Logger seqsync.Logger // if nil, NopLogger is used
	Hooks  Hooks          // if nil, NopHooks is used
	TTL    time.Duration  // frame TTL; 0 => no expiry
	Seq    seqstore.Store // nil => in-process sequence store (single-process feeds only)

	// Disabled turns the feed into a no-op kill switch: Publish and
	// Invalidate return immediately, observers never report changes.
	Disabled bool

	// CloseStores makes Close also close Store and Seq. Leave false when
	// several feeds share one backend.
	CloseStores bool
}

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

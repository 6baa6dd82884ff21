// Package seqstore abstracts where feed sequence numbers live. The
// sequence is the cheap side of a feed: observers poll it on every check
// and fetch the value only when it moved, so Load must stay inexpensive.
package seqstore

import (
	"context"
	"time"
)

// Store holds one monotonic sequence per feed name. Use Local (default)
// for in-process feeds, or Redis to share sequences across processes and
// restarts.
type Store interface {
	// Load returns the current sequence; missing => 0 (never published).
	Load(ctx context.Context, name string) (uint64, error)
	// LoadMany returns sequences for many names; missing => 0.
	LoadMany(ctx context.Context, names []string) (map[string]uint64, error)
	// Bump atomically increments and returns the new sequence.
	Bump(ctx context.Context, name string) (uint64, error)
	// Cleanup prunes long-inactive names if applicable (no-op for Redis).
	Cleanup(retention time.Duration)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}

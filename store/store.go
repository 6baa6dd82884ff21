// Package store defines the byte store a feed publishes through.
//
// Implementations MUST be byte-for-byte transparent: Get must return
// exactly the []byte previously passed to Set for that key - no metadata,
// no re-encoding, no mutation. Internal transforms (compression etc.) must
// be fully reversed.
//
// The keyspace "feed:" is owned by this module. External code must not
// write under it; foreign writes fail frame validation and get deleted as
// corruption.
package store

import (
	"context"
	"time"
)

// Store is a minimal byte store with TTLs, safe for concurrent use.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss;
	// (nil, false, err) on transport/IO errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. May ignore cost if the backend
	// has no notion of it. Returns ok=false when the write was rejected
	// under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}

package feed

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The feed calls them on hot paths.
type Hooks interface {
	// A stored frame was deleted by an observer on read.
	// reason ∈ {"frame", "value_decode"}
	SelfHeal(name, reason string)

	// Store returned ok=false on Set (backpressure/eviction).
	StoreSetRejected(name string)

	// Sequence store errors.
	SeqLoadError(name string, err error)
	SeqBumpError(name string, err error)

	// Both sequence bump and frame delete failed during Invalidate (likely backend outage).
	InvalidateOutage(name string, bumpErr, delErr error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string)               {}
func (NopHooks) StoreSetRejected(string)               {}
func (NopHooks) SeqLoadError(string, error)            {}
func (NopHooks) SeqBumpError(string, error)            {}
func (NopHooks) InvalidateOutage(string, error, error) {}

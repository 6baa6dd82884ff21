// Package codec turns published values into bytes and back. A feed needs
// one Codec for its value type; which one is a pure serialization choice,
// the publication semantics never depend on it.
package codec

// Codec encodes/decodes values V to []byte for shared storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

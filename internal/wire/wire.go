// Package wire frames published values for shared storage. A frame binds
// the payload to the sequence number it was published under, so a reader
// can tell which publication a fetched blob belongs to.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
)

const (
	version   byte = 1
	kindValue byte = 1 // the kind byte reserves room for future frame shapes
)

var (
	ErrCorrupt  = errors.New("seqsync: corrupt feed frame")
	ErrOversize = errors.New("seqsync: feed frame payload too large")
	magic4      = [...]byte{'S', 'E', 'Q', 'S'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// fitsFrame reports whether a payload length fits the frame's u32
// length field.
func fitsFrame(n uint64) bool { return n <= math.MaxUint32 }

// Frame: magic(4) | ver(1) | kind(1=value) | seq(u64 be) | vlen(u32 be) | payload(vlen)
// Payloads the length field cannot record are rejected with ErrOversize.
func Encode(seq uint64, payload []byte) ([]byte, error) {
	if !fitsFrame(uint64(len(payload))) {
		return nil, ErrOversize
	}

	var buf bytes.Buffer
	buf.Grow(4 + 1 + 1 + 8 + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindValue)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], seq)
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes(), nil
}

// Decode is strict: anything but a whole well-formed frame (short input,
// wrong magic/version/kind, length mismatch, trailing bytes) is ErrCorrupt.
// The payload aliases b.
func Decode(b []byte) (seq uint64, payload []byte, err error) {
	const hdr = 4 + 1 + 1 + 8 + 4
	if len(b) < hdr || !hasMagic(b) || b[4] != version || b[5] != kindValue {
		return 0, nil, ErrCorrupt
	}

	off := 6

	seq = binary.BigEndian.Uint64(b[off : off+8])
	off += 8

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // overflow-safe; trailing bytes are corruption
		return 0, nil, ErrCorrupt
	}

	return seq, b[off : off+vlen], nil
}

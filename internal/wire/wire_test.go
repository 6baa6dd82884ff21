package wire

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func mustEncode(t *testing.T, seq uint64, payload []byte) []byte {
	t.Helper()
	b, err := Encode(seq, payload)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	return b
}

func mustDecode(t *testing.T, b []byte) (uint64, []byte) {
	t.Helper()
	seq, p, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return seq, p
}

func TestRoundTripEmptyAndNonEmpty(t *testing.T) {
	cases := []struct {
		seq     uint64
		payload []byte
	}{
		{0, nil},
		{42, []byte("hello")},
		{math.MaxUint64, []byte{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		enc := mustEncode(t, tc.seq, tc.payload)
		seq, p := mustDecode(t, enc)
		if seq != tc.seq {
			t.Fatalf("seq mismatch: got %d want %d", seq, tc.seq)
		}
		if !bytes.Equal(p, tc.payload) {
			t.Fatalf("payload mismatch: got %x want %x", p, tc.payload)
		}
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := mustEncode(t, 7, []byte("x"))
	enc = append(enc, 0xDE, 0xAD) // add junk
	if _, _, err := Decode(enc); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestCorruptHeadersAndLengths(t *testing.T) {
	enc := mustEncode(t, 1, []byte("abc"))

	// bad magic
	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, _, err := Decode(badMagic); err == nil {
		t.Fatalf("expected error on bad magic")
	}

	// wrong version
	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, _, err := Decode(badVer); err == nil {
		t.Fatalf("expected error on bad version")
	}

	// wrong kind
	badKind := append([]byte(nil), enc...)
	badKind[5] = kindValue + 1
	if _, _, err := Decode(badKind); err == nil {
		t.Fatalf("expected error on bad kind")
	}

	// truncated header
	if _, _, err := Decode(enc[:10]); err == nil {
		t.Fatalf("expected error on short input")
	}

	// declared length longer than the input
	tooLong := append([]byte(nil), enc...)
	binary.BigEndian.PutUint32(tooLong[14:18], 1<<20)
	if _, _, err := Decode(tooLong); err == nil {
		t.Fatalf("expected error on oversized length")
	}

	// declared length shorter than the input
	tooShort := append([]byte(nil), enc...)
	binary.BigEndian.PutUint32(tooShort[14:18], 1)
	if _, _, err := Decode(tooShort); err == nil {
		t.Fatalf("expected error on undersized length")
	}
}

func TestDecodeAliasesInput(t *testing.T) {
	enc := mustEncode(t, 3, []byte("abc"))
	_, p := mustDecode(t, enc)
	enc[len(enc)-1] = 'Z'
	if p[2] != 'Z' {
		t.Fatalf("payload does not alias the input buffer")
	}
}

// TestOversizePayloadRejected: a payload longer than the u32 length
// field can record must be rejected, never silently truncated.
func TestOversizePayloadRejected(t *testing.T) {
	if !fitsFrame(0) || !fitsFrame(math.MaxUint32) {
		t.Fatalf("in-range lengths rejected")
	}
	if fitsFrame(math.MaxUint32 + 1) {
		t.Fatalf("over-limit length accepted")
	}
	if _, err := Encode(1, []byte("ok")); err != nil {
		t.Fatalf("normal payload rejected: %v", err)
	}
}

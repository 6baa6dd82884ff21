package codec

import (
	"strings"
	"testing"
)

func TestLimitCapsDecodeOnly(t *testing.T) {
	c := Limit[string]{Inner: String{}, MaxDecode: 4}

	// Encode is never capped.
	big, err := c.Encode("123456789")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if _, err := c.Decode(big); err == nil || !strings.Contains(err.Error(), "too large") {
		t.Fatalf("Decode over cap = %v, want size error", err)
	}
	got, err := c.Decode([]byte("abcd"))
	if err != nil || got != "abcd" {
		t.Fatalf("Decode at cap = %q/%v, want abcd", got, err)
	}
}

func TestLimitDisabledWhenZero(t *testing.T) {
	c := Limit[string]{Inner: String{}}
	got, err := c.Decode([]byte(strings.Repeat("x", 1<<16)))
	if err != nil || len(got) != 1<<16 {
		t.Fatalf("uncapped Decode failed: len=%d err=%v", len(got), err)
	}
}

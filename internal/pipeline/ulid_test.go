package pipeline

import (
	"strings"
	"testing"
)

func TestGenerateULID_Format(t *testing.T) {
	id := generateULID()
	if len(id) != 26 {
		t.Fatalf("expected 26 characters, got %d (%q)", len(id), id)
	}
	for _, c := range id {
		if !strings.ContainsRune(crockford, c) {
			t.Fatalf("unexpected character %q in %q", c, id)
		}
	}
	if id[0] > '7' {
		t.Errorf("first character must carry only 3 bits, got %q", id[0])
	}
}

func TestGenerateULID_Increasing(t *testing.T) {
	prev := generateULID()
	for i := 0; i < 1000; i++ {
		id := generateULID()
		if id <= prev {
			t.Fatalf("expected %q > %q", id, prev)
		}
		prev = id
	}
}

func TestEncodeULID(t *testing.T) {
	var zero [16]byte
	if got := encodeULID(zero); got != strings.Repeat("0", 26) {
		t.Errorf("zero value encoded as %q", got)
	}
	var max [16]byte
	for i := range max {
		max[i] = 0xff
	}
	if got := encodeULID(max); got != "7"+strings.Repeat("Z", 25) {
		t.Errorf("max value encoded as %q", got)
	}
}

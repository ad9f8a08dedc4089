package digest

import "testing"

func TestFrameIsDeterministic(t *testing.T) {
	frame := []uint8{1, 2, 3, 4, 5, 6}
	if Frame(frame) != Frame(frame) {
		t.Fatal("Frame produced different digests for the same bytes")
	}
}

func TestFrameDistinguishesContent(t *testing.T) {
	a := []uint8{1, 2, 3}
	b := []uint8{1, 2, 4}
	if Frame(a) == Frame(b) {
		t.Fatal("Frame produced the same digest for different frame content")
	}
}

func TestFrameIsHex(t *testing.T) {
	got := Frame([]uint8{0})
	if len(got) != 40 { // SHA1 -> 20 bytes -> 40 hex chars
		t.Fatalf("Frame digest length = %d, want 40", len(got))
	}
	for _, r := range got {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			t.Fatalf("Frame digest %q contains non-hex character %q", got, r)
		}
	}
}

package riot

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/pixelclock/stella2600/hardware/clock"
)

// Timer round-trip, spec.md §4.5/§8: writing d to TIM1T (interval 1) sets
// expiration = now + 3*d*interval; reading before expiry returns
// (expiration-now+12)/(3*interval) - the "+12" is the documented pipeline
// alignment constant, not a rounding artefact to be designed away.
func TestTimerReadBeforeExpiry(t *testing.T) {
	clk := clock.New()
	r := New(clk)

	const d = 10
	r.Write(0x14, d) // TIM1T

	clk.Advance(9) // 3 CPU cycles later, in colour clocks
	got, err := r.Read(0x04)
	if err != nil {
		t.Fatalf("Read(INTIM): %v", err)
	}

	want := uint8((3*uint64(d) - 9 + pipelineAlign) / 3)
	if got != want {
		t.Fatalf("INTIM = %d, want %d", got, want)
	}

	intFlag, err := r.Read(0x05)
	if err != nil {
		t.Fatal(err)
	}
	if intFlag&0x80 != 0 {
		t.Fatalf("TIMINT bit7 set before expiry")
	}
}

func TestTimerReadAfterExpiry(t *testing.T) {
	clk := clock.New()
	r := New(clk)

	const d = 5
	r.Write(0x15, d) // TIM8T: expiration = now + 3*d*8

	clk.Advance(3*d*8 + 1) // one colour clock past expiry
	got, err := r.Read(0x06)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xFE {
		t.Fatalf("INTIM = %#02x, want 0xFE one tick past expiry", got)
	}

	intFlag, err := r.Read(0x07)
	if err != nil {
		t.Fatal(err)
	}
	if intFlag&0x80 == 0 {
		t.Fatalf("TIMINT bit7 not set after expiry")
	}
}

func TestTimerWrapsModulo256(t *testing.T) {
	clk := clock.New()
	r := New(clk)

	r.Write(0x14, 1)
	clk.Advance(3 + 255) // well past expiry
	got, err := r.Read(0x04)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x00 {
		t.Fatalf("INTIM = %#02x, want 0x00 at elapsed=255", got)
	}
}

func TestRAMRoundTrip(t *testing.T) {
	clk := clock.New()
	r := New(clk)

	r.WriteRAM(0x10, 0xAB)
	if got := r.ReadRAM(0x10); got != 0xAB {
		t.Fatalf("ReadRAM(0x10) = %#02x, want 0xAB", got)
	}
}

// TestResetClearsEveryRAMByte writes a distinct pattern across all 128
// bytes and checks Reset wipes every one of them, comparing the whole
// array in one shot rather than byte-by-byte.
func TestResetClearsEveryRAMByte(t *testing.T) {
	clk := clock.New()
	r := New(clk)

	var want [128]uint8 // all zero, the post-Reset expectation
	for i := 0; i < 128; i++ {
		r.WriteRAM(uint16(i), uint8(i+1))
	}

	r.Reset()

	var got [128]uint8
	for i := 0; i < 128; i++ {
		got[i] = r.ReadRAM(uint16(i))
	}

	if diff := deep.Equal(got, want); diff != nil {
		t.Fatalf("RAM not fully cleared by Reset: %v", diff)
	}
}

func TestSWCHAInputLatch(t *testing.T) {
	clk := clock.New()
	r := New(clk)

	r.SetInputs(0x3C, 0xFF)
	got, err := r.Read(0x00)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x3C {
		t.Fatalf("SWCHA = %#02x, want 0x3C", got)
	}
}

package hardware

import (
	"testing"

	"github.com/pixelclock/stella2600/hardware/instance"
	"github.com/pixelclock/stella2600/hardware/memory/cartridge"
)

func romWithReset(program []uint8) []uint8 {
	data := make([]uint8, cartridge.BankSize)
	copy(data, program)
	data[0xFFC] = 0x00 // reset vector low: $F000
	data[0xFFD] = 0xF0 // reset vector high
	return data
}

func newTestVCS(t *testing.T, program []uint8) *VCS {
	t.Helper()
	cart, err := cartridge.New(cartridge.Default, romWithReset(program))
	if err != nil {
		t.Fatalf("cartridge.New: %v", err)
	}
	inst := instance.New(instance.NTSC, false)
	vcs, err := New(inst, cart)
	if err != nil {
		t.Fatalf("hardware.New: %v", err)
	}
	return vcs
}

// Scenario 1, spec.md §8: LDA #$42; STA COLUBK; BRK. After two CPU steps
// the TIA's background colour register equals the written value.
func TestScenarioBackgroundColourWrite(t *testing.T) {
	vcs := newTestVCS(t, []uint8{0xA9, 0x42, 0x8D, 0x09, 0x00, 0x00})

	if _, err := vcs.Step(); err != nil {
		t.Fatalf("step 1 (LDA #$42): %v", err)
	}
	if _, err := vcs.Step(); err != nil {
		t.Fatalf("step 2 (STA COLUBK): %v", err)
	}

	if got := vcs.TIA.BackgroundColour(); got != 0x42 {
		t.Fatalf("COLUBK = %#02x, want 0x42", got)
	}
}

// Scenario 2, spec.md §8: LDX #0; INX; DEX; JMP $F002, looped. X oscillates
// 0<->1 and the clock advances 3*(2+2+3) ticks per loop iteration
// (ignoring the one-time LDX #0 setup).
func TestScenarioLoopTiming(t *testing.T) {
	vcs := newTestVCS(t, []uint8{0xA2, 0x00, 0xE8, 0xCA, 0x4C, 0x02, 0xF0})

	if _, err := vcs.Step(); err != nil { // LDX #0
		t.Fatalf("LDX #0: %v", err)
	}

	const iterations = 5
	start := vcs.Clock.Now()
	for i := 0; i < iterations; i++ {
		if _, err := vcs.Step(); err != nil { // INX
			t.Fatalf("iteration %d INX: %v", i, err)
		}
		if vcs.CPU.X.Value() != 1 {
			t.Fatalf("iteration %d: X = %d after INX, want 1", i, vcs.CPU.X.Value())
		}
		if _, err := vcs.Step(); err != nil { // DEX
			t.Fatalf("iteration %d DEX: %v", i, err)
		}
		if vcs.CPU.X.Value() != 0 {
			t.Fatalf("iteration %d: X = %d after DEX, want 0", i, vcs.CPU.X.Value())
		}
		if _, err := vcs.Step(); err != nil { // JMP $F002
			t.Fatalf("iteration %d JMP: %v", i, err)
		}
	}

	want := uint64(iterations) * 3 * (2 + 2 + 3)
	if got := vcs.Clock.Now() - start; got != want {
		t.Fatalf("ticks elapsed = %d, want %d", got, want)
	}
}

// Scenario 3, spec.md §8: F8 bank-switch cartridge. Bank0 has LDA absolute
// $1FF9 at $FFC; bank1's reset vector points back at $F000. After the LDA
// executes, the current bank is 1 and the next fetch from $F000 returns
// bank1's byte.
func TestScenarioBankSwitch(t *testing.T) {
	data := make([]uint8, 2*cartridge.BankSize)

	// bank 0: reset vector points here; the only instruction is the LDA
	// absolute that touches the hot-swap address, laid down at $F000.
	data[0xFFC] = 0x00
	data[0xFFD] = 0xF0

	data[0x000] = 0xAD
	data[0x001] = 0xF9
	data[0x002] = 0x1F

	// bank 1: a distinctive byte at its own $F000 so the test can tell
	// the two banks apart once the switch has happened.
	data[cartridge.BankSize+0x000] = 0x77

	cart, err := cartridge.New(cartridge.F8, data)
	if err != nil {
		t.Fatalf("cartridge.New: %v", err)
	}
	inst := instance.New(instance.NTSC, false)
	vcs, err := New(inst, cart)
	if err != nil {
		t.Fatalf("hardware.New: %v", err)
	}

	if _, err := vcs.Step(); err != nil { // LDA $1FF9
		t.Fatalf("LDA $1FF9: %v", err)
	}
	if vcs.Cart.CurrentBank() != 1 {
		t.Fatalf("CurrentBank = %d after LDA $1FF9, want 1", vcs.Cart.CurrentBank())
	}

	b, err := vcs.Cart.Read(0x000)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0x77 {
		t.Fatalf("bank1 byte at $F000 = %#02x, want 0x77", b)
	}
}

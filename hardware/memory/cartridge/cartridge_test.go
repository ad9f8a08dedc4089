package cartridge

import "testing"

// Bank-switch, spec.md §8 scenario 3: cart type F8 with n=2 banks; reading
// (or writing) 0xFF8 selects bank 0, 0xFF9 selects bank 1, and the
// selection persists until another hot-swap access.
func TestF8HotSwap(t *testing.T) {
	data := make([]uint8, 2*BankSize)
	data[0x000] = 0xAA // bank 0, offset 0
	data[BankSize+0x000] = 0xBB // bank 1, offset 0

	c, err := New(F8, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Read(0xFF8); err != nil {
		t.Fatal(err)
	}
	if c.CurrentBank() != 0 {
		t.Fatalf("CurrentBank = %d after $FF8, want 0", c.CurrentBank())
	}
	b, err := c.Read(0x000)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0xAA {
		t.Fatalf("bank0 byte = %#02x, want 0xAA", b)
	}

	if _, err := c.Read(0xFF9); err != nil {
		t.Fatal(err)
	}
	if c.CurrentBank() != 1 {
		t.Fatalf("CurrentBank = %d after $FF9, want 1", c.CurrentBank())
	}
	b, err = c.Read(0x000)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0xBB {
		t.Fatalf("bank1 byte = %#02x, want 0xBB", b)
	}

	// selection persists across an unrelated access
	if _, err := c.Read(0x050); err != nil {
		t.Fatal(err)
	}
	if c.CurrentBank() != 1 {
		t.Fatalf("CurrentBank changed after non-hot-swap access")
	}
}

func TestF8SCRAMWindow(t *testing.T) {
	data := make([]uint8, 2*BankSize)
	c, err := New(F8SC, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := c.Write(0x000, 0x42); err != nil {
		t.Fatal(err)
	}
	b, err := c.Read(0x080) // write half is 128 bytes; read half starts right after
	if err != nil {
		t.Fatal(err)
	}
	if b != 0x42 {
		t.Fatalf("RAM read-half = %#02x, want 0x42", b)
	}

	// writing through the read half must not touch RAM
	if err := c.Write(0x080, 0xFF); err != nil {
		t.Fatal(err)
	}
	b, err = c.Read(0x080)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0x42 {
		t.Fatalf("RAM value changed via a write to the read-only half: got %#02x", b)
	}
}

// TestF6HotSwap and TestF4HotSwap and TestCBSHotSwap pin down the other
// fixed-bank variants' hot-swap windows, each parameterised differently
// from F8 but sharing the same Cartridge implementation (spec.md §9).
func TestF6HotSwap(t *testing.T) {
	data := make([]uint8, 4*BankSize)
	for bank := 0; bank < 4; bank++ {
		data[bank*BankSize] = uint8(0xA0 + bank)
	}

	c, err := New(F6, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for bank, addr := range map[int]uint16{0: 0xFF6, 1: 0xFF7, 2: 0xFF8, 3: 0xFF9} {
		if _, err := c.Read(addr); err != nil {
			t.Fatal(err)
		}
		if c.CurrentBank() != bank {
			t.Fatalf("CurrentBank = %d after $%03X, want %d", c.CurrentBank(), addr, bank)
		}
		b, err := c.Read(0x000)
		if err != nil {
			t.Fatal(err)
		}
		if b != uint8(0xA0+bank) {
			t.Fatalf("bank%d byte = %#02x, want %#02x", bank, b, 0xA0+bank)
		}
	}
}

func TestF4HotSwap(t *testing.T) {
	data := make([]uint8, 8*BankSize)
	for bank := 0; bank < 8; bank++ {
		data[bank*BankSize] = uint8(bank)
	}

	c, err := New(F4, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// bottom = 0xFFB+1-8 = 0xFF4
	for bank := 0; bank < 8; bank++ {
		addr := uint16(0xFF4 + bank)
		if _, err := c.Read(addr); err != nil {
			t.Fatal(err)
		}
		if c.CurrentBank() != bank {
			t.Fatalf("CurrentBank = %d after $%03X, want %d", c.CurrentBank(), addr, bank)
		}
	}
}

func TestCBSHotSwapAndRAMWindow(t *testing.T) {
	data := make([]uint8, 3*BankSize)
	c, err := New(CBS, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// bottom = 0xFFA+1-3 = 0xFF8
	for bank, addr := range map[int]uint16{0: 0xFF8, 1: 0xFF9, 2: 0xFFA} {
		if _, err := c.Read(addr); err != nil {
			t.Fatal(err)
		}
		if c.CurrentBank() != bank {
			t.Fatalf("CurrentBank = %d after $%03X, want %d", c.CurrentBank(), addr, bank)
		}
	}

	// CBS carries 256 bytes of RAM: write half [0,256), read half [256,512).
	if err := c.Write(0x000, 0x55); err != nil {
		t.Fatal(err)
	}
	b, err := c.Read(0x100)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0x55 {
		t.Fatalf("RAM read-half at $100 = %#02x, want 0x55", b)
	}
}

func TestSuperHasNoRAM(t *testing.T) {
	data := make([]uint8, 4*BankSize)
	c, err := New(Super, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.RAM() != nil {
		t.Fatalf("RAM() = %v, want nil for the Super variant", c.RAM())
	}
}

func TestNewFromSize(t *testing.T) {
	c, err := NewFromSize(make([]uint8, 4096))
	if err != nil {
		t.Fatalf("NewFromSize(4096): %v", err)
	}
	if c.Variant() != Default {
		t.Fatalf("Variant = %v, want Default", c.Variant())
	}

	if _, err := NewFromSize(make([]uint8, 3000)); err == nil {
		t.Fatalf("NewFromSize(3000) succeeded, want error")
	}
}

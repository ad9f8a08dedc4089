package cartridgeloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pixelclock/stella2600/hardware/memory/cartridge"
)

func writeTempROM(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadExplicitTypeFlagWins(t *testing.T) {
	path := writeTempROM(t, "game.bin", 2*cartridge.BankSize)

	l, err := Load(path, "f8")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Variant != cartridge.F8 {
		t.Fatalf("Variant = %v, want F8", l.Variant)
	}
}

func TestLoadInfersVariantFromExtension(t *testing.T) {
	path := writeTempROM(t, "game.f8sc", 2*cartridge.BankSize)

	l, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Variant != cartridge.F8SC {
		t.Fatalf("Variant = %v, want F8SC (from .f8sc extension)", l.Variant)
	}
}

func TestLoadFallsBackToSize(t *testing.T) {
	path := writeTempROM(t, "game.bin", cartridge.BankSize) // 4K: unambiguous Default size

	l, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Variant != cartridge.Default {
		t.Fatalf("Variant = %v, want Default (inferred from 4K size)", l.Variant)
	}

	cart, err := l.Cartridge()
	if err != nil {
		t.Fatalf("Cartridge(): %v", err)
	}
	if cart.Variant() != cartridge.Default {
		t.Fatalf("constructed cartridge Variant = %v, want Default", cart.Variant())
	}
}

func TestLoadAutoIgnoresExtension(t *testing.T) {
	// ".f8" is in extensionVariants, so Load would pick F8; this pins down
	// that LoadAuto never consults the filename and sizes the image instead.
	path := writeTempROM(t, "game.f8", cartridge.BankSize) // misleading extension, but 4K in size

	l, err := LoadAuto(path)
	if err != nil {
		t.Fatalf("LoadAuto: %v", err)
	}
	if l.Variant != cartridge.Default {
		t.Fatalf("Variant = %v, want Default (LoadAuto must ignore the .f8 extension)", l.Variant)
	}
}

func TestParseVariantUnknown(t *testing.T) {
	if _, err := ParseVariant("not-a-real-mapper"); err == nil {
		t.Fatal("ParseVariant succeeded for an unrecognised name, want error")
	}
}

func TestParseVariantCaseInsensitive(t *testing.T) {
	v, err := ParseVariant("F8Sc")
	if err != nil {
		t.Fatalf("ParseVariant: %v", err)
	}
	if v != cartridge.F8SC {
		t.Fatalf("Variant = %v, want F8SC", v)
	}
}

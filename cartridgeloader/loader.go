// Package cartridgeloader turns a cartridge filename into the raw bytes
// and variant needed to construct a
// cartridge.Cartridge, resolving the variant from an explicit
// --cartridge-type flag, a recognised file extension, or (failing both)
// the file's size.
package cartridgeloader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixelclock/stella2600/hardware/memory/cartridge"
)

// extensionVariants maps recognised file extensions (case-insensitive,
// leading dot included) onto a cartridge variant, for games distributed
// with a mapper-specific extension instead of the generic ".bin"/".a26".
var extensionVariants = map[string]cartridge.Variant{
	".2k":   cartridge.Default,
	".4k":   cartridge.Default,
	".f8":   cartridge.F8,
	".f8sc": cartridge.F8SC,
	".f6":   cartridge.F6,
	".f6sc": cartridge.F6SC,
	".f4":   cartridge.F4,
	".f4sc": cartridge.F4SC,
	".cbs":  cartridge.CBS,
	".sb":   cartridge.Super,
}

// Loader holds the outcome of loading one cartridge image: its raw bytes,
// the filename it came from (for diagnostics), and the variant that was
// ultimately chosen.
type Loader struct {
	Filename string
	Data     []byte
	Variant  cartridge.Variant
}

// Load reads filename and resolves its cartridge variant. typeFlag is the
// value of the CLI's --cartridge-type flag; an empty string means "auto",
// in which case the file extension is consulted, and failing that, the
// cartridge package's size-based default.
func Load(filename, typeFlag string) (*Loader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cartridgeloader: %w", err)
	}

	variant, err := resolveVariant(filename, typeFlag)
	if errors.Is(err, errAutoBySize) {
		cart, sizeErr := cartridge.NewFromSize(data)
		if sizeErr != nil {
			return nil, fmt.Errorf("cartridgeloader: %w", sizeErr)
		}
		variant = cart.Variant()
	} else if err != nil {
		return nil, err
	}

	return &Loader{Filename: filename, Data: data, Variant: variant}, nil
}

// Cartridge constructs the cartridge.Cartridge described by a Loader.
func (l *Loader) Cartridge() (*cartridge.Cartridge, error) {
	return cartridge.New(l.Variant, l.Data)
}

func resolveVariant(filename, typeFlag string) (cartridge.Variant, error) {
	if typeFlag != "" && !strings.EqualFold(typeFlag, "AUTO") {
		return ParseVariant(typeFlag)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if v, ok := extensionVariants[ext]; ok {
		return v, nil
	}

	return cartridge.Default, errAutoBySize
}

// errAutoBySize is a sentinel that resolveVariant returns (never to the
// caller) to signal "let cartridge.NewFromSize infer it"; Load returns it
// when there is no --cartridge-type flag and the extension is not
// recognised, and handles it by sizing the image. Loader.Cartridge never
// sees it because Load always pins Variant to a concrete value.
var errAutoBySize = errors.New("cartridgeloader: variant must be inferred from file size")

// LoadAuto is like Load but always infers the variant from the image size
// rather than the filename, for cartridges with a generic ".bin" extension
// and no --cartridge-type override.
func LoadAuto(filename string) (*Loader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cartridgeloader: %w", err)
	}

	cart, err := cartridge.NewFromSize(data)
	if err != nil {
		return nil, fmt.Errorf("cartridgeloader: %w", err)
	}

	return &Loader{Filename: filename, Data: data, Variant: cart.Variant()}, nil
}

// VariantNames lists every cartridge type the --cartridge-type flag
// accepts, in the order spec.md §6 lists them.
var VariantNames = []string{"Default", "F4", "F4SC", "F6", "F6SC", "F8", "F8SC", "Cbs", "Super"}

// ParseVariant resolves a --cartridge-type flag value to a variant,
// matching VariantNames case-insensitively.
func ParseVariant(name string) (cartridge.Variant, error) {
	switch strings.ToLower(name) {
	case "default", "2k", "4k":
		return cartridge.Default, nil
	case "f4":
		return cartridge.F4, nil
	case "f4sc":
		return cartridge.F4SC, nil
	case "f6":
		return cartridge.F6, nil
	case "f6sc":
		return cartridge.F6SC, nil
	case "f8":
		return cartridge.F8, nil
	case "f8sc":
		return cartridge.F8SC, nil
	case "cbs":
		return cartridge.CBS, nil
	case "super":
		return cartridge.Super, nil
	}
	return 0, fmt.Errorf("cartridgeloader: unrecognised cartridge type %q (want one of %s)", name, strings.Join(VariantNames, " "))
}

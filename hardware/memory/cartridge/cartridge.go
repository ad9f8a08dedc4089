// This file is part of stella2600.
//
// stella2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// stella2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with stella2600.  If not, see <https://www.gnu.org/licenses/>.

// Package cartridge implements the console's bank-switched ROM cartridge:
// a 4 KiB addressing window backed by one or more 4 KiB banks, optional
// on-cart RAM, and a "hot-swap" address range where any access at all -
// read or write, including the CPU's own opcode fetch - selects a new
// current bank.
//
// Only the fixed-bank hot-swap family described in spec.md §4.4 is
// implemented (Default/2k, F8(SC), F6(SC), F4(SC), CBS, Super); cartridge
// formats that need bankswitch logic beyond a simple hot-swap address range
// (Supercharger tape images, DPC+, CDF, ARM-hosted carts) are explicitly
// out of scope.
package cartridge

import (
	"fmt"

	"github.com/pixelclock/stella2600/logger"
)

// BankSize is the size, in bytes, of a single cartridge bank and of the
// CPU's cartridge address window.
const BankSize = 0x1000

// BankMask isolates the 12 bits of a cartridge-relative address.
const BankMask = BankSize - 1

// Variant names the fixed-bank cartridge configurations spec.md §4.4
// tabulates. Two variants differ only in their (bankCount, hotSwapTop,
// ramSize) parameters, never in behaviour - so, per spec.md §9's design
// note, there is one Cartridge type parameterised at construction rather
// than one implementation per variant.
type Variant int

const (
	Default Variant = iota // 2K/4K, a single bank, no hot-swap
	F8                      // 8K, 2 banks
	F8SC                    // 8K, 2 banks, 128 bytes on-cart RAM
	F6                      // 16K, 4 banks
	F6SC                    // 16K, 4 banks, 128 bytes on-cart RAM
	F4                      // 32K, 8 banks
	F4SC                    // 32K, 8 banks, 128 bytes on-cart RAM
	CBS                     // 12K, 3 banks, 256 bytes on-cart RAM
	Super                   // 16K, 4 banks, no RAM
)

// String names the variant the way the CLI's -c flag expects it.
func (v Variant) String() string {
	switch v {
	case F8:
		return "F8"
	case F8SC:
		return "F8SC"
	case F6:
		return "F6"
	case F6SC:
		return "F6SC"
	case F4:
		return "F4"
	case F4SC:
		return "F4SC"
	case CBS:
		return "Cbs"
	case Super:
		return "Super"
	default:
		return "Default"
	}
}

// Variants lists every supported -c flag value, for usage/error messages.
var Variants = []Variant{Default, F4, F4SC, F6, F6SC, F8, F8SC, CBS, Super}

// params describes the fixed parameters of a variant: number of banks, the
// top address of the hot-swap range (bank-relative, i.e. already masked to
// BankMask), and the size of any on-cart RAM.
type params struct {
	banks      int
	hotSwapTop uint16
	ramSize    int
}

func variantParams(v Variant) (params, error) {
	switch v {
	case Default:
		return params{banks: 1}, nil
	case F8:
		return params{banks: 2, hotSwapTop: 0xFF9}, nil
	case F8SC:
		return params{banks: 2, hotSwapTop: 0xFF9, ramSize: 128}, nil
	case F6:
		return params{banks: 4, hotSwapTop: 0xFF9}, nil
	case F6SC:
		return params{banks: 4, hotSwapTop: 0xFF9, ramSize: 128}, nil
	case F4:
		return params{banks: 8, hotSwapTop: 0xFFB}, nil
	case F4SC:
		return params{banks: 8, hotSwapTop: 0xFFB, ramSize: 128}, nil
	case CBS:
		return params{banks: 3, hotSwapTop: 0xFFA, ramSize: 256}, nil
	case Super:
		return params{banks: 4, hotSwapTop: 0xFF9}, nil
	default:
		return params{}, fmt.Errorf("cartridge: unknown variant %v", v)
	}
}

// Cartridge is a bank-switched ROM cartridge with optional on-cart RAM.
type Cartridge struct {
	variant Variant
	p       params

	banks   [][BankSize]uint8
	ram     []uint8
	current int
}

// New builds a Cartridge of the given variant from raw ROM bytes. data must
// be exactly p.banks*BankSize bytes long, except that a 2K Default image is
// accepted and mirrored into both halves of its 4K bank (callers typically get this right
// by choosing the variant that matches the ROM file's size; see
// cartridgeloader for automatic sizing).
func New(variant Variant, data []uint8) (*Cartridge, error) {
	p, err := variantParams(variant)
	if err != nil {
		return nil, err
	}

	if variant == Default && len(data) == BankSize/2 {
		// a 2K image appears twice in the 4K window
		data = append(append([]uint8{}, data...), data...)
	}

	want := p.banks * BankSize
	if len(data) != want {
		return nil, fmt.Errorf("cartridge: variant %s wants %d bytes of ROM, got %d", variant, want, len(data))
	}

	c := &Cartridge{
		variant: variant,
		p:       p,
		banks:   make([][BankSize]uint8, p.banks),
	}
	for i := 0; i < p.banks; i++ {
		copy(c.banks[i][:], data[i*BankSize:(i+1)*BankSize])
	}
	if p.ramSize > 0 {
		c.ram = make([]uint8, p.ramSize)
	}

	return c, nil
}

// NewFromSize picks the Default variant sized to whatever 2K/4K ROM image
// is supplied - the common case of a ROM with no bank-switching at all.
func NewFromSize(data []uint8) (*Cartridge, error) {
	switch len(data) {
	case 2048, 4096:
		return New(Default, data)
	default:
		return nil, fmt.Errorf("cartridge: %d bytes does not match a known fixed-size ROM; pick an explicit bank-switched variant", len(data))
	}
}

// Variant reports the cartridge's configured variant.
func (c *Cartridge) Variant() Variant { return c.variant }

// NumBanks reports how many banks the cartridge has.
func (c *Cartridge) NumBanks() int { return c.p.banks }

// CurrentBank reports the currently selected bank.
func (c *Cartridge) CurrentBank() int { return c.current }

// checkHotSwap updates the current bank if addr (bank-relative) falls in
// the hot-swap range. This runs on every access regardless of whether it
// is a read or a write, and regardless of whether it is the CPU fetching
// its next opcode or reading/writing data - any access at all triggers the
// swap, and the access in progress completes against the newly selected
// bank.
func (c *Cartridge) checkHotSwap(addr uint16) {
	if c.p.banks <= 1 {
		return
	}

	top := c.p.hotSwapTop
	bottom := top + 1 - uint16(c.p.banks)
	if addr < bottom || addr > top {
		return
	}

	newBank := c.p.banks - int(top+1-addr)
	if newBank != c.current {
		logger.Logf("cartridge", "bank switch %s: %d -> %d (access $%03X)", c.variant, c.current, newBank, addr)
	}
	c.current = newBank
}

// Read implements bus.CPUBus for the cartridge's 4K address window. addr is
// expected already masked to BankMask by the caller (the memory decoder).
func (c *Cartridge) Read(addr uint16) (uint8, error) {
	addr &= BankMask

	if _, _, isRead := c.inRAMWindow(addr); isRead {
		offset, _, _ := c.inRAMWindow(addr)
		c.checkHotSwap(addr)
		return c.ram[offset], nil
	}

	c.checkHotSwap(addr)
	return c.banks[c.current][addr], nil
}

// Write implements bus.CPUBus for the cartridge's 4K address window.
func (c *Cartridge) Write(addr uint16, data uint8) error {
	addr &= BankMask

	if offset, isWrite, _ := c.inRAMWindow(addr); isWrite {
		c.checkHotSwap(addr)
		c.ram[offset] = data
		return nil
	}

	// writes to ROM (outside the RAM window) are simply discarded on real
	// hardware, but the hot-swap side effect still applies.
	c.checkHotSwap(addr)
	return nil
}

// Peek implements bus.DebuggerBus: reads without triggering a bank switch.
func (c *Cartridge) Peek(addr uint16) (uint8, error) {
	addr &= BankMask
	if offset, _, isRead := c.inRAMWindow(addr); isRead {
		return c.ram[offset], nil
	}
	return c.banks[c.current][addr], nil
}

// Poke implements bus.DebuggerBus: writes without triggering a bank switch.
func (c *Cartridge) Poke(addr uint16, data uint8) error {
	addr &= BankMask
	if offset, isWrite, _ := c.inRAMWindow(addr); isWrite {
		c.ram[offset] = data
		return nil
	}
	c.banks[c.current][addr] = data
	return nil
}

// RAM returns the cartridge's on-cart RAM, or nil if it has none.
func (c *Cartridge) RAM() []uint8 { return c.ram }

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

package cartridge

// The "superchip" is Atari's name for the 128 (or, on CBS carts, 256) bytes
// of extra RAM some later cartridges carried, addressed through a split
// window at the bottom of the bank: the low half writes the RAM, the high
// half (the same size, immediately above it) reads it back. Splitting read
// and write into non-overlapping halves let the original hardware drive
// RAM chip-select off address lines alone, with no separate R/W line
// decode - a quirk original_source/ calls out explicitly and which any
// accurate F8SC/F6SC/F4SC/CBS implementation has to preserve.

// ramWindow reports whether addr (already bank-relative) falls inside a
// superchip's RAM window, and if so whether it's the write half or the
// read half, and the RAM-relative offset within that half.
func ramWindow(ramSize int, addr uint16) (offset int, isWrite, isRead bool) {
	if ramSize == 0 {
		return 0, false, false
	}
	n := uint16(ramSize)
	switch {
	case addr < n:
		return int(addr), true, false
	case addr < 2*n:
		return int(addr - n), false, true
	default:
		return 0, false, false
	}
}

// inRAMWindow reports whether addr (bank-relative) falls in the on-cart RAM
// window, and whether that access is the write half or the read half of
// the window (spec.md §4.4 and §6 "Supplemented features").
func (c *Cartridge) inRAMWindow(addr uint16) (offset int, isWrite, isRead bool) {
	return ramWindow(len(c.ram), addr)
}

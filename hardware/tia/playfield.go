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

package tia

// playfield holds the three pattern registers and the scanned 160-pixel
// row they imply.
type playfield struct {
	pf0, pf1, pf2 uint8
	ctrlpf        uint8

	scan [FrameWidth]bool
}

// reflect reports whether CTRLPF's bit 0 selects a mirrored right half
// rather than a repeated one.
func (p *playfield) reflect() bool {
	return p.ctrlpf&0x01 != 0
}

// scoreMode reports whether CTRLPF's bit 1 asks for the left/right halves
// to be coloured with COLUP0/COLUP1 instead of COLUPF. Not used for
// priority (that's bit 2) but recorded here since it's read from the same
// register and decoded alongside it.
func (p *playfield) scoreMode() bool {
	return p.ctrlpf&0x02 != 0
}

// priorityMode reports whether CTRLPF's bit 2 asks for playfield/ball to
// rank above the players in the priority comparison.
func (p *playfield) priorityMode() bool {
	return p.ctrlpf&0x04 != 0
}

// pfBit returns the i'th bit (0-19) of the 20-bit playfield pattern. PF0
// contributes its top nibble in ascending bit order; PF1 contributes all
// eight of its bits in descending order; PF2 contributes all eight in
// ascending order. This wiring is fixed in TIA silicon, not configurable.
func (p *playfield) pfBit(i int) bool {
	switch {
	case i < 4:
		return p.pf0&(1<<(4+uint(i))) != 0
	case i < 12:
		return p.pf1&(1<<(7-uint(i-4))) != 0
	default:
		return p.pf2&(1<<uint(i-12)) != 0
	}
}

// rebuild recomputes the full 160-pixel scan from the current register
// values. Called by the TIA every time PF0, PF1, PF2 or CTRLPF changes (via
// catch-up, before the new value is applied) and every time the scan is
// about to be sampled for a new line.
func (p *playfield) rebuild() {
	var left [80]bool
	for i := 0; i < 20; i++ {
		bit := p.pfBit(i)
		left[i*4], left[i*4+1], left[i*4+2], left[i*4+3] = bit, bit, bit, bit
	}

	copy(p.scan[:80], left[:])

	if p.reflect() {
		for i := 0; i < 80; i++ {
			p.scan[80+i] = left[79-i]
		}
	} else {
		copy(p.scan[80:], left[:])
	}
}

// at reports whether the playfield is lit at column x (0-159).
func (p *playfield) at(x int) bool {
	if x < 0 || x >= FrameWidth {
		return false
	}
	return p.scan[x]
}

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

// copyOffsets returns the colour-clock offsets, relative to an object's own
// RESP/RESM-latched start, at which NUSIZ's low three bits ask for
// additional copies to be drawn, and the pixel width each copy's graphic
// should be stretched to. This table is fixed by the TIA's silicon; see
// spec.md §4.6.
func copyOffsets(nusiz uint8) (offsets []int, width int) {
	switch nusiz & 0x07 {
	case 0x0:
		return []int{0}, 1
	case 0x1:
		return []int{0, 16}, 1
	case 0x2:
		return []int{0, 32}, 1
	case 0x3:
		return []int{0, 16, 32}, 1
	case 0x4:
		return []int{0, 64}, 1
	case 0x5:
		return []int{0}, 2
	case 0x6:
		return []int{0, 32, 64}, 1
	case 0x7:
		return []int{0}, 4
	}
	return []int{0}, 1
}

// missileWidth decodes NUSIZ bits 4-5, which scale a missile's own graphic
// independently of the copies/width encoded in its low bits.
func missileWidth(nusiz uint8) int {
	switch (nusiz >> 4) & 0x03 {
	case 0:
		return 1
	case 1:
		return 2
	case 2:
		return 4
	default:
		return 8
	}
}

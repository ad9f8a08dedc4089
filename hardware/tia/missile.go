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

// missile is one of the two single-pixel-wide (before NUSIZ scaling)
// sprite generators. Unlike players it has no graphic pattern: it is
// simply on or off for the width of its copy, controlled by ENAMn.
type missile struct {
	enabled bool
	nusiz   uint8
	pos     int
	locked  bool // RESMPn: position follows the parent player instead of RESMn

	scan [FrameWidth]bool
}

func (m *missile) rebuild() {
	for i := range m.scan {
		m.scan[i] = false
	}
	if !m.enabled {
		return
	}

	offsets, _ := copyOffsets(m.nusiz)
	width := missileWidth(m.nusiz)

	for _, off := range offsets {
		start := (m.pos + off) % FrameWidth
		for w := 0; w < width; w++ {
			x := (start + w) % FrameWidth
			m.scan[x] = true
		}
	}
}

func (m *missile) at(x int) bool {
	if x < 0 || x >= FrameWidth {
		return false
	}
	return m.scan[x]
}

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

// ball is the single playfield-priority sprite with no horizontal
// replication: one copy, width taken from CTRLPF's top nibble, double
// buffered the same way a player's graphic is via VDELBL.
type ball struct {
	enabledNew, enabledOld bool
	vdelbl                 uint8
	ctrlpf                 uint8 // shared register; only the width nibble is read here
	pos                    int

	scan [FrameWidth]bool
}

func (b *ball) enabled() bool {
	if b.vdelbl&0x01 != 0 {
		return b.enabledOld
	}
	return b.enabledNew
}

func (b *ball) width() int {
	switch (b.ctrlpf >> 4) & 0x03 {
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

func (b *ball) rebuild() {
	for i := range b.scan {
		b.scan[i] = false
	}
	if !b.enabled() {
		return
	}
	w := b.width()
	for i := 0; i < w; i++ {
		x := (b.pos + i) % FrameWidth
		b.scan[x] = true
	}
}

func (b *ball) at(x int) bool {
	if x < 0 || x >= FrameWidth {
		return false
	}
	return b.scan[x]
}

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

// Collision detection and the eight read-only CXxx latches. Each latch
// accumulates across a whole frame: only CXCLR, written at the start of
// every frame by convention, clears them. recordCollisions is called once
// per rendered colour clock with that clock's six object states.

func setBit(b *uint8, bit uint8, cond bool) {
	if cond {
		*b |= bit
	}
}

func (t *TIA) recordCollisions(m0, m1, p0, p1, bl, pf bool) {
	setBit(&t.cx[regCXM0P], 0x80, m0 && p1)
	setBit(&t.cx[regCXM0P], 0x40, m0 && p0)
	setBit(&t.cx[regCXM1P], 0x80, m1 && p0)
	setBit(&t.cx[regCXM1P], 0x40, m1 && p1)
	setBit(&t.cx[regCXP0FB], 0x80, p0 && pf)
	setBit(&t.cx[regCXP0FB], 0x40, p0 && bl)
	setBit(&t.cx[regCXP1FB], 0x80, p1 && pf)
	setBit(&t.cx[regCXP1FB], 0x40, p1 && bl)
	setBit(&t.cx[regCXM0FB], 0x80, m0 && pf)
	setBit(&t.cx[regCXM0FB], 0x40, m0 && bl)
	setBit(&t.cx[regCXM1FB], 0x80, m1 && pf)
	setBit(&t.cx[regCXM1FB], 0x40, m1 && bl)
	setBit(&t.cx[regCXBLPF], 0x80, bl && pf)
	setBit(&t.cx[regCXPPMM], 0x80, p0 && p1)
	setBit(&t.cx[regCXPPMM], 0x40, m0 && m1)
}

// CollisionSnapshot returns the current value of all eight collision
// latches (CXM0P, CXM1P, CXP0FB, CXP1FB, CXM0FB, CXM1FB, CXBLPF, CXPPMM,
// in that register order), bringing the rasteriser fully up to date
// first. Used by tests, which need a stable whole-frame snapshot rather
// than one latch at a time via Read.
func (t *TIA) CollisionSnapshot() [8]uint8 {
	t.catchUp(t.clock.Now())
	return t.cx
}

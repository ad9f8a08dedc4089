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

package registers

import "strings"

// Status holds the 6507's flag bits: Sign, Overflow, Break, DecimalMode
// (the 6507 is a full NMOS 6502 core and honours it: ADC/SBC switch to BCD
// arithmetic whenever it is set), InterruptDisable, Zero and Carry.
type Status struct {
	Sign             bool
	Overflow         bool
	Break            bool
	DecimalMode      bool
	InterruptDisable bool
	Zero             bool
	Carry            bool
}

// NewStatus returns a status register cleared to its power-on state.
func NewStatus() Status {
	var sr Status
	sr.Load(0x00)
	return sr
}

// Label returns the status register's name.
func (sr Status) Label() string { return "SR" }

func (sr Status) String() string {
	var s strings.Builder
	flag := func(set bool, c rune) {
		if set {
			s.WriteRune(c)
		} else {
			s.WriteRune(c + ('a' - 'A'))
		}
	}
	flag(sr.Sign, 'S')
	flag(sr.Overflow, 'V')
	s.WriteRune('-')
	flag(sr.Break, 'B')
	flag(sr.DecimalMode, 'D')
	flag(sr.InterruptDisable, 'I')
	flag(sr.Zero, 'Z')
	flag(sr.Carry, 'C')
	return s.String()
}

// Value packs the flags into the byte layout PHP/BRK push onto the stack
// and PLP/RTI read back from it.
func (sr Status) Value() uint8 {
	var v uint8
	if sr.Sign {
		v |= 0x80
	}
	if sr.Overflow {
		v |= 0x40
	}
	if sr.Break {
		v |= 0x10
	}
	if sr.DecimalMode {
		v |= 0x08
	}
	if sr.InterruptDisable {
		v |= 0x04
	}
	if sr.Zero {
		v |= 0x02
	}
	if sr.Carry {
		v |= 0x01
	}
	// bit 5 is unconnected on real silicon and always reads back as 1.
	v |= 0x20
	return v
}

// Load unpacks a pushed status byte into the flags (PLP, RTI, or a freshly
// read interrupt vector's saved status).
func (sr *Status) Load(v uint8) {
	sr.Sign = v&0x80 == 0x80
	sr.Overflow = v&0x40 == 0x40
	sr.DecimalMode = v&0x08 == 0x08
	sr.InterruptDisable = v&0x04 == 0x04
	sr.Zero = v&0x02 == 0x02
	sr.Carry = v&0x01 == 0x01
	sr.Break = true
}

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

// Package addresses indexes the canonical register names for the TIA and
// RIOT chips by their address-decoder-normalised offset (as produced by
// memorymap.Map). These tables exist for diagnostics: bank-switch logging,
// bad-address warnings, and disassembly/trace output all want to print
// "WSYNC" rather than "$02".
package addresses

// Reset and IRQ are the cartridge addresses holding the reset and
// interrupt/BRK vectors.
const (
	Reset = uint16(0xFFFC)
	IRQ   = uint16(0xFFFE)
)

// TIAWrite indexes the TIA's write-only register names by offset 0x00-0x2C.
var TIAWrite = map[uint16]string{
	0x00: "VSYNC",
	0x01: "VBLANK",
	0x02: "WSYNC",
	0x03: "RSYNC",
	0x04: "NUSIZ0",
	0x05: "NUSIZ1",
	0x06: "COLUP0",
	0x07: "COLUP1",
	0x08: "COLUPF",
	0x09: "COLUBK",
	0x0A: "CTRLPF",
	0x0B: "REFP0",
	0x0C: "REFP1",
	0x0D: "PF0",
	0x0E: "PF1",
	0x0F: "PF2",
	0x10: "RESP0",
	0x11: "RESP1",
	0x12: "RESM0",
	0x13: "RESM1",
	0x14: "RESBL",
	0x15: "AUDC0",
	0x16: "AUDC1",
	0x17: "AUDF0",
	0x18: "AUDF1",
	0x19: "AUDV0",
	0x1A: "AUDV1",
	0x1B: "GRP0",
	0x1C: "GRP1",
	0x1D: "ENAM0",
	0x1E: "ENAM1",
	0x1F: "ENABL",
	0x20: "HMP0",
	0x21: "HMP1",
	0x22: "HMM0",
	0x23: "HMM1",
	0x24: "HMBL",
	0x25: "VDELP0",
	0x26: "VDELP1",
	0x27: "VDELBL",
	0x28: "RESMP0",
	0x29: "RESMP1",
	0x2A: "HMOVE",
	0x2B: "HMCLR",
	0x2C: "CXCLR",
}

// TIARead indexes the TIA's read-only register names by offset 0x00-0x0D.
var TIARead = map[uint16]string{
	0x00: "CXM0P",
	0x01: "CXM1P",
	0x02: "CXP0FB",
	0x03: "CXP1FB",
	0x04: "CXM0FB",
	0x05: "CXM1FB",
	0x06: "CXBLPF",
	0x07: "CXPPMM",
	0x08: "INPT0",
	0x09: "INPT1",
	0x0A: "INPT2",
	0x0B: "INPT3",
	0x0C: "INPT4",
	0x0D: "INPT5",
}

// RIOTWrite indexes the RIOT's writable register names by offset 0x00-0x1F.
var RIOTWrite = map[uint16]string{
	0x00: "SWCHA",
	0x01: "SWACNT",
	0x02: "SWCHB",
	0x03: "SWBCNT",
	0x14: "TIM1T",
	0x15: "TIM8T",
	0x16: "TIM64T",
	0x17: "T1024T",
}

// RIOTRead indexes the RIOT's readable register names by offset 0x00-0x1F.
var RIOTRead = map[uint16]string{
	0x00: "SWCHA",
	0x01: "SWACNT",
	0x02: "SWCHB",
	0x03: "SWBCNT",
	0x04: "INTIM",
	0x05: "TIMINT",
}

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

// Package tia implements the Television Interface Adaptor: the chip that
// rasterises the playfield, two players, two missiles and a ball onto a
// shared scanline buffer, resolves collisions between them, and generates
// the console's two-channel audio. Everything the chip does is driven by
// catch-up rendering (see catchUp in tia.go): nothing is drawn until the
// CPU writes a register or the frame driver asks for the finished buffer,
// at which point the beam is walked forward pixel by pixel using whatever
// register values were in force at each point in time.
package tia

// Write-register offsets, normalised by memorymap.Map to 0x00-0x2C. These
// mirror addresses.TIAWrite.
const (
	regVSYNC  = 0x00
	regVBLANK = 0x01
	regWSYNC  = 0x02
	regRSYNC  = 0x03
	regNUSIZ0 = 0x04
	regNUSIZ1 = 0x05
	regCOLUP0 = 0x06
	regCOLUP1 = 0x07
	regCOLUPF = 0x08
	regCOLUBK = 0x09
	regCTRLPF = 0x0A
	regREFP0  = 0x0B
	regREFP1  = 0x0C
	regPF0    = 0x0D
	regPF1    = 0x0E
	regPF2    = 0x0F
	regRESP0  = 0x10
	regRESP1  = 0x11
	regRESM0  = 0x12
	regRESM1  = 0x13
	regRESBL  = 0x14
	regAUDC0  = 0x15
	regAUDC1  = 0x16
	regAUDF0  = 0x17
	regAUDF1  = 0x18
	regAUDV0  = 0x19
	regAUDV1  = 0x1A
	regGRP0   = 0x1B
	regGRP1   = 0x1C
	regENAM0  = 0x1D
	regENAM1  = 0x1E
	regENABL  = 0x1F
	regHMP0   = 0x20
	regHMP1   = 0x21
	regHMM0   = 0x22
	regHMM1   = 0x23
	regHMBL   = 0x24
	regVDELP0 = 0x25
	regVDELP1 = 0x26
	regVDELBL = 0x27
	regRESMP0 = 0x28
	regRESMP1 = 0x29
	regHMOVE  = 0x2A
	regHMCLR  = 0x2B
	regCXCLR  = 0x2C
)

// Read-register offsets, normalised to 0x00-0x0D. These mirror
// addresses.TIARead.
const (
	regCXM0P  = 0x00
	regCXM1P  = 0x01
	regCXP0FB = 0x02
	regCXP1FB = 0x03
	regCXM0FB = 0x04
	regCXM1FB = 0x05
	regCXBLPF = 0x06
	regCXPPMM = 0x07
	regINPT0  = 0x08
	regINPT5  = 0x0D
)

// Beam geometry, in colour clocks. See spec.md §4.6.
const (
	HBLANK     = 68
	FrameWidth = 160
	HTicks     = HBLANK + FrameWidth
)

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

// Package execution records the outcome of a single CPU instruction: which
// opcode ran, where, how many cycles it actually took (which can differ
// from the definition's nominal count on a taken branch or a page
// crossing), and whether one of the 6507's documented quirks fired.
package execution

import "github.com/pixelclock/stella2600/hardware/cpu/instructions"

// Bug names one of the 6507's known hardware quirks.
type Bug string

const (
	NoBug Bug = ""

	// JMPIndirectPageWrap fires when a JMP (ind) operand's low byte is
	// 0xFF: the real 6502/6507 fetches the high byte of the target from
	// the start of the same page rather than the next page. This
	// implementation deliberately does not reproduce it (see
	// SPEC_FULL.md's resolution of the matching open question); the
	// constant exists so Result.CPUBug has a name ready should that
	// decision ever change.
	JMPIndirectPageWrap Bug = "indirect addressing page-wrap bug"
)

// Result describes one completed instruction.
type Result struct {
	Defn *instructions.Definition

	// Address is where the instruction's opcode byte was fetched from.
	Address uint16

	// InstructionData is the instruction's raw operand: the branch offset,
	// the zero-page/absolute address, or the immediate value.
	InstructionData uint16

	// Cycles is the number of CPU cycles the instruction actually took,
	// which can exceed Defn.Cycles for a taken branch or an indexed access
	// that crosses a page boundary.
	Cycles int

	// PageFault reports whether an extra cycle was charged for an indexed
	// address crossing a page boundary.
	PageFault bool

	// BranchSuccess reports whether a branch instruction's condition was
	// true (and the branch therefore taken).
	BranchSuccess bool

	// CPUBug names a hardware quirk that fired during this instruction, if
	// any.
	CPUBug Bug

	// Final is true once every field above holds its finished value. While
	// an instruction is mid-decode parts of a Result may be incomplete.
	Final bool
}

// Reset clears the result ready for the next instruction.
func (r *Result) Reset() {
	*r = Result{}
}

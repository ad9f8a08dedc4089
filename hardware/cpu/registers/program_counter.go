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

import "fmt"

// ProgramCounter is the 6507's 16-bit instruction pointer.
type ProgramCounter struct {
	value uint16
}

// NewProgramCounter creates a program counter with the given initial value.
func NewProgramCounter(val uint16) ProgramCounter {
	return ProgramCounter{value: val}
}

// Label returns the program counter's name.
func (pc ProgramCounter) Label() string { return "PC" }

func (pc ProgramCounter) String() string { return fmt.Sprintf("%04x", pc.value) }

// Value returns the program counter's current value.
func (pc ProgramCounter) Value() uint16 { return pc.value }

// Address returns the program counter's value.
func (pc ProgramCounter) Address() uint16 { return pc.value }

// Load sets the program counter's value.
func (pc *ProgramCounter) Load(val uint16) { pc.value = val }

// Add advances the program counter by val, reporting whether it wrapped
// past 0xFFFF. The 6507 only ever increments the PC by small amounts so
// overflow is never a meaningful result.
func (pc *ProgramCounter) Add(val uint16) (carry, overflow bool) {
	v := pc.value
	pc.value += val
	return pc.value < v, false
}

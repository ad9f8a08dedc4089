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

// StackPointer is the 6507's 8-bit stack pointer. It embeds Data so it gets
// the usual register operations, but overrides Address: the stack always
// lives in page one.
type StackPointer struct {
	Data
}

// NewStackPointer creates a stack pointer with the given initial value.
func NewStackPointer(val uint8) StackPointer {
	return StackPointer{Data: Data{value: val, label: "SP"}}
}

// Address returns the stack pointer's value as a page-one address. The VCS
// stack is physically RIOT RAM; it appears at $0100-$01FF only because of
// how few address lines the 6507 decodes (see memorymap.Map).
func (sp StackPointer) Address() uint16 {
	return 0x0100 | uint16(sp.value)
}

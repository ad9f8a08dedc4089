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

// AddDecimal and SubtractDecimal implement ADC/SBC when the status
// register's DecimalMode flag is set: the 6507 is a full NMOS 6502 core and
// treats A and the operand as two packed BCD digits rather than binary.
//
// Unlike Add/Subtract, these also return the zero and sign flags, since an
// NMOS 6502 derives Z and N from values that aren't simply the corrected
// BCD result - Z from what a binary add/subtract would have produced, and
// (for addition) N from an intermediate, pre-$60-adjusted sum. Appendix A of
// http://www.6502.org/tutorials/decimal_mode.html is the reference; Jorge
// Cwik's paper on the NMOS decimal flag quirks confirms the carry/zero/sign
// split used here.

// AddDecimal is ADC in decimal mode.
func (r *Data) AddDecimal(val uint8, carry bool) (rcarry, rzero, roverflow, rsign bool) {
	// Z is whatever a binary addition would have given.
	binary := *r
	binary.Add(val, carry)
	rzero = binary.IsZero()

	// low nibble, BCD-corrected
	al := (r.value & 0x0f) + (val & 0x0f)
	if carry {
		al++
	}
	if al >= 0x0a {
		al = ((al + 0x06) & 0x0f) + 0x10
	}

	// high nibble plus corrected low nibble; carry out is whether this
	// 9-bit-or-wider sum reaches $100 after its own $60 correction.
	sum := (uint16(r.value) & 0xf0) + (uint16(val) & 0xf0) + uint16(al)
	sumUncorrected := int16(r.value&0xf0) + int16(val&0xf0) + int16(al)
	if sum >= 0xa0 {
		sum += 0x60
	}
	rcarry = sum >= 0x100

	// N is read off the sum before the final $60 correction is applied.
	rsign = sumUncorrected&0x80 == 0x80

	// V turns out to follow the same binary-overflow formula, evaluated
	// against that same pre-correction sum.
	roverflow = ((r.value ^ uint8(sumUncorrected)) & (val ^ uint8(sumUncorrected)) & 0x80) != 0

	r.value = uint8(sum)
	return rcarry, rzero, roverflow, rsign
}

// SubtractDecimal is SBC in decimal mode. Carry, overflow, zero and sign
// all come out exactly as a binary subtraction would set them; only the
// stored value differs, correcting each nibble back into BCD range.
func (r *Data) SubtractDecimal(val uint8, carry bool) (rcarry, rzero, roverflow, rsign bool) {
	binary := *r
	rcarry, roverflow = binary.Subtract(val, carry)
	rzero = binary.IsZero()
	rsign = binary.IsNegative()

	al := (int16(r.value) & 0x0f) - (int16(val) & 0x0f)
	if !carry {
		al--
	}
	if al < 0x00 {
		al = ((al - 0x06) & 0x0f) - 0x10
	}

	a := (int16(r.value) & 0xf0) - (int16(val) & 0xf0) + al
	if a < 0x00 {
		a -= 0x60
	}

	r.value = uint8(a)
	return rcarry, rzero, roverflow, rsign
}

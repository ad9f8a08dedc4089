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

// Package riot implements the console's combined RAM/timer/I/O chip: 128
// bytes of general-purpose RAM (also reachable through the CPU's stack
// page, $0100-$01FF, which is physically the same RAM), a programmable
// interval timer, and the input latches that the host updates on every
// controller poll.
package riot

import (
	"fmt"

	"github.com/pixelclock/stella2600/hardware/clock"
	"github.com/pixelclock/stella2600/logger"
)

// ramSize is the amount of general-purpose RAM the chip provides.
const ramSize = 128

// interval values the timer can be configured to, in colour clocks per
// decrement.
const (
	interval1    = 1
	interval8    = 8
	interval64   = 64
	interval1024 = 1024
)

// pipelineAlign is the constant added when computing the not-yet-expired
// timer readback (spec.md §4.5: "a pipeline alignment constant observed in
// the source").
const pipelineAlign = 12

// RIOT is the 6532-family RAM/timer/IO chip.
type RIOT struct {
	clock *clock.Clock

	ram [ramSize]uint8

	// input latches, set only by the host via SetInputs / console switch
	// helpers - never written by the CPU.
	swcha uint8
	swchb uint8

	// data-direction registers, which the CPU may write; bits set to 1
	// mean that pin is currently driven as an output by the console rather
	// than read from the controller port.
	swacnt uint8
	swbcnt uint8

	// CPU-driven output latches for any port bits configured as outputs.
	outa uint8
	outb uint8

	// timer state
	interval   uint64
	expiration uint64
	lastWrite  uint64

	lastRead string
}

// New returns a freshly reset RIOT wired to the shared clock.
func New(clk *clock.Clock) *RIOT {
	r := &RIOT{clock: clk}
	r.Reset()
	return r
}

// Reset clears RAM and the port registers and selects the /1024 interval
// with an expiration tick of 0, so until the first TIMxT write the timer
// reads as already expired: TIMINT bit 7 is set and INTIM counts down from
// 0xFF by one per colour clock.
func (r *RIOT) Reset() {
	for i := range r.ram {
		r.ram[i] = 0
	}
	r.swacnt = 0
	r.swbcnt = 0
	r.outa = 0
	r.outb = 0
	r.interval = interval1024
	r.expiration = 0
	r.lastWrite = 0
}

// SetInputs updates the SWCHA/SWCHB input latches. Called by the host's
// controller-polling code once per frame (or per CPU-step batch), never by
// the CPU.
func (r *RIOT) SetInputs(swcha, swchb uint8) {
	r.swcha = swcha
	r.swchb = swchb
}

// ReadRAM reads a byte of general-purpose RAM, addr already normalised to
// 0-127 by the memory decoder.
func (r *RIOT) ReadRAM(addr uint16) uint8 {
	return r.ram[addr&0x7F]
}

// WriteRAM writes a byte of general-purpose RAM.
func (r *RIOT) WriteRAM(addr uint16, data uint8) {
	r.ram[addr&0x7F] = data
}

// portRead combines the CPU-driven output latch (for pins configured as
// outputs by the DDR register) with the externally supplied input value
// (for pins configured as inputs).
func portRead(input, output, ddr uint8) uint8 {
	return (output & ddr) | (input & ^ddr)
}

// Read implements bus.CPUBus for the RIOT's register window, addr already
// normalised to 0-0x1F by the memory decoder.
func (r *RIOT) Read(addr uint16) (uint8, error) {
	addr &= 0x1F

	switch addr {
	case 0x00, 0x08, 0x10, 0x18:
		r.lastRead = "SWCHA"
		return portRead(r.swcha, r.outa, r.swacnt), nil
	case 0x01, 0x09, 0x11, 0x19:
		r.lastRead = "SWACNT"
		return r.swacnt, nil
	case 0x02, 0x0A, 0x12, 0x1A:
		r.lastRead = "SWCHB"
		return portRead(r.swchb, r.outb, r.swbcnt), nil
	case 0x03, 0x0B, 0x13, 0x1B:
		r.lastRead = "SWBCNT"
		return r.swbcnt, nil
	case 0x04, 0x06, 0x14, 0x16:
		r.lastRead = "INTIM"
		return r.readTimer(), nil
	case 0x05, 0x07, 0x0D, 0x0F, 0x15, 0x17, 0x1D, 0x1F:
		r.lastRead = "TIMINT"
		var v uint8
		if r.expired() {
			v |= 0x80
		}
		return v, nil
	case 0x0C, 0x0E, 0x1C, 0x1E:
		r.lastRead = "INTIM"
		return r.readTimer(), nil
	}

	r.lastRead = ""
	logger.Logf("riot", "read from unmapped RIOT register offset $%02X", addr)
	return 0, nil
}

// Write implements bus.CPUBus for the RIOT's register window.
func (r *RIOT) Write(addr uint16, data uint8) error {
	addr &= 0x1F

	switch addr {
	case 0x00, 0x08, 0x10, 0x18:
		r.outa = data
	case 0x01, 0x09, 0x11, 0x19:
		r.swacnt = data
	case 0x02, 0x0A, 0x12, 0x1A:
		r.outb = data
	case 0x03, 0x0B, 0x13, 0x1B:
		r.swbcnt = data
	case 0x14:
		r.writeTimer(data, interval1)
	case 0x15:
		r.writeTimer(data, interval8)
	case 0x16:
		r.writeTimer(data, interval64)
	case 0x17:
		r.writeTimer(data, interval1024)
	default:
		logger.Logf("riot", "write to unmapped RIOT register offset $%02X (data $%02X)", addr, data)
	}

	return nil
}

// writeTimer programs the timer with the given interval. expiration is
// expressed directly in clock ticks, per spec.md §4.5: expiration = now +
// 3*data*interval.
func (r *RIOT) writeTimer(data uint8, interval uint64) {
	r.interval = interval
	r.lastWrite = r.clock.Now()
	r.expiration = r.lastWrite + 3*uint64(data)*interval
}

// expired reports whether the programmed countdown has completed.
func (r *RIOT) expired() bool {
	return r.clock.Now() >= r.expiration
}

// readTimer implements the two distinct readback modes described in
// spec.md §4.5: an interval-scaled down-counter before expiry, and a
// 1-colour-clock-resolution down-counter (wrapping modulo 0x100) after.
func (r *RIOT) readTimer() uint8 {
	now := r.clock.Now()
	if now < r.expiration {
		remaining := (r.expiration - now + pipelineAlign) / (3 * r.interval)
		return uint8(remaining)
	}

	elapsed := now - r.expiration
	return uint8((0xFF - elapsed) & 0xFF)
}

// LastReadRegister names the register of the most recent CPU read, or ""
// if that read was unmapped.
func (r *RIOT) LastReadRegister() string {
	return r.lastRead
}

// String implements fmt.Stringer for diagnostics.
func (r *RIOT) String() string {
	return fmt.Sprintf("SWCHA=%02x SWCHB=%02x INTIM=%02x", r.swcha, r.swchb, r.readTimer())
}


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

package hardware

import (
	"errors"
	"fmt"

	"github.com/pixelclock/stella2600/hardware/clock"
	"github.com/pixelclock/stella2600/hardware/cpu"
	"github.com/pixelclock/stella2600/hardware/cpu/execution"
	"github.com/pixelclock/stella2600/hardware/instance"
	"github.com/pixelclock/stella2600/hardware/memory/addresses"
	"github.com/pixelclock/stella2600/hardware/memory/cartridge"
	"github.com/pixelclock/stella2600/hardware/riot"
	"github.com/pixelclock/stella2600/hardware/tia"
)

// VCS owns every chip and the address bus that wires them together. The
// frame driver (cmd/stella2600 or a frontend package) holds the only
// reference to a VCS and drives it one CPU instruction at a time; see
// spec.md §5.
type VCS struct {
	Instance *instance.Instance
	Clock    *clock.Clock
	CPU      *cpu.CPU
	RIOT     *riot.RIOT
	TIA      *tia.TIA
	Cart     *cartridge.Cartridge

	mem *addressBus
}

// New assembles a VCS for the given region and cartridge, loads the reset
// vector, and returns it ready for Step to be called.
func New(inst *instance.Instance, cart *cartridge.Cartridge) (*VCS, error) {
	clk := clock.New()
	r := riot.New(clk)
	t := tia.New(clk, inst.Region.VBlankLines(), inst.Region.FrameLines(), inst.Region.OverscanLines())
	t.SetAudioRate(inst.Region.TIARate().Hz(), 44100)

	mem := &addressBus{cart: cart, riot: r, tia: t}
	c := cpu.NewCPU(inst, clk, mem)

	v := &VCS{
		Instance: inst,
		Clock:    clk,
		CPU:      c,
		RIOT:     r,
		TIA:      t,
		Cart:     cart,
		mem:      mem,
	}

	if err := c.LoadResetVector(addresses.Reset); err != nil {
		return nil, fmt.Errorf("hardware: loading reset vector: %w", err)
	}

	return v, nil
}

// ErrKilled is returned by Step once the CPU has executed a JAM opcode; see
// cpu.ErrKilled.
var ErrKilled = cpu.ErrKilled

// Step executes exactly one CPU instruction and lets the TIA catch its
// rasteriser up to the resulting clock tick, per spec.md §5's ordering
// guarantee that TIA writes are observed before any subsequent pixel is
// emitted.
func (v *VCS) Step() (execution.Result, error) {
	res, err := v.CPU.Step()
	v.TIA.Sync()
	if err != nil {
		return res, err
	}
	if v.CPU.Killed {
		return res, ErrKilled
	}
	return res, nil
}

// RunFrame steps the CPU until the TIA signals a completed frame (VSYNC
// falling edge) or an error occurs. It returns the error from the step
// that produced it, if any; errors.Is(err, ErrKilled) distinguishes a JAM
// halt from every other failure.
func (v *VCS) RunFrame() error {
	for {
		_, err := v.Step()
		if err != nil {
			return err
		}
		if v.TIA.NeedsPresent() {
			return nil
		}
	}
}

// RunUntilClock steps the CPU until the shared clock reaches or passes
// stopTick, used by the CLI's --stop-clock flag.
func (v *VCS) RunUntilClock(stopTick uint64) error {
	for v.Clock.Now() < stopTick {
		_, err := v.Step()
		if err != nil {
			return err
		}
	}
	return nil
}

// IsKilled reports whether the CPU halted on a JAM opcode.
func IsKilled(err error) bool {
	return errors.Is(err, ErrKilled)
}

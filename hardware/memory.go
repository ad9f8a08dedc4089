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

// Package hardware assembles the console: the address decoder that routes
// CPU accesses to cartridge/RIOT/TIA, and the VCS type that owns every
// chip and drives them forward one CPU instruction at a time.
package hardware

import (
	"fmt"

	"github.com/pixelclock/stella2600/hardware/memory/bus"
	"github.com/pixelclock/stella2600/hardware/memory/cartridge"
	"github.com/pixelclock/stella2600/hardware/memory/memorymap"
	"github.com/pixelclock/stella2600/hardware/riot"
	"github.com/pixelclock/stella2600/hardware/tia"
	"github.com/pixelclock/stella2600/internal/chiperrs"
)

// addressBus implements bus.CPUBus by routing each access through
// memorymap.Map to the cartridge, RIOT or TIA, per spec.md §4.3. It holds
// no state beyond references to the three devices.
type addressBus struct {
	cart *cartridge.Cartridge
	riot *riot.RIOT
	tia  *tia.TIA
}

func (m *addressBus) Read(addr uint16) (uint8, error) {
	area, a := memorymap.Map(addr)
	switch area {
	case memorymap.CartridgeArea:
		return m.cart.Read(a)
	case memorymap.RIOTRAMArea:
		return m.riot.ReadRAM(a), nil
	case memorymap.RIOTRegistersArea:
		return m.riot.Read(a)
	case memorymap.TIAArea:
		return m.tia.Read(a)
	}
	return 0, fmt.Errorf("memory: read $%04X: %w", addr, chiperrs.ErrUnmappedAddress)
}

func (m *addressBus) Write(addr uint16, data uint8) error {
	area, a := memorymap.Map(addr)
	switch area {
	case memorymap.CartridgeArea:
		return m.cart.Write(a, data)
	case memorymap.RIOTRAMArea:
		m.riot.WriteRAM(a, data)
		return nil
	case memorymap.RIOTRegistersArea:
		return m.riot.Write(a, data)
	case memorymap.TIAArea:
		return m.tia.Write(a, data)
	}
	return fmt.Errorf("memory: write $%04X = $%02X: %w", addr, data, chiperrs.ErrUnmappedAddress)
}

var _ bus.CPUBus = (*addressBus)(nil)

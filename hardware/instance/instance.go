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

// Package instance carries the handful of knobs that are shared read-only
// across every hardware package for the lifetime of one emulator run: which
// television standard to time against, and whether register power-on state
// should be zeroed or randomised (real hardware RAM and registers power on
// in an indeterminate state; a ROM that doesn't initialise everything it
// reads will behave differently machine to machine).
package instance

import (
	"math/rand"

	"github.com/pixelclock/stella2600/clocks"
)

// Region identifies a television colour standard.
type Region int

const (
	NTSC Region = iota
	PAL
	PALM
	SECAM
)

// String implements fmt.Stringer.
func (r Region) String() string {
	switch r {
	case PAL:
		return "PAL"
	case PALM:
		return "PAL-M"
	case SECAM:
		return "SECAM"
	default:
		return "NTSC"
	}
}

// TIARate returns the colour-clock rate, in MHz, for the region.
func (r Region) TIARate() clocks.Rate {
	switch r {
	case PAL:
		return clocks.PALTIA
	case PALM:
		return clocks.PALMTIA
	case SECAM:
		return clocks.SECAMTIA
	default:
		return clocks.NTSCTIA
	}
}

// VBlankLines, FrameLines and OverscanLines are the nominal scanline counts
// for the region (spec.md's "Open question": these are configurable per
// region rather than fixed constants).
func (r Region) VBlankLines() int {
	if r == PAL || r == PALM || r == SECAM {
		return 45
	}
	return 37
}

func (r Region) FrameLines() int {
	if r == PAL || r == PALM || r == SECAM {
		return 228
	}
	return 192
}

func (r Region) OverscanLines() int {
	if r == PAL || r == PALM || r == SECAM {
		return 36
	}
	return 30
}

// Instance holds the per-run configuration shared across hardware packages.
type Instance struct {
	Region Region

	// RandomState, if true, causes RAM and CPU registers to power on with
	// random content rather than all zeroes, matching real hardware more
	// closely (and exposing ROMs with latent initialisation bugs).
	RandomState bool

	rng *rand.Rand
}

// New returns an Instance for the given region. The random source is seeded
// from a fixed value so that runs are reproducible even when RandomState is
// enabled; this is an emulator for reverse-engineering old cartridges, not a
// security primitive.
func New(region Region, randomState bool) *Instance {
	return &Instance{
		Region:      region,
		RandomState: randomState,
		rng:         rand.New(rand.NewSource(1)),
	}
}

// RandomByte returns a pseudo-random byte, used to fill power-on state when
// RandomState is true.
func (in *Instance) RandomByte() uint8 {
	if in == nil || in.rng == nil {
		return 0
	}
	return uint8(in.rng.Intn(256))
}

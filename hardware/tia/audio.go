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

package tia

// poly advances a linear-feedback shift register of the given width and
// feedback-tap mask, returning the new low bit.
type poly struct {
	width uint
	taps  uint32
	value uint32
}

func newPoly(width uint, taps uint32, seed uint32) *poly {
	return &poly{width: width, taps: taps, value: seed}
}

func (p *poly) clock() uint32 {
	mask := uint32(1)<<p.width - 1
	fb := uint32(0)
	for shift := uint32(0); p.taps>>shift != 0; shift++ {
		if p.taps&(1<<shift) != 0 {
			fb ^= (p.value >> shift) & 1
		}
	}
	p.value = ((p.value << 1) | fb) & mask
	return p.value & 1
}

// audioChannel is one of the TIA's two identical sound generators: a
// frequency divider gating a pair of polynomial counters whose combination,
// selected by AUDC, produces the console's pure tones, buzzes and noise.
// The divider is a plain modulo counter: a real AUDF divider wraps every
// (audf+1) raw ticks, and a four-phase-per-count ripple counter would
// stretch that period to (audf+1)*4, so one was never a fit here.
type audioChannel struct {
	audc uint8
	audf uint8
	audv uint8

	// freqPos counts audio ticks since the last divider wrap; the divider
	// fires once every (audf+1) ticks to clock the waveform polys below.
	freqPos int
	p4      *poly
	p5      *poly
}

func newAudioChannel() *audioChannel {
	return &audioChannel{
		p4: newPoly(4, 0x9, 0xF),  // taps at bits 0 and 3: maximal-length 4-bit sequence
		p5: newPoly(5, 0x14, 0x1F), // taps at bits 2 and 4: maximal-length 5-bit sequence
	}
}

// toneFamily reports whether this AUDC selects a logical expression that clocks
// poly4 unconditionally (pure tone / divided tone families) as opposed to
// gating it on poly5's output (the noisier families). This mirrors the
// real chip's handful of distinct waveform families without reproducing
// every AUDC value's exact silicon-level logic equation.
func (c *audioChannel) toneFamily() bool {
	switch c.audc & 0x0F {
	case 0x4, 0x5, 0x6, 0x0C, 0x0D, 0x0E:
		return true
	default:
		return false
	}
}

// step advances the channel by one audio tick (the rate at which spec.md
// §4.7 says freq_pos is ticked) and returns the current sample.
func (c *audioChannel) step() uint8 {
	divisor := int(c.audf) + 1
	c.freqPos++
	if c.freqPos%divisor == 0 {
		p5bit := c.p5.clock()
		if c.toneFamily() || p5bit == 1 {
			c.p4.clock()
		}
	}

	switch c.audc & 0x0F {
	case 0x00, 0x0B:
		return c.audv * 7 // "set to 1": constant output, silence in practice
	}

	if c.p4.value&1 != 0 {
		return c.audv * 7
	}
	return 0
}

// audioGen owns the two channels and downsamples their combined output to
// a host-requested sample count.
type audioGen struct {
	ch [2]*audioChannel

	// accum accumulates fractional progress so that downsampling
	// from the chip's own rate to the host's requested rate doesn't drift.
	accum float64
	ratio float64
}

func newAudioGen() *audioGen {
	return &audioGen{
		ch: [2]*audioChannel{newAudioChannel(), newAudioChannel()},
	}
}

// setRatio configures how many chip audio ticks correspond to one host
// sample (chipHz / hostHz).
func (a *audioGen) setRatio(chipHz, hostHz float64) {
	if hostHz <= 0 {
		a.ratio = 1
		return
	}
	a.ratio = chipHz / hostHz
}

// generate advances the chip by the audio ticks implied by n host samples
// and mixes the two channels into those samples.
func (a *audioGen) generate(n int) []uint8 {
	out := make([]uint8, n)
	if a.ratio <= 0 {
		a.ratio = 1
	}

	for i := 0; i < n; i++ {
		a.accum += a.ratio
		ticks := int(a.accum)
		a.accum -= float64(ticks)

		var s0, s1 uint8
		for t := 0; t < ticks; t++ {
			s0 = a.ch[0].step()
			s1 = a.ch[1].step()
		}
		mixed := int(s0) + int(s1)
		if mixed > 255 {
			mixed = 255
		}
		out[i] = uint8(mixed)
	}
	return out
}

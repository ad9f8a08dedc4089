package tia

import "testing"

// AUDC=0x00 ("set to 1") outputs a constant level set by AUDV, which is
// silent in practice since the waveform never changes.
func TestAudioSilentFamily(t *testing.T) {
	c := newAudioChannel()
	c.audc = 0x00
	c.audf = 0
	c.audv = 0x0F
	if got := c.step(); got != c.audv*7 {
		t.Fatalf("AUDC=0x00 step() = %d, want constant %d", got, c.audv*7)
	}
}

// The frequency divider should only fire (and so only change the poly4
// state) once every (audf+1) calls to step().
func TestAudioFrequencyDivider(t *testing.T) {
	c := newAudioChannel()
	c.audc = 0x04 // pure-tone family: poly4 clocks unconditionally on divider wrap
	c.audv = 1
	c.audf = 3 // divider wraps every 4 ticks

	before := c.p4.value
	for i := 0; i < 3; i++ {
		c.step()
	}
	if c.p4.value != before {
		t.Fatalf("poly4 changed before the divider wrapped (audf=3, 3 steps taken)")
	}
	c.step() // 4th tick: divider wraps
	if c.p4.value == before {
		t.Fatalf("poly4 did not change on the 4th step, when the divider should wrap")
	}
	before = c.p4.value
	for i := 0; i < 3; i++ {
		c.step()
	}
	if c.p4.value != before {
		t.Fatalf("poly4 changed mid-cycle on the second divider period")
	}
}

// Two constant channels at full volume (15*7 = 105 each) mix to their sum.
func TestAudioMixSumsChannels(t *testing.T) {
	gen := newAudioGen()
	gen.ch[0].audc, gen.ch[0].audv, gen.ch[0].audf = 0x00, 0x0F, 0
	gen.ch[1].audc, gen.ch[1].audv, gen.ch[1].audf = 0x00, 0x0F, 0
	gen.setRatio(30000, 30000)

	out := gen.generate(1)
	if out[0] != 210 {
		t.Fatalf("mixed sample = %d, want 210 (105 per channel)", out[0])
	}
}

// Package clocks defines the constant values that determine the speed of the
// main colour clock in the console for each television standard.
//
// Values taken from:
// http://www.taswegian.com/WoodgrainWizard/tiki-index.php?page=Clock-Speeds
package clocks

// Rate is the number of million cycles per second for a colour clock, keyed
// by television standard.
type Rate float64

// CPU clock rates, in MHz, for each supported television standard. The CPU
// divides the colour clock by three (see TIA below).
const (
	NTSC  Rate = 1.193182
	PAL   Rate = 1.182298
	PALM  Rate = 1.191870
	SECAM Rate = 1.187500
)

// TIA colour-clock rates, in MHz: three times the CPU rate.
const (
	NTSCTIA  = NTSC * 3
	PALTIA   = PAL * 3
	PALMTIA  = PALM * 3
	SECAMTIA = SECAM * 3
)

// Hz returns the rate in whole Hz. Call on one of the *TIA constants to get
// the colour-clock rate used for real-time pacing against a tick counter.
func (r Rate) Hz() float64 {
	return float64(r) * 1000000
}

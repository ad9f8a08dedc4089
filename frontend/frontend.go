// Package frontend selects and wires the host that drives a hardware.VCS
// to completion: an interactive SDL window with audio and joystick input
// for normal play, or a headless benchmark driver that dumps audio to a
// WAV file and skips real-time pacing, per spec.md §6's -n/--no-delay flag.
// A statsview HTTP dashboard runs alongside either one.
package frontend

import (
	"fmt"

	"github.com/pixelclock/stella2600/frontend/sdl"
	"github.com/pixelclock/stella2600/frontend/stats"
	"github.com/pixelclock/stella2600/frontend/wavdump"
	"github.com/pixelclock/stella2600/hardware"
)

// Host drives a VCS to completion and releases its resources on Close.
type Host interface {
	// Run steps the VCS until the host is asked to quit, the stop-clock
	// threshold is reached (stopTick == 0 means no threshold), or a fatal
	// error occurs.
	Run(stopTick uint64) error
	Close()
}

// Options mirrors the subset of CLI flags that affect frontend selection
// and behaviour.
type Options struct {
	Fullscreen bool
	NoDelay    bool
	Debug      bool
}

// driverSDL and driverWavdump name the frontends for --list-drivers and for
// diagnostics; the choice is not exposed as its own flag (spec.md §6 only asks that
// -l enumerate what's available).
const (
	driverSDL     = "sdl"
	driverWavdump = "wavdump"
)

// Names lists the frontends -l/--list-drivers reports.
func Names() []string {
	return []string{driverSDL, driverWavdump}
}

// New builds the Host appropriate for opts: wavdump (headless, full-speed,
// audio-to-file) when NoDelay asks for benchmark mode, sdl otherwise. In
// both cases a statsview dashboard is started in the background.
func New(opts Options, vcs *hardware.VCS) (Host, error) {
	stats.Start()

	if opts.NoDelay {
		h, err := wavdump.New(vcs, "stella2600-audio.wav", opts.Debug)
		if err != nil {
			return nil, fmt.Errorf("frontend: %w", err)
		}
		return h, nil
	}

	h, err := sdl.New(vcs, sdl.Options{Fullscreen: opts.Fullscreen, Debug: opts.Debug})
	if err != nil {
		return nil, fmt.Errorf("frontend: %w", err)
	}
	return h, nil
}

// Package wavdump implements the headless benchmark frontend selected by
// the CLI's -n/--no-delay flag: it steps the VCS at full speed with no
// real-time pacing and no window, writing every sample the TIA generates
// to a WAV file instead of a live audio device.
package wavdump

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pixelclock/stella2600/hardware"
)

const sampleRate = 44100

// Host drives a VCS with no display and dumps its audio output to a file.
type Host struct {
	vcs     *hardware.VCS
	file    *os.File
	encoder *wav.Encoder
	debug   bool
}

// New opens filename for writing and prepares a mono 8-bit WAV encoder at
// sampleRate.
func New(vcs *hardware.VCS, filename string, debug bool) (*Host, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("wavdump: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, 8, 1, 1)
	vcs.TIA.SetAudioRate(vcs.Instance.Region.TIARate().Hz(), sampleRate)

	return &Host{vcs: vcs, file: f, encoder: enc, debug: debug}, nil
}

// Run steps the VCS until stopTick (0 means run until the cartridge
// produces a JAM or the emulator encounters an error; a benchmark run
// without a stop-clock is expected to be paired with one in practice).
func (h *Host) Run(stopTick uint64) error {
	const chunk = 512

	for {
		if stopTick != 0 && h.vcs.Clock.Now() >= stopTick {
			return nil
		}

		if err := h.vcs.RunFrame(); err != nil {
			return err
		}

		if h.debug {
			fmt.Printf("%s\n", h.vcs.CPU)
		}

		samples := h.vcs.TIA.NextAudioChunk(chunk)
		buf := &audio.IntBuffer{
			Format: &audio.Format{NumChannels: 1, SampleRate: sampleRate},
			Data:   make([]int, len(samples)),
		}
		for i, s := range samples {
			buf.Data[i] = int(s)
		}
		if err := h.encoder.Write(buf); err != nil {
			return fmt.Errorf("wavdump: writing samples: %w", err)
		}
	}
}

// Close flushes the WAV encoder and closes the file.
func (h *Host) Close() {
	h.encoder.Close()
	h.file.Close()
}

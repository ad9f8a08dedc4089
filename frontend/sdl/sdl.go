// Package sdl is the interactive frontend: an SDL2 window presenting the
// TIA's frame buffer, a keyboard-driven Joystick, and queued audio
// playback. Pacing is real-time unless the VCS reaches the CLI's
// --stop-clock tick first.
package sdl

import (
	"fmt"
	"time"

	gosdl "github.com/veandco/go-sdl2/sdl"

	"github.com/pixelclock/stella2600/hardware"
	"github.com/pixelclock/stella2600/hardware/controller"
)

// Options configures the window.
type Options struct {
	Fullscreen bool
	Debug      bool
}

// Host drives a VCS inside an SDL window.
type Host struct {
	vcs  *hardware.VCS
	opts Options

	window  *gosdl.Window
	surface *gosdl.Surface
	audio   gosdl.AudioDeviceID

	scale int

	p0, p1 *controller.Joystick
	quit   bool
}

// keymap associates SDL scancodes with joystick/console-switch actions,
// following the layout most VCS emulators settle on: arrows + space for
// player 0, F1/F2 for reset/select.
var keymap = struct {
	up, down, left, right, fire     gosdl.Scancode
	up2, down2, left2, right2, fire2 gosdl.Scancode
	reset, select_                   gosdl.Scancode
}{
	up:      gosdl.SCANCODE_UP,
	down:    gosdl.SCANCODE_DOWN,
	left:    gosdl.SCANCODE_LEFT,
	right:   gosdl.SCANCODE_RIGHT,
	fire:    gosdl.SCANCODE_SPACE,
	up2:     gosdl.SCANCODE_W,
	down2:   gosdl.SCANCODE_S,
	left2:   gosdl.SCANCODE_A,
	right2:  gosdl.SCANCODE_D,
	fire2:   gosdl.SCANCODE_LCTRL,
	reset:   gosdl.SCANCODE_F1,
	select_: gosdl.SCANCODE_F2,
}

// New opens the SDL window and audio device. joystick callbacks are wired
// to the VCS's RIOT/TIA input latches via hardware/controller.
func New(vcs *hardware.VCS, opts Options) (*Host, error) {
	if err := gosdl.Init(gosdl.INIT_VIDEO | gosdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("sdl: init: %w", err)
	}

	scale := 3
	w := int32(tiaFrameWidth(vcs) * scale)
	h := int32(vcs.TIA.FrameHeight() * scale)

	flags := uint32(gosdl.WINDOW_SHOWN)
	if opts.Fullscreen {
		flags |= gosdl.WINDOW_FULLSCREEN_DESKTOP
	}

	window, err := gosdl.CreateWindow("stella2600", gosdl.WINDOWPOS_UNDEFINED, gosdl.WINDOWPOS_UNDEFINED, w, h, flags)
	if err != nil {
		return nil, fmt.Errorf("sdl: create window: %w", err)
	}

	surface, err := window.GetSurface()
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("sdl: get surface: %w", err)
	}

	spec := gosdl.AudioSpec{Freq: 44100, Format: gosdl.AUDIO_U8, Channels: 1, Samples: 2048}
	dev, err := gosdl.OpenAudioDevice("", false, &spec, nil, 0)
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("sdl: open audio: %w", err)
	}
	gosdl.PauseAudioDevice(dev, false)

	h2 := &Host{
		vcs:     vcs,
		opts:    opts,
		window:  window,
		surface: surface,
		audio:   dev,
		scale:   scale,
	}
	h2.p0 = controller.New(vcs.RIOT, vcs.TIA)
	h2.p1 = h2.p0

	return h2, nil
}

func tiaFrameWidth(vcs *hardware.VCS) int {
	_ = vcs
	return 160 // same value as tia.FrameWidth
}

// Run drives the VCS one frame at a time until quit, stop-clock, or error.
func (h *Host) Run(stopTick uint64) error {
	frameDur := time.Second / 60

	for !h.quit {
		if stopTick != 0 && h.vcs.Clock.Now() >= stopTick {
			return nil
		}

		start := time.Now()
		h.pollEvents()
		if h.quit {
			return nil
		}

		if err := h.vcs.RunFrame(); err != nil {
			return err
		}

		h.present()
		h.queueAudio()

		if h.opts.Debug {
			fmt.Printf("%s\n", h.vcs.CPU)
		}

		if elapsed := time.Since(start); elapsed < frameDur {
			time.Sleep(frameDur - elapsed)
		}
	}
	return nil
}

func (h *Host) present() {
	fw := tiaFrameWidth(h.vcs)
	fh := h.vcs.TIA.FrameHeight()

	buf := make([]uint8, fw*fh*3)
	h.vcs.TIA.CopyFrame(buf)

	pixels := h.surface.Pixels()
	bpp := int(h.surface.Format.BytesPerPixel)

	for y := 0; y < fh; y++ {
		for x := 0; x < fw; x++ {
			src := (y*fw + x) * 3
			for sy := 0; sy < h.scale; sy++ {
				for sx := 0; sx < h.scale; sx++ {
					dx, dy := x*h.scale+sx, y*h.scale+sy
					off := int32(dy)*h.surface.Pitch + int32(dx)*int32(bpp)
					if int(off)+2 < len(pixels) {
						pixels[off+0] = buf[src+0]
						pixels[off+1] = buf[src+1]
						pixels[off+2] = buf[src+2]
					}
				}
			}
		}
	}
	h.window.UpdateSurface()
}

func (h *Host) queueAudio() {
	samples := h.vcs.TIA.NextAudioChunk(735) // one 60Hz frame's worth at 44.1kHz
	gosdl.QueueAudio(h.audio, samples)
}

func (h *Host) pollEvents() {
	for {
		ev := gosdl.PollEvent()
		if ev == nil {
			break
		}
		switch e := ev.(type) {
		case *gosdl.QuitEvent:
			h.quit = true
		case *gosdl.KeyboardEvent:
			h.handleKey(e)
		}
	}

	kb := gosdl.GetKeyboardState()
	h.p0.SetDirection(controller.Player0,
		kb[keymap.up] != 0, kb[keymap.down] != 0, kb[keymap.left] != 0, kb[keymap.right] != 0)
	h.p0.SetFire(controller.Player0, kb[keymap.fire] != 0)
	h.p1.SetDirection(controller.Player1,
		kb[keymap.up2] != 0, kb[keymap.down2] != 0, kb[keymap.left2] != 0, kb[keymap.right2] != 0)
	h.p1.SetFire(controller.Player1, kb[keymap.fire2] != 0)
}

func (h *Host) handleKey(e *gosdl.KeyboardEvent) {
	held := e.State == gosdl.PRESSED
	switch e.Keysym.Scancode {
	case keymap.reset:
		h.p0.SetReset(held)
	case keymap.select_:
		h.p0.SetSelect(held)
	case gosdl.SCANCODE_ESCAPE:
		if held {
			h.quit = true
		}
	}
}

// Close releases the SDL window, audio device and subsystem.
func (h *Host) Close() {
	gosdl.CloseAudioDevice(h.audio)
	h.window.Destroy()
	gosdl.Quit()
}

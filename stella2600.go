// Command stella2600 is the emulator's CLI frontend: it loads a cartridge,
// assembles a VCS, and drives it to completion using whichever display/
// audio frontend the build includes. See spec.md §6 for the flag surface
// this implements.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pixelclock/stella2600/cartridgeloader"
	"github.com/pixelclock/stella2600/frontend"
	"github.com/pixelclock/stella2600/hardware"
	"github.com/pixelclock/stella2600/hardware/instance"
	"github.com/pixelclock/stella2600/palette"
)

// Exit codes, per spec.md §6: 0 on clean shutdown, nonzero otherwise. The
// specific nonzero values aren't mandated beyond "nonzero"; these are
// chosen to let a wrapper script distinguish a bad cartridge from a CPU
// bug without parsing stderr.
const (
	exitOK               = 0
	exitCartridgeFailure = 1
	exitEmulationFailure = 2
	exitUsageError        = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("stella2600", flag.ContinueOnError)

	debug := fs.Bool("d", false, "per-instruction trace to stdout")
	fs.BoolVar(debug, "debug", false, "per-instruction trace to stdout")
	noDelay := fs.Bool("n", false, "disable real-time pacing (benchmark mode)")
	fs.BoolVar(noDelay, "no-delay", false, "disable real-time pacing (benchmark mode)")
	stopClock := fs.Uint64("s", 0, "exit after N colour clocks (0 means run until quit)")
	fs.Uint64Var(stopClock, "stop-clock", 0, "exit after N colour clocks (0 means run until quit)")
	fullscreen := fs.Bool("f", false, "fullscreen display")
	fs.BoolVar(fullscreen, "fullscreen", false, "fullscreen display")
	palPalette := fs.Bool("p", false, "load PAL palette instead of NTSC")
	fs.BoolVar(palPalette, "pal-palette", false, "load PAL palette instead of NTSC")
	cartType := fs.String("c", "", "cartridge type: one of "+strings.Join(cartridgeloader.VariantNames, " "))
	fs.StringVar(cartType, "cartridge-type", "", "cartridge type: one of "+strings.Join(cartridgeloader.VariantNames, " "))
	listDrivers := fs.Bool("l", false, "list available display/audio drivers")
	fs.BoolVar(listDrivers, "list-drivers", false, "list available display/audio drivers")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: stella2600 [flags] cartridge-file\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsageError
	}

	if *listDrivers {
		for _, name := range frontend.Names() {
			fmt.Println(name)
		}
		return exitOK
	}

	if *cartType != "" {
		if _, err := cartridgeloader.ParseVariant(*cartType); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitUsageError
		}
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return exitUsageError
	}
	filename := fs.Arg(0)

	loaded, err := cartridgeloader.Load(filename, *cartType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCartridgeFailure
	}

	cart, err := loaded.Cartridge()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCartridgeFailure
	}

	region := instance.NTSC
	paletteFile := "ntsc.pal"
	if *palPalette {
		region = instance.PAL
		paletteFile = "pal.pal"
	}
	inst := instance.New(region, false)

	vcs, err := hardware.New(inst, cart)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitEmulationFailure
	}

	pal, err := palette.Load(paletteFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "palette %s: %v\n", paletteFile, err)
		return exitCartridgeFailure
	}
	vcs.TIA.SetPalette(pal)

	host, err := frontend.New(frontend.Options{
		Fullscreen: *fullscreen,
		NoDelay:    *noDelay,
		Debug:      *debug,
	}, vcs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitEmulationFailure
	}
	defer host.Close()

	if err := host.Run(*stopClock); err != nil {
		if hardware.IsKilled(err) {
			fmt.Fprintf(os.Stderr, "stella2600: cpu halted: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "stella2600: %v\n", err)
		}
		return exitEmulationFailure
	}

	return exitOK
}

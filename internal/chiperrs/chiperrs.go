// Package chiperrs holds the handful of sentinel errors shared by more than
// one hardware package, so that a package higher up the stack (memory/bus,
// the VCS frame driver) can errors.Is against them without importing every
// concrete chip package just for its error variable.
package chiperrs

import "errors"

// ErrUnmappedAddress is returned when an address does not decode to any
// known chip or cartridge region.
var ErrUnmappedAddress = errors.New("address does not map to any known device")

// ErrUnpokeable is returned by a DebuggerBus.Poke implementation that has no
// meaningful write path outside of normal CPU access (for example, a
// cartridge's ROM region).
var ErrUnpokeable = errors.New("address cannot be poked")

// Package digest computes a SHA1 fingerprint of a rendered frame buffer,
// used by the end-to-end scenarios in spec.md §8 to assert on a frame's
// content without embedding expected pixel data in test source.
package digest

import (
	"crypto/sha1"
	"encoding/hex"
)

// Frame hashes a CopyFrame-shaped byte slice (row-major RGB24) and returns
// its digest as a lowercase hex string.
func Frame(frame []uint8) string {
	sum := sha1.Sum(frame)
	return hex.EncodeToString(sum[:])
}

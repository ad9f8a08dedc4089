// Package palette loads the text colour tables that translate a TIA
// COLUxx byte into an RGB triple, per spec.md §6's palette file format.
package palette

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// NumEntries is the number of colours a palette file is expected to
// define: one per 7-bit luminance/hue value (COLUxx's bit 0 is unused).
const NumEntries = 128

// Palette is an indexable RGB colour table satisfying tia.Palette.
type Palette struct {
	entries [NumEntries][3]uint8
}

// Lookup implements tia.Palette: colourByte's bottom bit is discarded, as
// the real chip only ever drives an even value onto its colour output.
func (p *Palette) Lookup(colourByte uint8) [3]uint8 {
	return p.entries[colourByte>>1]
}

// Load reads a palette file: one `R G B` line (decimal 0-255 each,
// space-separated) per colour, `#` starting a comment, blank lines
// ignored. Exactly NumEntries data lines are expected; fewer leaves the
// remaining entries black, more is an error.
func Load(filename string) (*Palette, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	defer f.Close()

	p := &Palette{}
	n := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("palette: %s: line %q: want 3 fields, got %d", filename, line, len(fields))
		}

		if n >= NumEntries {
			return nil, fmt.Errorf("palette: %s: more than %d colour lines", filename, NumEntries)
		}

		var rgb [3]uint8
		for i, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil || v < 0 || v > 255 {
				return nil, fmt.Errorf("palette: %s: line %q: bad colour component %q", filename, line, field)
			}
			rgb[i] = uint8(v)
		}

		p.entries[n] = rgb
		n++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("palette: %s: %w", filename, err)
	}

	return p, nil
}

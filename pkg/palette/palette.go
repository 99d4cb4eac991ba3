// Package palette assigns colors to distribution entries by position. Entry i
// always receives color i; palettes are never wrapped, so a distribution may
// not hold more entries than the palette has colors.
package palette

import (
	"errors"
	"fmt"
)

// ErrTooManyEntries is returned when a distribution exceeds the palette size.
var ErrTooManyEntries = errors.New("palette: more entries than colors")

// Palette is an ordered list of CSS color identifiers.
type Palette []string

// Default returns the built-in palette.
func Default() Palette {
	return Palette{"#FF8A8A", "#8FD6A1", "#F4D06F", "#A3BFFA", "#F7A6E0", "#9EDCE6"}
}

// Len reports how many entries the palette can color.
func (p Palette) Len() int {
	return len(p)
}

// At returns the color for position i.
func (p Palette) At(i int) (string, error) {
	if i < 0 || i >= len(p) {
		return "", fmt.Errorf("%w: index %d, palette has %d colors", ErrTooManyEntries, i, len(p))
	}
	return p[i], nil
}

// Take returns the first n colors as a new slice.
func (p Palette) Take(n int) (Palette, error) {
	if n < 0 {
		return nil, fmt.Errorf("palette: negative size %d", n)
	}
	if n > len(p) {
		return nil, fmt.Errorf("%w: %d entries, palette has %d colors", ErrTooManyEntries, n, len(p))
	}
	out := make(Palette, n)
	copy(out, p[:n])
	return out, nil
}

package palette

import (
	"fmt"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// TokenPrefix marks theme tokens that define palette colors. Tokens are
// indexed from zero: "palette.0", "palette.1", ...
const TokenPrefix = "palette."

// FromSelection builds a palette from the palette tokens of a go-theme
// selection, variant tokens taking precedence. Indices must be contiguous
// from zero. A selection without palette tokens yields Default().
func FromSelection(selection *theme.Selection) (Palette, error) {
	if selection == nil {
		return Default(), nil
	}
	return FromTokens(selection.Tokens())
}

// FromTokens extracts the palette.N entries from a token map.
func FromTokens(tokens map[string]string) (Palette, error) {
	indexed := make(map[int]string)
	for key, value := range tokens {
		if !strings.HasPrefix(key, TokenPrefix) {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimPrefix(key, TokenPrefix))
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("palette: invalid token %q", key)
		}
		color := strings.TrimSpace(value)
		if color == "" {
			return nil, fmt.Errorf("palette: token %q is empty", key)
		}
		indexed[idx] = color
	}
	if len(indexed) == 0 {
		return Default(), nil
	}

	out := make(Palette, len(indexed))
	for i := range out {
		color, ok := indexed[i]
		if !ok {
			return nil, fmt.Errorf("palette: token %s%d missing", TokenPrefix, i)
		}
		out[i] = color
	}
	return out, nil
}

// FromSelector resolves name/variant through selector and builds the palette.
// A nil selector yields Default().
func FromSelector(selector theme.ThemeSelector, name, variant string) (Palette, error) {
	if selector == nil {
		return Default(), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("palette: select theme %q/%q: %w", name, variant, err)
	}
	return FromSelection(selection)
}

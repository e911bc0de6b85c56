package vtcore

// ColorKind tags how a Color was specified.
type ColorKind uint8

const (
	// ColorDefault means "use the terminal default foreground/background"
	// (SGR 39/49). Index and RGB fields are unused.
	ColorDefault ColorKind = iota
	// ColorIndexed selects one of the 256 standard palette entries. Index
	// 0-15 are semantic (standard + bright), 16-231 the 6x6x6 cube,
	// 232-255 the grayscale ramp.
	ColorIndexed
	// ColorTrueColor is a 24-bit RGB value.
	ColorTrueColor
)

// Color is the tagged color value: default, indexed, or truecolor — never
// more than one representation alive at a time.
type Color struct {
	Kind    ColorKind
	Index   uint8 // valid when Kind == ColorIndexed
	R, G, B uint8 // valid when Kind == ColorTrueColor
}

// DefaultColor is the zero-value default-colored Color.
var DefaultColor = Color{Kind: ColorDefault}

// Indexed builds an indexed color, clamping out-of-range indices instead of
// failing — SGR indexed colors are never rejected, just pinned into range.
func Indexed(idx int) Color {
	if idx < 0 {
		idx = 0
	} else if idx > 255 {
		idx = 255
	}
	return Color{Kind: ColorIndexed, Index: uint8(idx)}
}

// TrueColor builds a 24-bit truecolor value.
func TrueColor(r, g, b uint8) Color {
	return Color{Kind: ColorTrueColor, R: r, G: g, B: b}
}

// IsDefault reports whether c is the default fg/bg color.
func (c Color) IsDefault() bool {
	return c.Kind == ColorDefault
}

// rgb holds resolved red/green/blue components.
type rgb struct {
	R, G, B uint8
}

// ansi16 is the standard ANSI 16-color palette in index order (0-7 normal,
// 8-15 bright).
var ansi16 = [16]rgb{
	{0, 0, 0}, {170, 0, 0}, {0, 170, 0}, {170, 85, 0},
	{0, 0, 170}, {170, 0, 170}, {0, 170, 170}, {170, 170, 170},
	{85, 85, 85}, {255, 85, 85}, {85, 255, 85}, {255, 255, 85},
	{85, 85, 255}, {255, 85, 255}, {85, 255, 255}, {255, 255, 255},
}

// Resolve256 returns the RGB value for a standard 256-color palette index,
// independent of any custom palette overriding indices 0-15.
func Resolve256(idx uint8) (r, g, b uint8) {
	i := int(idx)
	switch {
	case i < 16:
		c := ansi16[i]
		return c.R, c.G, c.B
	case i < 232:
		i -= 16
		b6 := i % 6
		g6 := (i / 6) % 6
		r6 := i / 36
		return uint8(r6 * 51), uint8(g6 * 51), uint8(b6 * 51)
	default:
		gray := uint8((i-232)*10 + 8)
		return gray, gray, gray
	}
}

// Palette is a configuration input, not grid state: a Grid holds a pointer
// to one, and swapping it (OSC 4) never rewrites cell storage, only what a
// resolved color looks like.
type Palette struct {
	Entries   [16]rgb
	DefaultFG rgb
	DefaultBG rgb
}

// DefaultPalette returns the standard ANSI 16-color palette with a
// conventional default fg/bg pair.
func DefaultPalette() *Palette {
	p := &Palette{Entries: ansi16}
	p.DefaultFG = rgb{212, 212, 212}
	p.DefaultBG = rgb{30, 30, 30}
	return p
}

// SetEntry overwrites one of the 16 semantic palette slots (OSC 4). Out of
// range indices are ignored.
func (p *Palette) SetEntry(index int, r, g, b uint8) {
	if index < 0 || index > 15 {
		return
	}
	p.Entries[index] = rgb{r, g, b}
}

// Resolve resolves c to concrete RGB using palette for ColorDefault and
// ColorIndexed<16 lookups. palette may be nil, in which case the standard
// ansi16 table and a neutral default pair are used.
func (c Color) Resolve(palette *Palette) (r, g, b uint8) {
	switch c.Kind {
	case ColorTrueColor:
		return c.R, c.G, c.B
	case ColorIndexed:
		if c.Index < 16 && palette != nil {
			p := palette.Entries[c.Index]
			return p.R, p.G, p.B
		}
		return Resolve256(c.Index)
	default: // ColorDefault
		if palette != nil {
			return palette.DefaultFG.R, palette.DefaultFG.G, palette.DefaultFG.B
		}
		return 212, 212, 212
	}
}

// parseHexColor parses a #rgb, #rrggbb, or rgb:rr/gg/bb-style color spec as
// used by OSC 4/10/11 palette queries. Returns ok=false on malformed input.
func parseHexColor(s string) (c Color, ok bool) {
	hexVal := func(b byte) (int, bool) {
		switch {
		case b >= '0' && b <= '9':
			return int(b - '0'), true
		case b >= 'a' && b <= 'f':
			return int(b-'a') + 10, true
		case b >= 'A' && b <= 'F':
			return int(b-'A') + 10, true
		}
		return 0, false
	}
	parseHexPair := func(s string) (uint8, bool) {
		if len(s) == 0 {
			return 0, false
		}
		if len(s) == 1 {
			v, k := hexVal(s[0])
			if !k {
				return 0, false
			}
			return uint8(v*16 + v), true
		}
		hi, ok1 := hexVal(s[0])
		lo, ok2 := hexVal(s[1])
		if !ok1 || !ok2 {
			return 0, false
		}
		return uint8(hi*16 + lo), true
	}

	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
		switch len(s) {
		case 3:
			r, ok1 := parseHexPair(s[0:1])
			g, ok2 := parseHexPair(s[1:2])
			b, ok3 := parseHexPair(s[2:3])
			if !ok1 || !ok2 || !ok3 {
				return Color{}, false
			}
			return TrueColor(r, g, b), true
		case 6:
			r, ok1 := parseHexPair(s[0:2])
			g, ok2 := parseHexPair(s[2:4])
			b, ok3 := parseHexPair(s[4:6])
			if !ok1 || !ok2 || !ok3 {
				return Color{}, false
			}
			return TrueColor(r, g, b), true
		}
		return Color{}, false
	}

	if len(s) > 4 && s[:4] == "rgb:" {
		parts := splitN3(s[4:], '/')
		if parts == nil {
			return Color{}, false
		}
		r, ok1 := parseHexPair(parts[0])
		g, ok2 := parseHexPair(parts[1])
		b, ok3 := parseHexPair(parts[2])
		if !ok1 || !ok2 || !ok3 {
			return Color{}, false
		}
		return TrueColor(r, g, b), true
	}

	return Color{}, false
}

// splitN3 splits s into exactly 3 parts on sep, returning nil if the count
// doesn't match.
func splitN3(s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	if len(parts) != 3 {
		return nil
	}
	return parts
}

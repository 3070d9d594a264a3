package termgrid

import "fmt"

// ColorKind discriminates the three representable color states.
type ColorKind uint8

const (
	// ColorAbsent means no color was set; consumers interpret this as "default".
	ColorAbsent ColorKind = iota
	// ColorPalette is a 256-entry palette index.
	ColorPalette
	// ColorRGB is a direct 24-bit RGB triple.
	ColorRGB
)

// Color is either absent, a palette index, or a direct RGB triple.
//
// Color is a plain comparable struct on purpose: two RGB colors built from
// the same (R, G, B) always compare == regardless of how they arose, and
// "absent" never equals "any concrete color" — both are requirements from
// the data model.
type Color struct {
	Kind    ColorKind
	Index   uint8 // valid when Kind == ColorPalette
	R, G, B uint8 // valid when Kind == ColorRGB
}

// NoColor is the zero value: absent.
var NoColor = Color{Kind: ColorAbsent}

// PaletteColor builds a palette-indexed color.
func PaletteColor(index uint8) Color {
	return Color{Kind: ColorPalette, Index: index}
}

// RGBColor builds a direct 24-bit color.
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// IsAbsent reports whether no color was set.
func (c Color) IsAbsent() bool {
	return c.Kind == ColorAbsent
}

// Resolve returns the concrete RGB this color represents, given a palette.
// Absent colors resolve to the supplied default.
func (c Color) Resolve(palette *Palette, def RGB) RGB {
	switch c.Kind {
	case ColorPalette:
		return palette.At(c.Index)
	case ColorRGB:
		return RGB{R: c.R, G: c.G, B: c.B}
	default:
		return def
	}
}

// Hex renders the resolved color as a lowercase "#rrggbb" string, or returns
// ok=false when the color is absent (callers emit JSON null in that case).
func (c Color) Hex(palette *Palette) (hex string, ok bool) {
	if c.IsAbsent() {
		return "", false
	}
	rgb := c.Resolve(palette, RGB{})
	return rgb.Hex(), true
}

// RGB is a concrete resolved color triple.
type RGB struct {
	R, G, B uint8
}

// Hex renders the triple as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette is a configurable 256-entry color table owned by an Emulator.
// Cells record a palette index, not a resolved RGB, so mutating an entry
// changes how already-written cells render on the next read without
// rewriting any stored cell (testable property 8).
type Palette struct {
	entries [256]RGB
}

// NewPalette returns a palette initialized to DefaultPalette.
func NewPalette() *Palette {
	p := &Palette{}
	p.Reset()
	return p
}

// At returns the resolved color for a palette index.
func (p *Palette) At(index uint8) RGB {
	return p.entries[index]
}

// Set overwrites a palette entry. Takes effect on future reads only.
func (p *Palette) Set(index uint8, rgb RGB) {
	p.entries[index] = rgb
}

// Reset restores every entry to DefaultPalette.
func (p *Palette) Reset() {
	p.entries = DefaultPalette
}

// DefaultForeground is the default text color (light gray).
var DefaultForeground = RGB{229, 229, 229}

// DefaultBackground is the default background color (black).
var DefaultBackground = RGB{0, 0, 0}

// DefaultPalette is the standard 256-color palette: 16 named colors (0-15),
// a 216-entry color cube (16-231), and 24 grayscale steps (232-255).
var DefaultPalette = buildDefaultPalette()

func buildDefaultPalette() [256]RGB {
	var p [256]RGB

	// Standard colors (0-7)
	p[0] = RGB{0, 0, 0}
	p[1] = RGB{205, 49, 49}
	p[2] = RGB{13, 188, 121}
	p[3] = RGB{229, 229, 16}
	p[4] = RGB{36, 114, 200}
	p[5] = RGB{188, 63, 188}
	p[6] = RGB{17, 168, 205}
	p[7] = RGB{229, 229, 229}

	// Bright colors (8-15)
	p[8] = RGB{102, 102, 102}
	p[9] = RGB{241, 76, 76}
	p[10] = RGB{35, 209, 139}
	p[11] = RGB{245, 245, 67}
	p[12] = RGB{59, 142, 234}
	p[13] = RGB{214, 112, 214}
	p[14] = RGB{41, 184, 219}
	p[15] = RGB{255, 255, 255}

	// 216 color cube (16-231)
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = RGB{uint8(r * 51), uint8(g * 51), uint8(b * 51)}
				i++
			}
		}
	}

	// Grayscale (232-255)
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		p[232+j] = RGB{gray, gray, gray}
	}

	return p
}

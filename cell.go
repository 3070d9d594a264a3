package termgrid

// AttrMask is a bitmask of the six style attributes the external contract
// defines. The numeric values are part of the external contract and must never
// change: bold=1, italic=2, underline=4, strikethrough=8, inverse=16, faint=32.
type AttrMask uint8

const (
	AttrBold AttrMask = 1 << iota
	AttrItalic
	AttrUnderline
	AttrStrikethrough
	AttrInverse
	AttrFaint
)

// attrMaskBits is the set of bits the external encoding defines; anything
// outside it would violate the flag-encoding invariant (property 3).
const attrMaskBits = AttrBold | AttrItalic | AttrUnderline | AttrStrikethrough | AttrInverse | AttrFaint

// Has reports whether every bit in want is set.
func (a AttrMask) Has(want AttrMask) bool {
	return a&want == want
}

// Style carries a cell's foreground color, background color, and attribute
// set. Two styles are equal iff all three fields are equal — Style is a
// plain comparable struct so Go's == already implements that relation.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs AttrMask
}

// WidthClass classifies how a cell occupies columns.
type WidthClass uint8

const (
	// WidthNarrow occupies exactly one column.
	WidthNarrow WidthClass = iota
	// WidthWide occupies this cell and forces the next cell into WidthSpacer.
	WidthWide
	// WidthSpacer is the right half of a wide cell; never independently styled.
	WidthSpacer
)

// Cell is the content of one grid column in one row.
//
// Char is a Unicode scalar, or 0 meaning "never written". A WidthSpacer cell
// is always immediately preceded in its row by a WidthWide cell; the first
// visual column of a logical character is the narrow or wide cell.
type Cell struct {
	Char  rune
	Style Style
	Width WidthClass
}

// blankCell is the zero-value cell: never written, default style, narrow.
var blankCell = Cell{}

// IsWide reports whether this cell is the leading half of a wide character.
func (c Cell) IsWide() bool {
	return c.Width == WidthWide
}

// IsSpacer reports whether this cell is the trailing half of a wide character.
func (c Cell) IsSpacer() bool {
	return c.Width == WidthSpacer
}

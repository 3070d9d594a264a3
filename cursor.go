package termgrid

// Cursor tracks the active screen's logical position and visibility.
//
// X may equal the grid's column count — the "pending wrap" state: the next
// write moves to (0, Y+1) (scrolling if needed) before placing its
// character.
type Cursor struct {
	X, Y    int
	Visible bool
}

// NewCursor returns a cursor at (0, 0), visible, matching DECTCEM's default.
func NewCursor() Cursor {
	return Cursor{Visible: true}
}

// Charset selects the character encoding variant in effect for G0/G1.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetLineDrawing
)

// SavedCursor stores cursor position, pen and G0 charset for DECSC/DECRC.
type SavedCursor struct {
	X, Y    int
	Pen     Style
	Charset Charset
}

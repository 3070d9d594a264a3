package termgrid

import "github.com/danielgatis/go-ansicode"

// Emulator is a single VT/ANSI terminal instance: a Screen, a cursor, a pen
// (the SGR attributes applied to the next written cell), a color palette and
// the small set of modes this engine's sequence coverage requires.
// Escape-sequence recognition itself is delegated to a go-ansicode Decoder
// (handler.go implements its Handler interface); Emulator additionally
// tracks just enough of the same boundary to answer IsReady (parser.go),
// since the decoder exposes no such introspection.
//
// It plays the role a classic VT100/xterm Terminal struct plays, trimmed to one
// screen buffer (the expanded spec has no alternate-screen concept) and
// rebuilt around the bit-exact Cell/Style model in cell.go and colors.go.
type Emulator struct {
	screen  *Screen
	cursor  Cursor
	pen     Style
	palette *Palette

	scrollTop, scrollBottom int // inclusive, 0-based

	g0, g1  Charset
	activeG int // 0 selects g0, 1 selects g1 (SetActiveCharset)

	lineFeedNewLine bool // LNM, ANSI mode 20

	saved    SavedCursor
	hasSaved bool

	title string

	decoder *ansicode.Decoder

	fstate    feedState
	oscBuf    []byte
	pendingEsc bool

	promptMarks []PromptMark
}

// New allocates an Emulator with a cols×rows screen, cursor at the origin,
// default pen and palette, LNM enabled and the scrolling region set
// to the full screen.
func New(cols, rows int) *Emulator {
	if cols <= 0 {
		cols = 1
	}
	if rows <= 0 {
		rows = 1
	}
	e := &Emulator{
		screen:          NewScreen(cols, rows),
		cursor:          NewCursor(),
		palette:         NewPalette(),
		lineFeedNewLine: true,
	}
	e.scrollBottom = rows - 1
	e.decoder = ansicode.NewDecoder(e)
	return e
}

// IsReady reports whether the parser is currently in the ground state, with
// no escape sequence in progress — the safe boundary at which a caller may
// read terminal state (the is_ready operation).
func (e *Emulator) IsReady() bool {
	return e.fstate == feedGround && !e.pendingEsc
}

// HasAtLeast reports whether at least n rows (scrollback plus active, oldest
// first) are currently available, letting callers with a bounded row
// window (offset+limit) stop feeding bytes as soon as the window is
// satisfiable instead of draining the whole input (early exit).
func (e *Emulator) HasAtLeast(n int) bool {
	return e.screen.HasAtLeast(n)
}

// Resize changes the screen's dimensions without reflowing content (see
// Screen.Resize), clamps the cursor to the new bounds and resets the
// scrolling region to the full new screen.
func (e *Emulator) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	e.screen.Resize(cols, rows)
	e.cursor.X = clampInt(e.cursor.X, 0, cols-1)
	e.cursor.Y = clampInt(e.cursor.Y, 0, rows-1)
	e.scrollTop = 0
	e.scrollBottom = rows - 1
}

// Reset restores the emulator to its just-constructed state: blank screen,
// no scrollback, cursor home and visible, default pen, default palette and
// no shell-integration history.
func (e *Emulator) Reset() {
	e.palette.Reset()
	e.resetToInitialState()
}

// Cursor reports the active screen's cursor position.
func (e *Emulator) Cursor() (x, y int) {
	return e.cursor.X, e.cursor.Y
}

// CursorVisible reports whether DECTCEM currently shows the cursor.
func (e *Emulator) CursorVisible() bool {
	return e.cursor.Visible
}

// Title returns the most recent OSC 0/1/2 window title, or "" if none was
// ever set. Not part of the bit-exact JSON/text/HTML contract.
func (e *Emulator) Title() string {
	return e.title
}

// SetMaxScrollback caps the retained scrollback at max rows, discarding the
// oldest rows beyond that cap; 0 restores the default of unbounded
// retention. The core treats scrollback as unbounded by default — this is
// the opt-in bound the design notes describe for hosts that need one.
func (e *Emulator) SetMaxScrollback(max int) {
	e.screen.SetMaxScrollback(max)
}

// MaxScrollback returns the current retention cap (0 means unbounded).
func (e *Emulator) MaxScrollback() int {
	return e.screen.MaxScrollback()
}

func (e *Emulator) resetToInitialState() {
	e.screen.ClearAll()
	e.screen.ClearScrollback()
	e.screen.resetTabStops()
	e.cursor = NewCursor()
	e.pen = Style{}
	e.scrollTop, e.scrollBottom = 0, e.screen.Rows()-1
	e.g0, e.g1 = CharsetASCII, CharsetASCII
	e.activeG = 0
	e.lineFeedNewLine = true
	e.hasSaved = false
	e.title = ""
	e.promptMarks = nil
	e.fstate = feedGround
	e.pendingEsc = false
	e.oscBuf = nil
}

func (e *Emulator) currentCharset() Charset {
	if e.activeG == 1 {
		return e.g1
	}
	return e.g0
}

func (e *Emulator) inputRune(r rune) {
	if e.currentCharset() == CharsetLineDrawing {
		if mapped, ok := lineDrawingMap[r]; ok {
			r = mapped
		}
	}

	w := runeWidth(r)
	if w <= 0 {
		w = 1
	}
	cols := e.screen.Cols()

	if e.cursor.X >= cols {
		e.wrapLine()
	}
	if w == 2 && e.cursor.X == cols-1 {
		if c := e.screen.Cell(e.cursor.X, e.cursor.Y); c != nil {
			*c = blankCell
		}
		e.wrapLine()
	}

	cell := Cell{Char: r, Style: e.pen}
	if w == 2 {
		cell.Width = WidthWide
	}
	if c := e.screen.Cell(e.cursor.X, e.cursor.Y); c != nil {
		*c = cell
	}
	if w == 2 {
		if sp := e.screen.Cell(e.cursor.X+1, e.cursor.Y); sp != nil {
			*sp = Cell{Char: ' ', Style: e.pen, Width: WidthSpacer}
		}
	}
	e.cursor.X += w
}

func (e *Emulator) wrapLine() {
	if row := e.screen.ActiveRow(e.cursor.Y); row != nil {
		row.Wrapped = true
	}
	e.cursor.X = 0
	e.lineFeed()
}

func (e *Emulator) lineFeed() {
	if e.cursor.Y == e.scrollBottom {
		e.screen.ScrollUp(e.scrollTop, e.scrollBottom+1, 1)
	} else if e.cursor.Y < e.screen.Rows()-1 {
		e.cursor.Y++
	}
	if e.lineFeedNewLine {
		e.cursor.X = 0
	}
}

func (e *Emulator) reverseIndex() {
	if e.cursor.Y == e.scrollTop {
		e.screen.ScrollDown(e.scrollTop, e.scrollBottom+1, 1)
	} else if e.cursor.Y > 0 {
		e.cursor.Y--
	}
}

func (e *Emulator) saveCursor() {
	e.saved = SavedCursor{X: e.cursor.X, Y: e.cursor.Y, Pen: e.pen, Charset: e.g0}
	e.hasSaved = true
}

func (e *Emulator) restoreCursor() {
	if !e.hasSaved {
		e.cursor.X, e.cursor.Y = 0, 0
		return
	}
	e.cursor.X = clampInt(e.saved.X, 0, e.screen.Cols()-1)
	e.cursor.Y = clampInt(e.saved.Y, 0, e.screen.Rows()-1)
	e.pen = e.saved.Pen
	e.g0 = e.saved.Charset
}

func (e *Emulator) setScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom >= e.screen.Rows() {
		bottom = e.screen.Rows() - 1
	}
	if top < bottom {
		e.scrollTop, e.scrollBottom = top, bottom
	} else {
		e.scrollTop, e.scrollBottom = 0, e.screen.Rows()-1
	}
	e.cursor.X, e.cursor.Y = 0, e.scrollTop
}

func (e *Emulator) eraseDisplay(mode int) {
	switch mode {
	case 0:
		e.screen.ClearRowRange(e.cursor.Y, e.cursor.X, e.screen.Cols())
		for y := e.cursor.Y + 1; y < e.screen.Rows(); y++ {
			e.screen.ClearRowRange(y, 0, e.screen.Cols())
		}
	case 1:
		for y := 0; y < e.cursor.Y; y++ {
			e.screen.ClearRowRange(y, 0, e.screen.Cols())
		}
		e.screen.ClearRowRange(e.cursor.Y, 0, e.cursor.X+1)
	case 2:
		e.screen.ClearAll()
	case 3:
		e.screen.ClearAll()
		e.screen.ClearScrollback()
	}
}

func (e *Emulator) eraseLine(mode int) {
	switch mode {
	case 0:
		e.screen.ClearRowRange(e.cursor.Y, e.cursor.X, e.screen.Cols())
	case 1:
		e.screen.ClearRowRange(e.cursor.Y, 0, e.cursor.X+1)
	case 2:
		e.screen.ClearRowRange(e.cursor.Y, 0, e.screen.Cols())
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

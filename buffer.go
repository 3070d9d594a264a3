package termgrid

import "iter"

// Row is a sequence of exactly Cols cells, plus a flag noting whether the
// line's trailing carriage return wrapped into the next row.
type Row struct {
	Cells   []Cell
	Wrapped bool
}

func newRow(cols int) Row {
	return Row{Cells: make([]Cell, cols)}
}

func (r Row) clone() Row {
	cells := make([]Cell, len(r.Cells))
	copy(cells, r.Cells)
	return Row{Cells: cells, Wrapped: r.Wrapped}
}

// Screen owns the active grid and the scrollback region, which is unbounded
// unless capped with SetMaxScrollback. It has no notion of a cursor — that lives on Emulator, since
// the screen itself is pure grid storage plus scroll/resize mechanics.
type Screen struct {
	cols, rows int
	active     []Row
	scrollback []Row
	maxScroll  int // 0 means unbounded, the default
	tabStops   []bool
}

// NewScreen allocates a cols×rows grid with empty scrollback.
func NewScreen(cols, rows int) *Screen {
	s := &Screen{cols: cols, rows: rows}
	s.active = make([]Row, rows)
	for i := range s.active {
		s.active[i] = newRow(cols)
	}
	s.resetTabStops()
	return s
}

func (s *Screen) resetTabStops() {
	s.tabStops = make([]bool, s.cols)
	for i := 0; i < s.cols; i += 8 {
		s.tabStops[i] = true
	}
}

// Cols and Rows report the active grid's dimensions.
func (s *Screen) Cols() int { return s.cols }
func (s *Screen) Rows() int { return s.rows }

// Cell returns a pointer to the cell at (x, y) in the active grid, or nil
// if out of bounds.
func (s *Screen) Cell(x, y int) *Cell {
	if y < 0 || y >= s.rows || x < 0 || x >= s.cols {
		return nil
	}
	return &s.active[y].Cells[x]
}

// ActiveRow returns a pointer to the active row at y, or nil if out of range.
func (s *Screen) ActiveRow(y int) *Row {
	if y < 0 || y >= s.rows {
		return nil
	}
	return &s.active[y]
}

// ClearRowRange resets cells [from, to) in row y to the blank cell.
func (s *Screen) ClearRowRange(y, from, to int) {
	row := s.ActiveRow(y)
	if row == nil {
		return
	}
	if from < 0 {
		from = 0
	}
	if to > s.cols {
		to = s.cols
	}
	for x := from; x < to; x++ {
		row.Cells[x] = blankCell
	}
}

// ClearRow resets an entire row to the blank cell and drops its wrap flag.
func (s *Screen) ClearRow(y int) {
	s.ClearRowRange(y, 0, s.cols)
	if row := s.ActiveRow(y); row != nil {
		row.Wrapped = false
	}
}

// ClearAll resets every cell in the active grid and clears wrap flags.
func (s *Screen) ClearAll() {
	for y := range s.active {
		s.ClearRowRange(y, 0, s.cols)
		s.active[y].Wrapped = false
	}
}

// FillWithE overwrites every cell of the active grid with 'E' in the default
// style, the DECALN screen-alignment pattern.
func (s *Screen) FillWithE() {
	for y := range s.active {
		row := &s.active[y]
		for x := range row.Cells {
			row.Cells[x] = Cell{Char: 'E'}
		}
		row.Wrapped = false
	}
}

// InsertBlanks opens n blank cells at (x, y), shifting cells from x onward
// right by n within the row; cells shifted past the last column are dropped.
func (s *Screen) InsertBlanks(y, x, n int) {
	row := s.ActiveRow(y)
	if row == nil || n <= 0 {
		return
	}
	if x < 0 {
		x = 0
	}
	if x >= s.cols {
		return
	}
	if n > s.cols-x {
		n = s.cols - x
	}
	copy(row.Cells[x+n:], row.Cells[x:s.cols-n])
	for i := x; i < x+n; i++ {
		row.Cells[i] = blankCell
	}
}

// DeleteChars removes n cells at (x, y), shifting cells from x+n left by n
// within the row; the vacated tail is filled with blank cells.
func (s *Screen) DeleteChars(y, x, n int) {
	row := s.ActiveRow(y)
	if row == nil || n <= 0 {
		return
	}
	if x < 0 {
		x = 0
	}
	if x >= s.cols {
		return
	}
	if n > s.cols-x {
		n = s.cols - x
	}
	copy(row.Cells[x:], row.Cells[x+n:s.cols])
	for i := s.cols - n; i < s.cols; i++ {
		row.Cells[i] = blankCell
	}
}

// ScrollUp shifts rows [top, bottom) up by n, pushing the rows that fall off
// the top into scrollback when top == 0 (the only case a hardware terminal's
// scrolling region can feed scrollback). Rows entering the bottom are blank.
func (s *Screen) ScrollUp(top, bottom, n int) {
	if n <= 0 || top >= bottom {
		return
	}
	if top < 0 {
		top = 0
	}
	if bottom > s.rows {
		bottom = s.rows
	}
	if n > bottom-top {
		n = bottom - top
	}

	if top == 0 {
		for i := 0; i < n; i++ {
			s.pushScrollback(s.active[i])
		}
	}

	copy(s.active[top:], s.active[top+n:bottom])
	for y := bottom - n; y < bottom; y++ {
		s.active[y] = newRow(s.cols)
	}
}

// ScrollDown shifts rows [top, bottom) down by n. Rows entering the top are
// blank; rows falling off the bottom of the region are discarded.
func (s *Screen) ScrollDown(top, bottom, n int) {
	if n <= 0 || top >= bottom {
		return
	}
	if top < 0 {
		top = 0
	}
	if bottom > s.rows {
		bottom = s.rows
	}
	if n > bottom-top {
		n = bottom - top
	}

	copy(s.active[top+n:bottom], s.active[top:bottom-n])
	for y := top; y < top+n; y++ {
		s.active[y] = newRow(s.cols)
	}
}

func (s *Screen) pushScrollback(row Row) {
	s.scrollback = append(s.scrollback, row.clone())
	if s.maxScroll > 0 && len(s.scrollback) > s.maxScroll {
		drop := len(s.scrollback) - s.maxScroll
		s.scrollback = s.scrollback[drop:]
	}
}

// SetMaxScrollback sets the retention cap; 0 means unbounded (the default).
func (s *Screen) SetMaxScrollback(max int) {
	s.maxScroll = max
	if max > 0 && len(s.scrollback) > max {
		s.scrollback = s.scrollback[len(s.scrollback)-max:]
	}
}

// MaxScrollback returns the current retention cap (0 = unbounded).
func (s *Screen) MaxScrollback() int { return s.maxScroll }

// ScrollbackLen returns the number of retained scrollback rows.
func (s *Screen) ScrollbackLen() int { return len(s.scrollback) }

// ClearScrollback discards all retained scrollback rows. Apart from the
// SetMaxScrollback cap dropping the oldest rows, only this call (used by
// Reset and ED 3) truncates scrollback.
func (s *Screen) ClearScrollback() {
	s.scrollback = nil
}

// RowCount returns the total number of rows retained: scrollback plus active.
func (s *Screen) RowCount() int {
	return len(s.scrollback) + s.rows
}

// HasAtLeast reports whether the first n rows (scrollback-first order) can
// be enumerated, without walking past n. Backed by length counters already
// maintained by every mutation, so this is O(1).
func (s *Screen) HasAtLeast(n int) bool {
	return s.RowCount() >= n
}

// AllRows iterates every retained row, oldest scrollback first, then the
// active grid top to bottom — the one consistent ordering every extractor
// relies on.
func (s *Screen) AllRows() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		i := 0
		for _, row := range s.scrollback {
			if !yield(i, row) {
				return
			}
			i++
		}
		for _, row := range s.active {
			if !yield(i, row) {
				return
			}
			i++
		}
	}
}

// Resize changes the grid dimensions. Content is kept at the top-left
// corner and is not reflowed: growing adds blank cells/rows, shrinking
// clips bottom/right content. Scrollback is untouched either way.
func (s *Screen) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}

	newActive := make([]Row, rows)
	for y := range newActive {
		newActive[y] = newRow(cols)
		if y < len(s.active) {
			old := s.active[y]
			n := cols
			if len(old.Cells) < n {
				n = len(old.Cells)
			}
			copy(newActive[y].Cells, old.Cells[:n])
			newActive[y].Wrapped = old.Wrapped
		}
	}

	s.active = newActive
	s.cols = cols
	s.rows = rows
	s.resetTabStops()
}

// NextTabStop returns the first enabled tab stop after x, or cols-1 if none.
func (s *Screen) NextTabStop(x int) int {
	for c := x + 1; c < s.cols; c++ {
		if s.tabStops[c] {
			return c
		}
	}
	return s.cols - 1
}

// PrevTabStop returns the last enabled tab stop before x, or 0 if none.
func (s *Screen) PrevTabStop(x int) int {
	for c := x - 1; c >= 0; c-- {
		if s.tabStops[c] {
			return c
		}
	}
	return 0
}

// SetTabStop enables a tab stop at column x.
func (s *Screen) SetTabStop(x int) {
	if x >= 0 && x < s.cols {
		s.tabStops[x] = true
	}
}

// ClearTabStop disables the tab stop at column x.
func (s *Screen) ClearTabStop(x int) {
	if x >= 0 && x < s.cols {
		s.tabStops[x] = false
	}
}

// ClearAllTabStops disables every tab stop.
func (s *Screen) ClearAllTabStops() {
	for i := range s.tabStops {
		s.tabStops[i] = false
	}
}

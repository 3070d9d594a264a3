package termgrid

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// Span is one maximal run of cells sharing a resolved Style: same
// foreground, background and attribute bits (span merging).
type Span struct {
	Text  string
	Fg    Color
	Bg    Color
	Flags AttrMask
	Width int
}

// jsonArray renders a span as the fixed [text, fg, bg, flags, width] tuple
// the external contract requires. fg/bg are lowercase "#rrggbb" strings or
// nil (JSON null); bg additionally collapses to null whenever it resolves
// to the screen's default background, so solid runs of unstyled text don't
// carry a redundant background on every span.
func (s Span) jsonArray(palette *Palette) []interface{} {
	var fg interface{}
	if hex, ok := s.Fg.Hex(palette); ok {
		fg = hex
	}

	var bg interface{}
	if hex, ok := s.Bg.Hex(palette); ok && hex != DefaultBackground.Hex() {
		bg = hex
	}

	return []interface{}{s.Text, fg, bg, int(s.Flags), s.Width}
}

// rowToSpans merges a row's cells into maximal same-style runs. Trailing
// null-codepoint cells (never written to) are trimmed; nulls that remain
// between written cells render as spaces. Spacer cells (the second column
// of a wide character) never start or end a span on their own — they are
// folded into the wide character's width.
func rowToSpans(row Row, palette *Palette) []Span {
	cells := row.Cells
	end := len(cells)
	for end > 0 && cells[end-1].Char == 0 {
		end--
	}

	var spans []Span
	i := 0
	for i < end {
		if cells[i].Width == WidthSpacer {
			i++
			continue
		}
		style := cells[i].Style
		var text strings.Builder
		width := 0
		for i < end {
			c := cells[i]
			if c.Width == WidthSpacer {
				i++
				continue
			}
			if c.Style != style {
				break
			}
			if c.Char == 0 {
				text.WriteRune(' ')
			} else {
				text.WriteRune(c.Char)
			}
			if c.Width == WidthWide {
				width += 2
			} else {
				width++
			}
			i++
		}
		spans = append(spans, Span{
			Text:  text.String(),
			Fg:    style.Fg,
			Bg:    style.Bg,
			Flags: style.Attrs,
			Width: width,
		})
	}
	return spans
}

// rowText renders a row as plain text: trailing null cells trimmed,
// internal nulls rendered as a single space, and spacer cells (the right
// half of a wide character) skipped.
func rowText(row Row) string {
	cells := row.Cells
	end := len(cells)
	for end > 0 && cells[end-1].Char == 0 {
		end--
	}
	var b strings.Builder
	for i := 0; i < end; i++ {
		c := cells[i]
		if c.Width == WidthSpacer {
			continue
		}
		if c.Char == 0 {
			b.WriteRune(' ')
		} else {
			b.WriteRune(c.Char)
		}
	}
	return b.String()
}

// jsonDocument mirrors the bit-exact external JSON contract.
type jsonDocument struct {
	Cols          int             `json:"cols"`
	Rows          int             `json:"rows"`
	Cursor        [2]int          `json:"cursor"`
	CursorVisible bool            `json:"cursorVisible"`
	Offset        int             `json:"offset"`
	TotalLines    int             `json:"totalLines"`
	Lines         [][]interface{} `json:"lines"`
}

// JSON renders the [offset, offset+limit) row window (scrollback-first
// order) as the bit-exact contract. limit <= 0 means "through the end".
func (e *Emulator) JSON(offset, limit int) ([]byte, error) {
	doc := jsonDocument{
		Cols:          e.screen.Cols(),
		Rows:          e.screen.Rows(),
		Cursor:        [2]int{e.cursor.X, e.cursor.Y},
		CursorVisible: e.cursor.Visible,
		Offset:        offset,
		TotalLines:    e.screen.RowCount(),
		Lines:         e.extractLines(offset, limit),
	}
	return json.Marshal(doc)
}

func (e *Emulator) extractLines(offset, limit int) [][]interface{} {
	lines := [][]interface{}{}
	count := 0
	for i, row := range e.screen.AllRows() {
		if i < offset {
			continue
		}
		if limit > 0 && count >= limit {
			break
		}
		spans := rowToSpans(row, e.palette)
		arr := make([]interface{}, len(spans))
		for j, sp := range spans {
			arr[j] = sp.jsonArray(e.palette)
		}
		lines = append(lines, arr)
		count++
	}
	return lines
}

// Text renders every retained row (scrollback then active) as plain text,
// one line per row, joined with "\n".
func (e *Emulator) Text() string {
	var b strings.Builder
	first := true
	for _, row := range e.screen.AllRows() {
		if !first {
			b.WriteByte('\n')
		}
		first = false
		b.WriteString(rowText(row))
	}
	return b.String()
}

// HTML renders every retained row as a "div.line" containing one "span" per
// merged style run, with inline styles carrying color/weight/decoration.
func (e *Emulator) HTML() string {
	var b strings.Builder
	b.WriteString(`<div class="terminal">`)
	for _, row := range e.screen.AllRows() {
		b.WriteString(`<div class="line">`)
		for _, sp := range rowToSpans(row, e.palette) {
			writeSpanHTML(&b, sp, e.palette)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func writeSpanHTML(b *strings.Builder, sp Span, palette *Palette) {
	var style strings.Builder
	if hex, ok := sp.Fg.Hex(palette); ok {
		fmt.Fprintf(&style, "color:%s;", hex)
	}
	if hex, ok := sp.Bg.Hex(palette); ok && hex != DefaultBackground.Hex() {
		fmt.Fprintf(&style, "background-color:%s;", hex)
	}
	if sp.Flags.Has(AttrBold) {
		style.WriteString("font-weight:bold;")
	}
	if sp.Flags.Has(AttrItalic) {
		style.WriteString("font-style:italic;")
	}
	switch {
	case sp.Flags.Has(AttrUnderline) && sp.Flags.Has(AttrStrikethrough):
		style.WriteString("text-decoration:underline line-through;")
	case sp.Flags.Has(AttrUnderline):
		style.WriteString("text-decoration:underline;")
	case sp.Flags.Has(AttrStrikethrough):
		style.WriteString("text-decoration:line-through;")
	}
	if sp.Flags.Has(AttrFaint) {
		style.WriteString("opacity:0.6;")
	}

	class := "cell"
	if sp.Flags.Has(AttrInverse) {
		class += " inverse"
	}
	fmt.Fprintf(b, "<span class=%q style=%q>%s</span>", class, style.String(), html.EscapeString(sp.Text))
}

// feedSlack is added on top of offset+limit before polling HasAtLeast, so a
// sequence that still has a few rows left to touch (e.g. a cursor reposition
// near the pagination boundary) doesn't get cut off mid-edit.
const feedSlack = 16

// feedUntilReady feeds data in fixed-size chunks and, after each chunk that
// leaves IsReady true (a safe boundary: no escape sequence in flight), polls
// HasAtLeast, stopping as soon as need rows are available. need <= 0 means "feed everything" (ToText/ToHTML, and ToJSON
// with limit <= 0).
func feedUntilReady(e *Emulator, data []byte, need int) error {
	if need <= 0 {
		return e.Feed(data)
	}
	const chunkSize = 4096
	for i := 0; i < len(data); i += chunkSize {
		end := i + chunkSize
		if end > len(data) {
			end = len(data)
		}
		if err := e.Feed(data[i:end]); err != nil {
			return err
		}
		if e.IsReady() && e.HasAtLeast(need) {
			return nil
		}
	}
	return nil
}

// ToJSON builds a transient emulator sized cols×rows (defaulting to
// 120×40), feeds data, and renders the [offset, offset+limit) row window.
// Feeding stops early once that window is satisfiable.
func ToJSON(data []byte, cols, rows, offset, limit int) ([]byte, error) {
	if cols <= 0 {
		cols = 120
	}
	if rows <= 0 {
		rows = 40
	}
	e := New(cols, rows)
	need := 0
	if limit > 0 {
		need = offset + limit + feedSlack
	}
	if err := feedUntilReady(e, data, need); err != nil {
		return nil, err
	}
	return e.JSON(offset, limit)
}

// ToText builds a transient emulator sized cols×rows (defaulting to
// 500×256), feeds data in full, and renders every retained row as text.
func ToText(data []byte, cols, rows int) (string, error) {
	if cols <= 0 {
		cols = 500
	}
	if rows <= 0 {
		rows = 256
	}
	e := New(cols, rows)
	if err := e.Feed(data); err != nil {
		return "", err
	}
	return e.Text(), nil
}

// ToHTML builds a transient emulator sized cols×rows (defaulting to
// 500×256), feeds data in full, and renders every retained row as HTML.
func ToHTML(data []byte, cols, rows int) (string, error) {
	if cols <= 0 {
		cols = 500
	}
	if rows <= 0 {
		rows = 256
	}
	e := New(cols, rows)
	if err := e.Feed(data); err != nil {
		return "", err
	}
	return e.HTML(), nil
}

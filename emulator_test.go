package termgrid

import (
	"strings"
	"testing"
)

func feed(t *testing.T, e *Emulator, s string) {
	t.Helper()
	if err := e.Feed([]byte(s)); err != nil {
		t.Fatalf("Feed(%q) error: %v", s, err)
	}
}

func TestPlainTextPlacement(t *testing.T) {
	e := New(10, 3)
	feed(t, e, "hi")
	x, y := e.Cursor()
	if x != 2 || y != 0 {
		t.Fatalf("cursor = (%d,%d), want (2,0)", x, y)
	}
	if e.screen.Cell(0, 0).Char != 'h' || e.screen.Cell(1, 0).Char != 'i' {
		t.Fatal("expected \"hi\" written at row 0")
	}
}

func TestLineWrapSetsWrappedFlag(t *testing.T) {
	e := New(4, 2)
	feed(t, e, "abcd")
	if e.screen.ActiveRow(0).Wrapped {
		t.Fatal("row should not be marked wrapped until the NEXT character forces it")
	}
	feed(t, e, "e")
	if !e.screen.ActiveRow(0).Wrapped {
		t.Fatal("writing past the last column should wrap to the next row")
	}
	if e.screen.Cell(0, 1).Char != 'e' {
		t.Fatal("wrapped character should land at column 0 of the next row")
	}
}

func TestCarriageReturnLineFeed(t *testing.T) {
	e := New(10, 3)
	feed(t, e, "ab\r\ncd")
	if e.screen.Cell(0, 1).Char != 'c' || e.screen.Cell(1, 1).Char != 'd' {
		t.Fatal("CRLF should move to column 0 of the next row")
	}
}

func TestScrollAtBottomOfScreen(t *testing.T) {
	e := New(5, 2)
	feed(t, e, "one\r\ntwo\r\nthree")
	if e.screen.ScrollbackLen() != 1 {
		t.Fatalf("scrollback len = %d, want 1", e.screen.ScrollbackLen())
	}
	if e.screen.Cell(0, 0).Char != 't' {
		t.Fatal("row 0 should now hold \"two\"")
	}
}

func TestCUPMovesCursor(t *testing.T) {
	e := New(10, 10)
	feed(t, e, "\x1b[5;3H")
	x, y := e.Cursor()
	if x != 2 || y != 4 {
		t.Fatalf("cursor = (%d,%d), want (2,4)", x, y)
	}
}

func TestCUPDefaultsToHome(t *testing.T) {
	e := New(10, 10)
	feed(t, e, "\x1b[3;3H\x1b[H")
	x, y := e.Cursor()
	if x != 0 || y != 0 {
		t.Fatalf("cursor = (%d,%d), want (0,0)", x, y)
	}
}

func TestCursorMotionClampsToScreen(t *testing.T) {
	e := New(5, 5)
	feed(t, e, "\x1b[100B\x1b[100C")
	x, y := e.Cursor()
	if x != 4 || y != 4 {
		t.Fatalf("cursor = (%d,%d), want clamped to (4,4)", x, y)
	}
}

func TestEraseDisplayModes(t *testing.T) {
	e := New(5, 2)
	feed(t, e, "abcde\r\nfghij")
	feed(t, e, "\x1b[2J")
	for y := 0; y < 2; y++ {
		for x := 0; x < 5; x++ {
			if e.screen.Cell(x, y).Char != 0 {
				t.Fatalf("cell (%d,%d) not cleared", x, y)
			}
		}
	}
}

func TestEraseLineFromCursor(t *testing.T) {
	e := New(5, 1)
	feed(t, e, "abcde\x1b[3G\x1b[K")
	if e.screen.Cell(0, 0).Char != 'a' || e.screen.Cell(1, 0).Char != 'b' {
		t.Fatal("cells before cursor should survive EL 0")
	}
	if e.screen.Cell(2, 0).Char != 0 {
		t.Fatal("cell at and after cursor should be cleared")
	}
}

func TestSGRBoldAndColor(t *testing.T) {
	e := New(10, 1)
	feed(t, e, "\x1b[1;31mx")
	c := e.screen.Cell(0, 0)
	if !c.Style.Attrs.Has(AttrBold) {
		t.Fatal("expected bold attribute")
	}
	if c.Style.Fg != PaletteColor(1) {
		t.Fatalf("fg = %+v, want palette index 1", c.Style.Fg)
	}
}

func TestSGRResetClearsAttributes(t *testing.T) {
	e := New(10, 1)
	feed(t, e, "\x1b[1;31mx\x1b[0my")
	if !e.screen.Cell(0, 0).Style.Attrs.Has(AttrBold) {
		t.Fatal("first cell should still be bold")
	}
	if e.screen.Cell(1, 0).Style != (Style{}) {
		t.Fatal("SGR 0 should reset to the default style")
	}
}

func TestSGRTruecolor(t *testing.T) {
	e := New(10, 1)
	feed(t, e, "\x1b[38;2;10;20;30mx")
	fg := e.screen.Cell(0, 0).Style.Fg
	if fg != RGBColor(10, 20, 30) {
		t.Fatalf("fg = %+v, want rgb(10,20,30)", fg)
	}
}

func TestSGRIndexedColonForm(t *testing.T) {
	e := New(10, 1)
	feed(t, e, "\x1b[38:5:200mx")
	fg := e.screen.Cell(0, 0).Style.Fg
	if fg != PaletteColor(200) {
		t.Fatalf("fg = %+v, want palette index 200", fg)
	}
}

func TestDECTCEMHidesCursor(t *testing.T) {
	e := New(10, 1)
	if !e.CursorVisible() {
		t.Fatal("cursor should start visible")
	}
	feed(t, e, "\x1b[?25l")
	if e.CursorVisible() {
		t.Fatal("CSI ?25l should hide the cursor")
	}
	feed(t, e, "\x1b[?25h")
	if !e.CursorVisible() {
		t.Fatal("CSI ?25h should show the cursor again")
	}
}

func TestLNMMakesLineFeedImplyCR(t *testing.T) {
	e := New(10, 3)
	feed(t, e, "\x1b[20hab\ncd")
	if e.screen.Cell(0, 1).Char != 'c' {
		t.Fatal("with LNM set, a bare LF should also return to column 0")
	}
}

func TestLNMDefaultsOn(t *testing.T) {
	e := New(10, 3)
	feed(t, e, "ab\ncd")
	if e.screen.Cell(0, 1).Char != 'c' {
		t.Fatal("LNM should default to enabled, so a bare LF also returns to column 0")
	}
}

func TestWithoutLNMLineFeedPreservesColumn(t *testing.T) {
	e := New(10, 3)
	feed(t, e, "\x1b[20lab\ncd")
	if e.screen.Cell(2, 1).Char != 'c' {
		t.Fatal("with LNM explicitly unset, LF should move down without touching the column")
	}
}

func TestDECSTBMRestrictsScrolling(t *testing.T) {
	e := New(5, 5)
	feed(t, e, "\x1b[2;4r")
	x, y := e.Cursor()
	if x != 0 || y != 1 {
		t.Fatalf("DECSTBM should home the cursor into the region, got (%d,%d)", x, y)
	}
}

func TestWideCharacterOccupiesTwoCells(t *testing.T) {
	e := New(10, 1)
	feed(t, e, "中")
	c := e.screen.Cell(0, 0)
	if !c.IsWide() {
		t.Fatal("expected the first cell to be wide")
	}
	if !e.screen.Cell(1, 0).IsSpacer() {
		t.Fatal("expected the second cell to be a spacer")
	}
	x, _ := e.Cursor()
	if x != 2 {
		t.Fatalf("cursor.X = %d, want 2", x)
	}
}

func TestLineDrawingCharset(t *testing.T) {
	e := New(10, 1)
	feed(t, e, "\x1b(0q\x1b(B")
	if e.screen.Cell(0, 0).Char != '─' {
		t.Fatalf("got %q, want line-drawing horizontal", e.screen.Cell(0, 0).Char)
	}
}

func TestChunkInvarianceAcrossSplitEscape(t *testing.T) {
	whole := New(10, 1)
	feed(t, whole, "\x1b[31mhi")

	split := New(10, 1)
	data := []byte("\x1b[31mhi")
	for i := 0; i < len(data); i++ {
		if err := split.Feed(data[i : i+1]); err != nil {
			t.Fatalf("Feed byte %d: %v", i, err)
		}
	}

	if whole.screen.Cell(0, 0).Style != split.screen.Cell(0, 0).Style {
		t.Fatal("byte-at-a-time feed should produce the same style as feeding the whole chunk")
	}
	if whole.screen.Cell(0, 0).Char != split.screen.Cell(0, 0).Char {
		t.Fatal("byte-at-a-time feed should produce the same content")
	}
}

func TestChunkInvarianceAcrossSplitUTF8(t *testing.T) {
	data := []byte("中")
	e := New(10, 1)
	if err := e.Feed(data[:1]); err != nil {
		t.Fatalf("first partial feed: %v", err)
	}
	if err := e.Feed(data[1:]); err != nil {
		t.Fatalf("second partial feed: %v", err)
	}
	if e.screen.Cell(0, 0).Char != '中' {
		t.Fatalf("got %q, want 中", e.screen.Cell(0, 0).Char)
	}
}

func TestInvalidUTF8InOSCTitleReturnsError(t *testing.T) {
	e := New(10, 1)
	bad := append([]byte("\x1b]0;"), 0xff)
	bad = append(bad, 0x07)
	if err := e.Feed(bad); err == nil {
		t.Fatal("expected an error for invalid UTF-8 inside an OSC title")
	}
}

func TestOSCTitleUpdatesTitle(t *testing.T) {
	e := New(10, 1)
	feed(t, e, "\x1b]0;my title\x07")
	if e.Title() != "my title" {
		t.Fatalf("Title() = %q, want %q", e.Title(), "my title")
	}
}

func TestShellIntegrationPromptMarks(t *testing.T) {
	e := New(10, 3)
	feed(t, e, "\x1b]133;A\x07$ \x1b]133;B\x07ls\r\n\x1b]133;C\x07out\r\n\x1b]133;D;0\x07")
	marks := e.PromptMarks()
	if len(marks) != 4 {
		t.Fatalf("got %d marks, want 4", len(marks))
	}
	if marks[0].Kind != PromptMarkStart || marks[3].Kind != PromptMarkEnd || marks[3].ExitCode != 0 {
		t.Fatal("unexpected prompt mark sequence")
	}
}

func TestResizePreservesContentNoReflow(t *testing.T) {
	e := New(10, 2)
	feed(t, e, "hello")
	e.Resize(5, 2)
	if e.screen.Cell(0, 0).Char != 'h' {
		t.Fatal("resize should preserve top-left content")
	}
	if e.screen.Cols() != 5 {
		t.Fatalf("cols = %d, want 5", e.screen.Cols())
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	e := New(5, 2)
	feed(t, e, "\x1b[1;31mhi")
	e.palette.Set(1, RGB{1, 1, 1})
	e.Reset()
	if e.screen.Cell(0, 0).Char != 0 {
		t.Fatal("reset should clear the screen")
	}
	if e.palette.At(1) != DefaultPalette[1] {
		t.Fatal("reset should restore the default palette")
	}
	x, y := e.Cursor()
	if x != 0 || y != 0 || !e.CursorVisible() {
		t.Fatal("reset should home and show the cursor")
	}
}

func TestSetMaxScrollbackCapsRetention(t *testing.T) {
	e := New(4, 1)
	e.SetMaxScrollback(2)
	if e.MaxScrollback() != 2 {
		t.Fatalf("MaxScrollback() = %d, want 2", e.MaxScrollback())
	}
	for i := 0; i < 5; i++ {
		feed(t, e, "x\r\n")
	}
	if e.HasAtLeast(4) {
		t.Fatal("scrollback capped at 2 plus 1 active row should not reach 4 rows")
	}
	if !e.HasAtLeast(3) {
		t.Fatal("2 capped scrollback rows + 1 active row should satisfy HasAtLeast(3)")
	}
}

func TestHasAtLeast(t *testing.T) {
	e := New(5, 3)
	if !e.HasAtLeast(3) {
		t.Fatal("a fresh 3-row screen should have at least 3 rows")
	}
	if e.HasAtLeast(4) {
		t.Fatal("a fresh 3-row screen should not have at least 4 rows")
	}
}

func TestIsReadyGroundStateCorrectness(t *testing.T) {
	e := New(5, 3)
	if !e.IsReady() {
		t.Fatal("a fresh emulator starts in the ground state")
	}
	if err := e.Feed([]byte("\x1b[3")); err != nil {
		t.Fatalf("Feed error: %v", err)
	}
	if e.IsReady() {
		t.Fatal("mid-CSI-sequence, is_ready should be false")
	}
	if err := e.Feed([]byte("1mRed\x1b[0m")); err != nil {
		t.Fatalf("Feed error: %v", err)
	}
	if !e.IsReady() {
		t.Fatal("after the sequence completes, is_ready should be true again")
	}

	if err := e.Feed([]byte("plain text")); err != nil {
		t.Fatalf("Feed error: %v", err)
	}
	if !e.IsReady() {
		t.Fatal("feed ending in a non-escape byte should leave is_ready true")
	}

	if err := e.Feed([]byte("\x1b")); err != nil {
		t.Fatalf("Feed error: %v", err)
	}
	if e.IsReady() {
		t.Fatal("feed ending mid-sequence (a lone ESC) should leave is_ready false")
	}
	if err := e.Feed([]byte("[2J")); err != nil {
		t.Fatalf("Feed error: %v", err)
	}
	if !e.IsReady() {
		t.Fatal("feeding the remaining bytes should transition is_ready back to true")
	}
}

func TestUnknownCSIIsIgnoredNotError(t *testing.T) {
	e := New(10, 1)
	if err := e.Feed([]byte("\x1b[99zabc")); err != nil {
		t.Fatalf("unknown CSI should be ignored, got error: %v", err)
	}
	if e.screen.Cell(0, 0).Char != 'a' {
		t.Fatal("bytes after an unrecognized CSI should still be interpreted as text")
	}
}

func TestBackspaceAndTab(t *testing.T) {
	e := New(20, 1)
	feed(t, e, "ab\b\tc")
	x, _ := e.Cursor()
	if x != 9 {
		t.Fatalf("cursor.X = %d, want 9 (tab stop after backspace)", x)
	}
}

func TestSaveRestoreCursor(t *testing.T) {
	e := New(10, 5)
	feed(t, e, "\x1b[3;3H\x1b7\x1b[1;1H\x1b8")
	x, y := e.Cursor()
	if x != 2 || y != 2 {
		t.Fatalf("cursor = (%d,%d), want restored (2,2)", x, y)
	}
}

func TestTrailingNullCellsTrimmedInText(t *testing.T) {
	e := New(10, 1)
	feed(t, e, "hi")
	text := e.Text()
	if text != "hi" {
		t.Fatalf("Text() = %q, want %q (trailing unwritten cells trimmed)", text, "hi")
	}
}

func TestHTMLEscapesContent(t *testing.T) {
	e := New(10, 1)
	feed(t, e, "<b>")
	out := e.HTML()
	if strings.Contains(out, "<b>") {
		t.Fatal("raw \"<b>\" text should have been HTML-escaped")
	}
	if !strings.Contains(out, "&lt;b&gt;") {
		t.Fatalf("expected escaped content, got %q", out)
	}
}

package termgrid

import "github.com/mattn/go-runewidth"

// runeWidth returns the display width: 2 for wide characters (CJK, emoji),
// 1 for normal, 0 for zero-width (combining marks, control chars).
// Ambiguous-width runes are treated as narrow, per go-runewidth's default
// (non-East-Asian) condition.
func runeWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// isWideRune reports whether r occupies 2 columns.
func isWideRune(r rune) bool {
	return runewidth.RuneWidth(r) == 2
}

// StringWidth returns the total display width of a string (sum of rune widths).
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

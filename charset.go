package termgrid

// lineDrawingMap implements the VT100 "special graphics and line drawing"
// character set (DEC Special Graphics), selected via ESC ( 0 / ESC ) 0 and
// commonly emitted by full-screen programs that draw box borders without
// relying on a UTF-8-aware terminal.
var lineDrawingMap = map[rune]rune{
	'`': '◆', // diamond
	'a': '▒', // checkerboard
	'b': '␉', // HT symbol
	'c': '␌', // FF symbol
	'd': '␍', // CR symbol
	'e': '␊', // LF symbol
	'f': '°', // degree
	'g': '±', // plus/minus
	'h': '␤', // NL symbol
	'i': '␋', // VT symbol
	'j': '┘', // lower-right corner
	'k': '┐', // upper-right corner
	'l': '┌', // upper-left corner
	'm': '└', // lower-left corner
	'n': '┼', // crossing lines
	'o': '⎺', // scan line 1
	'p': '⎻', // scan line 3
	'q': '─', // horizontal line
	'r': '⎼', // scan line 7
	's': '⎽', // scan line 9
	't': '├', // left tee
	'u': '┤', // right tee
	'v': '┴', // bottom tee
	'w': '┬', // top tee
	'x': '│', // vertical line
	'y': '≤', // less-or-equal
	'z': '≥', // greater-or-equal
	'{': 'π', // pi
	'|': '≠', // not equal
	'}': '£', // pound sterling
	'~': '·', // centered dot
}

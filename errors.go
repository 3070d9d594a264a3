package termgrid

import "errors"

// ErrNotFound is returned by registry operations addressing an id with no
// backing instance.
var ErrNotFound = errors.New("termgrid: instance not found")

// ErrInvalidUTF8 is returned when the text field of a completed OSC string
// contains a malformed byte sequence.
var ErrInvalidUTF8 = errors.New("termgrid: invalid utf-8 in string field")
